package common

import (
	"context"
)

// SessionIdentity holds the authenticated user extracted from a session
// cookie. It carries only what the token proves; handlers load the full
// user record from storage when they need it.
type SessionIdentity struct {
	UserID string
	Email  string
}

type contextKey int

const (
	sessionIdentityKey contextKey = iota
	correlationIDKey
)

// WithSessionIdentity stores a SessionIdentity in the request context.
func WithSessionIdentity(ctx context.Context, id *SessionIdentity) context.Context {
	return context.WithValue(ctx, sessionIdentityKey, id)
}

// SessionIdentityFromContext retrieves the SessionIdentity from context, or nil if absent.
func SessionIdentityFromContext(ctx context.Context) *SessionIdentity {
	id, _ := ctx.Value(sessionIdentityKey).(*SessionIdentity)
	return id
}

// WithCorrelationID stores a request correlation ID in context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationIDFromContext retrieves the correlation ID from context, or "" if absent.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// ResolveUserID returns the UserID from context, or "" when no session is present.
func ResolveUserID(ctx context.Context) string {
	if id := SessionIdentityFromContext(ctx); id != nil {
		return id.UserID
	}
	return ""
}
