package server

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/interfaces"
	"github.com/tallyhq/tally/internal/models"
)

// --- Session token helpers ---

// signSessionToken creates a signed HMAC-SHA256 JWT for the given user.
func signSessionToken(user *models.User, config *common.AuthConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.UserID,
		"email": user.Email,
		"iss":   "tally-server",
		"iat":   now.Unix(),
		"exp":   now.Add(config.GetSessionExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.SessionSecret))
}

// validateSessionToken parses and validates a session JWT using the given secret.
func validateSessionToken(tokenString string, secret []byte) (*jwt.Token, jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return token, claims, nil
}

// --- OAuth state parameter encoding ---

type oauthStatePayload struct {
	Nonce string `json:"nonce"`
	TS    int64  `json:"ts"`
}

// encodeOAuthState builds a signed CSRF state parameter for the
// authorization redirect.
func encodeOAuthState(secret []byte) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	payload := oauthStatePayload{
		Nonce: base64.RawURLEncoding.EncodeToString(nonce),
		TS:    time.Now().Unix(),
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state: %w", err)
	}
	payloadB64 := base64.RawURLEncoding.EncodeToString(payloadJSON)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payloadB64))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	return payloadB64 + "." + sig, nil
}

// decodeOAuthState verifies a state parameter's signature and freshness.
func decodeOAuthState(state string, secret []byte) error {
	parts := strings.SplitN(state, ".", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid state format")
	}
	payloadB64, sigB64 := parts[0], parts[1]

	// Verify HMAC
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payloadB64))
	expectedSig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sigB64), []byte(expectedSig)) {
		return fmt.Errorf("invalid state signature")
	}

	// Decode payload
	payloadJSON, err := base64.RawURLEncoding.DecodeString(payloadB64)
	if err != nil {
		return fmt.Errorf("invalid state encoding: %w", err)
	}
	var payload oauthStatePayload
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		return fmt.Errorf("invalid state payload: %w", err)
	}

	// Check expiry (10 minutes)
	if time.Since(time.Unix(payload.TS, 0)) > 10*time.Minute {
		return fmt.Errorf("state expired")
	}

	return nil
}

// --- Session cookies ---

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.app.Config.Auth.GetSessionExpiry().Seconds()),
		HttpOnly: true,
		Secure:   s.app.Config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.app.Config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

// --- User provisioning ---

// upsertUser resolves a Google identity to a local account. Email is
// the immutable key: an existing account is refreshed with the latest
// name and avatar, a new account is created together with its default
// settings row in one transaction.
func (s *Server) upsertUser(ctx context.Context, info *models.GoogleUserInfo) (*models.User, error) {
	store := s.app.Storage.UserStore()

	user, err := store.GetUserByEmail(ctx, info.Email)
	if err == nil {
		if user.Name != info.Name || user.AvatarURL != info.Picture {
			user.Name = info.Name
			user.AvatarURL = info.Picture
			user.UpdatedAt = time.Now().UTC()
			if err := store.SaveUser(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to refresh user profile: %w", err)
			}
		}
		return user, nil
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	now := time.Now().UTC()
	user = &models.User{
		UserID:              uuid.New().String(),
		Email:               info.Email,
		Name:                info.Name,
		AvatarURL:           info.Picture,
		OnboardingCompleted: false,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := store.CreateUserWithSettings(ctx, user, models.NewDefaultSettings(user.UserID)); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.UserID).
		Str("email", user.Email).
		Msg("New user created from Google sign-in")

	return user, nil
}

// --- Auth handlers ---

// handleAuthURL handles GET /api/auth/url — returns the Google consent URL.
func (s *Server) handleAuthURL(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if s.app.GoogleClient == nil {
		WriteError(w, http.StatusServiceUnavailable, "Google sign-in is not configured")
		return
	}

	state, err := encodeOAuthState([]byte(s.app.Config.Auth.SessionSecret))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode OAuth state")
		WriteError(w, http.StatusInternalServerError, "Failed to start sign-in")
		return
	}

	url := s.app.GoogleClient.AuthCodeURL(s.app.Config.Auth.RedirectURI(), state)
	WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}

// handleAuthCallback handles GET /auth/callback — the Google redirect
// target. On success it sets the session cookie and renders a page that
// notifies the opener window; failures render the failure page so the
// popup can close itself either way.
func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if s.app.GoogleClient == nil {
		renderAuthFailure(w, "Google sign-in is not configured")
		return
	}

	query := r.URL.Query()
	if errCode := query.Get("error"); errCode != "" {
		s.logger.Info().Str("error", errCode).Msg("Google sign-in denied")
		renderAuthFailure(w, "Sign-in was cancelled")
		return
	}

	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		renderAuthFailure(w, "Missing authorization response")
		return
	}

	if err := decodeOAuthState(state, []byte(s.app.Config.Auth.SessionSecret)); err != nil {
		s.logger.Info().Err(err).Msg("Rejected OAuth callback state")
		renderAuthFailure(w, "Sign-in request expired, please try again")
		return
	}

	ctx := r.Context()

	accessToken, err := s.app.GoogleClient.ExchangeCode(ctx, code, s.app.Config.Auth.RedirectURI())
	if err != nil {
		s.logger.Error().Err(err).Msg("Google code exchange failed")
		renderAuthFailure(w, "Google sign-in failed")
		return
	}

	info, err := s.app.GoogleClient.FetchUserInfo(ctx, accessToken)
	if err != nil {
		s.logger.Error().Err(err).Msg("Google userinfo fetch failed")
		renderAuthFailure(w, "Google sign-in failed")
		return
	}

	user, err := s.upsertUser(ctx, info)
	if err != nil {
		s.logger.Error().Err(err).Str("email", info.Email).Msg("Failed to upsert user")
		renderAuthFailure(w, "Sign-in failed")
		return
	}

	token, err := signSessionToken(user, &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign session token")
		renderAuthFailure(w, "Sign-in failed")
		return
	}

	s.setSessionCookie(w, token)
	renderAuthSuccess(w, user)
}

// handleAuthLogout handles POST /api/auth/logout.
func (s *Server) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	s.clearSessionCookie(w)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// handleAuthDev handles POST /api/auth/dev — issues a session without
// Google for local development. Disabled in production.
func (s *Server) handleAuthDev(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Dev sign-in disabled in production")
		return
	}

	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		req.Email = "dev@localhost"
	}
	if req.Name == "" {
		req.Name = "Dev User"
	}

	user, err := s.upsertUser(r.Context(), &models.GoogleUserInfo{Email: req.Email, Name: req.Name})
	if err != nil {
		s.logger.Error().Err(err).Msg("Dev sign-in failed")
		WriteError(w, http.StatusInternalServerError, "Failed to create dev session")
		return
	}

	token, err := signSessionToken(user, &s.app.Config.Auth)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to sign session token")
		return
	}

	s.setSessionCookie(w, token)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":              user.UserID,
		"email":                user.Email,
		"name":                 user.Name,
		"onboarding_completed": user.OnboardingCompleted,
	})
}
