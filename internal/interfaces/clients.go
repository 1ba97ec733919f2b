package interfaces

import (
	"context"

	"github.com/tallyhq/tally/internal/models"
)

// GoogleClient handles the server side of the Google OAuth code flow.
type GoogleClient interface {
	// AuthCodeURL builds the Google consent URL the browser is sent to.
	AuthCodeURL(redirectURI, state string) string

	// ExchangeCode trades an authorization code for an access token.
	ExchangeCode(ctx context.Context, code, redirectURI string) (string, error)

	// FetchUserInfo retrieves the profile for an access token.
	FetchUserInfo(ctx context.Context, accessToken string) (*models.GoogleUserInfo, error)
}
