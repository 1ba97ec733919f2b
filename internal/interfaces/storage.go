// Package interfaces defines service contracts for Tally
package interfaces

import (
	"context"
	"errors"

	"github.com/tallyhq/tally/internal/models"
)

// ErrNotFound is returned by stores when a record does not exist.
// Callers distinguish absence from failure with errors.Is.
var ErrNotFound = errors.New("not found")

// StorageManager coordinates all storage backends
type StorageManager interface {
	UserStore() UserStore
	LedgerStore() LedgerStore

	// Lifecycle
	Close() error
}

// UserStore manages user accounts, their settings, and onboarding state.
type UserStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error

	// CreateUserWithSettings creates a user and its default settings row
	// atomically. Neither record is visible unless both are written.
	CreateUserWithSettings(ctx context.Context, user *models.User, settings *models.UserSettings) error

	GetSettings(ctx context.Context, userID string) (*models.UserSettings, error)
	SaveSettings(ctx context.Context, settings *models.UserSettings) error

	GetBaseline(ctx context.Context, userID string) (*models.OnboardingBaseline, error)

	// CompleteOnboarding persists the baseline and flips the user's
	// onboarding flag atomically. One succeeding without the other would
	// leave the account stuck between states.
	CompleteOnboarding(ctx context.Context, userID string, baseline *models.OnboardingBaseline) error

	Close() error
}

// LedgerStore manages daily entries keyed by (user, date).
type LedgerStore interface {
	GetEntry(ctx context.Context, userID, date string) (*models.Entry, error)
	UpsertEntry(ctx context.Context, entry *models.Entry) error
	ListEntriesByMonth(ctx context.Context, userID, monthKey string) ([]*models.Entry, error)
	ListEntries(ctx context.Context, userID string) ([]*models.Entry, error)

	Close() error
}
