package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/interfaces"
	"github.com/tallyhq/tally/internal/models"
)

type UserStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewUserStore(db *surrealdb.DB, logger *common.Logger) *UserStore {
	return &UserStore{
		db:     db,
		logger: logger,
	}
}

func (s *UserStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := surrealdb.Select[models.User](ctx, s.db, surrealmodels.NewRecordID("user", userID))
	if err != nil {
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	if user == nil || user.UserID == "" {
		return nil, fmt.Errorf("user %s: %w", userID, interfaces.ErrNotFound)
	}
	return user, nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql := "SELECT * FROM user WHERE email = $email LIMIT 1"
	vars := map[string]any{"email": email}

	results, err := surrealdb.Query[[]models.User](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return &(*results)[0].Result[0], nil
	}
	return nil, fmt.Errorf("user with email %s: %w", email, interfaces.ErrNotFound)
}

func (s *UserStore) SaveUser(ctx context.Context, user *models.User) error {
	sql := "UPSERT type::record('user', $id) CONTENT $user"
	vars := map[string]any{"id": user.UserID, "user": user}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.User](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		if attempt == 3 {
			return fmt.Errorf("failed to save user after retries: %w", err)
		}
	}
	return nil
}

// CreateUserWithSettings writes the user and its settings row in one
// transaction so a new account never exists without settings.
func (s *UserStore) CreateUserWithSettings(ctx context.Context, user *models.User, settings *models.UserSettings) error {
	sql := `BEGIN;
UPSERT type::record('user', $id) CONTENT $user;
UPSERT type::record('settings', $id) CONTENT $settings;
COMMIT;`
	vars := map[string]any{"id": user.UserID, "user": user, "settings": settings}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[any](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		if attempt == 3 {
			return fmt.Errorf("failed to create user with settings after retries: %w", err)
		}
	}
	return nil
}

func (s *UserStore) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	settings, err := surrealdb.Select[models.UserSettings](ctx, s.db, surrealmodels.NewRecordID("settings", userID))
	if err != nil {
		return nil, fmt.Errorf("failed to select settings: %w", err)
	}
	if settings == nil || settings.UserID == "" {
		return nil, fmt.Errorf("settings for user %s: %w", userID, interfaces.ErrNotFound)
	}
	return settings, nil
}

func (s *UserStore) SaveSettings(ctx context.Context, settings *models.UserSettings) error {
	sql := "UPSERT type::record('settings', $id) CONTENT $settings"
	vars := map[string]any{"id": settings.UserID, "settings": settings}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.UserSettings](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		if attempt == 3 {
			return fmt.Errorf("failed to save settings after retries: %w", err)
		}
	}
	return nil
}

func (s *UserStore) GetBaseline(ctx context.Context, userID string) (*models.OnboardingBaseline, error) {
	baseline, err := surrealdb.Select[models.OnboardingBaseline](ctx, s.db, surrealmodels.NewRecordID("baseline", userID))
	if err != nil {
		return nil, fmt.Errorf("failed to select baseline: %w", err)
	}
	if baseline == nil || baseline.UserID == "" {
		return nil, fmt.Errorf("baseline for user %s: %w", userID, interfaces.ErrNotFound)
	}
	return baseline, nil
}

// CompleteOnboarding stores the baseline and flips the user flag in one
// transaction. A crash between the two writes must not leave the
// account half-onboarded.
func (s *UserStore) CompleteOnboarding(ctx context.Context, userID string, baseline *models.OnboardingBaseline) error {
	// UPDATE on a missing record is a no-op, which would commit the
	// baseline without a user to own it.
	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}

	sql := `BEGIN;
UPSERT type::record('baseline', $id) CONTENT $baseline;
UPDATE type::record('user', $id) SET onboarding_completed = true, updated_at = $now;
COMMIT;`
	vars := map[string]any{
		"id":       userID,
		"baseline": baseline,
		"now":      time.Now().UTC(),
	}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[any](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		if attempt == 3 {
			return fmt.Errorf("failed to complete onboarding after retries: %w", err)
		}
	}
	return nil
}

func (s *UserStore) Close() error {
	return nil
}

var _ interfaces.UserStore = (*UserStore)(nil)
