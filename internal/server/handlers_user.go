package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/interfaces"
	"github.com/tallyhq/tally/internal/models"
)

// handleMe handles GET /api/me — the signed-in user joined with settings.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ctx := r.Context()
	userID := common.ResolveUserID(ctx)
	store := s.app.Storage.UserStore()

	user, err := store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			// Session outlived the account record.
			s.clearSessionCookie(w)
			WriteError(w, http.StatusUnauthorized, "Account not found")
			return
		}
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load user")
		WriteError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	settings, err := store.GetSettings(ctx, userID)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load settings")
			WriteError(w, http.StatusInternalServerError, "Failed to load settings")
			return
		}
		settings = models.NewDefaultSettings(userID)
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":              user.UserID,
		"email":                user.Email,
		"name":                 user.Name,
		"avatar_url":           user.AvatarURL,
		"onboarding_completed": user.OnboardingCompleted,
		"created_at":           user.CreatedAt,
		"settings": map[string]string{
			"theme":    settings.Theme,
			"currency": settings.Currency,
			"language": settings.Language,
		},
	})
}

// settingsUpdateRequest uses pointer fields so absent keys leave the
// stored value untouched.
type settingsUpdateRequest struct {
	Theme    *string `json:"theme"`
	Currency *string `json:"currency"`
	Language *string `json:"language"`
}

// handleSettings handles POST /api/settings — partial preference update.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req settingsUpdateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.Theme != nil && !models.ValidTheme(*req.Theme) {
		WriteError(w, http.StatusBadRequest, "Invalid theme: must be light, dark, or system")
		return
	}
	if req.Currency != nil && len(*req.Currency) != 3 {
		WriteError(w, http.StatusBadRequest, "Invalid currency: want a 3-letter code")
		return
	}
	if req.Language != nil && *req.Language == "" {
		WriteError(w, http.StatusBadRequest, "Invalid language: must not be empty")
		return
	}

	ctx := r.Context()
	userID := common.ResolveUserID(ctx)
	store := s.app.Storage.UserStore()

	settings, err := store.GetSettings(ctx, userID)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load settings")
			WriteError(w, http.StatusInternalServerError, "Failed to load settings")
			return
		}
		settings = models.NewDefaultSettings(userID)
	}

	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if req.Currency != nil {
		settings.Currency = *req.Currency
	}
	if req.Language != nil {
		settings.Language = *req.Language
	}
	settings.UpdatedAt = time.Now().UTC()

	if err := store.SaveSettings(ctx, settings); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to save settings")
		WriteError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"theme":    settings.Theme,
		"currency": settings.Currency,
		"language": settings.Language,
	})
}

// handleOnboarding handles POST /api/onboarding — records the starting
// balances and marks the account active in one transaction. Submitting
// again overwrites the baseline; the original client allows re-running
// onboarding from settings.
func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		CashBalanceCents     int64 `json:"cash_balance_cents"`
		InvestedBalanceCents int64 `json:"invested_balance_cents"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.CashBalanceCents < 0 || req.InvestedBalanceCents < 0 {
		WriteError(w, http.StatusBadRequest, "Starting balances must not be negative")
		return
	}

	ctx := r.Context()
	userID := common.ResolveUserID(ctx)

	baseline := &models.OnboardingBaseline{
		UserID:               userID,
		CashBalanceCents:     req.CashBalanceCents,
		InvestedBalanceCents: req.InvestedBalanceCents,
		CompletedAt:          time.Now().UTC(),
	}

	if err := s.app.Storage.UserStore().CompleteOnboarding(ctx, userID, baseline); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			s.clearSessionCookie(w)
			WriteError(w, http.StatusUnauthorized, "Account not found")
			return
		}
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to complete onboarding")
		WriteError(w, http.StatusInternalServerError, "Failed to complete onboarding")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"onboarding_completed":   true,
		"cash_balance_cents":     baseline.CashBalanceCents,
		"invested_balance_cents": baseline.InvestedBalanceCents,
		"month_key":              baseline.BaselineMonthKey(),
	})
}
