package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/interfaces"
	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/models"
)

// handleEntries dispatches /api/entries by method.
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleEntriesGet(w, r)
	case http.MethodPost:
		s.handleEntriesUpsert(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleEntriesGet handles GET /api/entries?monthKey= — the month's
// stored entries plus the computed ledger. Every viewed month anchors
// its running balance at the onboarding balances (cash plus invested);
// balances do not carry from the previous month's close. Without a
// baseline the anchor is zero.
func (s *Server) handleEntriesGet(w http.ResponseWriter, r *http.Request) {
	monthKey := r.URL.Query().Get("monthKey")
	if monthKey == "" {
		WriteError(w, http.StatusBadRequest, "monthKey query parameter is required")
		return
	}
	if _, err := models.ParseMonthKey(monthKey); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	userID := common.ResolveUserID(ctx)

	var initialBalance int64
	var baselineResp interface{}

	baseline, err := s.app.Storage.UserStore().GetBaseline(ctx, userID)
	switch {
	case err == nil:
		// yyyy-MM compares lexically in date order.
		if monthKey < baseline.BaselineMonthKey() {
			WriteError(w, http.StatusBadRequest, "Month precedes the onboarding baseline")
			return
		}
		initialBalance = baseline.CashBalanceCents + baseline.InvestedBalanceCents
		baselineResp = map[string]interface{}{
			"cash_balance_cents":     baseline.CashBalanceCents,
			"invested_balance_cents": baseline.InvestedBalanceCents,
			"month_key":              baseline.BaselineMonthKey(),
		}
	case errors.Is(err, interfaces.ErrNotFound):
		// Not yet onboarded: anchor at zero.
	default:
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load baseline")
		WriteError(w, http.StatusInternalServerError, "Failed to load baseline")
		return
	}

	entries, err := s.app.Storage.LedgerStore().ListEntriesByMonth(ctx, userID, monthKey)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("month_key", monthKey).Msg("Failed to list entries")
		WriteError(w, http.StatusInternalServerError, "Failed to list entries")
		return
	}

	days, err := ledger.MonthDays(monthKey)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows := ledger.ComputeLedger(initialBalance, days, ledger.FiguresByDate(entries))

	// Render balances with the user's display preferences.
	currency := models.DefaultCurrency
	locale := models.DefaultLanguage
	settings, err := s.app.Storage.UserStore().GetSettings(ctx, userID)
	switch {
	case err == nil:
		currency = settings.Currency
		locale = settings.Language
	case !errors.Is(err, interfaces.ErrNotFound):
		// Missing settings fall back to defaults; anything else is a
		// storage failure worth surfacing.
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load settings for ledger rendering")
	}

	views := make([]ledgerRowView, len(rows))
	for i, row := range rows {
		views[i] = ledgerRowView{
			LedgerRow:      row,
			BalanceDisplay: ledger.FormatCurrency(row.RunningBalanceCents, currency, locale),
			Fill:           ledger.ClassifyBalance(row.RunningBalanceCents),
		}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"month_key": monthKey,
		"baseline":  baselineResp,
		"entries":   entries,
		"ledger":    views,
	})
}

// ledgerRowView decorates a computed row with its rendered balance and
// the fill styling the client paints the balance cell with.
type ledgerRowView struct {
	ledger.LedgerRow
	BalanceDisplay string             `json:"balance_display"`
	Fill           ledger.BalanceFill `json:"fill"`
}

// entryUpsertRequest uses pointer figures: an omitted figure keeps
// whatever the stored row already holds for that day.
type entryUpsertRequest struct {
	Date            string `json:"date"`
	IncomeCents     *int64 `json:"income_cents"`
	ExpenseCents    *int64 `json:"expense_cents"`
	InvestmentCents *int64 `json:"investment_cents"`
}

// handleEntriesUpsert handles POST /api/entries — writes one day's
// figures. Concurrent writes for the same day are last-write-wins.
func (s *Server) handleEntriesUpsert(w http.ResponseWriter, r *http.Request) {
	var req entryUpsertRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.Date == "" {
		WriteError(w, http.StatusBadRequest, "date is required")
		return
	}
	monthKey, err := models.MonthKeyFromDate(req.Date)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	userID := common.ResolveUserID(ctx)
	store := s.app.Storage.LedgerStore()

	entry, err := store.GetEntry(ctx, userID, req.Date)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			s.logger.Error().Err(err).Str("user_id", userID).Str("date", req.Date).Msg("Failed to load entry")
			WriteError(w, http.StatusInternalServerError, "Failed to load entry")
			return
		}
		entry = &models.Entry{
			UserID:   userID,
			Date:     req.Date,
			MonthKey: monthKey,
		}
	}

	if req.IncomeCents != nil {
		entry.IncomeCents = *req.IncomeCents
	}
	if req.ExpenseCents != nil {
		entry.ExpenseCents = *req.ExpenseCents
	}
	if req.InvestmentCents != nil {
		entry.InvestmentCents = *req.InvestmentCents
	}
	entry.UpdatedAt = time.Now().UTC()

	if err := store.UpsertEntry(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("date", req.Date).Msg("Failed to upsert entry")
		WriteError(w, http.StatusInternalServerError, "Failed to save entry")
		return
	}

	WriteJSON(w, http.StatusOK, entry)
}
