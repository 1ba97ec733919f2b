package server

import (
	"net/http"

	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/ledger"
)

// reportWindowMonths caps the summary report at the last year of data.
const reportWindowMonths = 12

// handleReportSummary handles GET /api/reports/summary — monthly
// totals for the newest months on record, newest first. Months with no
// entries are absent rather than zero-filled.
func (s *Server) handleReportSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ctx := r.Context()
	userID := common.ResolveUserID(ctx)

	entries, err := s.app.Storage.LedgerStore().ListEntries(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list entries for report")
		WriteError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}

	summaries := ledger.Summarize(entries, reportWindowMonths)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"months": summaries,
	})
}
