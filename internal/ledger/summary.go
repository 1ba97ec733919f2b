package ledger

import (
	"sort"

	"github.com/tallyhq/tally/internal/models"
)

// Summarize aggregates entries into per-month totals, newest month
// first, capped at windowSize months. Months with no entries are
// absent rather than zero-filled. A windowSize of zero or less means
// no cap.
func Summarize(entries []*models.Entry, windowSize int) []models.MonthlySummary {
	totals := make(map[string]*models.MonthlySummary)
	for _, e := range entries {
		s, ok := totals[e.MonthKey]
		if !ok {
			s = &models.MonthlySummary{MonthKey: e.MonthKey}
			totals[e.MonthKey] = s
		}
		s.TotalIncomeCents += e.IncomeCents
		s.TotalExpenseCents += e.ExpenseCents
		s.TotalInvestmentCents += e.InvestmentCents
	}

	summaries := make([]models.MonthlySummary, 0, len(totals))
	for _, s := range totals {
		summaries = append(summaries, *s)
	}

	// Month keys are yyyy-MM so lexical order is chronological order.
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].MonthKey > summaries[j].MonthKey
	})

	if windowSize > 0 && len(summaries) > windowSize {
		summaries = summaries[:windowSize]
	}
	return summaries
}
