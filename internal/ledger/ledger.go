// Package ledger computes running balances, monthly summaries, and
// display formatting for daily finance entries. Everything here is
// pure: callers load entries from storage and pass them in.
package ledger

import (
	"time"

	"github.com/tallyhq/tally/internal/models"
)

// DayFigures holds the three movement figures recorded for one day.
type DayFigures struct {
	IncomeCents     int64 `json:"income_cents"`
	ExpenseCents    int64 `json:"expense_cents"`
	InvestmentCents int64 `json:"investment_cents"`
}

// Net returns the day's balance delta: income minus expenses minus
// money moved into investments.
func (f DayFigures) Net() int64 {
	return f.IncomeCents - f.ExpenseCents - f.InvestmentCents
}

// LedgerRow is one day of the rendered ledger with its running balance.
type LedgerRow struct {
	Date                string `json:"date"`
	IncomeCents         int64  `json:"income_cents"`
	ExpenseCents        int64  `json:"expense_cents"`
	InvestmentCents     int64  `json:"investment_cents"`
	RunningBalanceCents int64  `json:"running_balance_cents"`
}

// ComputeLedger produces one row per requested day in order, carrying a
// running balance anchored at initialBalanceCents before the first day.
// Days with no recorded entry contribute zero to every figure. The
// balance does not carry across invocations: each month starts again
// from the anchor it is given.
func ComputeLedger(initialBalanceCents int64, days []time.Time, entries map[string]DayFigures) []LedgerRow {
	rows := make([]LedgerRow, 0, len(days))
	balance := initialBalanceCents

	for _, day := range days {
		date := day.Format(models.DateLayout)
		figures := entries[date]
		balance += figures.Net()

		rows = append(rows, LedgerRow{
			Date:                date,
			IncomeCents:         figures.IncomeCents,
			ExpenseCents:        figures.ExpenseCents,
			InvestmentCents:     figures.InvestmentCents,
			RunningBalanceCents: balance,
		})
	}

	return rows
}

// MonthDays returns every calendar day of the given yyyy-MM month in
// ascending order.
func MonthDays(monthKey string) ([]time.Time, error) {
	first, err := models.ParseMonthKey(monthKey)
	if err != nil {
		return nil, err
	}

	next := first.AddDate(0, 1, 0)
	days := make([]time.Time, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// FiguresByDate indexes entries by their date string for ledger lookup.
func FiguresByDate(entries []*models.Entry) map[string]DayFigures {
	figures := make(map[string]DayFigures, len(entries))
	for _, e := range entries {
		figures[e.Date] = DayFigures{
			IncomeCents:     e.IncomeCents,
			ExpenseCents:    e.ExpenseCents,
			InvestmentCents: e.InvestmentCents,
		}
	}
	return figures
}
