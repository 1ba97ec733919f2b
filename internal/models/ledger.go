package models

import (
	"fmt"
	"time"
)

// Date layouts used throughout the ledger. Dates are stored as plain
// calendar strings so a day means the same thing regardless of server
// timezone.
const (
	DateLayout     = "2006-01-02"
	MonthKeyLayout = "2006-01"
)

// Entry is one calendar day's money movement for a user. At most one
// entry exists per (user, date); writes for an existing date merge into
// the stored row.
type Entry struct {
	UserID          string    `json:"user_id"`
	Date            string    `json:"date"`      // yyyy-MM-dd
	MonthKey        string    `json:"month_key"` // yyyy-MM, denormalized from Date
	IncomeCents     int64     `json:"income_cents"`
	ExpenseCents    int64     `json:"expense_cents"`
	InvestmentCents int64     `json:"investment_cents"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MonthlySummary aggregates a month's entries for reporting.
type MonthlySummary struct {
	MonthKey             string `json:"month_key"`
	TotalIncomeCents     int64  `json:"total_income_cents"`
	TotalExpenseCents    int64  `json:"total_expense_cents"`
	TotalInvestmentCents int64  `json:"total_investment_cents"`
}

// ParseDate validates a yyyy-MM-dd date string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want yyyy-MM-dd", date)
	}
	return t, nil
}

// ParseMonthKey validates a yyyy-MM month key string.
func ParseMonthKey(monthKey string) (time.Time, error) {
	t, err := time.Parse(MonthKeyLayout, monthKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: want yyyy-MM", monthKey)
	}
	return t, nil
}

// MonthKeyFromDate derives the yyyy-MM month key from a valid
// yyyy-MM-dd date string.
func MonthKeyFromDate(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.Format(MonthKeyLayout), nil
}
