package ledger

import (
	"testing"
	"time"

	"github.com/tallyhq/tally/internal/models"
)

func mustMonthDays(t *testing.T, monthKey string) []time.Time {
	t.Helper()
	days, err := MonthDays(monthKey)
	if err != nil {
		t.Fatalf("MonthDays(%q) error: %v", monthKey, err)
	}
	return days
}

func TestMonthDays_Lengths(t *testing.T) {
	cases := []struct {
		monthKey string
		want     int
	}{
		{"2025-01", 31},
		{"2025-02", 28},
		{"2024-02", 29}, // leap year
		{"2025-04", 30},
		{"2025-12", 31},
	}
	for _, tc := range cases {
		days := mustMonthDays(t, tc.monthKey)
		if len(days) != tc.want {
			t.Errorf("MonthDays(%q) returned %d days, want %d", tc.monthKey, len(days), tc.want)
		}
	}
}

func TestMonthDays_Ordering(t *testing.T) {
	days := mustMonthDays(t, "2025-06")
	if got := days[0].Format(models.DateLayout); got != "2025-06-01" {
		t.Errorf("first day = %s, want 2025-06-01", got)
	}
	if got := days[len(days)-1].Format(models.DateLayout); got != "2025-06-30" {
		t.Errorf("last day = %s, want 2025-06-30", got)
	}
	for i := 1; i < len(days); i++ {
		if !days[i].After(days[i-1]) {
			t.Fatalf("days not ascending at index %d", i)
		}
	}
}

func TestMonthDays_InvalidKey(t *testing.T) {
	for _, key := range []string{"", "2025", "2025-13", "2025-1", "not-a-month"} {
		if _, err := MonthDays(key); err == nil {
			t.Errorf("MonthDays(%q) expected error", key)
		}
	}
}

func TestComputeLedger_SingleDay(t *testing.T) {
	days := mustMonthDays(t, "2025-03")
	entries := map[string]DayFigures{
		"2025-03-01": {IncomeCents: 500000, ExpenseCents: 120000, InvestmentCents: 100000},
	}

	rows := ComputeLedger(1000, days, entries)
	if len(rows) != 31 {
		t.Fatalf("expected 31 rows, got %d", len(rows))
	}

	// balance(d) = initial + income - expense - investment
	want := int64(1000 + 500000 - 120000 - 100000)
	if rows[0].RunningBalanceCents != want {
		t.Errorf("day 1 balance = %d, want %d", rows[0].RunningBalanceCents, want)
	}

	// No further entries: balance holds steady through month end.
	if rows[30].RunningBalanceCents != want {
		t.Errorf("day 31 balance = %d, want %d", rows[30].RunningBalanceCents, want)
	}
}

func TestComputeLedger_CumulativeSum(t *testing.T) {
	days := mustMonthDays(t, "2025-05")
	entries := map[string]DayFigures{
		"2025-05-02": {IncomeCents: 300000},
		"2025-05-10": {ExpenseCents: 45000, InvestmentCents: 50000},
		"2025-05-20": {IncomeCents: 10000, ExpenseCents: 2500},
	}

	initial := int64(150000)
	rows := ComputeLedger(initial, days, entries)

	// Every row's balance must equal the initial anchor plus the sum of
	// nets up to and including that day.
	running := initial
	for i, row := range rows {
		running += entries[row.Date].Net()
		if row.RunningBalanceCents != running {
			t.Fatalf("row %d (%s) balance = %d, want %d", i, row.Date, row.RunningBalanceCents, running)
		}
	}

	last := rows[len(rows)-1].RunningBalanceCents
	want := initial + 300000 - 45000 - 50000 + 10000 - 2500
	if last != want {
		t.Errorf("month-end balance = %d, want %d", last, want)
	}
}

func TestComputeLedger_MissingDaysZeroFilled(t *testing.T) {
	days := mustMonthDays(t, "2025-02")
	rows := ComputeLedger(42, days, nil)

	for _, row := range rows {
		if row.IncomeCents != 0 || row.ExpenseCents != 0 || row.InvestmentCents != 0 {
			t.Errorf("empty day %s has nonzero figures", row.Date)
		}
		if row.RunningBalanceCents != 42 {
			t.Errorf("empty day %s balance = %d, want 42", row.Date, row.RunningBalanceCents)
		}
	}
}

func TestComputeLedger_NegativeBalanceAllowed(t *testing.T) {
	days := mustMonthDays(t, "2025-07")
	entries := map[string]DayFigures{
		"2025-07-01": {ExpenseCents: 100000},
	}

	rows := ComputeLedger(0, days, entries)
	if rows[0].RunningBalanceCents != -100000 {
		t.Errorf("balance = %d, want -100000", rows[0].RunningBalanceCents)
	}
}

// Each month is anchored independently: computing July after June does
// not fold June's closing balance into July's opening one.
func TestComputeLedger_NoCarryAcrossMonths(t *testing.T) {
	june := ComputeLedger(100000, mustMonthDays(t, "2025-06"), map[string]DayFigures{
		"2025-06-15": {IncomeCents: 50000},
	})
	juneClose := june[len(june)-1].RunningBalanceCents
	if juneClose != 150000 {
		t.Fatalf("june close = %d, want 150000", juneClose)
	}

	july := ComputeLedger(100000, mustMonthDays(t, "2025-07"), nil)
	if july[0].RunningBalanceCents != 100000 {
		t.Errorf("july open = %d, want the anchor 100000, not june's close", july[0].RunningBalanceCents)
	}
}

func TestDayFigures_Net(t *testing.T) {
	f := DayFigures{IncomeCents: 1000, ExpenseCents: 300, InvestmentCents: 200}
	if f.Net() != 500 {
		t.Errorf("Net() = %d, want 500", f.Net())
	}
}

func TestFiguresByDate(t *testing.T) {
	entries := []*models.Entry{
		{Date: "2025-01-05", IncomeCents: 100, ExpenseCents: 20, InvestmentCents: 5},
		{Date: "2025-01-09", ExpenseCents: 75},
	}

	figures := FiguresByDate(entries)
	if len(figures) != 2 {
		t.Fatalf("expected 2 figures, got %d", len(figures))
	}
	if f := figures["2025-01-05"]; f.IncomeCents != 100 || f.ExpenseCents != 20 || f.InvestmentCents != 5 {
		t.Errorf("unexpected figures for 2025-01-05: %+v", f)
	}
	if f := figures["2025-01-09"]; f.ExpenseCents != 75 {
		t.Errorf("unexpected figures for 2025-01-09: %+v", f)
	}
}
