package models

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	valid := []string{"2025-01-01", "2024-02-29", "1999-12-31"}
	for _, d := range valid {
		if _, err := ParseDate(d); err != nil {
			t.Errorf("ParseDate(%q) unexpected error: %v", d, err)
		}
	}

	invalid := []string{"", "2025-1-1", "2025/01/01", "2025-02-30", "01-01-2025", "2025-01-01T00:00:00Z"}
	for _, d := range invalid {
		if _, err := ParseDate(d); err == nil {
			t.Errorf("ParseDate(%q) expected error", d)
		}
	}
}

func TestParseMonthKey(t *testing.T) {
	if _, err := ParseMonthKey("2025-06"); err != nil {
		t.Errorf("ParseMonthKey(2025-06) unexpected error: %v", err)
	}

	invalid := []string{"", "2025", "2025-13", "2025-6", "2025-06-01"}
	for _, m := range invalid {
		if _, err := ParseMonthKey(m); err == nil {
			t.Errorf("ParseMonthKey(%q) expected error", m)
		}
	}
}

func TestMonthKeyFromDate(t *testing.T) {
	got, err := MonthKeyFromDate("2025-06-15")
	if err != nil {
		t.Fatalf("MonthKeyFromDate error: %v", err)
	}
	if got != "2025-06" {
		t.Errorf("MonthKeyFromDate = %q, want 2025-06", got)
	}

	if _, err := MonthKeyFromDate("garbage"); err == nil {
		t.Error("MonthKeyFromDate(garbage) expected error")
	}
}

func TestValidTheme(t *testing.T) {
	if !ValidTheme(ThemeLight) || !ValidTheme(ThemeDark) || !ValidTheme(ThemeSystem) {
		t.Error("expected light, dark, and system to be valid themes")
	}
	for _, theme := range []string{"", "Light", "solarized"} {
		if ValidTheme(theme) {
			t.Errorf("ValidTheme(%q) = true, want false", theme)
		}
	}
}

func TestNewDefaultSettings(t *testing.T) {
	s := NewDefaultSettings("user-1")
	if s.UserID != "user-1" {
		t.Errorf("UserID = %q", s.UserID)
	}
	if s.Theme != "light" || s.Currency != "BRL" || s.Language != "en" {
		t.Errorf("unexpected defaults: %+v", s)
	}
}

func TestBaselineMonthKey(t *testing.T) {
	b := &OnboardingBaseline{CompletedAt: time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)}
	if got := b.BaselineMonthKey(); got != "2025-03" {
		t.Errorf("BaselineMonthKey = %q, want 2025-03", got)
	}
}
