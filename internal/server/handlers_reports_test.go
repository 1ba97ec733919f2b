package server

import (
	"net/http"
	"testing"
	"time"
)

func TestReportSummary_Empty(t *testing.T) {
	s := newTestServer(t)
	cookies := loginDev(t, s, "ana@example.com")

	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/reports/summary", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	months, ok := body["months"].([]interface{})
	if !ok {
		t.Fatalf("expected months array, got %v", body["months"])
	}
	if len(months) != 0 {
		t.Errorf("expected no months without entries, got %d", len(months))
	}
}

func TestReportSummary_AggregatesNewestFirst(t *testing.T) {
	s := newTestServer(t)
	cookies := loginDev(t, s, "ana@example.com")
	onboard(t, s, cookies, 0, 0)

	now := time.Now().UTC()
	thisMonth := now.Format("2006-01")
	nextMonth := now.AddDate(0, 1, 0).Format("2006-01")

	doJSON(t, s.Handler(), http.MethodPost, "/api/entries", map[string]interface{}{
		"date":          thisMonth + "-01",
		"income_cents":  300000,
		"expense_cents": 100000,
	}, cookies)
	doJSON(t, s.Handler(), http.MethodPost, "/api/entries", map[string]interface{}{
		"date":         thisMonth + "-02",
		"income_cents": 50000,
	}, cookies)
	doJSON(t, s.Handler(), http.MethodPost, "/api/entries", map[string]interface{}{
		"date":             nextMonth + "-01",
		"investment_cents": 75000,
	}, cookies)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/reports/summary", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	months := body["months"].([]interface{})
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}

	first := months[0].(map[string]interface{})
	if first["month_key"] != nextMonth {
		t.Errorf("expected newest month %s first, got %v", nextMonth, first["month_key"])
	}
	if first["total_investment_cents"] != float64(75000) {
		t.Errorf("expected investment total 75000, got %v", first["total_investment_cents"])
	}

	second := months[1].(map[string]interface{})
	if second["month_key"] != thisMonth {
		t.Errorf("expected %s second, got %v", thisMonth, second["month_key"])
	}
	if second["total_income_cents"] != float64(350000) {
		t.Errorf("expected income total 350000, got %v", second["total_income_cents"])
	}
	if second["total_expense_cents"] != float64(100000) {
		t.Errorf("expected expense total 100000, got %v", second["total_expense_cents"])
	}
}

func TestReportSummary_ScopedToUser(t *testing.T) {
	s := newTestServer(t)

	ana := loginDev(t, s, "ana@example.com")
	onboard(t, s, ana, 0, 0)
	doJSON(t, s.Handler(), http.MethodPost, "/api/entries", map[string]interface{}{
		"date":         time.Now().UTC().Format("2006-01") + "-01",
		"income_cents": 12345,
	}, ana)

	bruno := loginDev(t, s, "bruno@example.com")
	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/reports/summary", nil, bruno)
	body := decodeBody(t, rec)
	months := body["months"].([]interface{})
	if len(months) != 0 {
		t.Errorf("expected bruno to see no months, got %d", len(months))
	}
}
