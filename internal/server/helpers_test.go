package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequireMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/api/entries", nil)
	rec := httptest.NewRecorder()

	if RequireMethod(rec, req, http.MethodGet, http.MethodPost) {
		t.Error("DELETE should not pass a GET/POST check")
	}
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, POST" {
		t.Errorf("expected Allow header GET, POST, got %q", allow)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	rec = httptest.NewRecorder()
	if !RequireMethod(rec, req, http.MethodGet) {
		t.Error("GET should pass a GET check")
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadRequest, "bad input")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if resp.Error != "bad input" {
		t.Errorf("expected error message, got %q", resp.Error)
	}
}

func TestDecodeJSON_InvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/settings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	var v map[string]interface{}
	if DecodeJSON(rec, req, &v) {
		t.Error("expected decode to fail")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
