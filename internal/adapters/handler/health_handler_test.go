package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealth_ReportsProcessUp(t *testing.T) {
	h := NewHealthHandler(nil, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Service != "queue-service" {
		t.Errorf("got service %q, want queue-service", resp.Service)
	}
	if resp.Status != "UP" {
		t.Errorf("got status %q, want UP", resp.Status)
	}
}

func TestReady_DownWhenStoresUnreachable(t *testing.T) {
	h := NewHealthHandler(nil, nil)

	req := httptest.NewRequest("GET", "/health/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "DOWN" {
		t.Errorf("got status %q, want DOWN", resp.Status)
	}
	if resp.Checks["postgres"].Status != "DOWN" {
		t.Errorf("got postgres check %q, want DOWN", resp.Checks["postgres"].Status)
	}
	if resp.Checks["redis"].Status != "DOWN" {
		t.Errorf("got redis check %q, want DOWN", resp.Checks["redis"].Status)
	}
}
