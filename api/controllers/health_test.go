package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(ctx context.Context) error {
	return s.err
}

func TestHealthLiveAlwaysUp(t *testing.T) {
	handler := HealthLive()

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestHealthReadyAllUp(t *testing.T) {
	handler := HealthReady(stubPinger{}, stubPinger{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data struct {
			Status     string            `json:"status"`
			Components map[string]string `json:"components"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != "ready" {
		t.Fatalf("unexpected status: %s", envelope.Data.Status)
	}
	if envelope.Data.Components["database"] != "ok" || envelope.Data.Components["cache"] != "ok" {
		t.Fatalf("unexpected components: %+v", envelope.Data.Components)
	}
}

func TestHealthReadyDatabaseDown(t *testing.T) {
	handler := HealthReady(stubPinger{err: errors.New("connection refused")}, stubPinger{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Details["database"] != "down" {
		t.Fatalf("expected database marked down: %+v", envelope.Error.Details)
	}
	if envelope.Error.Details["cache"] != "ok" {
		t.Fatalf("expected cache marked ok: %+v", envelope.Error.Details)
	}
}

func TestHealthReadyBothDown(t *testing.T) {
	handler := HealthReady(stubPinger{err: errors.New("db down")}, stubPinger{err: errors.New("redis down")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
