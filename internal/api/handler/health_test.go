package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(ctx context.Context) error { return s.err }

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := newContext(t, http.MethodGet, "/health", "")

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadinessHandler_PlatformReachable(t *testing.T) {
	handler := NewReadinessHandler(&stubPinger{}, nil)

	c, rec := newContext(t, http.MethodGet, "/health/ready", "")
	if err := handler.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "ok" || resp.Dependencies["sendbird"].Status != "ok" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if _, reported := resp.Dependencies["redis"]; reported {
		t.Fatalf("redis must not be reported when the relay is disabled")
	}
}

func TestReadinessHandler_PlatformDown(t *testing.T) {
	handler := NewReadinessHandler(&stubPinger{err: errors.New("401 from upstream")}, nil)

	c, rec := newContext(t, http.MethodGet, "/health/ready", "")
	if err := handler.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "degraded" || resp.Dependencies["sendbird"].Status != "unhealthy" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
