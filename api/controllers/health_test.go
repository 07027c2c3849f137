package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/storefront-backend/pkg/config"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthReadyAllHealthy(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	deps := map[string]Pinger{
		"db":    pingFunc(func(context.Context) error { return nil }),
		"redis": pingFunc(func(context.Context) error { return nil }),
	}
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	HealthReady(cfg, deps, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Storefront-Env") != "test" {
		t.Fatal("missing env header")
	}
}

func TestHealthReadyReportsFailingDependency(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	deps := map[string]Pinger{
		"db":    pingFunc(func(context.Context) error { return nil }),
		"redis": pingFunc(func(context.Context) error { return errors.New("connection refused") }),
	}
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	HealthReady(cfg, deps, testLogger())(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
	body := decodeError(t, resp)
	if body.Error.Details["redis"] != "unavailable" || body.Error.Details["db"] != "ok" {
		t.Fatalf("unexpected details %v", body.Error.Details)
	}
}

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	resp := httptest.NewRecorder()
	HealthLive(cfg)(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
