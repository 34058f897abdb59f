package handler_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kaiyuanli/playroom/backend/internal/cache"
	"github.com/kaiyuanli/playroom/backend/internal/handler"
	"github.com/kaiyuanli/playroom/backend/internal/metrics"
	sessionservice "github.com/kaiyuanli/playroom/backend/internal/service/session"
	"github.com/kaiyuanli/playroom/backend/internal/store"
)

func setupRouter() http.Handler {
	svc := sessionservice.NewService(store.NewMemoryStore(), cache.New(cache.DefaultTTL, cache.DefaultCapacity), nil, metrics.New())
	return handler.NewRouter(svc, nil, metrics.New(), "*")
}

func TestHealthz(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestRequestIDEchoedOnAPIRoutes(t *testing.T) {
	r := setupRouter()

	payload := []byte(`{"playerId":"P1","gameId":"G1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected the tracing token to be echoed back")
	}
}

func TestCORSPreflight(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if resp.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("expected CORS headers on preflight")
	}
}
