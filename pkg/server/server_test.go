package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"atelier/editorial/pkg/logging"
)

func TestSetupRouterHealthEndpoint(t *testing.T) {
	router := SetupRouter(logging.NewLogger(), "quill")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", w.Code)
	}
}

func TestSetupRouterMetricsEndpoint(t *testing.T) {
	router := SetupRouter(logging.NewLogger(), "quill")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", w.Code)
	}
}
