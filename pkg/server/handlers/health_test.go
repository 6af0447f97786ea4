package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// probeFunc adapts a function to the Prober interface.
type probeFunc func(ctx context.Context) error

func (f probeFunc) Health(ctx context.Context) error { return f(ctx) }

func serveHealth(handler *HealthHandler, path string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/healthz", handler.HealthCheck)
	router.GET("/readyz", handler.ReadinessCheck)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	handler := NewHealthHandler(nil)

	w := serveHealth(handler, "/healthz")

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["status"] != "healthy" {
		t.Errorf("expected status healthy, got %v", response["status"])
	}

	if response["service"] != "dataspace" {
		t.Errorf("expected service dataspace, got %v", response["service"])
	}

	if _, ok := response["timestamp"]; !ok {
		t.Error("expected timestamp in response")
	}

	if _, ok := response["version"]; !ok {
		t.Error("expected version in response")
	}

	if _, ok := response["build_info"]; !ok {
		t.Error("expected build_info in response")
	}
}

func TestReadinessCheckHealthyStore(t *testing.T) {
	handler := NewHealthHandler(probeFunc(func(ctx context.Context) error {
		return nil
	}))

	w := serveHealth(handler, "/readyz")

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["status"] != "ready" {
		t.Errorf("expected status ready, got %v", response["status"])
	}

	checks := response["checks"].(map[string]interface{})
	entityStore := checks["entity_store"].(map[string]interface{})
	if entityStore["status"] != "healthy" {
		t.Errorf("expected entity_store healthy, got %v", entityStore["status"])
	}
}

func TestReadinessCheckUnreachableStore(t *testing.T) {
	handler := NewHealthHandler(probeFunc(func(ctx context.Context) error {
		return errors.New("connection refused")
	}))

	w := serveHealth(handler, "/readyz")

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["status"] != "not_ready" {
		t.Errorf("expected status not_ready, got %v", response["status"])
	}
}

func TestReadinessCheckWithoutProbe(t *testing.T) {
	handler := NewHealthHandler(nil)

	w := serveHealth(handler, "/readyz")

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}
}
