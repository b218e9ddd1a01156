package endpoint

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

func doHealth(t *testing.T, checker Checker) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.GET("/health", Health("authd", "test", checker))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	return w
}

func TestHealth_Healthy(t *testing.T) {
	w := doHealth(t, func(ctx context.Context) error { return nil })

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", body["status"])
	}
	if body["service"] != "authd" {
		t.Errorf("service = %q, want authd", body["service"])
	}
}

func TestHealth_Unhealthy(t *testing.T) {
	w := doHealth(t, func(ctx context.Context) error { return errors.New("db down") })

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "unhealthy" {
		t.Errorf("status = %q, want unhealthy", body["status"])
	}
}

func TestHealth_NilChecker(t *testing.T) {
	if w := doHealth(t, nil); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
