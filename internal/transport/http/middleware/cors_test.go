package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsRequest(t *testing.T, allowedOrigins []string, method, origin string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(method, "/api/games", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rr := httptest.NewRecorder()
	EnableCORS(allowedOrigins)(next).ServeHTTP(rr, req)
	return rr, called
}

func TestEnableCORSAllowsAllWithoutConfig(t *testing.T) {
	rr, called := corsRequest(t, nil, "GET", "http://example.com")
	assert.True(t, called)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestEnableCORSEchoesListedOrigin(t *testing.T) {
	allowed := []string{"http://example.com"}

	rr, _ := corsRequest(t, allowed, "GET", "http://example.com")
	assert.Equal(t, "http://example.com", rr.Header().Get("Access-Control-Allow-Origin"))

	rr, _ = corsRequest(t, allowed, "GET", "http://evil.example")
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestEnableCORSShortCircuitsPreflight(t *testing.T) {
	rr, called := corsRequest(t, nil, "OPTIONS", "http://example.com")
	assert.False(t, called)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "POST")
}
