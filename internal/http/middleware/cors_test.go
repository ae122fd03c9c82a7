package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_AllowsListedOrigin(t *testing.T) {
	handler := CORS([]string{"https://app.nilahospital.example"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/therapists", nil)
	req.Header.Set("Origin", "https://app.nilahospital.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.nilahospital.example" {
		t.Fatalf("expected origin echoed, got %q", got)
	}
}

func TestCORS_IgnoresUnlistedOrigin(t *testing.T) {
	handler := CORS([]string{"https://app.nilahospital.example"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/therapists", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS headers, got %q", got)
	}
}

func TestCORS_WildcardEchoesAnyOrigin(t *testing.T) {
	handler := CORS([]string{"*"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/therapists", nil)
	req.Header.Set("Origin", "https://anything.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://anything.example" {
		t.Fatalf("expected origin echoed for wildcard, got %q", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	handler := CORS([]string{"*"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/bookings", nil)
	req.Header.Set("Origin", "https://app.nilahospital.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
}

func TestRateLimit_RejectsBeyondBurst(t *testing.T) {
	handler := RateLimit(0.0001, 2)(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d unexpectedly limited", i)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", rec.Code)
	}
}
