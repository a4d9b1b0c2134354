package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsHandler(origins []string) http.Handler {
	return CORS(origins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	h := corsHandler([]string{"https://kaiwebdesign.com"})

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req.Header.Set("Origin", "https://kaiwebdesign.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://kaiwebdesign.com" {
		t.Fatalf("expected origin echoed, got %q", got)
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	h := corsHandler([]string{"https://kaiwebdesign.com"})

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS headers, got %q", got)
	}
}

func TestCORSWildcard(t *testing.T) {
	h := corsHandler([]string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req.Header.Set("Origin", "https://anything.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://anything.example" {
		t.Fatalf("expected origin echoed under wildcard, got %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := corsHandler([]string{"https://kaiwebdesign.com"})

	req := httptest.NewRequest(http.MethodOptions, "/api/quotes/seo", nil)
	req.Header.Set("Origin", "https://kaiwebdesign.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Fatal("expected allow-methods header on preflight")
	}
}
