package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(t *testing.T, perMinute int) (*Limiter, *time.Time) {
	t.Helper()
	rl := NewLimiter(Config{RequestsPerMinute: perMinute, Methods: []string{http.MethodPost}})
	t.Cleanup(rl.Stop)
	now := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestAllowWindow(t *testing.T) {
	rl, now := newTestLimiter(t, 2)

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("third request in the window should be rejected")
	}
	if !rl.Allow("10.0.0.2") {
		t.Fatal("other clients are counted separately")
	}
	if got := rl.RetryAfter("10.0.0.1"); got != time.Minute {
		t.Errorf("expected retry after 1m, got %s", got)
	}

	*now = now.Add(time.Minute)
	if !rl.Allow("10.0.0.1") {
		t.Fatal("a new window should reset the count")
	}
	if m := rl.GetMetrics(); m.TotalHits != 1 || m.ClientCount != 2 {
		t.Errorf("unexpected metrics %+v", m)
	}
}

func TestCleanupStaleEntries(t *testing.T) {
	rl, now := newTestLimiter(t, 5)
	rl.Allow("10.0.0.1")
	*now = now.Add(11 * time.Minute)
	rl.Allow("10.0.0.2")

	if removed := rl.cleanupStaleEntries(); removed != 1 {
		t.Fatalf("expected 1 stale entry, got %d", removed)
	}
	if rl.ActiveClients() != 1 {
		t.Errorf("expected 1 active client, got %d", rl.ActiveClients())
	}
}

func TestMiddleware(t *testing.T) {
	rl, _ := newTestLimiter(t, 1)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := rl.Middleware(func(*http.Request) string { return "10.0.0.1" }, nil)(ok)

	serve := func(method string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(method, "/invoices", nil))
		return rr
	}

	if rr := serve(http.MethodPost); rr.Code != http.StatusNoContent {
		t.Fatalf("first POST: %d", rr.Code)
	}
	rr := serve(http.MethodPost)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second POST: expected 429, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") != "60" {
		t.Errorf("unexpected Retry-After %q", rr.Header().Get("Retry-After"))
	}
	// GETs are not counted.
	for range 3 {
		if rr := serve(http.MethodGet); rr.Code != http.StatusNoContent {
			t.Fatalf("GET should pass, got %d", rr.Code)
		}
	}
}
