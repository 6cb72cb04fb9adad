package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := RateLimit(ctx, 0.5, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := do("10.0.0.1:1234"); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, rec.Code)
		}
	}

	rec := do("10.0.0.1:5678")
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("over-burst status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "2" {
		t.Errorf("Retry-After = %q, want 2", got)
	}

	if rec := do("10.0.0.2:1234"); rec.Code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", rec.Code)
	}
}

func TestVisitorsEvict(t *testing.T) {
	vs := newVisitors(1, 1)
	now := time.Now()
	vs.allow("10.0.0.1", now.Add(-2*visitorTTL))
	vs.allow("10.0.0.2", now)

	vs.evict(now.Add(-visitorTTL))

	if _, ok := vs.byIP["10.0.0.1"]; ok {
		t.Error("stale visitor was not evicted")
	}
	if _, ok := vs.byIP["10.0.0.2"]; !ok {
		t.Error("active visitor was evicted")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"10.0.0.1:1234", "10.0.0.1"},
		{"[::1]:80", "::1"},
		{"unix", "unix"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remote
		if got := clientIP(req); got != tt.want {
			t.Errorf("clientIP(%q) = %q, want %q", tt.remote, got, tt.want)
		}
	}
}
