package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"vendora_server/structs"

	"github.com/MonkyMars/gecho"
)

type fakeLimiter struct {
	count int
	err   error
	calls int
}

func (fl *fakeLimiter) IncrementRateLimit(ip, endpoint string, window time.Duration) (int, error) {
	fl.calls++
	return fl.count, fl.err
}

func limiterTestConfig(enabled bool) *structs.Config {
	return &structs.Config{
		RateLimit: &structs.RateLimitConfig{
			Enabled:       enabled,
			OrderLimit:    5,
			OrderWindow:   time.Minute,
			GeneralLimit:  50,
			GeneralWindow: time.Minute,
		},
	}
}

func limiterTestMiddleware(cfg *structs.Config, fl *fakeLimiter) *Middleware {
	logger := gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.ParseLogLevel("error"))))
	return NewMiddleware(cfg, logger, fl)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitAllowsUnderLimit(t *testing.T) {
	fl := &fakeLimiter{count: 3}
	mw := limiterTestMiddleware(limiterTestConfig(true), fl)

	req := httptest.NewRequest(http.MethodPost, "/orders/create", nil)
	req.RemoteAddr = "10.0.0.1:51234"
	rec := httptest.NewRecorder()

	mw.RateLimitMiddleware()(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if fl.calls != 1 {
		t.Fatalf("expected one limiter call, got %d", fl.calls)
	}
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "5" {
		t.Errorf("expected order limit header 5, got %q", got)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "2" {
		t.Errorf("expected remaining 2, got %q", got)
	}
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	fl := &fakeLimiter{count: 6}
	mw := limiterTestMiddleware(limiterTestConfig(true), fl)

	req := httptest.NewRequest(http.MethodPatch, "/orders/status", nil)
	req.RemoteAddr = "10.0.0.1:51234"
	rec := httptest.NewRecorder()

	mw.RateLimitMiddleware()(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Errorf("expected Retry-After 60, got %q", got)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("expected remaining 0, got %q", got)
	}
}

func TestRateLimitFailsOpenOnCacheError(t *testing.T) {
	fl := &fakeLimiter{err: errors.New("connection refused")}
	mw := limiterTestMiddleware(limiterTestConfig(true), fl)

	req := httptest.NewRequest(http.MethodPost, "/orders/create", nil)
	req.RemoteAddr = "10.0.0.1:51234"
	rec := httptest.NewRecorder()

	mw.RateLimitMiddleware()(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on cache failure, got %d", rec.Code)
	}
}

func TestRateLimitSkipsHealthAndFeed(t *testing.T) {
	fl := &fakeLimiter{count: 1000}
	mw := limiterTestMiddleware(limiterTestConfig(true), fl)

	for _, path := range []string{"/", "/health", "/health/dependencies", "/metrics", "/orders/subscribe"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.0.0.1:51234"
		rec := httptest.NewRecorder()

		mw.RateLimitMiddleware()(okHandler()).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected %s to bypass the limiter, got %d", path, rec.Code)
		}
	}
	if fl.calls != 0 {
		t.Errorf("expected no limiter calls for exempt paths, got %d", fl.calls)
	}
}

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	fl := &fakeLimiter{count: 1000}
	mw := limiterTestMiddleware(limiterTestConfig(false), fl)

	req := httptest.NewRequest(http.MethodPost, "/orders/create", nil)
	req.RemoteAddr = "10.0.0.1:51234"
	rec := httptest.NewRecorder()

	mw.RateLimitMiddleware()(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when disabled, got %d", rec.Code)
	}
	if fl.calls != 0 {
		t.Errorf("expected no limiter calls when disabled, got %d", fl.calls)
	}
}

func TestGetClientIPPrefersForwardedHeaders(t *testing.T) {
	mw := limiterTestMiddleware(limiterTestConfig(true), &fakeLimiter{})

	req := httptest.NewRequest(http.MethodGet, "/orders/track/ORD000000001", nil)
	req.RemoteAddr = "10.0.0.1:51234"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")

	if got := mw.getClientIP(req); got != "203.0.113.7" {
		t.Errorf("expected first forwarded ip, got %q", got)
	}

	req.Header.Del("X-Forwarded-For")
	req.Header.Set("X-Real-IP", "203.0.113.8")
	if got := mw.getClientIP(req); got != "203.0.113.8" {
		t.Errorf("expected real ip header, got %q", got)
	}

	req.Header.Del("X-Real-IP")
	if got := mw.getClientIP(req); got != "10.0.0.1" {
		t.Errorf("expected remote addr without port, got %q", got)
	}
}

func TestOrderEndpointsGetStrictLimit(t *testing.T) {
	mw := limiterTestMiddleware(limiterTestConfig(true), &fakeLimiter{})

	limit, window := mw.getRateLimitForEndpoint("/orders/create", http.MethodPost)
	if limit != 5 || window != time.Minute {
		t.Errorf("expected order limit for create, got %d %s", limit, window)
	}

	limit, _ = mw.getRateLimitForEndpoint("/orders/status", http.MethodPatch)
	if limit != 5 {
		t.Errorf("expected order limit for status change, got %d", limit)
	}

	limit, _ = mw.getRateLimitForEndpoint("/orders/track/ORD000000001", http.MethodGet)
	if limit != 50 {
		t.Errorf("expected general limit for tracking, got %d", limit)
	}
}
