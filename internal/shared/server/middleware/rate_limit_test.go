package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newRateLimitedRouter(limiter *RateLimiter, user *string) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(userIDKey, *user)
		c.Next()
	})
	r.POST("/api/v1/rephrase", RateLimit(limiter), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimitPerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(RateLimitRule{Rate: 1, Burst: 2}, func() time.Time { return now })
	user := "user-a"
	r := newRateLimitedRouter(limiter, &user)

	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/rephrase", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/rephrase", nil))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("request 3 expected 429, got %d", resp.Code)
	}
	if got := resp.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("expected Retry-After 1, got %q", got)
	}

	user = "user-b"
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/rephrase", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("other user expected 200, got %d", resp.Code)
	}
}

func TestRateLimitRefills(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(RateLimitRule{Rate: 1, Burst: 1}, func() time.Time { return now })

	if ok, _ := limiter.Allow("u"); !ok {
		t.Fatalf("first call should pass")
	}
	ok, wait := limiter.Allow("u")
	if ok {
		t.Fatalf("second call should be limited")
	}
	if wait != time.Second {
		t.Fatalf("expected 1s wait, got %v", wait)
	}

	now = now.Add(time.Second)
	if ok, _ := limiter.Allow("u"); !ok {
		t.Fatalf("call after refill should pass")
	}
}

func TestRateLimitDisabledRule(t *testing.T) {
	limiter := NewRateLimiter(RateLimitRule{}, nil)
	for i := 0; i < 5; i++ {
		if ok, _ := limiter.Allow("u"); !ok {
			t.Fatalf("disabled limiter should allow")
		}
	}
}
