package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(limiter *RateLimiter, rules map[string]RateLimitRule, groupFor func(*gin.Context) string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	r.Use(RateLimit(RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor:     groupFor,
		Limiter:      limiter,
		Rules:        rules,
	}))
	return r
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRateLimitPollingGroupHasOwnBudget(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := newLimitedRouter(limiter,
		map[string]RateLimitRule{
			"DEFAULT": {Rate: 1, Burst: 2},
			"POLLING": {Rate: 5, Burst: 10},
		},
		func(c *gin.Context) string {
			if c.Request.Method == http.MethodGet && c.FullPath() == "/api/v1/portfolios/:id/analysis" {
				return "POLLING"
			}
			return "DEFAULT"
		})
	r.GET("/api/v1/portfolios/:id/analysis", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.POST("/api/v1/portfolios", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	// Three polls exceed the DEFAULT burst but fit POLLING.
	for i := 0; i < 3; i++ {
		if resp := doRequest(r, http.MethodGet, "/api/v1/portfolios/p-1/analysis"); resp.Code != http.StatusOK {
			t.Fatalf("poll %d: got %d", i+1, resp.Code)
		}
	}

	for i := 0; i < 2; i++ {
		if resp := doRequest(r, http.MethodPost, "/api/v1/portfolios"); resp.Code != http.StatusOK {
			t.Fatalf("submit %d: got %d", i+1, resp.Code)
		}
	}
	if resp := doRequest(r, http.MethodPost, "/api/v1/portfolios"); resp.Code != http.StatusTooManyRequests {
		t.Fatalf("third submit should exhaust DEFAULT burst, got %d", resp.Code)
	}
}

func TestRateLimitDenialShape(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := newLimitedRouter(limiter,
		map[string]RateLimitRule{"DEFAULT": {Rate: 1, Burst: 1}},
		nil)
	r.GET("/api/v1/limited", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	if resp := doRequest(r, http.MethodGet, "/api/v1/limited"); resp.Code != http.StatusOK {
		t.Fatalf("first request: got %d", resp.Code)
	}

	resp := doRequest(r, http.MethodGet, "/api/v1/limited")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["error"] != "rate_limited" {
		t.Fatalf("expected error=rate_limited, got %v", payload["error"])
	}
	if _, ok := payload["retryAfterMs"]; !ok {
		t.Fatalf("expected retryAfterMs in body")
	}
}

func TestRateLimiterRefill(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("u|DEFAULT", rule); !ok {
		t.Fatalf("expected first token granted")
	}
	if ok, retry := limiter.Allow("u|DEFAULT", rule); ok || retry <= 0 {
		t.Fatalf("expected denial with positive retry, got ok=%v retry=%v", ok, retry)
	}

	now = now.Add(2 * time.Second)
	if ok, _ := limiter.Allow("u|DEFAULT", rule); !ok {
		t.Fatalf("expected token after refill")
	}
}

func TestRateLimiterIgnoresUnconfiguredRules(t *testing.T) {
	limiter := NewRateLimiter(nil)
	if ok, _ := limiter.Allow("u|X", RateLimitRule{}); !ok {
		t.Fatalf("zero rule should not limit")
	}
}
