package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitRule is a token bucket: Rate tokens per second refill, Burst capacity.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

// RateLimitConfig groups requests and applies a rule per group. Requests whose
// group has no rule pass through unlimited.
type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	Limiter      *RateLimiter
}

// RateLimiter tracks one token bucket per principal+group key.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	now     func() time.Time
}

type rateBucket struct {
	level    float64
	refilled time.Time
}

// take refills the bucket up to now and attempts to spend one token. On
// denial it reports how long until a token becomes available.
func (b *rateBucket) take(rule RateLimitRule, now time.Time) (bool, time.Duration) {
	if elapsed := now.Sub(b.refilled).Seconds(); elapsed > 0 {
		b.level = math.Min(float64(rule.Burst), b.level+elapsed*rule.Rate)
		b.refilled = now
	}
	if b.level >= 1 {
		b.level--
		return true, 0
	}
	waitSec := (1 - b.level) / rule.Rate
	if waitSec < 0 {
		waitSec = 0
	}
	return false, time.Duration(math.Ceil(waitSec*1000)) * time.Millisecond
}

// NewRateLimiter builds a limiter; now is injectable for tests and defaults
// to time.Now.
func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{buckets: make(map[string]*rateBucket), now: now}
}

// Allow spends a token from the bucket for key under rule. Zero or negative
// rates disable limiting for that rule.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = &rateBucket{level: float64(rule.Burst), refilled: now}
		l.buckets[key] = bucket
	}
	return bucket.take(rule, now)
}

// RateLimit limits requests per authenticated user, falling back to client IP
// for anonymous traffic. Denied requests get a 429 with Retry-After.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = "DEFAULT"
	}
	return func(c *gin.Context) {
		group := cfg.DefaultGroup
		if cfg.GroupFor != nil {
			if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
				group = g
			}
		}
		rule, limited := cfg.Rules[group]
		if !limited {
			c.Next()
			return
		}

		principal := strings.TrimSpace(UserIDFromContext(c))
		if principal == "" {
			principal = strings.TrimSpace(c.ClientIP())
		}

		ok, retryAfter := cfg.Limiter.Allow(principal+"|"+group, rule)
		if ok {
			c.Next()
			return
		}

		retryMs := int(retryAfter / time.Millisecond)
		if retryMs <= 0 {
			retryMs = 1000
		}
		c.Header("Retry-After", strconv.Itoa(ceilSeconds(retryMs)))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":        "rate_limited",
			"retryAfterMs": retryMs,
		})
		c.Abort()
	}
}

func ceilSeconds(ms int) int {
	secs := int(math.Ceil(float64(ms) / 1000.0))
	if secs <= 0 {
		secs = 1
	}
	return secs
}
