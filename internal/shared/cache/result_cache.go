package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const resultTTL = 15 * time.Minute

// ErrMiss is returned when no cached result exists for a portfolio.
var ErrMiss = errors.New("cache miss")

// ResultCache stores completed analysis reports keyed by portfolio ID.
// A nil *ResultCache is a no-op so callers don't have to branch on REDIS_URL.
type ResultCache struct {
	client *redis.Client
}

// New connects to Redis at redisURL, or returns nil when redisURL is empty.
func New(redisURL string) (*ResultCache, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &ResultCache{client: redis.NewClient(opts)}, nil
}

func (c *ResultCache) SetResult(ctx context.Context, portfolioID string, result json.RawMessage) error {
	if c == nil {
		return nil
	}
	return c.client.Set(ctx, resultKey(portfolioID), []byte(result), resultTTL).Err()
}

func (c *ResultCache) GetResult(ctx context.Context, portfolioID string) (json.RawMessage, error) {
	if c == nil {
		return nil, ErrMiss
	}
	data, err := c.client.Get(ctx, resultKey(portfolioID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	return json.RawMessage(data), nil
}

func (c *ResultCache) Invalidate(ctx context.Context, portfolioID string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, resultKey(portfolioID)).Err()
}

func resultKey(portfolioID string) string {
	return "analysis:result:" + portfolioID
}
