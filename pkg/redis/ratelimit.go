package redis

import (
	"context"
	"errors"
	"time"
)

// ErrRateLimitExceeded is returned when a key is over its request budget
var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// RateLimitResult contains the outcome of a rate limit check
type RateLimitResult struct {
	Allowed   bool
	Remaining int64
	RetryIn   time.Duration
}

// RateLimiter enforces a fixed window request budget per key
type RateLimiter struct {
	client    *Client
	keyPrefix string
}

func NewRateLimiter(client *Client, keyPrefix string) *RateLimiter {
	if keyPrefix == "" {
		keyPrefix = "ratelimit:"
	}
	return &RateLimiter{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Allow counts a request against the key's current window and reports
// whether it fits under the limit. The first hit in a window sets the
// window's expiry.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error) {
	rateKey := r.keyPrefix + key

	count, err := r.client.Incr(ctx, rateKey)
	if err != nil {
		return nil, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, rateKey, window); err != nil {
			return nil, err
		}
	}

	if count <= limit {
		return &RateLimitResult{
			Allowed:   true,
			Remaining: limit - count,
		}, nil
	}

	ttl, err := r.client.TTL(ctx, rateKey)
	if err != nil {
		return nil, err
	}
	if ttl < 0 {
		ttl = window
	}
	return &RateLimitResult{
		Allowed: false,
		RetryIn: ttl,
	}, nil
}

// Reset clears the current window for a key
func (r *RateLimiter) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.keyPrefix+key)
}
