package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// LoginThrottle counts failed login attempts per email in Redis.
// Key format: login:attempts:<lowercased email>, expiring after the window.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
// Non-positive maxAttempts or window fall back to the defaults.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, window: window}
}

// TooManyAttempts reports whether the email has exhausted its attempt budget.
func (t *LoginThrottle) TooManyAttempts(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= int64(t.maxAttempts), nil
}

// RecordFailure increments the failure counter and refreshes its expiry.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	key := t.key(email)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *LoginThrottle) key(email string) string {
	return "login:attempts:" + strings.ToLower(email)
}
