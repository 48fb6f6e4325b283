package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultLockout     = 15 * time.Minute
)

// LoginThrottle counts failed logins per username.
// Key format: login:fail:<username>
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	lockout     time.Duration
}

// NewLoginThrottle blocks a username after maxAttempts failures until lockout
// has passed since the last one.
func NewLoginThrottle(client *redis.Client, maxAttempts int, lockout time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if lockout <= 0 {
		lockout = defaultLockout
	}
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, lockout: lockout}
}

// Allow reports whether username may attempt a login.
func (t *LoginThrottle) Allow(ctx context.Context, username string) (bool, error) {
	n, err := t.client.Get(ctx, failKey(username)).Int()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("login throttle check: %w", err)
	}
	return n < t.maxAttempts, nil
}

// Fail records a failed attempt and restarts the lockout window.
func (t *LoginThrottle) Fail(ctx context.Context, username string) error {
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, failKey(username))
	pipe.Expire(ctx, failKey(username), t.lockout)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("login throttle fail: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, username string) error {
	return t.client.Del(ctx, failKey(username)).Err()
}

func failKey(username string) string {
	return fmt.Sprintf("login:fail:%s", username)
}
