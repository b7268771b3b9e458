package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptTracker counts consecutive failed logins per username in Redis.
// Key format: login_attempts:<username>, expiring after the configured
// lockout window so stale streaks age out on their own.
//
// The counters feed logs and metrics only. Lockout configuration is
// accepted but no login is ever refused based on these counts.
type AttemptTracker struct {
	client *redis.Client
	window time.Duration
}

// NewAttemptTracker wraps client with the given counting window. A
// non-positive window defaults to 15 minutes.
func NewAttemptTracker(client *redis.Client, window time.Duration) *AttemptTracker {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &AttemptTracker{client: client, window: window}
}

// RecordFailure increments the failure counter for username and returns the
// new count. The expiry is refreshed on every failure, so the counter
// tracks the most recent streak.
func (t *AttemptTracker) RecordFailure(ctx context.Context, username string) (int64, error) {
	key := t.key(username)
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("record login failure: %w", err)
	}
	if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
		return count, fmt.Errorf("expire login failure key: %w", err)
	}
	return count, nil
}

// Reset clears the counter after a successful login.
func (t *AttemptTracker) Reset(ctx context.Context, username string) error {
	return t.client.Del(ctx, t.key(username)).Err()
}

func (t *AttemptTracker) key(username string) string {
	return "login_attempts:" + username
}
