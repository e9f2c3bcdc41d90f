// Package cache holds Redis-backed helpers.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts failed logins per key inside a fixed window.
type LoginLimiter interface {
	// Allowed reports whether another attempt may be made for key.
	Allowed(ctx context.Context, key string) (bool, error)
	// Fail records a failed attempt.
	Fail(ctx context.Context, key string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, key string) error
}

const loginKeyPrefix = "login:fail:"

// RedisLoginLimiter stores counters as expiring Redis integers.
type RedisLoginLimiter struct {
	rdb         redis.Cmdable
	maxAttempts int
	window      time.Duration
}

// NewRedisLoginLimiter creates a limiter that locks a key for window once
// maxAttempts failures have been recorded.
func NewRedisLoginLimiter(rdb redis.Cmdable, maxAttempts int, window time.Duration) *RedisLoginLimiter {
	return &RedisLoginLimiter{rdb: rdb, maxAttempts: maxAttempts, window: window}
}

func (l *RedisLoginLimiter) key(k string) string {
	return loginKeyPrefix + strings.ToLower(strings.TrimSpace(k))
}

func (l *RedisLoginLimiter) Allowed(ctx context.Context, key string) (bool, error) {
	n, err := l.rdb.Get(ctx, l.key(key)).Int()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("read login counter: %w", err)
	}
	return n < l.maxAttempts, nil
}

func (l *RedisLoginLimiter) Fail(ctx context.Context, key string) error {
	k := l.key(key)
	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("increment login counter: %w", err)
	}
	// The window starts at the first failure.
	if n == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return fmt.Errorf("expire login counter: %w", err)
		}
	}
	return nil
}

func (l *RedisLoginLimiter) Reset(ctx context.Context, key string) error {
	return l.rdb.Del(ctx, l.key(key)).Err()
}

// NoopLoginLimiter never throttles. Used when Redis is not configured.
type NoopLoginLimiter struct{}

func (NoopLoginLimiter) Allowed(context.Context, string) (bool, error) { return true, nil }
func (NoopLoginLimiter) Fail(context.Context, string) error            { return nil }
func (NoopLoginLimiter) Reset(context.Context, string) error           { return nil }

// NewRedisClient opens a client and verifies it with PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}
