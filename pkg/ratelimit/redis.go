package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "meapi:ratelimit:"

// RedisLimiter shares window state between server instances. The key lives
// for one window from the first request (INCR + EXPIRE).
type RedisLimiter struct {
	rdb    *redis.Client
	cfg    Config
	prefix string
}

func NewRedisLimiter(rdb *redis.Client, cfg Config) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, cfg: cfg, prefix: defaultRedisPrefix}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.cfg.Disabled() {
		return allowAll(), nil
	}

	k := l.prefix + key
	count, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("incr rate limit key: %w", err)
	}

	ttl, err := l.rdb.PTTL(ctx, k).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("read rate limit ttl: %w", err)
	}
	// A key without expiry means this request opened the window.
	if count == 1 || ttl < 0 {
		if err := l.rdb.Expire(ctx, k, l.cfg.Window).Err(); err != nil {
			return Decision{}, fmt.Errorf("expire rate limit key: %w", err)
		}
		ttl = l.cfg.Window
	}

	d := Decision{
		Limit:   l.cfg.Limit,
		ResetAt: time.Now().Add(ttl),
	}
	if count > int64(l.cfg.Limit) {
		return d, nil
	}
	d.Allowed = true
	d.Remaining = l.cfg.Limit - int(count)
	return d, nil
}
