package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counts actions per client identifier in fixed redis windows.
// Keys look like rl:registration:203.0.113.9:483291 where the trailing part
// is the window index; expiry at 2x the window reaps old counters.
type Limiter struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
}

type Config struct {
	Redis     *redis.Client
	KeyPrefix string        // e.g. "rl:"
	Limit     int           // attempts allowed per window
	Window    time.Duration // e.g. 60m
}

func New(cfg Config) *Limiter {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rl:"
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Hour
	}
	return &Limiter{
		rdb:    cfg.Redis,
		prefix: cfg.KeyPrefix,
		limit:  cfg.Limit,
		window: cfg.Window,
	}
}

// Allow increments the counter for (identifier, action) in the current window
// and reports whether the attempt is within the limit. A denied attempt still
// consumes a slot. Errors are returned to the caller, which decides the
// fail-open policy.
func (l *Limiter) Allow(ctx context.Context, identifier, action string) (bool, error) {
	if l.limit <= 0 || l.rdb == nil {
		// no limit configured or redis missing (dev): allow
		return true, nil
	}

	windowIdx := time.Now().UnixNano() / int64(l.window)
	key := l.prefix + action + ":" + identifier + ":" + strconv.FormatInt(windowIdx, 10)

	pipe := l.rdb.Pipeline()
	cnt := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window*2)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return cnt.Val() <= int64(l.limit), nil
}
