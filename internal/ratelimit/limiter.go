package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript counts a hit and starts the window on the first one.
// Returns the hit count and the window's remaining lifetime in milliseconds.
var fixedWindowScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
    ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// Decision is the outcome of one rate limit check
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter is a fixed window request counter shared by every instance through Redis
type Limiter struct {
	client  redis.Scripter
	limit   int
	window  time.Duration
	options Options
}

// Options holds the optional Limiter settings
type Options struct {
	Prefix string
}

type Option func(*Options)

// WithPrefix sets the Redis key prefix for counters
func WithPrefix(prefix string) Option {
	return func(o *Options) {
		o.Prefix = prefix
	}
}

// NewLimiter allows limit requests per key in each window
func NewLimiter(client redis.Scripter, limit int, window time.Duration, opts ...Option) (*Limiter, error) {
	if limit <= 0 {
		return nil, errors.New("rate limit must be positive")
	}
	if window < time.Millisecond {
		return nil, errors.New("rate limit window must be at least one millisecond")
	}

	options := Options{Prefix: "ratelimit:"}
	for _, opt := range opts {
		opt(&options)
	}
	return &Limiter{client: client, limit: limit, window: window, options: options}, nil
}

// Allow records a hit for key and reports whether it is within the limit
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	const op = "ratelimit.Limiter.Allow"

	res, err := fixedWindowScript.Run(ctx, l.client, []string{l.options.Prefix + key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(res) != 2 {
		return Decision{}, fmt.Errorf("%s: unexpected script reply %v", op, res)
	}

	count, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond
	if count > l.limit {
		return Decision{Allowed: false, Remaining: 0, RetryAfter: ttl}, nil
	}
	return Decision{Allowed: true, Remaining: l.limit - count}, nil
}
