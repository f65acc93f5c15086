package ratelimit

import (
	"context"
	"time"
)

// Rule caps the number of requests per key inside a sliding window.
type Rule struct {
	Requests int
	Window   time.Duration
}

func (r Rule) Enabled() bool {
	return r.Requests > 0 && r.Window > 0
}

type RateLimiter interface {
	// Allow records one request for key and reports whether it fits the rule.
	Allow(ctx context.Context, key string, rule Rule) (bool, error)
	Remaining(ctx context.Context, key string, rule Rule) (int64, error)
	Reset(ctx context.Context, key string) error
}
