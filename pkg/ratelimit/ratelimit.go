// Package ratelimit implements the per-client fixed-window request counter.
//
// A window opens on the first request from a client and lasts Window. Within a
// window at most Limit requests are allowed; the counter resets when a request
// arrives after the window has expired.
package ratelimit

import (
	"context"
	"time"
)

type Config struct {
	Limit  int
	Window time.Duration
}

// Disabled reports whether the limiter lets every request through.
func (c Config) Disabled() bool {
	return c.Limit <= 0 || c.Window <= 0
}

type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

func allowAll() Decision {
	return Decision{Allowed: true, Remaining: -1}
}
