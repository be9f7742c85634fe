package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// MemoryLimiter keeps window state in process memory. Entries are never
// evicted, which is fine for a single small deployment.
type MemoryLimiter struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

type Option func(*MemoryLimiter)

func WithClock(now func() time.Time) Option {
	return func(l *MemoryLimiter) { l.now = now }
}

func NewMemoryLimiter(cfg Config, opts ...Option) *MemoryLimiter {
	l := &MemoryLimiter{
		cfg:     cfg,
		now:     time.Now,
		windows: make(map[string]*window),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	if l.cfg.Disabled() {
		return allowAll(), nil
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) > l.cfg.Window {
		l.windows[key] = &window{start: now, count: 1}
		return Decision{
			Allowed:   true,
			Limit:     l.cfg.Limit,
			Remaining: l.cfg.Limit - 1,
			ResetAt:   now.Add(l.cfg.Window),
		}, nil
	}

	resetAt := w.start.Add(l.cfg.Window)
	if w.count >= l.cfg.Limit {
		return Decision{Allowed: false, Limit: l.cfg.Limit, Remaining: 0, ResetAt: resetAt}, nil
	}

	w.count++
	return Decision{
		Allowed:   true,
		Limit:     l.cfg.Limit,
		Remaining: l.cfg.Limit - w.count,
		ResetAt:   resetAt,
	}, nil
}

// Len returns the number of tracked clients.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
