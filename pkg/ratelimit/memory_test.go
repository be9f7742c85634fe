package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryLimiter_RejectsAfterLimit(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewMemoryLimiter(Config{Limit: 3, Window: time.Minute}, WithClock(clock.Now))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d", i+1)
		assert.Equal(t, 3-(i+1), d.Remaining)
	}

	d, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	other, err := l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestMemoryLimiter_ResetsAfterWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewMemoryLimiter(Config{Limit: 1, Window: 10 * time.Second}, WithClock(clock.Now))
	ctx := context.Background()

	d, _ := l.Allow(ctx, "c")
	assert.True(t, d.Allowed)
	d, _ = l.Allow(ctx, "c")
	assert.False(t, d.Allowed)

	// Exactly at the boundary the window is still open.
	clock.Advance(10 * time.Second)
	d, _ = l.Allow(ctx, "c")
	assert.False(t, d.Allowed)

	clock.Advance(time.Millisecond)
	d, _ = l.Allow(ctx, "c")
	assert.True(t, d.Allowed)
}

func TestMemoryLimiter_Disabled(t *testing.T) {
	for _, cfg := range []Config{{Limit: 0, Window: time.Minute}, {Limit: 5, Window: 0}, {Limit: -1, Window: -1}} {
		l := NewMemoryLimiter(cfg)
		for i := 0; i < 50; i++ {
			d, err := l.Allow(context.Background(), "c")
			require.NoError(t, err)
			require.True(t, d.Allowed)
		}
		assert.Equal(t, 0, l.Len())
	}
}

func TestMemoryLimiter_ConcurrentIncrementsAreNotLost(t *testing.T) {
	const limit = 100
	l := NewMemoryLimiter(Config{Limit: limit, Window: time.Hour})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 4*limit; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := l.Allow(context.Background(), "same-client")
			if err == nil && d.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, allowed)
}

func BenchmarkMemoryLimiter_Allow(b *testing.B) {
	l := NewMemoryLimiter(Config{Limit: 1 << 30, Window: time.Hour})
	ctx := context.Background()
	keys := make([]string, 64)
	for i := range keys {
		keys[i] = fmt.Sprintf("10.0.0.%d", i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = l.Allow(ctx, keys[i%len(keys)])
	}
}
