package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestSlidingWindowLimitsPerUser(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	l := NewSlidingWindow(20, time.Minute, WithClock(clock.Now))

	for i := 0; i < 20; i++ {
		require.True(t, l.Allow(1), "request %d", i+1)
		clock.Advance(time.Second)
	}
	assert.False(t, l.Allow(1), "21st request inside the window")
	assert.True(t, l.Allow(2), "other users are independent")

	clock.Advance(40 * time.Second)
	assert.True(t, l.Allow(1), "oldest hit slid out of the window")
	assert.False(t, l.Allow(1))
}

func TestRejectedRequestsAreNotRecorded(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	l := NewSlidingWindow(2, time.Minute, WithClock(clock.Now))

	assert.True(t, l.Allow(5))
	assert.True(t, l.Allow(5))
	for i := 0; i < 10; i++ {
		assert.False(t, l.Allow(5))
	}
	clock.Advance(time.Minute + time.Millisecond)
	assert.True(t, l.Allow(5))
}

func TestDefaultsAndPrune(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	l := NewSlidingWindow(0, 0, WithClock(clock.Now))
	assert.Equal(t, DefaultMaxRequests, l.max)
	assert.Equal(t, DefaultWindow, l.window)

	l.Allow(1)
	l.Allow(2)
	clock.Advance(2 * time.Minute)
	l.Allow(3)
	assert.Equal(t, 2, l.Prune())
}

func TestUnlimited(t *testing.T) {
	var l Limiter = Unlimited{}
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow(1))
	}
}
