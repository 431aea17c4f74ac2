// Package ratelimit provides the per-user sliding window limiter shared by
// the conversation engine and the command middleware.
package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultMaxRequests = 20
	DefaultWindow      = time.Minute
)

// Limiter decides whether a user may be served now. Allow records the
// attempt when it returns true.
type Limiter interface {
	Allow(userID int64) bool
}

// SlidingWindow keeps the timestamps of accepted requests per user and
// admits a new one while fewer than max fall inside the window.
type SlidingWindow struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	now    func() time.Time
	hits   map[int64][]time.Time
}

// Option tweaks a SlidingWindow.
type Option func(*SlidingWindow)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(w *SlidingWindow) { w.now = now }
}

// NewSlidingWindow returns a limiter admitting max requests per window.
// Non-positive values fall back to 20 per minute.
func NewSlidingWindow(max int, window time.Duration, opts ...Option) *SlidingWindow {
	if max <= 0 {
		max = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	w := &SlidingWindow{
		max:    max,
		window: window,
		now:    time.Now,
		hits:   make(map[int64][]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *SlidingWindow) Allow(userID int64) bool {
	now := w.now()
	cutoff := now.Add(-w.window)

	w.mu.Lock()
	defer w.mu.Unlock()

	recent := w.hits[userID][:0]
	for _, ts := range w.hits[userID] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	if len(recent) >= w.max {
		w.hits[userID] = recent
		return false
	}
	w.hits[userID] = append(recent, now)
	return true
}

// Prune drops users whose window is empty and returns how many were removed.
func (w *SlidingWindow) Prune() int {
	cutoff := w.now().Add(-w.window)

	w.mu.Lock()
	defer w.mu.Unlock()

	removed := 0
	for id, hits := range w.hits {
		if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
			delete(w.hits, id)
			removed++
		}
	}
	return removed
}

// Unlimited admits everything.
type Unlimited struct{}

func (Unlimited) Allow(int64) bool { return true }
