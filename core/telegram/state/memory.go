package state

import (
	"sync"
	"time"
)

type entry[T any] struct {
	mu      sync.Mutex
	val     *T
	touched time.Time
	// dead is set under mu once Evict removed the entry from the map.
	dead bool
}

// Manager holds one value per user. Calls to Do for the same user run one at
// a time and in the order their locks were taken; different users never
// block each other.
type Manager[T any] struct {
	mu      sync.Mutex
	entries map[int64]*entry[T]
	now     func() time.Time
}

// NewManager constructs an in-memory Manager.
func NewManager[T any]() *Manager[T] {
	return &Manager[T]{entries: make(map[int64]*entry[T]), now: time.Now}
}

func (m *Manager[T]) slot(userID int64) *entry[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[userID]
	if !ok {
		e = &entry[T]{}
		m.entries[userID] = e
	}
	return e
}

// lock returns the user's live entry with its mutex held. An entry evicted
// between lookup and locking is dead, so the lookup is repeated.
func (m *Manager[T]) lock(userID int64) *entry[T] {
	for {
		e := m.slot(userID)
		e.mu.Lock()
		if !e.dead {
			return e
		}
		e.mu.Unlock()
	}
}

// Do runs fn while holding the user's lock. fn receives the stored value, or
// nil when the user has none, and returns the value to keep. Returning nil
// keeps nothing.
func (m *Manager[T]) Do(userID int64, fn func(cur *T) (*T, error)) error {
	e := m.lock(userID)
	defer e.mu.Unlock()

	next, err := fn(e.val)
	e.val = next
	e.touched = m.now()
	return err
}

// Peek returns the user's value without taking the user's lock. The value
// must be treated as read-only.
func (m *Manager[T]) Peek(userID int64) (*T, bool) {
	m.mu.Lock()
	e, ok := m.entries[userID]
	m.mu.Unlock()
	if !ok {
		return nil, false
	}
	if !e.mu.TryLock() {
		return nil, false
	}
	defer e.mu.Unlock()
	if e.dead {
		return nil, false
	}
	return e.val, e.val != nil
}

// Len reports how many users hold a value.
func (m *Manager[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.entries {
		if e.mu.TryLock() {
			if e.val != nil {
				n++
			}
			e.mu.Unlock()
		} else {
			n++
		}
	}
	return n
}

// Evict drops values untouched for longer than idle. Entries in use are
// skipped. It returns the number of evicted users.
func (m *Manager[T]) Evict(idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.entries {
		if !e.mu.TryLock() {
			continue
		}
		if e.touched.Before(cutoff) {
			if e.val != nil {
				n++
			}
			e.dead = true
			delete(m.entries, id)
		}
		e.mu.Unlock()
	}
	return n
}
