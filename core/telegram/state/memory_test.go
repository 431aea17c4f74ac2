package state

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoStoresValue(t *testing.T) {
	m := NewManager[int]()
	require.NoError(t, m.Do(1, func(cur *int) (*int, error) {
		assert.Nil(t, cur)
		v := 5
		return &v, nil
	}))
	v, ok := m.Peek(1)
	require.True(t, ok)
	assert.Equal(t, 5, *v)
	assert.Equal(t, 1, m.Len())

	boom := errors.New("boom")
	err := m.Do(1, func(cur *int) (*int, error) { return cur, boom })
	assert.ErrorIs(t, err, boom)

	require.NoError(t, m.Do(1, func(*int) (*int, error) { return nil, nil }))
	_, ok = m.Peek(1)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestDoSerializesPerUser(t *testing.T) {
	m := NewManager[int]()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Do(7, func(cur *int) (*int, error) {
				n := 0
				if cur != nil {
					n = *cur
				}
				n++
				return &n, nil
			})
		}()
	}
	wg.Wait()
	v, ok := m.Peek(7)
	require.True(t, ok)
	assert.Equal(t, 100, *v)
}

func TestEvict(t *testing.T) {
	m := NewManager[string]()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	s := "a"
	_ = m.Do(1, func(*string) (*string, error) { return &s, nil })
	now = now.Add(2 * time.Hour)
	_ = m.Do(2, func(*string) (*string, error) { return &s, nil })

	assert.Equal(t, 1, m.Evict(time.Hour))
	_, ok := m.Peek(1)
	assert.False(t, ok)
	_, ok = m.Peek(2)
	assert.True(t, ok)
}

func TestEvictedEntryIsNotReused(t *testing.T) {
	m := NewManager[int]()
	// A turn that looked up its entry right before an eviction holds stale.
	stale := m.slot(1)
	assert.Equal(t, 0, m.Evict(24*time.Hour))
	assert.True(t, stale.dead)

	require.NoError(t, m.Do(1, func(cur *int) (*int, error) {
		assert.Nil(t, cur)
		v := 1
		return &v, nil
	}))
	live := m.lock(1)
	live.mu.Unlock()
	assert.NotSame(t, stale, live)
	assert.False(t, live.dead)
	assert.Same(t, live, m.slot(1))

	v, ok := m.Peek(1)
	require.True(t, ok)
	assert.Equal(t, 1, *v)
}
