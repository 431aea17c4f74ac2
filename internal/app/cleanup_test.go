package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexs/hirebot/internal/i18n"
	"github.com/codexs/hirebot/internal/session"
	"github.com/codexs/hirebot/internal/storage"
)

func TestSweep(t *testing.T) {
	dir := t.TempDir()
	sessions, err := storage.NewFileSessionStore(dir)
	require.NoError(t, err)
	ctx := context.Background()
	for _, uid := range []int64{1, 2} {
		s := session.New(uid)
		s.Language = i18n.EN
		require.NoError(t, sessions.Save(ctx, s))
	}
	old := time.Now().Add(-45 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "session_1.json"), old, old))

	var idle time.Duration
	pruned := 0
	sw := &Sweeper{
		Sessions:  sessions,
		Retention: 30 * 24 * time.Hour,
		Evict:     func(d time.Duration) int { idle = d; return 1 },
		Prune:     []func() int{func() int { pruned++; return 2 }, func() int { pruned++; return 0 }},
	}
	sw.Sweep(ctx)

	_, ok := sessions.Load(ctx, 1)
	assert.False(t, ok)
	_, ok = sessions.Load(ctx, 2)
	assert.True(t, ok)
	assert.Equal(t, idleEviction, idle)
	assert.Equal(t, 2, pruned)
}

func TestRunScheduleRejectsBadSpec(t *testing.T) {
	sw := &Sweeper{}
	assert.Error(t, sw.RunSchedule(context.Background(), "not a schedule"))
}

func TestRunScheduleStopsWithContext(t *testing.T) {
	dir := t.TempDir()
	sessions, err := storage.NewFileSessionStore(dir)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- (&Sweeper{Sessions: sessions}).RunSchedule(ctx, "@every 1h") }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("schedule did not stop")
	}
}
