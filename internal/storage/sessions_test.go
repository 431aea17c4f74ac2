package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
	"github.com/codexs/hirebot/internal/session"
)

func TestFileSessionStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileSessionStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, ok := store.Load(ctx, 5)
	assert.False(t, ok)

	s := session.New(5)
	s.Language = i18n.FA
	s.StartHiring()
	s.SetAnswer(hiring.KeyFullName, ptr("Sara"))
	s.SetAnswer(hiring.KeyEmail, nil)
	s.QuestionIndex = 2
	require.NoError(t, store.Save(ctx, s))
	assert.False(t, s.UpdatedAt.IsZero())

	got, ok := store.Load(ctx, 5)
	require.True(t, ok)
	assert.Equal(t, i18n.FA, got.Language)
	assert.Equal(t, s.Flow, got.Flow)
	assert.Equal(t, 2, got.QuestionIndex)
	assert.Equal(t, 1, got.AnsweredCount())
	assert.Contains(t, got.Answers, hiring.KeyEmail)

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	require.NoError(t, store.Delete(ctx, 5))
	require.NoError(t, store.Delete(ctx, 5))
	_, ok = store.Load(ctx, 5)
	assert.False(t, ok)
}

func TestFileSessionStoreMalformedSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileSessionStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session_9.json"), []byte("{not json"), 0o644))

	_, ok := store.Load(context.Background(), 9)
	assert.False(t, ok)
}

func TestFileSessionStoreListAndCleanup(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileSessionStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	for _, uid := range []int64{1, 2, 3} {
		s := session.New(uid)
		s.Language = i18n.EN
		require.NoError(t, store.Save(ctx, s))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	old := time.Now().Add(-10 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "session_2.json"), old, old))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, int64(2), infos[2].UserID)

	removed, err := store.CleanupOlderThan(ctx, 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	infos, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 2)
}

func TestNewFileSessionStoreRejectsEmptyDir(t *testing.T) {
	_, err := NewFileSessionStore(" ")
	assert.Error(t, err)
}

func TestParseSessionName(t *testing.T) {
	id, ok := parseSessionName("session_42.json")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, name := range []string{"session_x.json", "session_1-abc.tmp", "other_1.json"} {
		_, ok := parseSessionName(name)
		assert.False(t, ok, name)
	}
}
