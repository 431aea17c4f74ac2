package main

import (
	"bytes"
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

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hirebot dev (commit local)")
}

func writeConfig(t *testing.T, dataDir, backend string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "telegram:\n  token: \"1:x\"\nstorage:\n  backend: " + backend + "\n  data_dir: " + dataDir + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestCleanupCommand(t *testing.T) {
	data := t.TempDir()
	sessions, err := storage.NewFileSessionStore(filepath.Join(data, "sessions"))
	require.NoError(t, err)
	s := session.New(3)
	s.Language = i18n.EN
	require.NoError(t, sessions.Save(context.Background(), s))
	old := time.Now().Add(-3 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(data, "sessions", "session_3.json"), old, old))

	out, err := run(t, "cleanup", "--config", writeConfig(t, data, "jsonl"), "--days", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "older than 2 days")
	_, ok := sessions.Load(context.Background(), 3)
	assert.False(t, ok)
}

func TestMigrateNeedsSQLBackend(t *testing.T) {
	_, err := run(t, "migrate", "--config", writeConfig(t, t.TempDir(), "jsonl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no migrations")
}

func TestMissingConfig(t *testing.T) {
	_, err := run(t, "cleanup", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
