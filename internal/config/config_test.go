package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coredatabase "github.com/codexs/hirebot/core/database"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeYAML(t, `
telegram:
  token: abc
  admin_ids: [7]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.CoreConfig().Telegram.Token)
	assert.True(t, cfg.IsAdmin(7))
	assert.Equal(t, BackendJSONL, cfg.Storage.Backend)
	assert.False(t, cfg.UsesSQL())
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, filepath.Join("data", "voices"), cfg.Storage.VoiceDir)
	assert.Equal(t, filepath.Join("data", "sessions"), cfg.Storage.SessionDir())
	assert.Equal(t, 30*24*time.Hour, cfg.Storage.Retention())
	assert.Equal(t, ":9090", cfg.Ops.Listen)
	assert.Equal(t, "0 3 * * *", cfg.Cleanup.Schedule)
	assert.Equal(t, 256, cfg.Notify.QueueSize)
	assert.Equal(t, 3, cfg.Notify.MaxRetries)
	assert.False(t, cfg.AI.Active())
}

func TestLoadSQLiteAndEnv(t *testing.T) {
	path := writeYAML(t, `
telegram:
  token: abc
storage:
  backend: SQLite
  data_dir: /srv/bot
hiring:
  enable_media: true
ai:
  enabled: true
`)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb")
	t.Setenv("SLACK_CHANNEL", "#hiring")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.True(t, cfg.UsesSQL())
	assert.Equal(t, coredatabase.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, filepath.Join("/srv/bot", "hirebot.db"), cfg.Database.Path)
	assert.True(t, cfg.Hiring.EnableMedia)
	assert.True(t, cfg.AI.Active())
	assert.Equal(t, "#hiring", cfg.Notify.SlackChannel)
}

func TestNormalizeRejectsInvalid(t *testing.T) {
	base := func() Config {
		var c Config
		c.Telegram.Token = "t"
		return c
	}
	cases := map[string]func(*Config){
		"core":             func(c *Config) { c.Telegram.Token = "" },
		"backend":          func(c *Config) { c.Storage.Backend = "mongo" },
		"postgres no host": func(c *Config) { c.Storage.Backend = BackendPostgres },
		"ai without key":   func(c *Config) { c.AI.Enabled = true },
		"slack half set":   func(c *Config) { c.Notify.SlackToken = "x" },
		"discord half set": func(c *Config) { c.Notify.DiscordChannel = "1" },
		"bad schedule":     func(c *Config) { c.Cleanup.Schedule = "every tuesday" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base()
			mutate(&cfg)
			assert.Error(t, Normalize(&cfg))
		})
	}
	assert.Error(t, Normalize(nil))
}

func TestNormalizePostgres(t *testing.T) {
	var cfg Config
	cfg.Telegram.Token = "t"
	cfg.Storage.Backend = BackendPostgres
	cfg.Database.Host = "db"
	cfg.Database.Name = "hirebot"

	require.NoError(t, Normalize(&cfg))
	assert.Equal(t, coredatabase.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}
