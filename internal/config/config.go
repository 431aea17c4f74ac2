// Package config is the bot's full configuration: the shared core sections
// plus storage, hiring, AI, notification, ops and cleanup settings. Values
// come from a YAML file, then an optional .env file, then the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	coreconfig "github.com/codexs/hirebot/core/config"
	coredatabase "github.com/codexs/hirebot/core/database"
)

// Record log backends.
const (
	BackendJSONL    = "jsonl"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// StorageConfig locates session snapshots, the record log and media.
type StorageConfig struct {
	Backend  string `yaml:"backend" envconfig:"STORAGE_BACKEND"`
	DataDir  string `yaml:"data_dir" envconfig:"DATA_DIR"`
	VoiceDir string `yaml:"voice_dir" envconfig:"VOICE_DIR"`
	MediaDir string `yaml:"media_dir" envconfig:"MEDIA_DIR"`
	// SessionRetentionDays bounds how long an idle snapshot is kept.
	SessionRetentionDays int `yaml:"session_retention_days" envconfig:"SESSION_RETENTION_DAYS"`
}

// SessionDir is where per-user snapshots live.
func (s StorageConfig) SessionDir() string {
	return filepath.Join(s.DataDir, "sessions")
}

// Retention returns SessionRetentionDays as a duration.
func (s StorageConfig) Retention() time.Duration {
	return time.Duration(s.SessionRetentionDays) * 24 * time.Hour
}

// HiringConfig toggles the optional pictures of the conversation.
type HiringConfig struct {
	EnableMedia     bool   `yaml:"enable_media" envconfig:"ENABLE_MEDIA"`
	LandingPhotoURL string `yaml:"landing_photo_url" envconfig:"LANDING_PHOTO_URL"`
}

// AIConfig configures the free-text fallback responder.
type AIConfig struct {
	Enabled bool          `yaml:"enabled" envconfig:"AI_ENABLED"`
	APIKey  string        `yaml:"api_key" envconfig:"OPENAI_API_KEY"`
	Model   string        `yaml:"model" envconfig:"OPENAI_MODEL"`
	Timeout time.Duration `yaml:"timeout" envconfig:"AI_TIMEOUT"`
}

// Active reports whether AI replies should be attempted.
func (a AIConfig) Active() bool {
	return a.Enabled && strings.TrimSpace(a.APIKey) != ""
}

// NotifyConfig lists the optional notification sinks. A sink is active when
// its destination is set.
type NotifyConfig struct {
	WebhookURL        string `yaml:"webhook_url" envconfig:"WEBHOOK_NOTIFY_URL"`
	WebhookToken      string `yaml:"webhook_token" envconfig:"WEBHOOK_NOTIFY_TOKEN"`
	ContactWebhookURL string `yaml:"contact_webhook_url" envconfig:"CONTACT_WEBHOOK_URL"`
	SlackToken        string `yaml:"slack_token" envconfig:"SLACK_BOT_TOKEN"`
	SlackChannel      string `yaml:"slack_channel" envconfig:"SLACK_CHANNEL"`
	DiscordToken      string `yaml:"discord_token" envconfig:"DISCORD_BOT_TOKEN"`
	DiscordChannel    string `yaml:"discord_channel" envconfig:"DISCORD_CHANNEL"`
	// QueueSize bounds pending deliveries per remote sink.
	QueueSize  int `yaml:"queue_size" envconfig:"NOTIFY_QUEUE_SIZE"`
	MaxRetries int `yaml:"max_retries" envconfig:"NOTIFY_MAX_RETRIES"`
}

// OpsConfig is the operational HTTP server.
type OpsConfig struct {
	Enabled bool   `yaml:"enabled" envconfig:"OPS_ENABLED"`
	Listen  string `yaml:"listen" envconfig:"OPS_LISTEN"`
}

// CleanupConfig schedules the stale snapshot sweep.
type CleanupConfig struct {
	Schedule string `yaml:"schedule" envconfig:"CLEANUP_SCHEDULE"`
}

// Config is the complete bot configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database coredatabase.Config `yaml:"database"`
	Storage  StorageConfig       `yaml:"storage"`
	Hiring   HiringConfig        `yaml:"hiring"`
	AI       AIConfig            `yaml:"ai"`
	Notify   NotifyConfig        `yaml:"notify"`
	Ops      OpsConfig           `yaml:"ops"`
	Cleanup  CleanupConfig       `yaml:"cleanup"`
}

// CoreConfig exposes the shared core sections.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Config
}

// UsesSQL reports whether the record log lives in a database.
func (c *Config) UsesSQL() bool {
	return c.Storage.Backend == BackendPostgres || c.Storage.Backend == BackendSQLite
}

// Load reads the YAML file at path, overlays variables from an optional
// .env file next to the process and from the environment, and validates the
// result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	var cfg Config
	if err := coreconfig.LoadInto(path, &cfg); err != nil {
		return nil, err
	}
	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates cfg and fills defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return err
	}

	s := &cfg.Storage
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	if s.Backend == "" {
		s.Backend = BackendJSONL
	}
	if s.DataDir == "" {
		s.DataDir = "data"
	}
	if s.VoiceDir == "" {
		s.VoiceDir = filepath.Join(s.DataDir, "voices")
	}
	if s.MediaDir == "" {
		s.MediaDir = "media"
	}
	if s.SessionRetentionDays <= 0 {
		s.SessionRetentionDays = 30
	}

	switch s.Backend {
	case BackendJSONL:
	case BackendSQLite:
		cfg.Database.Driver = coredatabase.DriverSQLite
		if cfg.Database.Path == "" {
			cfg.Database.Path = filepath.Join(s.DataDir, "hirebot.db")
		}
	case BackendPostgres:
		cfg.Database.Driver = coredatabase.DriverPostgres
		if cfg.Database.Host == "" || cfg.Database.Name == "" {
			return fmt.Errorf("database.host and database.name are required for the postgres backend")
		}
		if cfg.Database.Port == "" {
			cfg.Database.Port = "5432"
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
	default:
		return fmt.Errorf("invalid storage.backend %q; allowed: jsonl, postgres, sqlite", s.Backend)
	}

	if cfg.AI.Enabled && strings.TrimSpace(cfg.AI.APIKey) == "" {
		return fmt.Errorf("ai.api_key (OPENAI_API_KEY) is required when ai.enabled is true")
	}

	n := cfg.Notify
	if (n.SlackToken == "") != (n.SlackChannel == "") {
		return fmt.Errorf("notify.slack_token and notify.slack_channel must be set together")
	}
	if (n.DiscordToken == "") != (n.DiscordChannel == "") {
		return fmt.Errorf("notify.discord_token and notify.discord_channel must be set together")
	}
	if cfg.Notify.QueueSize <= 0 {
		cfg.Notify.QueueSize = 256
	}
	if cfg.Notify.MaxRetries <= 0 {
		cfg.Notify.MaxRetries = 3
	}

	if cfg.Ops.Listen == "" {
		cfg.Ops.Listen = ":9090"
	}

	if cfg.Cleanup.Schedule == "" {
		cfg.Cleanup.Schedule = "0 3 * * *"
	}
	if _, err := cron.ParseStandard(cfg.Cleanup.Schedule); err != nil {
		return fmt.Errorf("invalid cleanup.schedule %q: %w", cfg.Cleanup.Schedule, err)
	}
	return nil
}
