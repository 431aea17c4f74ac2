package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds the bot identity and how updates reach it.
type TelegramConfig struct {
	Token    string  `yaml:"token" envconfig:"BOT_TOKEN"`
	AdminIDs []int64 `yaml:"admin_ids" envconfig:"ADMIN_USER_IDS"`
	// GroupChatID is the staff group that receives announcements; 0 disables it.
	GroupChatID int64  `yaml:"group_chat_id" envconfig:"GROUP_CHAT_ID"`
	RunMode     string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds is the getUpdates timeout; 0 means 10s.
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
	// DropPending discards updates queued while the bot was offline.
	DropPending bool `yaml:"drop_pending" envconfig:"TELEGRAM_DROP_PENDING"`
}

// WebhookConfig is used when run_mode is webhook.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
	// SecretToken is echoed by Telegram in X-Telegram-Bot-Api-Secret-Token.
	SecretToken string `yaml:"secret_token" envconfig:"WEBHOOK_SECRET_TOKEN"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Stacks      string `yaml:"stacks"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	ErrorsFile  string `yaml:"errors_file"`
	MaxSizeMB   int    `yaml:"max_size_mb"`
	MaxBackups  int    `yaml:"max_backups"`
	MaxAgeDays  int    `yaml:"max_age_days"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

// Update kinds accepted by rate_limit.exclude_updates.
const (
	UpdateText     = "text"
	UpdateVoice    = "voice"
	UpdateContact  = "contact"
	UpdateLocation = "location"
	UpdateCommand  = "command"
)

// RateLimitConfig holds the per-user sliding window settings. ExcludeUpdates
// lists update kinds that never count against the window.
type RateLimitConfig struct {
	MaxRequests    int      `yaml:"max_requests" envconfig:"RATE_LIMIT_MAX_REQUESTS"`
	WindowSeconds  int      `yaml:"window_seconds" envconfig:"RATE_LIMIT_WINDOW_SECONDS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// Excludes reports whether kind bypasses the limiter.
func (r RateLimitConfig) Excludes(kind string) bool {
	return slices.Contains(r.ExcludeUpdates, kind)
}

// Window returns the configured window, defaulting to one minute.
func (r RateLimitConfig) Window() time.Duration {
	if r.WindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(r.WindowSeconds) * time.Second
}

// Config aggregates the configuration that belongs to the reusable core.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// IsAdmin reports whether userID is listed in telegram.admin_ids.
func (c *Config) IsAdmin(userID int64) bool {
	return c != nil && slices.Contains(c.Telegram.AdminIDs, userID)
}

// LoadInto reads a YAML file into dst and overlays environment variables.
// dst is any struct carrying yaml and envconfig tags, usually one that
// embeds Config.
func LoadInto(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := envconfig.Process("", dst); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	return nil
}

// Load reads the core configuration alone.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := LoadInto(path, &cfg); err != nil {
		return nil, err
	}
	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates cfg in place and fills defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}
	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		return errors.New("config: telegram.token (BOT_TOKEN) is required")
	}
	if err := normalizeRunMode(cfg); err != nil {
		return err
	}
	return normalizeRateLimit(&cfg.RateLimit)
}

var runModeAliases = map[string]string{
	"":              RunModeLongpoll,
	"polling":       RunModeLongpoll,
	RunModeLongpoll: RunModeLongpoll,
	RunModeWebhook:  RunModeWebhook,
}

func normalizeRunMode(cfg *Config) error {
	mode, ok := runModeAliases[strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))]
	if !ok {
		return fmt.Errorf("config: telegram.run_mode %q is not one of webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = mode

	if mode == RunModeLongpoll {
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return errors.New("config: telegram.longpoll_timeout_seconds must not be negative")
		}
		return nil
	}

	var missing []string
	if strings.TrimSpace(cfg.Webhook.URL) == "" {
		missing = append(missing, "webhook.url")
	}
	if strings.TrimSpace(cfg.Webhook.Listen) == "" {
		missing = append(missing, "webhook.listen")
	}
	if cfg.Webhook.Port <= 0 {
		missing = append(missing, "webhook.port")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: webhook mode needs %s", strings.Join(missing, ", "))
	}
	return nil
}

var updateKinds = []string{UpdateText, UpdateVoice, UpdateContact, UpdateLocation, UpdateCommand}

func normalizeRateLimit(rl *RateLimitConfig) error {
	if rl.MaxRequests <= 0 {
		rl.MaxRequests = 20
	}
	if rl.WindowSeconds <= 0 {
		rl.WindowSeconds = 60
	}
	for i, raw := range rl.ExcludeUpdates {
		kind := strings.ToLower(strings.TrimSpace(raw))
		if !slices.Contains(updateKinds, kind) {
			return fmt.Errorf("config: rate_limit.exclude_updates has %q; known kinds: %s", raw, strings.Join(updateKinds, ", "))
		}
		rl.ExcludeUpdates[i] = kind
	}
	return nil
}
