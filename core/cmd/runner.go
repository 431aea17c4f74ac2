package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	coreconfig "github.com/codexs/hirebot/core/config"
	"github.com/codexs/hirebot/core/logger"
)

// ConfigCarrier exposes access to the embedded core configuration.
type ConfigCarrier interface {
	CoreConfig() *coreconfig.Config
}

// Options describe how to load configuration and run a long-lived service.
type Options struct {
	// ConfigPath wins over the environment variable, e.g. a --config flag.
	ConfigPath        string
	ConfigEnvVar      string
	DefaultConfigPath string

	LoadConfig func(path string) (ConfigCarrier, error)
	// Serve blocks until ctx is cancelled or the service fails.
	Serve func(ctx context.Context, cfg ConfigCarrier) error

	ShutdownLogger func() error
}

// ResolveConfigPath picks the explicit path, then $envVar, then def.
func ResolveConfigPath(explicit, envVar, def string) (string, error) {
	if envVar == "" {
		envVar = "CONFIG_PATH"
	}
	for _, p := range []string{explicit, os.Getenv(envVar), def} {
		if p != "" {
			return p, nil
		}
	}
	return "", fmt.Errorf("cmd: config path not provided via flag, %s or default", envVar)
}

// Load resolves the config path and loads it.
func Load(opts Options) (ConfigCarrier, error) {
	if opts.LoadConfig == nil {
		return nil, fmt.Errorf("cmd: LoadConfig is required")
	}
	path, err := ResolveConfigPath(opts.ConfigPath, opts.ConfigEnvVar, opts.DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	log.Printf("loading config: %s", path)
	cfg, err := opts.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("cmd: failed to load config: %w", err)
	}
	if cfg == nil || cfg.CoreConfig() == nil {
		return nil, fmt.Errorf("cmd: loaded config is missing core configuration")
	}
	return cfg, nil
}

// Run loads configuration and serves until SIGINT or SIGTERM. A signal
// triggered shutdown is not an error.
func Run(ctx context.Context, opts Options) error {
	if opts.Serve == nil {
		return fmt.Errorf("cmd: Serve is required")
	}
	cfg, err := Load(opts)
	if err != nil {
		return err
	}

	shutdownLogger := opts.ShutdownLogger
	if shutdownLogger == nil {
		shutdownLogger = logger.Shutdown
	}
	defer func() {
		if err := shutdownLogger(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	startedAt := time.Now()
	err = opts.Serve(ctx, cfg)
	logger.Info(context.WithoutCancel(ctx), "app", "shutdown",
		slog.String("status", logger.Status(err)),
		slog.Duration("uptime", logger.Took(startedAt)),
	)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("cmd: serve: %w", err)
	}
	return nil
}
