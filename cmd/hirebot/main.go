// Command hirebot runs the Codexs hiring bot.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codexs/hirebot/core/buildinfo"
	corecmd "github.com/codexs/hirebot/core/cmd"
	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/internal/app"
	"github.com/codexs/hirebot/internal/config"
	"github.com/codexs/hirebot/internal/storage"
)

const defaultConfigPath = "config.yaml"

func loadConfig(path string) (corecmd.ConfigCarrier, error) {
	return config.Load(path)
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "hirebot",
		Short:         "Bilingual Telegram hiring bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default $CONFIG_PATH or ./config.yaml)")

	opts := func() corecmd.Options {
		return corecmd.Options{
			ConfigPath:        configPath,
			DefaultConfigPath: defaultConfigPath,
			LoadConfig:        loadConfig,
			Serve:             app.Serve,
		}
	}

	root.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newCleanupCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newServeCmd(opts func() corecmd.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return corecmd.Run(cmd.Context(), opts())
		},
	}
}

func loadAppConfig(opts corecmd.Options) (*config.Config, error) {
	carrier, err := corecmd.Load(opts)
	if err != nil {
		return nil, err
	}
	return carrier.(*config.Config), nil
}

func newMigrateCmd(opts func() corecmd.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the SQL record log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadAppConfig(opts())
			if err != nil {
				return err
			}
			if !cfg.UsesSQL() {
				return fmt.Errorf("storage.backend %q has no migrations", cfg.Storage.Backend)
			}
			defer logger.Shutdown()
			infra, err := app.Bootstrap(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return infra.Close()
		},
	}
}

func newCleanupCmd(opts func() corecmd.Options) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete session snapshots older than the retention period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadAppConfig(opts())
			if err != nil {
				return err
			}
			retention := cfg.Storage.Retention()
			if days > 0 {
				retention = time.Duration(days) * 24 * time.Hour
			} else {
				days = cfg.Storage.SessionRetentionDays
			}
			sessions, err := storage.NewFileSessionStore(cfg.Storage.SessionDir())
			if err != nil {
				return err
			}
			sw := &app.Sweeper{Sessions: sessions, Retention: retention}
			sw.Sweep(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "removed session snapshots older than %d days\n", days)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "retention in days (default storage.session_retention_days)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hirebot %s\n", buildinfo.String())
		},
	}
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "hirebot:", err)
		os.Exit(1)
	}
}
