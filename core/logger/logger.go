// Package logger is the structured slog setup shared by every component:
// a flat JSON or key=value line per event, correlation ids taken from the
// context, optional rotated files and sampling of high-volume debug events.
package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"

	"github.com/codexs/hirebot/core/buildinfo"
	coreconfig "github.com/codexs/hirebot/core/config"
)

var (
	initOnce sync.Once
	closeMu  sync.Mutex
	closers  []io.Closer

	levelVar      slog.LevelVar
	debugSampler  = newRatioSampler(1, 50)
	traceOverride bool

	// L is the base logger.
	L *slog.Logger

	// DB logs database connection events.
	DB *slog.Logger
	// TG logs Telegram transport events.
	TG *slog.Logger
	// MIG logs database migration events.
	MIG *slog.Logger
	// TWire logs Telegram wiring steps.
	TWire *slog.Logger
)

// Until InitLogger runs, component loggers write through slog.Default so
// packages can log from tests and CLI subcommands.
func init() {
	setBase(slog.Default())
}

func setBase(base *slog.Logger) {
	L = base
	DB = base.With("component", "db")
	TG = base.With("component", "tg")
	MIG = base.With("component", "db.migrate")
	TWire = base.With("component", "tg.wire")
}

// InitLogger configures the global structured logger. Only the first call
// has an effect.
func InitLogger(cfg *coreconfig.Config) error {
	initOnce.Do(func() {
		var lc coreconfig.LoggingConfig
		if cfg != nil {
			lc = cfg.Logging
		}
		levelVar.Set(parseLevel(lc.Level))
		if num, den := parseRatioSpec(lc.DebugSample); lc.DebugSample != "" {
			debugSampler.Set(num, den)
		}
		traceOverride = isTruthy(os.Getenv("TRACE")) || isTruthy(os.Getenv("LOG_TRACE"))

		outs := []io.Writer{os.Stdout}
		if f := rotated(lc, lc.BotFile); f != nil {
			outs = append(outs, f)
		}
		mainW := newAsyncWriter(outs, 64*1024)
		hc := handlerConfig{
			level:    &levelVar,
			writer:   mainW,
			format:   parseFormat(lc),
			keyOrder: parseKeyOrder(lc.KeysOrder),
		}
		closeMu.Lock()
		closers = append(closers, mainW)
		if f := rotated(lc, lc.ErrorsFile); f != nil {
			errW := newAsyncWriter([]io.Writer{f}, 16*1024)
			hc.errors = errW
			closers = append(closers, errW)
		}
		closeMu.Unlock()

		base := slog.New(newStructuredHandler(hc))
		slog.SetDefault(base)
		setBase(base)

		base.LogAttrs(context.Background(), slog.LevelInfo, "startup",
			slog.String("component", "app"),
			slog.String("event", "startup"),
			slog.String("go_version", runtime.Version()),
			slog.String("build_version", buildinfo.Version),
			slog.String("build_commit", buildinfo.Commit),
			slog.String("cfg_profile", profile(lc)),
		)
	})
	return nil
}

// rotated opens a size-rotated log file under logging.dir, or returns nil
// when no file is configured or the directory cannot be created.
func rotated(lc coreconfig.LoggingConfig, name string) io.WriteCloser {
	dir, name := strings.TrimSpace(lc.Dir), strings.TrimSpace(name)
	if dir == "" || name == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Default().Warn("logger: log dir unavailable", slog.String("dir", dir), slog.String("err", err.Error()))
		return nil
	}
	rot := &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    orDefault(lc.MaxSizeMB, 20),
		MaxBackups: orDefault(lc.MaxBackups, 5),
		MaxAge:     orDefault(lc.MaxAgeDays, 14),
	}
	closeMu.Lock()
	closers = append(closers, rot)
	closeMu.Unlock()
	return rot
}

// Shutdown flushes buffered log output and closes opened sinks. Writers are
// closed before the files they feed.
func Shutdown() error {
	closeMu.Lock()
	defer closeMu.Unlock()
	var errs []error
	var files []io.Closer
	for _, c := range closers {
		if w, ok := c.(*asyncWriter); ok {
			errs = append(errs, w.Close())
		} else {
			files = append(files, c)
		}
	}
	for _, f := range files {
		errs = append(errs, f.Close())
	}
	closers = nil
	return errors.Join(errs...)
}

func parseFormat(lc coreconfig.LoggingConfig) logFormat {
	switch strings.ToLower(strings.TrimSpace(lc.Format)) {
	case "kv", "text", "pretty":
		return formatKV
	case "json":
		return formatJSON
	}
	if p := profile(lc); p == "debug" || p == "dev" {
		return formatKV
	}
	return formatJSON
}

func parseKeyOrder(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "default" {
		return defaultKeyOrder
	}
	var order []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			order = append(order, p)
		}
	}
	if len(order) == 0 {
		return defaultKeyOrder
	}
	return order
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func profile(lc coreconfig.LoggingConfig) string {
	if p := strings.TrimSpace(lc.Profile); p != "" {
		return strings.ToLower(p)
	}
	return "prod"
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// Background returns context.Background().
func Background() context.Context {
	return context.Background()
}

// LogEvent writes one event through logg, falling back to the logger stored
// in ctx and then to L.
func LogEvent(ctx context.Context, logg *slog.Logger, level slog.Level, event string, attrs ...slog.Attr) {
	if logg == nil {
		logg = FromContext(ctx)
	}
	if logg == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if event != "" {
		attrs = append([]slog.Attr{slog.String("event", event)}, attrs...)
	}
	logg.LogAttrs(ctx, level, "", attrs...)
}

// Component returns L scoped to the component name.
func Component(name string) *slog.Logger {
	if name = strings.TrimSpace(name); name == "" {
		return L
	}
	return L.With("component", name)
}

func Debug(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelDebug, event, attrs...)
}

func Info(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelInfo, event, attrs...)
}

func Warn(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelWarn, event, attrs...)
}

func Error(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelError, event, attrs...)
}

// ShouldSampleDebug reports whether a high-volume debug event should be
// logged. TRACE=1 forces every event through.
func ShouldSampleDebug() bool {
	return traceOverride || debugSampler.Allow()
}

// Status maps err to the status field value.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Took returns the time since start rounded to milliseconds.
func Took(start time.Time) time.Duration {
	return RoundMS(time.Since(start))
}

// RoundMS rounds d to the nearest millisecond; negative values become 0.
func RoundMS(d time.Duration) time.Duration {
	return max(d, 0).Round(time.Millisecond)
}

// SummarizeStrings joins at most limit values and reports whether some were
// left out.
func SummarizeStrings(values []string, limit int) (string, bool) {
	n := min(max(limit, 0), len(values))
	return strings.Join(values[:n], ", "), n < len(values)
}
