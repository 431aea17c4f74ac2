package router

import (
	"log/slog"
	"strings"
	"time"

	"github.com/codexs/hirebot/core/logger"
	tghelpers "github.com/codexs/hirebot/core/telegram/helpers"
	"github.com/codexs/hirebot/core/telegram/middleware"
	"github.com/codexs/hirebot/core/telegram/netutil"

	tele "gopkg.in/telebot.v4"
)

// summarize runs fn as the named handler and logs one "handler.handled"
// line with the outcome, the replies sent and the elapsed time.
func summarize(c tele.Context, handler string, fn func() error) error {
	start := time.Now()
	ctx := tghelpers.WithHandler(c, handler)
	err := fn()

	replies, withKeyboard := middleware.GetCounters(c)
	attrs := []slog.Attr{
		slog.String("status", logger.Status(err)),
		slog.String("kind", middleware.UpdateKind(c)),
		slog.Int("messages", replies),
		slog.Bool("kb", withKeyboard),
		slog.Duration("duration", logger.Took(start)),
	}
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(netutil.Redact(err), 256)),
			slog.String("err_kind", netutil.Classify(err)),
		)
	}
	logger.LogEvent(ctx, logger.Component("tg"), level, "handler.handled", attrs...)
	return err
}

// handlerName builds log names such as "command.botstatus".
func handlerName(prefix, endpoint string) string {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(endpoint), "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" {
		name = "unknown"
	}
	return prefix + "." + name
}
