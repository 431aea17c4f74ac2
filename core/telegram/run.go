package telegram

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	coreconfig "github.com/codexs/hirebot/core/config"
	"github.com/codexs/hirebot/core/logger"
	tghelpers "github.com/codexs/hirebot/core/telegram/helpers"
	"github.com/codexs/hirebot/core/telegram/netutil"

	tele "gopkg.in/telebot.v4"
)

// Middleware is a named global middleware installed with bot.Use.
type Middleware struct {
	Name string
	Use  tele.MiddlewareFunc
}

// Route binds a handler to a telebot endpoint such as "/start" or
// tele.OnVoice.
type Route struct {
	Endpoint any
	Handler  tele.HandlerFunc
}

// BuildOptions controls Build.
type BuildOptions struct {
	// Client overrides the HTTP client used for Bot API calls.
	Client *http.Client
	// Offline skips the getMe call.
	Offline bool
}

// Build creates the bot for the configured run mode. Updates are handled
// concurrently; callers serialize per user where order matters.
func Build(cfg *coreconfig.Config, opts BuildOptions) (*tele.Bot, error) {
	if cfg == nil {
		return nil, errors.New("telegram: nil config")
	}
	client := opts.Client
	if client == nil {
		client = BuildHTTPClient(ClientOptions{})
	}

	start := time.Now()
	poller := NewPoller(cfg)
	bot, err := tele.NewBot(tele.Settings{
		Token:     cfg.Telegram.Token,
		Poller:    poller,
		Client:    client,
		ParseMode: tele.ModeHTML,
		Offline:   opts.Offline,
		OnError:   logHandlerError,
	})
	if err != nil {
		// telebot errors may embed the request URL and with it the token.
		return nil, errors.New("telegram: init bot: " + netutil.Redact(err))
	}

	attrs := []slog.Attr{slog.Duration("duration", logger.Took(start))}
	switch p := poller.(type) {
	case *tele.Webhook:
		attrs = append(attrs,
			slog.String("mode", coreconfig.RunModeWebhook),
			slog.String("listen", p.Listen),
			slog.String("public_url", p.Endpoint.PublicURL),
		)
	case *tele.LongPoller:
		attrs = append(attrs,
			slog.String("mode", coreconfig.RunModeLongpoll),
			slog.Duration("timeout", p.Timeout),
		)
	}
	logger.TG.LogAttrs(logger.Background(), slog.LevelInfo, "tg.build", attrs...)
	return bot, nil
}

func logHandlerError(err error, c tele.Context) {
	ctx := logger.Background()
	if c != nil {
		if stored, ok := tghelpers.ContextFrom(c); ok {
			ctx = stored
		}
	}
	logger.Error(ctx, "tg", "tg.handler_error",
		slog.String("err", netutil.Redact(err)),
		slog.String("err_kind", netutil.Classify(err)),
	)
}

// RunOptions controls Run.
type RunOptions struct {
	Config      *coreconfig.Config
	Registry    *Registry
	Middlewares []Middleware
	Routes      []Route
}

// Run installs middlewares, routes and command menus, then serves updates
// until ctx is done. Cancellation is a clean shutdown and returns nil.
func Run(ctx context.Context, bot *tele.Bot, opts RunOptions) error {
	if bot == nil || opts.Config == nil {
		return errors.New("telegram: Run needs a bot and a config")
	}
	cfg := opts.Config

	// A leftover webhook makes getUpdates fail with 409.
	if _, polling := bot.Poller.(*tele.LongPoller); polling {
		err := bot.RemoveWebhook(cfg.Telegram.DropPending)
		logger.TG.Info("tg.webhook.remove",
			slog.String("status", logger.Status(err)),
			slog.String("err", netutil.Redact(err)),
		)
	}

	wire(bot, opts)
	if opts.Registry != nil {
		SetupCommands(bot, opts.Registry, CommandTargets{
			AdminIDs:    cfg.Telegram.AdminIDs,
			GroupChatID: cfg.Telegram.GroupChatID,
		})
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		bot.Start()
	}()
	logger.TG.Info("tg.start", slog.String("mode", cfg.Telegram.RunMode))

	select {
	case <-ctx.Done():
		bot.Stop()
		<-stopped
	case <-stopped:
	}
	logger.TG.Info("tg.stop")

	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func wire(bot *tele.Bot, opts RunOptions) {
	names := make([]string, 0, len(opts.Middlewares))
	for _, mw := range opts.Middlewares {
		if mw.Use == nil {
			continue
		}
		bot.Use(mw.Use)
		names = append(names, mw.Name)
	}
	routes := 0
	for _, r := range opts.Routes {
		if r.Endpoint == nil || r.Handler == nil {
			continue
		}
		bot.Handle(r.Endpoint, r.Handler)
		routes++
	}
	preview, _ := logger.SummarizeStrings(names, 8)
	logger.TWire.Info("tg.wire",
		slog.String("event", "routes"),
		slog.String("middlewares", preview),
		slog.Int("routes", routes),
	)
}
