// Package app assembles the hiring bot from its parts and runs it: the
// Telegram transport, the conversation engine, notification sinks, the ops
// server and the cleanup schedule.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/codexs/hirebot/core/bootstrap"
	corecmd "github.com/codexs/hirebot/core/cmd"
	coreconfig "github.com/codexs/hirebot/core/config"
	"github.com/codexs/hirebot/core/logger"
	tg "github.com/codexs/hirebot/core/telegram"
	"github.com/codexs/hirebot/core/telegram/middleware"
	"github.com/codexs/hirebot/core/telegram/router"
	"github.com/codexs/hirebot/internal/ai"
	"github.com/codexs/hirebot/internal/chat"
	"github.com/codexs/hirebot/internal/config"
	"github.com/codexs/hirebot/internal/conversation"
	"github.com/codexs/hirebot/internal/finalize"
	"github.com/codexs/hirebot/internal/metrics"
	"github.com/codexs/hirebot/internal/notify"
	"github.com/codexs/hirebot/internal/ratelimit"
	"github.com/codexs/hirebot/internal/report"
	"github.com/codexs/hirebot/internal/storage"
	"github.com/codexs/hirebot/migrations"

	tele "gopkg.in/telebot.v4"
)

// Deps are the transport and infrastructure pieces an App is built on.
type Deps struct {
	Sender chat.Sender
	Files  chat.Files
	// DB holds the record log when the backend is SQL; nil selects JSONL
	// files.
	DB *sqlx.DB
	// Metrics receives the bot's collectors. Nil uses a private registry.
	Metrics *prometheus.Registry
	// HTTPClient is used by the webhook sink and the AI client.
	HTTPClient *http.Client
}

// App is the assembled bot.
type App struct {
	cfg      *config.Config
	started  time.Time
	metrics  *prometheus.Registry
	sessions storage.SessionStore
	engine   *conversation.Engine
	reporter *report.Reporter
	handlers *Handlers
	sweeper  *Sweeper
	limiter  *ratelimit.SlidingWindow
	queues   []*notify.Queue
}

// exemptKinds maps rate_limit.exclude_updates onto engine event kinds.
func exemptKinds(updates []string) []conversation.Kind {
	var out []conversation.Kind
	for _, u := range updates {
		switch u {
		case coreconfig.UpdateText:
			out = append(out, conversation.KindText)
		case coreconfig.UpdateVoice:
			out = append(out, conversation.KindVoice)
		case coreconfig.UpdateContact:
			out = append(out, conversation.KindContact)
		case coreconfig.UpdateLocation:
			out = append(out, conversation.KindLocation)
		case coreconfig.UpdateCommand:
			out = append(out,
				conversation.KindStart,
				conversation.KindMenu,
				conversation.KindHelp,
				conversation.KindStatus,
				conversation.KindCommands,
			)
		}
	}
	return out
}

// New wires every component. Call Close to drain notification queues.
func New(cfg *config.Config, deps Deps) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}
	if deps.Sender == nil || deps.Files == nil {
		return nil, fmt.Errorf("app: sender and files are required")
	}
	reg := deps.Metrics
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	rec := metrics.New(reg)
	sender := chat.NewLoggingSender(deps.Sender, rec)

	sessions, err := storage.NewFileSessionStore(cfg.Storage.SessionDir())
	if err != nil {
		return nil, fmt.Errorf("app: session store: %w", err)
	}
	var records storage.RecordLog
	if deps.DB != nil {
		records = storage.NewSQLRecordLog(deps.DB)
	} else {
		jsonl, err := storage.NewJSONLRecordLog(cfg.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("app: record log: %w", err)
		}
		records = jsonl
	}

	a := &App{cfg: cfg, started: time.Now(), metrics: reg, sessions: sessions}
	sinks, err := a.sinks(sender, deps)
	if err != nil {
		return nil, err
	}
	finalizer := finalize.New(records, sessions, notify.NewMulti(rec, sinks...), finalize.WithMetrics(rec))

	var responder ai.Responder = ai.Disabled{}
	if cfg.AI.Active() {
		responder = ai.NewOpenAI(ai.Options{
			APIKey:     cfg.AI.APIKey,
			Model:      cfg.AI.Model,
			Timeout:    cfg.AI.Timeout,
			HTTPClient: deps.HTTPClient,
		})
	}

	window := cfg.RateLimit.Window()
	userLimiter := ratelimit.NewSlidingWindow(cfg.RateLimit.MaxRequests, window)
	a.limiter = ratelimit.NewSlidingWindow(cfg.RateLimit.MaxRequests, window)

	a.engine = conversation.New(conversation.Options{
		Sender:    sender,
		Files:     deps.Files,
		Sessions:  sessions,
		Records:   records,
		Finalizer: finalizer,
		AI:        responder,
		Limiter:   userLimiter,
		Exempt:    exemptKinds(cfg.RateLimit.ExcludeUpdates),
		Metrics:   rec,
		Media: conversation.Media{
			Enabled:    cfg.Hiring.EnableMedia,
			Dir:        cfg.Storage.MediaDir,
			LandingURL: cfg.Hiring.LandingPhotoURL,
		},
		VoiceDir: cfg.Storage.VoiceDir,
	})
	a.reporter = report.New(records, sessions, report.WithVoiceDir(cfg.Storage.VoiceDir))
	a.handlers = NewHandlers(HandlersOptions{
		Engine:        a.engine,
		Reporter:      a.reporter,
		Sender:        sender,
		Sessions:      sessions,
		GroupChatID:   cfg.Telegram.GroupChatID,
		RetentionDays: cfg.Storage.SessionRetentionDays,
	})
	a.sweeper = &Sweeper{
		Sessions:  sessions,
		Retention: cfg.Storage.Retention(),
		Evict:     a.engine.Evict,
		Prune:     []func() int{userLimiter.Prune, a.limiter.Prune},
	}
	return a, nil
}

// sinks builds the configured notification sinks, each behind its own
// delivery queue.
func (a *App) sinks(sender chat.Sender, deps Deps) ([]notify.Notifier, error) {
	n := a.cfg.Notify
	var raw []notify.Notifier
	if a.cfg.Telegram.GroupChatID != 0 {
		raw = append(raw, notify.NewTelegramGroup(sender, a.cfg.Telegram.GroupChatID))
	}
	if n.WebhookURL != "" || n.ContactWebhookURL != "" {
		raw = append(raw, notify.NewWebhook(notify.WebhookOptions{
			ApplicationURL: n.WebhookURL,
			ContactURL:     n.ContactWebhookURL,
			Token:          n.WebhookToken,
			Client:         deps.HTTPClient,
			Files:          deps.Files,
		}))
	}
	if n.SlackToken != "" {
		raw = append(raw, notify.NewSlack(n.SlackToken, n.SlackChannel))
	}
	if n.DiscordToken != "" {
		d, err := notify.NewDiscord(n.DiscordToken, n.DiscordChannel)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		raw = append(raw, d)
	}

	out := make([]notify.Notifier, 0, len(raw))
	names := make([]string, 0, len(raw))
	for _, s := range raw {
		q := notify.NewQueue(s, notify.QueueOptions{Size: n.QueueSize, MaxRetries: n.MaxRetries})
		a.queues = append(a.queues, q)
		out = append(out, q)
		names = append(names, s.Name())
	}
	preview, _ := logger.SummarizeStrings(names, len(names))
	logger.L.Info("notify sinks",
		slog.String("event", "notify.sinks"),
		slog.Int("count", len(names)),
		slog.String("sinks", preview),
	)
	return out, nil
}

// Engine exposes the conversation engine.
func (a *App) Engine() *conversation.Engine { return a.engine }

// Handlers exposes the update handlers.
func (a *App) Handlers() *Handlers { return a.handlers }

// Routes binds commands and private messages to the handlers.
func (a *App) Routes(reg *tg.Registry) []tg.Route {
	h := a.handlers
	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		Access: middleware.AccessOptions{
			IsAdmin:         a.cfg.IsAdmin,
			GroupChatID:     a.cfg.Telegram.GroupChatID,
			OnNotAdmin:      h.NotAdmin,
			OnWrongChat:     h.WrongChat,
			OnNotGroupAdmin: h.NotGroupAdmin,
		},
		RateLimit: middleware.RateLimitOptions{
			Limiter:   a.limiter,
			OnLimited: h.Limited,
		},
	})
	return append(routes, router.MessageRoutes(h.Message)...)
}

// Close drains the notification queues.
func (a *App) Close() {
	for _, q := range a.queues {
		q.Close()
	}
}

// Run serves the bot, the ops server and the cleanup schedule until ctx is
// done or one of them fails.
func (a *App) Run(ctx context.Context, bot *tele.Bot) error {
	g, gctx := errgroup.WithContext(ctx)
	reg := a.handlers.Registry()

	g.Go(func() error {
		return tg.Run(gctx, bot, tg.RunOptions{
			Config:      a.cfg.CoreConfig(),
			Registry:    reg,
			Middlewares: tg.DefaultMiddlewares(),
			Routes:      a.Routes(reg),
		})
	})
	if a.cfg.Ops.Enabled {
		g.Go(func() error {
			return ServeOps(gctx, OpsOptions{
				Listen:   a.cfg.Ops.Listen,
				Reporter: a.reporter,
				Gatherer: a.metrics,
				Active:   a.engine.ActiveSessions,
				Start:    a.started,
			})
		})
	}
	g.Go(func() error {
		return a.sweeper.RunSchedule(gctx, a.cfg.Cleanup.Schedule)
	})
	return g.Wait()
}

// Bootstrap initializes logging and, for SQL backends, the database with
// its migrations.
func Bootstrap(cfg *config.Config) (*bootstrap.Result, error) {
	opts := bootstrap.Options{Config: cfg.CoreConfig()}
	if cfg.UsesSQL() {
		opts.Database = &cfg.Database
		opts.Migrations = migrations.FS
	}
	return bootstrap.Run(opts)
}

// Serve is the long-running entry point used by the serve command.
func Serve(ctx context.Context, carrier corecmd.ConfigCarrier) error {
	cfg, ok := carrier.(*config.Config)
	if !ok {
		return fmt.Errorf("app: unexpected config type %T", carrier)
	}
	infra, err := Bootstrap(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := infra.Close(); err != nil {
			logger.L.Warn("database close failed", slog.String("event", "db.close"), slog.String("err", err.Error()))
		}
	}()

	client := tg.BuildHTTPClient(tg.ClientOptions{})
	bot, err := tg.Build(cfg.CoreConfig(), tg.BuildOptions{Client: client})
	if err != nil {
		return err
	}
	transport := NewTelegram(bot)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := New(cfg, Deps{
		Sender:     transport,
		Files:      transport,
		DB:         infra.DB,
		Metrics:    reg,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	})
	if err != nil {
		return err
	}
	defer a.Close()

	logger.L.Info("hirebot starting",
		slog.String("event", "app.start"),
		slog.String("backend", cfg.Storage.Backend),
		slog.Bool("ai", cfg.AI.Active()),
		slog.Bool("ops", cfg.Ops.Enabled),
	)
	return a.Run(ctx, bot)
}
