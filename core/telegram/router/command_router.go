package router

import (
	"log/slog"

	"github.com/codexs/hirebot/core/logger"
	tg "github.com/codexs/hirebot/core/telegram"
	"github.com/codexs/hirebot/core/telegram/commands"
	"github.com/codexs/hirebot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	Access middleware.AccessOptions
	// RateLimit guards admin and group commands. User commands are limited
	// by the conversation engine itself.
	RateLimit middleware.RateLimitOptions
}

// CommandRoutes prepares command handlers wrapped with shared middleware.
// Aliases get their own endpoint bound to the same handler.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	var routes []tg.Route
	perScope := map[commands.Scope]int{}
	for cmd, def := range reg.Commands() {
		name := handlerName("command", cmd)
		inner := def.Handler
		h := func(c tele.Context) error {
			return summarize(c, name, func() error { return inner(c) })
		}

		switch def.Scope {
		case commands.ScopeAdmin:
			h = middleware.RateLimitMiddleware(opts.RateLimit)(h)
			h = middleware.AdminOnly(opts.Access)(h)
			h = middleware.PrivateOnly(h)
		case commands.ScopeGroup:
			h = middleware.RateLimitMiddleware(opts.RateLimit)(h)
			h = middleware.GroupAdminOnly(opts.Access)(h)
		default:
			h = middleware.PrivateOnly(h)
		}
		h = middleware.MessageMetricsMiddleware(h)
		h = middleware.LoggerMiddleware(h)
		h = middleware.RecoverMiddleware(h)

		perScope[def.Scope]++
		routes = append(routes, tg.Route{Endpoint: cmd, Handler: h})
		for _, alias := range def.Aliases {
			if alias == "" {
				continue
			}
			if alias[0] != '/' {
				alias = "/" + alias
			}
			routes = append(routes, tg.Route{Endpoint: alias, Handler: h})
		}
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "commands"),
		slog.Int("user", perScope[commands.ScopeUser]),
		slog.Int("admin", perScope[commands.ScopeAdmin]),
		slog.Int("group", perScope[commands.ScopeGroup]),
		slog.Int("routes", len(routes)),
	)

	return routes
}
