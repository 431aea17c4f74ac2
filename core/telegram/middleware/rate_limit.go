package middleware

import (
	"log/slog"

	"github.com/codexs/hirebot/core/logger"
	tghelpers "github.com/codexs/hirebot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// Limiter decides whether a user may act now. Allow records the attempt.
type Limiter interface {
	Allow(userID int64) bool
}

// RateLimitOptions configures behaviour of the rate limit middleware.
type RateLimitOptions struct {
	Limiter Limiter
	// Exclude lists update kinds, as returned by UpdateKind, that bypass
	// the limiter.
	Exclude   map[string]struct{}
	OnLimited tele.HandlerFunc
}

// RateLimitMiddleware rejects updates from users over their limit.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Limiter == nil {
				return next(c)
			}
			kind := UpdateKind(c)
			if _, skip := opts.Exclude[kind]; skip {
				return next(c)
			}
			if opts.Limiter.Allow(user.ID) {
				return next(c)
			}

			logger.Warn(tghelpers.BuildContext(c), "tg", "tg.rate_limit",
				slog.Int64("user_id", user.ID),
				slog.String("kind", kind),
			)
			if opts.OnLimited != nil {
				return opts.OnLimited(c)
			}
			return nil
		}
	}
}
