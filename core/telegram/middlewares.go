package telegram

import (
	"github.com/codexs/hirebot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// DefaultMiddlewares is the global chain applied to every update. Routes add
// their own logging, access checks and rate limits.
func DefaultMiddlewares() []Middleware {
	return []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
		{Name: "humans_only", Use: humansOnly},
	}
}

// humansOnly drops updates sent by other bots, including the bot's own
// echoes in the staff group.
func humansOnly(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if u := c.Sender(); u != nil && u.IsBot {
			return nil
		}
		return next(c)
	}
}
