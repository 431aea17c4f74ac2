package router

import (
	tg "github.com/codexs/hirebot/core/telegram"
	"github.com/codexs/hirebot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// MessageHandler receives every private non-command message: text, voice,
// audio, shared contacts and locations.
type MessageHandler func(c tele.Context) error

// MessageRoutes binds the private chat message endpoints to h. Messages from
// groups and channels are dropped before h sees them.
func MessageRoutes(h MessageHandler) []tg.Route {
	if h == nil {
		return nil
	}
	wrap := func(name string) tele.HandlerFunc {
		handler := func(c tele.Context) error {
			return summarize(c, name, func() error { return h(c) })
		}
		return middleware.RecoverMiddleware(
			middleware.LoggerMiddleware(
				middleware.MessageMetricsMiddleware(
					middleware.PrivateOnly(handler))))
	}
	return []tg.Route{
		{Endpoint: tele.OnText, Handler: wrap("message.text")},
		{Endpoint: tele.OnVoice, Handler: wrap("message.voice")},
		{Endpoint: tele.OnAudio, Handler: wrap("message.audio")},
		{Endpoint: tele.OnContact, Handler: wrap("message.contact")},
		{Endpoint: tele.OnLocation, Handler: wrap("message.location")},
	}
}
