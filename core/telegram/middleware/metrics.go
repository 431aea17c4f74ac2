package middleware

import (
	"context"
	"sync/atomic"

	tghelpers "github.com/codexs/hirebot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

type countersKey struct{}

// counters track replies sent while one update is handled.
type counters struct {
	messages atomic.Int32
	kb       atomic.Bool
}

// WithCounters attaches fresh reply counters to ctx.
func WithCounters(ctx context.Context) context.Context {
	return context.WithValue(ctx, countersKey{}, &counters{})
}

// CountSend records one outbound message on the counters carried by ctx.
// It is a no-op when ctx has none.
func CountSend(ctx context.Context, hasKeyboard bool) {
	c, _ := ctx.Value(countersKey{}).(*counters)
	if c == nil {
		return
	}
	c.messages.Add(1)
	if hasKeyboard {
		c.kb.Store(true)
	}
}

// Counters reads the message count and keyboard flag from ctx.
func Counters(ctx context.Context) (int, bool) {
	c, _ := ctx.Value(countersKey{}).(*counters)
	if c == nil {
		return 0, false
	}
	return int(c.messages.Load()), c.kb.Load()
}

// MessageMetricsMiddleware instruments the update context so outbound
// senders can count replies for the handler summary.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := tghelpers.BuildContext(c)
		if _, ok := ctx.Value(countersKey{}).(*counters); !ok {
			tghelpers.StoreContext(c, WithCounters(ctx))
		}
		return next(c)
	}
}

// GetCounters reads message count and keyboard presence flags from the
// update context.
func GetCounters(c tele.Context) (int, bool) {
	ctx, ok := tghelpers.ContextFrom(c)
	if !ok {
		return 0, false
	}
	return Counters(ctx)
}
