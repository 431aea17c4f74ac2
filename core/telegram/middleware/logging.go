package middleware

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/codexs/hirebot/core/logger"
	tghelpers "github.com/codexs/hirebot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// recentUpdates keeps a short-lived set of processed update IDs to avoid double logging.
var (
	recentMu     sync.Mutex
	recentUpdate = make(map[int]time.Time)
	keepFor      = 10 * time.Second
)

func alreadyLogged(updateID int) bool {
	now := time.Now()
	recentMu.Lock()
	defer recentMu.Unlock()
	for id, ts := range recentUpdate {
		if now.Sub(ts) > keepFor {
			delete(recentUpdate, id)
		}
	}
	if _, ok := recentUpdate[updateID]; ok {
		return true
	}
	recentUpdate[updateID] = now
	return false
}

// UpdateKind names the kind of message an update carries, using the same
// vocabulary as rate_limit.exclude_updates.
func UpdateKind(c tele.Context) string {
	msg := c.Message()
	switch {
	case msg == nil:
		return "other"
	case msg.Voice != nil, msg.Audio != nil:
		return "voice"
	case msg.Contact != nil:
		return "contact"
	case msg.Location != nil:
		return "location"
	case strings.HasPrefix(msg.Text, "/"):
		return "command"
	case msg.Text != "":
		return "text"
	}
	return "other"
}

// LoggerMiddleware sets the request id and log metadata for the update and
// logs a single receipt line per update. It deduplicates by update_id because
// it is applied on every route branch.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		user := c.Sender()
		chat := c.Chat()
		_, userID, chatID := tghelpers.IDs(c)

		c.Set("rid", logger.BuildRID(upd.ID, chatID, userID))
		c.Set("update_start", time.Now())
		ctx := tghelpers.Fresh(c)
		rid := logger.RIDFrom(ctx)

		if logger.ShouldSampleDebug() && !alreadyLogged(upd.ID) {
			kind := UpdateKind(c)
			attrs := []slog.Attr{
				slog.String("status", "ok"),
				slog.String("rid", rid),
				slog.Int("update_id", upd.ID),
				slog.String("kind", kind),
			}
			if chatID != 0 {
				attrs = append(attrs,
					slog.Int64("chat_id", chatID),
					slog.String("chat_type", string(chat.Type)),
				)
			}
			if userID != 0 {
				attrs = append(attrs, slog.Int64("user_id", userID))
				if user.Username != "" {
					attrs = append(attrs, slog.String("username", logger.SanitizeLimit(user.Username, 64)))
				}
				if user.LanguageCode != "" {
					attrs = append(attrs, slog.String("lang", user.LanguageCode))
				}
			}
			if msg := c.Message(); msg != nil {
				switch kind {
				case "text", "command":
					attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(msg.Text, 256)))
				case "voice":
					if msg.Voice != nil {
						attrs = append(attrs,
							slog.Int64("size", msg.Voice.FileSize),
							slog.Int("voice_duration", msg.Voice.Duration),
						)
					}
				}
			}
			logger.LogEvent(ctx, logger.Component("tg"), slog.LevelDebug, "update.received", attrs...)
		}

		return next(c)
	}
}
