package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/internal/chat"
	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/storage"
)

// TelegramGroup posts announcements to the hiring team's group chat.
type TelegramGroup struct {
	sender chat.Sender
	chatID int64

	// sent remembers the steps already delivered per application, so a
	// retried notification does not post them twice.
	mu   sync.Mutex
	sent map[string]groupSteps
}

type groupSteps struct {
	card  bool
	voice bool
}

var _ Notifier = (*TelegramGroup)(nil)

func NewTelegramGroup(sender chat.Sender, chatID int64) *TelegramGroup {
	return &TelegramGroup{sender: sender, chatID: chatID, sent: map[string]groupSteps{}}
}

func (g *TelegramGroup) Name() string { return "telegram_group" }

// NotifyApplication posts the card, then attaches the voice sample. A failed
// card still lets the voice through. Steps that succeeded are skipped when
// the same application is notified again.
func (g *TelegramGroup) NotifyApplication(ctx context.Context, ev ApplicationEvent) error {
	id := ev.App.ID
	g.mu.Lock()
	done := g.sent[id]
	g.mu.Unlock()

	var cardErr, voiceErr error
	if !done.card {
		if _, cardErr = g.sender.SendText(ctx, g.chatID, ApplicationCard(ev.App), nil); cardErr == nil {
			done.card = true
		}
	}
	if !done.voice {
		if voiceErr = ForwardVoice(ctx, g.sender, g.chatID, ev); voiceErr == nil {
			done.voice = true
		}
	}

	g.mu.Lock()
	if done.card && done.voice {
		delete(g.sent, id)
	} else {
		g.sent[id] = done
	}
	g.mu.Unlock()
	return errors.Join(cardErr, voiceErr)
}

func (g *TelegramGroup) NotifyContact(ctx context.Context, msg *storage.ContactMessage) error {
	_, err := g.sender.SendText(ctx, g.chatID, ContactCard(msg, hiring.ContactSharedNotification.Get(msg.Language)), nil)
	return err
}

// ForwardVoice delivers the applicant's voice sample to chatID. It forwards
// the original message when its location is known, falls back to resending
// the stored file, and finally posts a text note describing the failure. The
// chain is complete once the note is out; only an undelivered note is an
// error.
func ForwardVoice(ctx context.Context, sender chat.Sender, chatID int64, ev ApplicationEvent) error {
	app := ev.App
	name := hiring.Escape(valueOrDash(app, hiring.KeyFullName))
	attrs := []slog.Attr{slog.String("application_id", app.ID), slog.Int64("target", chatID)}

	var lastErr error
	if ev.VoiceMessageID != 0 && ev.UserChatID != 0 {
		err := sender.Forward(ctx, chatID, ev.UserChatID, ev.VoiceMessageID)
		if err == nil {
			_, _ = sender.SendText(ctx, chatID, fmt.Sprintf("<b>🎙 English Voice Sample</b>\nFrom: %s", name), nil)
			logger.Info(ctx, "notify", "voice.forward", append(attrs, slog.String("via", "forward"))...)
			return nil
		}
		lastErr = err
	}

	if app.VoiceFileID == "" {
		if lastErr == nil {
			logger.Debug(ctx, "notify", "voice.forward",
				append(attrs, slog.String("via", "none"), slog.Bool("skipped", app.VoiceSkipped))...)
			return nil
		}
	} else {
		err := sender.SendVoice(ctx, chatID, app.VoiceFileID, "🎙 English Voice Sample from "+name)
		if err == nil {
			logger.Info(ctx, "notify", "voice.forward", append(attrs, slog.String("via", "file_id"))...)
			return nil
		}
		lastErr = err
	}

	_, noteErr := sender.SendText(ctx, chatID, "⚠️ Voice file forwarding failed: "+hiring.Escape(truncateRunes(lastErr.Error(), 100)), nil)
	logger.Warn(ctx, "notify", "voice.forward",
		append(attrs,
			slog.String("via", "note"),
			slog.String("status", logger.Status(noteErr)),
			slog.String("err", lastErr.Error()),
		)...)
	if noteErr != nil {
		return fmt.Errorf("notify: voice forward: %w", errors.Join(lastErr, noteErr))
	}
	return nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
