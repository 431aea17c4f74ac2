// Package notify announces committed applications and contact messages to
// external systems. Every sink is best effort: errors are logged and counted
// but never undo the durable record.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/internal/metrics"
	"github.com/codexs/hirebot/internal/storage"
)

// ApplicationEvent describes a committed application.
type ApplicationEvent struct {
	App *storage.Application
	// VoiceMessageID and UserChatID locate the original voice message so it
	// can be forwarded. Zero when unknown.
	VoiceMessageID int
	UserChatID     int64
}

// Notifier is one notification sink.
type Notifier interface {
	Name() string
	NotifyApplication(ctx context.Context, ev ApplicationEvent) error
	NotifyContact(ctx context.Context, msg *storage.ContactMessage) error
}

// Multi fans out to every sink in order. A failing sink does not stop the
// ones after it.
type Multi struct {
	sinks   []Notifier
	metrics *metrics.Recorder
}

var _ Notifier = (*Multi)(nil)

func NewMulti(rec *metrics.Recorder, sinks ...Notifier) *Multi {
	return &Multi{sinks: sinks, metrics: rec}
}

func (m *Multi) Name() string { return "multi" }

// Sinks lists the configured sink names.
func (m *Multi) Sinks() []string {
	names := make([]string, 0, len(m.sinks))
	for _, s := range m.sinks {
		names = append(names, s.Name())
	}
	return names
}

func (m *Multi) NotifyApplication(ctx context.Context, ev ApplicationEvent) error {
	return m.each(ctx, "notify.application", slog.String("application_id", ev.App.ID), func(s Notifier) error {
		return s.NotifyApplication(ctx, ev)
	})
}

func (m *Multi) NotifyContact(ctx context.Context, msg *storage.ContactMessage) error {
	return m.each(ctx, "notify.contact", slog.Int64("user_id", msg.Sender.TelegramID), func(s Notifier) error {
		return s.NotifyContact(ctx, msg)
	})
}

func (m *Multi) each(ctx context.Context, event string, id slog.Attr, fn func(Notifier) error) error {
	var errs []error
	for _, s := range m.sinks {
		start := time.Now()
		err := fn(s)
		m.metrics.Notify(s.Name(), err)
		attrs := []slog.Attr{
			slog.String("status", logger.Status(err)),
			slog.String("sink", s.Name()),
			id,
			slog.Duration("duration", logger.Took(start)),
		}
		if err != nil {
			errs = append(errs, err)
			logger.Warn(ctx, "notify", event, append(attrs, slog.String("err", err.Error()))...)
			continue
		}
		logger.Info(ctx, "notify", event, attrs...)
	}
	return errors.Join(errs...)
}
