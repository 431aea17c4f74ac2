package chat

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/internal/metrics"
)

// LoggingSender wraps a Sender and logs every call with its outcome and
// duration. Failures are logged here so callers may drop the error.
type LoggingSender struct {
	next    Sender
	metrics *metrics.Recorder
}

var _ Sender = (*LoggingSender)(nil)

// NewLoggingSender decorates next. rec may be nil.
func NewLoggingSender(next Sender, rec *metrics.Recorder) *LoggingSender {
	return &LoggingSender{next: next, metrics: rec}
}

func (s *LoggingSender) done(ctx context.Context, action string, chatID int64, start time.Time, err error, attrs ...slog.Attr) {
	took := logger.Took(start)
	s.metrics.Send(action, err, took)
	attrs = append([]slog.Attr{
		slog.String("status", logger.Status(err)),
		slog.Int64("chat_id", chatID),
		slog.Duration("duration", took),
	}, attrs...)
	if err != nil {
		attrs = append(attrs, slog.String("err", err.Error()))
		logger.Warn(ctx, "tg", action, attrs...)
		return
	}
	logger.Debug(ctx, "tg", action, attrs...)
}

func (s *LoggingSender) SendText(ctx context.Context, chatID int64, text string, kb *Keyboard) (int, error) {
	start := time.Now()
	id, err := s.next.SendText(ctx, chatID, text, kb)
	s.done(ctx, "send.text", chatID, start, err,
		slog.Int("chars", utf8.RuneCountInString(text)),
		slog.Bool("kb", kb != nil && !kb.Remove),
	)
	return id, err
}

func (s *LoggingSender) SendPhoto(ctx context.Context, chatID int64, photo Photo, caption string, kb *Keyboard) error {
	start := time.Now()
	err := s.next.SendPhoto(ctx, chatID, photo, caption, kb)
	src := "url"
	if photo.Path != "" {
		src = "file"
	}
	s.done(ctx, "send.photo", chatID, start, err, slog.String("source", src))
	return err
}

func (s *LoggingSender) SendVoice(ctx context.Context, chatID int64, fileID, caption string) error {
	start := time.Now()
	err := s.next.SendVoice(ctx, chatID, fileID, caption)
	s.done(ctx, "send.voice", chatID, start, err)
	return err
}

func (s *LoggingSender) Forward(ctx context.Context, toChatID, fromChatID int64, messageID int) error {
	start := time.Now()
	err := s.next.Forward(ctx, toChatID, fromChatID, messageID)
	s.done(ctx, "send.forward", toChatID, start, err,
		slog.Int64("from_chat_id", fromChatID),
		slog.Int("message_id", messageID),
	)
	return err
}
