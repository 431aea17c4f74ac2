// Package finalize commits completed applications and contact messages.
//
// The durable append is the only step that can fail a submission. Everything
// after it (notifications, session cleanup) is best effort and never undoes
// the record.
package finalize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/internal/metrics"
	"github.com/codexs/hirebot/internal/notify"
	"github.com/codexs/hirebot/internal/session"
	"github.com/codexs/hirebot/internal/storage"
)

// ErrPersist marks a failed durable write. The session is left untouched.
var ErrPersist = errors.New("finalize: durable write failed")

// Finalizer turns session state into immutable records.
type Finalizer struct {
	records  storage.RecordLog
	sessions storage.SessionStore
	notifier notify.Notifier
	metrics  *metrics.Recorder
	now      func() time.Time
	newID    func() string
}

// Option customizes a Finalizer.
type Option func(*Finalizer)

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) Option { return func(f *Finalizer) { f.now = now } }

// WithIDs overrides the application ID generator.
func WithIDs(gen func() string) Option { return func(f *Finalizer) { f.newID = gen } }

func WithMetrics(rec *metrics.Recorder) Option { return func(f *Finalizer) { f.metrics = rec } }

// New returns a Finalizer. notifier may be nil.
func New(records storage.RecordLog, sessions storage.SessionStore, notifier notify.Notifier, opts ...Option) *Finalizer {
	f := &Finalizer{
		records:  records,
		sessions: sessions,
		notifier: notifier,
		now:      time.Now,
		newID:    NewApplicationID,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// NewApplicationID returns "APP-" followed by eight uppercase hex digits.
func NewApplicationID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "APP-" + strings.ToUpper(id[:8])
}

// Finalize records the application held by s. On success s is reset, marked
// as a candidate and its snapshot deleted. On failure the returned error wraps
// ErrPersist, s is unchanged and the returned ID is the one that was tried.
func (f *Finalizer) Finalize(ctx context.Context, s *session.Session, who storage.Applicant) (string, error) {
	start := time.Now()
	app := &storage.Application{
		ID:            f.newID(),
		SubmittedAt:   f.now().UTC(),
		Language:      s.Language,
		Applicant:     who,
		Answers:       s.AnswersCopy(),
		VoiceFilePath: s.VoiceFilePath,
		VoiceFileID:   s.VoiceFileID,
		VoiceSkipped:  s.VoiceSkipped,
	}
	if err := f.records.AppendApplication(ctx, app); err != nil {
		f.metrics.Finalize("application", err)
		logger.Error(ctx, "finalize", "application.commit",
			slog.String("status", "fail"),
			slog.String("application_id", app.ID),
			slog.String("err", err.Error()),
		)
		return app.ID, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	f.metrics.Finalize("application", nil)

	if f.notifier != nil {
		// Errors are already logged per sink.
		_ = f.notifier.NotifyApplication(ctx, notify.ApplicationEvent{
			App:            app,
			VoiceMessageID: s.VoiceMessageID,
			UserChatID:     s.UserChatID,
		})
	}

	s.ResetHiring()
	s.IsCandidate = true
	if err := f.sessions.Delete(ctx, s.UserID); err != nil {
		logger.Warn(ctx, "finalize", "snapshot.delete",
			slog.String("application_id", app.ID),
			slog.String("err", err.Error()),
		)
	}

	logger.Info(ctx, "finalize", "application.commit",
		slog.String("status", "ok"),
		slog.String("application_id", app.ID),
		slog.String("lang", string(app.Language)),
		slog.Bool("voice", app.HasVoice()),
		slog.Duration("duration", logger.Took(start)),
	)
	return app.ID, nil
}

// SubmitContact records a contact message and announces it. Only the durable
// write can fail.
func (f *Finalizer) SubmitContact(ctx context.Context, s *session.Session, who storage.Applicant, text string) error {
	msg := &storage.ContactMessage{
		SubmittedAt: f.now().UTC(),
		Language:    s.Language,
		Sender:      who,
		Message:     text,
	}
	if err := f.records.AppendContact(ctx, msg); err != nil {
		f.metrics.Finalize("contact", err)
		logger.Error(ctx, "finalize", "contact.commit",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	f.metrics.Finalize("contact", nil)
	if f.notifier != nil {
		_ = f.notifier.NotifyContact(ctx, msg)
	}
	logger.Info(ctx, "finalize", "contact.commit",
		slog.String("status", "ok"),
		slog.Int("chars", len([]rune(text))),
	)
	return nil
}
