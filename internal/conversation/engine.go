// Package conversation is the per-user hiring conversation state machine.
//
// The engine receives transport-neutral events, serializes them per user,
// runs the priority guards against the user's session and answers through a
// chat.Sender. It never returns dependency failures to the caller; only a
// failed outbound send surfaces as an error.
package conversation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/core/telegram/state"
	"github.com/codexs/hirebot/internal/ai"
	"github.com/codexs/hirebot/internal/chat"
	"github.com/codexs/hirebot/internal/finalize"
	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
	"github.com/codexs/hirebot/internal/metrics"
	"github.com/codexs/hirebot/internal/ratelimit"
	"github.com/codexs/hirebot/internal/session"
	"github.com/codexs/hirebot/internal/storage"
)

// MaxVoiceBytes is the largest accepted voice sample.
const MaxVoiceBytes = 20 * 1024 * 1024

// Media locates optional images in a local directory.
type Media struct {
	Enabled bool
	Dir     string
	// LandingURL is tried when no local landing image exists.
	LandingURL string
}

// Options wires an Engine. Sender, Files, Sessions, Records and Finalizer are
// required.
type Options struct {
	Sender    chat.Sender
	Files     chat.Files
	Sessions  storage.SessionStore
	Records   storage.RecordLog
	Finalizer *finalize.Finalizer
	AI        ai.Responder
	Limiter   ratelimit.Limiter
	// Exempt lists event kinds that never count against Limiter.
	Exempt   []Kind
	Metrics  *metrics.Recorder
	Media    Media
	VoiceDir string
	Now      func() time.Time
}

// Engine runs conversations. It is safe for concurrent use.
type Engine struct {
	sender    chat.Sender
	files     chat.Files
	store     storage.SessionStore
	records   storage.RecordLog
	finalizer *finalize.Finalizer
	ai        ai.Responder
	limiter   ratelimit.Limiter
	exempt    map[Kind]bool
	metrics   *metrics.Recorder
	media     Media
	voiceDir  string
	now       func() time.Time

	live *state.Manager[session.Session]
}

func New(opts Options) *Engine {
	e := &Engine{
		sender:    opts.Sender,
		files:     opts.Files,
		store:     opts.Sessions,
		records:   opts.Records,
		finalizer: opts.Finalizer,
		ai:        opts.AI,
		limiter:   opts.Limiter,
		metrics:   opts.Metrics,
		media:     opts.Media,
		voiceDir:  opts.VoiceDir,
		now:       opts.Now,
		exempt:    make(map[Kind]bool, len(opts.Exempt)),
		live:      state.NewManager[session.Session](),
	}
	for _, k := range opts.Exempt {
		e.exempt[k] = true
	}
	if e.ai == nil {
		e.ai = ai.Disabled{}
	}
	if e.limiter == nil {
		e.limiter = ratelimit.Unlimited{}
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// ActiveSessions reports how many users have a session in memory.
func (e *Engine) ActiveSessions() int { return e.live.Len() }

// Session returns a copy of the user's in-memory session.
func (e *Engine) Session(userID int64) (*session.Session, bool) {
	var out *session.Session
	_ = e.live.Do(userID, func(cur *session.Session) (*session.Session, error) {
		if cur != nil {
			out = cur.Clone()
		}
		return cur, nil
	})
	return out, out != nil
}

// Evict drops in-memory sessions idle for longer than idle. Snapshots stay
// on disk, so an evicted user is recovered on their next event.
func (e *Engine) Evict(idle time.Duration) int { return e.live.Evict(idle) }

// Handle processes one event to completion. Events of one user are handled
// in arrival order.
func (e *Engine) Handle(ctx context.Context, ev Event) error {
	if !e.exempt[ev.Kind] && !e.limiter.Allow(ev.UserID) {
		e.metrics.RateLimited()
		lang := i18n.EN
		if s, ok := e.live.Peek(ev.UserID); ok && s.HasLanguage() {
			lang = s.Language
		}
		logger.Info(ctx, "conv", "event.rate_limited",
			slog.String("kind", ev.Kind.String()),
		)
		_, err := e.sender.SendText(ctx, ev.ChatID, hiring.RateLimitMessage.Get(lang), nil)
		return err
	}

	return e.live.Do(ev.UserID, func(cur *session.Session) (*session.Session, error) {
		start := time.Now()
		t := &turn{e: e, ctx: ctx, ev: ev, s: cur}
		if t.s == nil {
			if t.recover() {
				return t.finish(start, session.FlowIdle)
			}
		}
		before := t.s.Flow
		if fixed := t.s.Sanitize(); len(fixed) > 0 {
			logger.Warn(ctx, "conv", "session.repaired",
				slog.String("fixes", strings.Join(fixed, ",")),
			)
			t.dirty = true
		}
		t.dispatch()
		return t.finish(start, before)
	})
}

// turn is the state of one Handle call.
type turn struct {
	e   *Engine
	ctx context.Context
	ev  Event
	s   *session.Session

	dirty bool
	err   error
}

// recover restores a session after a restart. It reports true when the
// event was answered with a resume prompt and must not be dispatched.
func (t *turn) recover() bool {
	saved, ok := t.e.store.Load(t.ctx, t.ev.UserID)
	if !ok {
		t.s = session.New(t.ev.UserID)
		return false
	}
	t.s = saved
	if t.ev.Kind == KindStart || !saved.HasLanguage() || !saved.HasIncompleteApplication() || saved.InResumePrompt() {
		return false
	}
	logger.Info(t.ctx, "conv", "session.recovered",
		slog.String("flow", string(saved.Flow)),
		slog.Int("answered", saved.AnsweredCount()),
	)
	t.offerResume()
	return true
}

func (t *turn) finish(start time.Time, before session.Flow) (*session.Session, error) {
	if t.dirty {
		if err := t.e.store.Save(t.ctx, t.s); err != nil {
			logger.Warn(t.ctx, "conv", "session.save",
				slog.String("status", "fail"),
				slog.String("err", err.Error()),
			)
		}
	}
	t.e.metrics.Event(t.ev.Kind.String(), string(before))
	logger.Info(t.ctx, "conv", "event.handled",
		slog.String("status", logger.Status(t.err)),
		slog.String("kind", t.ev.Kind.String()),
		slog.String("flow_before", string(before)),
		slog.String("flow", string(t.s.Flow)),
		slog.Int("question_index", t.s.QuestionIndex),
		slog.Bool("waiting_voice", t.s.WaitingVoice),
		slog.Duration("duration", logger.Took(start)),
	)
	return t.s, t.err
}

func (t *turn) dispatch() {
	switch t.ev.Kind {
	case KindStart:
		t.start()
	case KindMenu:
		t.menuCommand()
	case KindHelp:
		t.help()
	case KindCommands:
		t.sayL(hiring.CommandsText, nil)
	case KindStatus:
		t.status()
	case KindVoice:
		t.voice()
	case KindContact:
		t.contactShared()
	case KindLocation:
		t.locationShared()
	default:
		t.text(strings.TrimSpace(t.ev.Text))
	}
}

func (t *turn) lang() i18n.Language {
	if t.s.HasLanguage() {
		return t.s.Language
	}
	return i18n.EN
}

func (t *turn) fail(err error) {
	if err != nil && t.err == nil {
		t.err = err
	}
}

func (t *turn) say(text string, kb *chat.Keyboard) {
	_, err := t.e.sender.SendText(t.ctx, t.ev.ChatID, text, kb)
	t.fail(err)
}

func (t *turn) sayL(text i18n.Text, kb *chat.Keyboard) { t.say(text.Get(t.lang()), kb) }

// forget deletes the user's snapshot and cancels any pending save.
func (t *turn) forget() {
	t.dirty = false
	if err := t.e.store.Delete(t.ctx, t.ev.UserID); err != nil {
		logger.Warn(t.ctx, "conv", "session.delete",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
	}
}

func (t *turn) applicant() storage.Applicant {
	who := t.ev.From
	if who.TelegramID == 0 {
		who.TelegramID = t.ev.UserID
	}
	return who
}
