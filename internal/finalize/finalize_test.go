package finalize

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexs/hirebot/internal/chat/chattest"
	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
	"github.com/codexs/hirebot/internal/notify"
	"github.com/codexs/hirebot/internal/session"
	"github.com/codexs/hirebot/internal/storage"
)

type brokenLog struct {
	storage.RecordLog
	err error
}

func (b brokenLog) AppendApplication(context.Context, *storage.Application) error { return b.err }
func (b brokenLog) AppendContact(context.Context, *storage.ContactMessage) error  { return b.err }

type env struct {
	records  *storage.JSONLRecordLog
	sessions *storage.FileSessionStore
	group    *chattest.Recorder
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	records, err := storage.NewJSONLRecordLog(dir)
	require.NoError(t, err)
	sessions, err := storage.NewFileSessionStore(dir + "/sessions")
	require.NoError(t, err)
	return env{records: records, sessions: sessions, group: chattest.New()}
}

func confirmingSession(t *testing.T, sessions storage.SessionStore) *session.Session {
	t.Helper()
	s := session.New(42)
	s.Language = i18n.EN
	s.StartHiring()
	for _, q := range hiring.Questions {
		v := "answer " + q.Key
		s.SetAnswer(q.Key, &v)
	}
	s.Flow = session.FlowConfirm
	s.VoiceFileID = "voice-1"
	s.VoiceMessageID = 11
	s.UserChatID = 42
	require.NoError(t, sessions.Save(context.Background(), s))
	return s
}

var who = storage.Applicant{TelegramID: 42, Username: "ada", FirstName: "Ada"}

func TestApplicationIDFormat(t *testing.T) {
	re := regexp.MustCompile(`^APP-[0-9A-F]{8}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := NewApplicationID()
		assert.Regexp(t, re, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestFinalizeCommitsThenResets(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	s := confirmingSession(t, e.sessions)
	at := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	f := New(e.records, e.sessions, notify.NewMulti(nil, notify.NewTelegramGroup(e.group, -1)),
		WithClock(func() time.Time { return at }),
		WithIDs(func() string { return "APP-00000001" }),
	)
	id, err := f.Finalize(ctx, s, who)
	require.NoError(t, err)
	assert.Equal(t, "APP-00000001", id)

	app, err := e.records.ApplicationByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, at, app.SubmittedAt)
	assert.Equal(t, "answer email", app.Answer(hiring.KeyEmail))
	assert.Equal(t, "voice-1", app.VoiceFileID)

	assert.Equal(t, session.FlowIdle, s.Flow)
	assert.Empty(t, s.Answers)
	assert.True(t, s.IsCandidate)
	assert.Equal(t, i18n.EN, s.Language)
	_, ok := e.sessions.Load(ctx, 42)
	assert.False(t, ok)

	msgs := e.group.To(-1)
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[0].Text, "APP-00000001")
	assert.Equal(t, "forward", msgs[1].Action)
}

func TestFinalizeFailureKeepsSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	s := confirmingSession(t, e.sessions)
	before := s.Clone()

	f := New(brokenLog{err: errors.New("disk full")}, e.sessions, notify.NewMulti(nil, notify.NewTelegramGroup(e.group, -1)))
	id, err := f.Finalize(ctx, s, who)
	require.ErrorIs(t, err, ErrPersist)
	assert.NotEmpty(t, id)

	assert.Equal(t, before, s)
	assert.Equal(t, session.FlowConfirm, s.Flow)
	assert.Len(t, s.Answers, hiring.Count)
	_, ok := e.sessions.Load(ctx, 42)
	assert.True(t, ok, "snapshot must survive a failed commit")
	assert.Empty(t, e.group.Messages(), "nothing is announced before the record is durable")
}

func TestFinalizeSurvivesNotifierFailures(t *testing.T) {
	e := newEnv(t)
	e.group.Fail["text"] = errors.New("chat not found")
	e.group.Fail["forward"] = errors.New("forbidden")
	e.group.Fail["voice"] = errors.New("bad file")
	s := confirmingSession(t, e.sessions)

	f := New(e.records, e.sessions, notify.NewMulti(nil, notify.NewTelegramGroup(e.group, -1)))
	id, err := f.Finalize(context.Background(), s, who)
	require.NoError(t, err)
	assert.Equal(t, session.FlowIdle, s.Flow)

	apps, err := e.records.Applications(context.Background(), storage.Query{})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, id, apps[0].ID)
}

func TestSubmitContact(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	s := session.New(42)
	s.Language = i18n.FA

	f := New(e.records, e.sessions, notify.NewMulti(nil, notify.NewTelegramGroup(e.group, -1)))
	require.NoError(t, f.SubmitContact(ctx, s, who, "سلام"))

	msgs, err := e.records.Contacts(ctx, storage.Query{UserID: 42})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "سلام", msgs[0].Message)
	assert.Equal(t, i18n.FA, msgs[0].Language)
	assert.Contains(t, e.group.Last().Text, "سلام")

	err = New(brokenLog{err: errors.New("ro fs")}, e.sessions, nil).SubmitContact(ctx, s, who, "x")
	assert.ErrorIs(t, err, ErrPersist)
}
