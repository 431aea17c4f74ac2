package app

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/codexs/hirebot/core/config"
	"github.com/codexs/hirebot/internal/chat/chattest"
	"github.com/codexs/hirebot/internal/config"
	"github.com/codexs/hirebot/internal/conversation"
	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
	"github.com/codexs/hirebot/internal/session"

	tele "gopkg.in/telebot.v4"
)

const (
	adminID   int64 = 1
	userID    int64 = 7
	groupChat int64 = -100
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.Telegram.AdminIDs = []int64{adminID}
	cfg.Telegram.GroupChatID = groupChat
	cfg.Storage.DataDir = t.TempDir()
	require.NoError(t, config.Normalize(cfg))
	return cfg
}

func newTestApp(t *testing.T) (*App, *chattest.Recorder) {
	t.Helper()
	out := chattest.New()
	a, err := New(testConfig(t), Deps{Sender: out, Files: out, Metrics: prometheus.NewRegistry()})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, out
}

func private(uid int64, text, payload string) tele.Context {
	return tele.NewContext(nil, tele.Update{
		ID: 10,
		Message: &tele.Message{
			ID:      3,
			Sender:  &tele.User{ID: uid, FirstName: "Sara", Username: "sara"},
			Chat:    &tele.Chat{ID: uid, Type: tele.ChatPrivate},
			Text:    text,
			Payload: payload,
		},
	})
}

func TestNewRequiresTransport(t *testing.T) {
	_, err := New(testConfig(t), Deps{})
	assert.Error(t, err)
	_, err = New(nil, Deps{})
	assert.Error(t, err)
}

func TestExemptKinds(t *testing.T) {
	assert.Empty(t, exemptKinds(nil))
	got := exemptKinds([]string{coreconfig.UpdateVoice, coreconfig.UpdateCommand})
	assert.Equal(t, []conversation.Kind{
		conversation.KindVoice,
		conversation.KindStart,
		conversation.KindMenu,
		conversation.KindHelp,
		conversation.KindStatus,
		conversation.KindCommands,
	}, got)
}

func TestRoutesCoverCommandsAndMessages(t *testing.T) {
	a, _ := newTestApp(t)
	routes := a.Routes(a.Handlers().Registry())

	endpoints := map[any]bool{}
	for _, r := range routes {
		require.NotNil(t, r.Handler)
		endpoints[r.Endpoint] = true
	}
	for _, e := range []any{
		"/start", "/menu", "/cancel", "/help", "/status", "/commands",
		"/admin", "/botstatus", "/adminstatus", "/stats", "/sessions", "/cleanup", "/debug", "/testgroup",
		"/daily", "/report", "/gstats", "/recent", "/app", "/ghelp",
		tele.OnText, tele.OnVoice, tele.OnAudio, tele.OnContact, tele.OnLocation,
	} {
		assert.True(t, endpoints[e], "missing endpoint %v", e)
	}
}

func TestStartCommandReachesEngine(t *testing.T) {
	a, out := newTestApp(t)
	reg := a.Handlers().Registry()
	_, cmd, ok := reg.LookupCommand("/start")
	require.True(t, ok)

	require.NoError(t, cmd.Handler(private(userID, "/start", "")))
	msgs := out.To(userID)
	require.NotEmpty(t, msgs)
	assert.Contains(t, out.Texts(), hiring.BilingualWelcome)

	require.NoError(t, a.Handlers().Message(private(userID, hiring.LanguageButtons.EN, "")))
	s, ok := a.Engine().Session(userID)
	require.True(t, ok)
	assert.True(t, s.HasLanguage())
}

func TestNotAdminShowsUserID(t *testing.T) {
	a, out := newTestApp(t)
	require.NoError(t, a.Handlers().NotAdmin(private(userID, "/stats", "")))

	last := out.Last()
	assert.Equal(t, userID, last.ChatID)
	assert.Contains(t, last.Text, hiring.AdminAccessDenied.EN)
	assert.Contains(t, last.Text, "<code>7</code>")
}

func TestAdminReplyUsesSessionLanguage(t *testing.T) {
	a, out := newTestApp(t)
	s := session.New(adminID)
	s.Language = i18n.FA
	require.NoError(t, a.sessions.Save(context.Background(), s))

	require.NoError(t, a.Handlers().adminMenu(private(adminID, "/admin", "")))
	assert.Equal(t, hiring.AdminMenu.FA, out.Last().Text)
}

func TestDebugCommand(t *testing.T) {
	a, out := newTestApp(t)
	h := a.Handlers()

	require.NoError(t, h.debug(private(adminID, "/debug", "")))
	assert.Equal(t, hiring.AdminDebugUsage.EN, out.Last().Text)

	require.NoError(t, h.debug(private(adminID, "/debug abc", "abc")))
	assert.Equal(t, hiring.AdminDebugUsage.EN, out.Last().Text)

	require.NoError(t, h.debug(private(adminID, "/debug 42", "42")))
	assert.Equal(t, "No saved session for user 42.", out.Last().Text)
}

func TestTestGroupCommand(t *testing.T) {
	a, out := newTestApp(t)
	require.NoError(t, a.Handlers().testGroup(private(adminID, "/testgroup", "")))

	group := out.To(groupChat)
	require.Len(t, group, 1)
	assert.Equal(t, hiring.AdminTestGroupMsg, group[0].Text)
	assert.Equal(t, hiring.AdminTestGroupOK.EN, out.Last().Text)

	off := NewHandlers(HandlersOptions{Engine: a.Engine(), Reporter: a.reporter, Sender: out})
	require.NoError(t, off.testGroup(private(adminID, "/testgroup", "")))
	assert.Equal(t, hiring.AdminTestGroupOff.EN, out.Last().Text)
}

func TestCleanupCommandUsesArgument(t *testing.T) {
	a, out := newTestApp(t)
	require.NoError(t, a.Handlers().cleanup(private(adminID, "/cleanup 7", "7")))
	assert.Equal(t, "🧹 Removed 0 session snapshots older than 7 days.", out.Last().Text)

	require.NoError(t, a.Handlers().cleanup(private(adminID, "/cleanup", "")))
	assert.Equal(t, "🧹 Removed 0 session snapshots older than 30 days.", out.Last().Text)
}

func TestGroupCommands(t *testing.T) {
	a, out := newTestApp(t)
	in := tele.NewContext(nil, tele.Update{Message: &tele.Message{
		Sender:  &tele.User{ID: adminID},
		Chat:    &tele.Chat{ID: groupChat, Type: tele.ChatSuperGroup},
		Text:    "/app",
		Payload: "",
	}})

	require.NoError(t, a.Handlers().application(in))
	assert.Equal(t, groupChat, out.Last().ChatID)
	assert.Equal(t, hiring.GroupAppUsage.EN, out.Last().Text)

	require.NoError(t, a.Handlers().recent(in))
	assert.Equal(t, hiring.GroupNoRecent.EN, out.Last().Text)

	require.NoError(t, a.Handlers().WrongChat(in))
	assert.Equal(t, hiring.GroupOnlyCommand.EN, out.Last().Text)
}
