package telegram

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/codexs/hirebot/core/config"
	"github.com/codexs/hirebot/core/telegram/commands"
)

func noop(tele.Context) error { return nil }

func testRegistry() *Registry {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Start"})
	reg.RegisterCommand("/menu", commands.Command{Handler: noop, Description: "Menu", Aliases: []string{"cancel"}})
	reg.RegisterCommand("/stats", commands.Command{Handler: noop, Description: "Stats", Scope: commands.ScopeAdmin})
	reg.RegisterCommand("/daily", commands.Command{Handler: noop, Description: "Daily", Scope: commands.ScopeGroup})
	reg.RegisterCommand("/secret", commands.Command{Handler: noop, Description: "Hidden", Hidden: true})
	return reg
}

func TestRegistryRejectsInvalidAndDuplicates(t *testing.T) {
	reg := testRegistry()
	reg.RegisterCommand("start", commands.Command{Handler: noop, Description: "x"})
	reg.RegisterCommand("/nodesc", commands.Command{Handler: noop})
	reg.RegisterCommand("/cancel", commands.Command{Handler: noop, Description: "dup alias"})
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "dup"})

	assert.Len(t, reg.Commands(), 5)
	assert.Equal(t, "Start", reg.Commands()["/start"].Description)
}

func TestLookupCommand(t *testing.T) {
	reg := testRegistry()

	key, cmd, ok := reg.LookupCommand("cancel")
	require.True(t, ok)
	assert.Equal(t, "/menu", key)
	assert.Equal(t, "Menu", cmd.Description)

	_, _, ok = reg.LookupCommand("/nope")
	assert.False(t, ok)
}

func TestListCommandsByScope(t *testing.T) {
	reg := testRegistry()
	user := reg.ListCommands(commands.ScopeUser)
	require.Len(t, user, 2)
	assert.Equal(t, "menu", user[0].Text)
	assert.Equal(t, "start", user[1].Text)

	assert.Equal(t, []tele.Command{{Text: "stats", Description: "Stats"}}, reg.ListCommands(commands.ScopeAdmin))
	assert.Equal(t, []tele.Command{{Text: "daily", Description: "Daily"}}, reg.ListCommands(commands.ScopeGroup))
}

type fakeSetter struct {
	calls []tele.CommandScope
	sizes []int
}

func (f *fakeSetter) SetCommands(opts ...interface{}) error {
	for _, o := range opts {
		switch v := o.(type) {
		case []tele.Command:
			f.sizes = append(f.sizes, len(v))
		case tele.CommandScope:
			f.calls = append(f.calls, v)
		}
	}
	return nil
}

func TestSetupCommands(t *testing.T) {
	f := &fakeSetter{}
	SetupCommands(f, testRegistry(), CommandTargets{AdminIDs: []int64{10, 11}, GroupChatID: -100})

	require.Len(t, f.calls, 4)
	assert.EqualValues(t, tele.CommandScopeAllPrivateChats, f.calls[0].Type)
	assert.Equal(t, int64(10), f.calls[1].ChatID)
	assert.Equal(t, int64(11), f.calls[2].ChatID)
	assert.Equal(t, int64(-100), f.calls[3].ChatID)
	assert.Equal(t, []int{2, 3, 3, 1}, f.sizes)
}

func TestSetupCommandsWithoutGroup(t *testing.T) {
	f := &fakeSetter{}
	SetupCommands(f, testRegistry(), CommandTargets{})
	assert.Len(t, f.calls, 1)
}

type flakyTransport struct {
	fails int
	calls int
}

func (f *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.calls++
	if f.calls <= f.fails {
		return nil, &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	}
	return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: req}, nil
}

func TestRetryTransport(t *testing.T) {
	base := &flakyTransport{fails: 2}
	rt := &retryTransport{base: base, maxRetries: 3, backoff: time.Millisecond}

	req, err := http.NewRequest(http.MethodPost, "https://api.telegram.org/botX/sendMessage", strings.NewReader("a=b"))
	require.NoError(t, err)
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, base.calls)
}

func TestRetryTransportGivesUp(t *testing.T) {
	base := &flakyTransport{fails: 10}
	rt := &retryTransport{base: base, maxRetries: 1, backoff: time.Millisecond}

	req, err := http.NewRequest(http.MethodGet, "https://example.com", nil)
	require.NoError(t, err)
	_, err = rt.RoundTrip(req)
	require.Error(t, err)
	assert.Equal(t, 2, base.calls)
}

func TestRetryTransportCannotReplayBody(t *testing.T) {
	base := &flakyTransport{fails: 10}
	rt := &retryTransport{base: base, maxRetries: 3, backoff: time.Millisecond}

	req, err := http.NewRequest(http.MethodPost, "https://example.com", strings.NewReader("a=b"))
	require.NoError(t, err)
	req.GetBody = nil
	_, err = rt.RoundTrip(req)
	assert.ErrorIs(t, err, errBodyConsumed)
	assert.Equal(t, 1, base.calls)
}

func TestBuildHTTPClientDefaults(t *testing.T) {
	c := BuildHTTPClient(ClientOptions{})
	assert.Equal(t, defaultClientTimeout, c.Timeout)
	rt, ok := c.Transport.(*retryTransport)
	require.True(t, ok)
	assert.Equal(t, defaultRetryAttempts, rt.maxRetries)

	noRetry := BuildHTTPClient(ClientOptions{MaxRetries: -1, Timeout: time.Second})
	assert.Zero(t, noRetry.Transport.(*retryTransport).maxRetries)
}

func TestNewPoller(t *testing.T) {
	lp, ok := NewPoller(nil).(*tele.LongPoller)
	require.True(t, ok)
	assert.Equal(t, 10*time.Second, lp.Timeout)
	assert.Equal(t, []string{"message"}, lp.AllowedUpdates)

	cfg := &coreconfig.Config{}
	cfg.Telegram.LongPollTimeoutSeconds = 25
	lp = NewPoller(cfg).(*tele.LongPoller)
	assert.Equal(t, 25*time.Second, lp.Timeout)

	cfg.Telegram.RunMode = coreconfig.RunModeWebhook
	cfg.Telegram.DropPending = true
	cfg.Webhook = coreconfig.WebhookConfig{Listen: "0.0.0.0", Port: 8443, URL: "https://bot.example", SecretToken: "s3cret"}
	wh, ok := NewPoller(cfg).(*tele.Webhook)
	require.True(t, ok)
	assert.Equal(t, "0.0.0.0:8443", wh.Listen)
	assert.Equal(t, "https://bot.example", wh.Endpoint.PublicURL)
	assert.Equal(t, "s3cret", wh.SecretToken)
	assert.True(t, wh.DropUpdates)
}

func TestDefaultMiddlewaresDropBots(t *testing.T) {
	mws := DefaultMiddlewares()
	require.Len(t, mws, 2)

	calls := 0
	h := func(tele.Context) error { calls++; return nil }
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i].Use(h)
	}

	chat := &tele.Chat{ID: 1, Type: tele.ChatPrivate}
	human := tele.NewContext(nil, tele.Update{Message: &tele.Message{Sender: &tele.User{ID: 1}, Chat: chat}})
	bot := tele.NewContext(nil, tele.Update{Message: &tele.Message{Sender: &tele.User{ID: 2, IsBot: true}, Chat: chat}})
	require.NoError(t, h(human))
	require.NoError(t, h(bot))
	assert.Equal(t, 1, calls)
}
