package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexs/hirebot/core/telegram/middleware"
	"github.com/codexs/hirebot/internal/chat"

	tele "gopkg.in/telebot.v4"
)

type sent struct {
	to   tele.Recipient
	what interface{}
	opts []interface{}
}

type fakeBot struct {
	sends    []sent
	forwards []tele.Editable
	err      error
	files    map[string]tele.File
}

func (f *fakeBot) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sends = append(f.sends, sent{to: to, what: what, opts: opts})
	return &tele.Message{ID: len(f.sends)}, nil
}

func (f *fakeBot) Forward(to tele.Recipient, msg tele.Editable, opts ...interface{}) (*tele.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.forwards = append(f.forwards, msg)
	return &tele.Message{}, nil
}

func (f *fakeBot) FileByID(id string) (tele.File, error) {
	file, ok := f.files[id]
	if !ok {
		return tele.File{}, errors.New("telegram: file not found (400)")
	}
	return file, nil
}

func (f *fakeBot) Download(file *tele.File, dst string) error {
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dst, []byte(file.FileID), 0o644)
}

func markupOf(opts []interface{}) *tele.ReplyMarkup {
	for _, o := range opts {
		if m, ok := o.(*tele.ReplyMarkup); ok {
			return m
		}
	}
	return nil
}

func TestTelegramSendText(t *testing.T) {
	bot := &fakeBot{}
	tgm := newTelegram(bot, "", "123:abc")
	ctx := middleware.WithCounters(context.Background())

	kb := chat.Rows([]string{"A", "B"})
	kb.AppendButton(chat.Button{Text: "Share", RequestContact: true})
	id, err := tgm.SendText(ctx, 42, "<b>hi</b>", kb)
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	require.Len(t, bot.sends, 1)
	assert.Equal(t, "42", bot.sends[0].to.Recipient())
	assert.Equal(t, "<b>hi</b>", bot.sends[0].what)
	m := markupOf(bot.sends[0].opts)
	require.NotNil(t, m)
	require.Len(t, m.ReplyKeyboard, 2)
	assert.Equal(t, "B", m.ReplyKeyboard[0][1].Text)
	assert.True(t, m.ReplyKeyboard[1][0].Contact)
	assert.True(t, m.ResizeKeyboard)

	_, err = tgm.SendText(ctx, 42, "bye", chat.RemoveKeyboard)
	require.NoError(t, err)
	assert.True(t, markupOf(bot.sends[1].opts).RemoveKeyboard)

	_, err = tgm.SendText(ctx, 42, "plain", nil)
	require.NoError(t, err)
	assert.Nil(t, markupOf(bot.sends[2].opts))

	msgs, hasKB := middleware.Counters(ctx)
	assert.Equal(t, 3, msgs)
	assert.True(t, hasKB)
}

func TestTelegramMedia(t *testing.T) {
	bot := &fakeBot{files: map[string]tele.File{"voice-1": {FileID: "voice-1", FilePath: "voice/file_1.oga"}}}
	tgm := newTelegram(bot, "https://tg.local/", "123:abc")
	ctx := context.Background()

	require.NoError(t, tgm.SendPhoto(ctx, 1, chat.Photo{URL: "https://img/landing.png"}, "cap", nil))
	photo, ok := bot.sends[0].what.(*tele.Photo)
	require.True(t, ok)
	assert.Equal(t, "https://img/landing.png", photo.FileURL)
	assert.Equal(t, "cap", photo.Caption)
	assert.Error(t, tgm.SendPhoto(ctx, 1, chat.Photo{}, "", nil))

	require.NoError(t, tgm.SendVoice(ctx, 1, "voice-1", "sample"))
	voice, ok := bot.sends[1].what.(*tele.Voice)
	require.True(t, ok)
	assert.Equal(t, "voice-1", voice.FileID)

	require.NoError(t, tgm.Forward(ctx, -100, 7, 55))
	require.Len(t, bot.forwards, 1)
	msgID, chatID := bot.forwards[0].MessageSig()
	assert.Equal(t, "55", msgID)
	assert.Equal(t, int64(7), chatID)

	url, err := tgm.FileURL(ctx, "voice-1")
	require.NoError(t, err)
	assert.Equal(t, "https://tg.local/file/bot123:abc/voice/file_1.oga", url)
	_, err = tgm.FileURL(ctx, "missing")
	assert.Error(t, err)

	dst := filepath.Join(t.TempDir(), "nested", "v.ogg")
	require.NoError(t, tgm.Download(ctx, "voice-1", dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "voice-1", string(data))
}

func TestTelegramErrorsAreRedacted(t *testing.T) {
	cause := errors.New(`Post "https://api.telegram.org/bot123:SECRET/sendMessage": EOF`)
	tgm := newTelegram(&fakeBot{err: cause}, "", "123:SECRET")

	_, err := tgm.SendText(context.Background(), 1, "x", nil)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET")
	assert.Contains(t, err.Error(), "bot<redacted>")
	assert.ErrorIs(t, err, cause)
}

func TestTelegramCanceledContext(t *testing.T) {
	bot := &fakeBot{}
	tgm := newTelegram(bot, "", "t")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tgm.SendText(ctx, 1, "x", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, bot.sends)
}
