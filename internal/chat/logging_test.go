package chat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexs/hirebot/internal/chat"
	"github.com/codexs/hirebot/internal/chat/chattest"
	"github.com/codexs/hirebot/internal/metrics"
)

func TestLoggingSenderPassesThrough(t *testing.T) {
	rec := chattest.New()
	s := chat.NewLoggingSender(rec, metrics.New(prometheus.NewRegistry()))
	ctx := context.Background()

	id, err := s.SendText(ctx, 7, "hello", chat.Rows([]string{"a", "b"}))
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	require.NoError(t, s.SendVoice(ctx, 9, "file-1", "cap"))
	require.NoError(t, s.Forward(ctx, 9, 7, id))
	require.NoError(t, s.SendPhoto(ctx, 7, chat.Photo{URL: "https://x"}, "c", nil))

	msgs := rec.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, []string{"a", "b"}, msgs[0].Keyboard.Labels())
	assert.Equal(t, "voice", msgs[1].Action)
	assert.Equal(t, int64(7), msgs[2].FromChat)
}

func TestLoggingSenderReturnsErrors(t *testing.T) {
	rec := chattest.New()
	rec.Fail["forward"] = errors.New("message can't be forwarded")
	s := chat.NewLoggingSender(rec, nil)

	err := s.Forward(context.Background(), 1, 2, 3)
	assert.EqualError(t, err, "message can't be forwarded")
	assert.Empty(t, rec.Messages())
}

func TestKeyboardHelpers(t *testing.T) {
	kb := chat.Rows([]string{"one"}).AppendButton(chat.Button{Text: "share", RequestContact: true})
	require.Len(t, kb.Rows, 2)
	assert.True(t, kb.Rows[1][0].RequestContact)
	assert.Equal(t, []string{"one", "share"}, kb.Labels())
	assert.Nil(t, (*chat.Keyboard)(nil).Labels())
}
