package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReply(t *testing.T) {
	m := Reply(true,
		[]Button{{Text: "📱 Share contact", Contact: true}, {Text: "📍 Location", Location: true}},
		[]Button{{Text: "🔙 Back"}},
	)
	require.Len(t, m.ReplyKeyboard, 2)
	assert.True(t, m.ResizeKeyboard)
	assert.True(t, m.OneTimeKeyboard)

	assert.True(t, m.ReplyKeyboard[0][0].Contact)
	assert.True(t, m.ReplyKeyboard[0][1].Location)
	assert.Equal(t, "🔙 Back", m.ReplyKeyboard[1][0].Text)
	assert.False(t, m.ReplyKeyboard[1][0].Contact)
}

func TestReplyButtonsAndRemove(t *testing.T) {
	m := ReplyButtons([]string{"English", "فارسی"})
	require.Len(t, m.ReplyKeyboard, 1)
	assert.Len(t, m.ReplyKeyboard[0], 2)
	assert.False(t, m.OneTimeKeyboard)

	assert.True(t, RemoveKeyboard().RemoveKeyboard)
}
