package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
	"github.com/codexs/hirebot/internal/session"
)

type fakeCompleter struct {
	resp     *openai.ChatCompletion
	err      error
	block    bool
	got      openai.ChatCompletionNewParams
	deadline time.Duration
}

func (f *fakeCompleter) New(ctx context.Context, body openai.ChatCompletionNewParams, _ ...option.RequestOption) (*openai.ChatCompletion, error) {
	f.got = body
	if dl, ok := ctx.Deadline(); ok {
		f.deadline = time.Until(dl)
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.resp, f.err
}

func completion(text string) *openai.ChatCompletion {
	return &openai.ChatCompletion{Choices: []openai.ChatCompletionChoice{
		{Message: openai.ChatCompletionMessage{Content: text}},
	}}
}

func TestReplySuccess(t *testing.T) {
	fc := &fakeCompleter{resp: completion("  Remote is fine.  ")}
	r := newOpenAI(fc, "", 0)

	reply, ok := r.Reply(context.Background(), i18n.EN, "User is at the main menu.", "is remote ok?")
	require.True(t, ok)
	assert.Equal(t, "Remote is fine.", reply)
	assert.Equal(t, openai.ChatModel(DefaultModel), fc.got.Model)
	assert.Len(t, fc.got.Messages, 2)
	assert.InDelta(t, MaxTimeout.Seconds(), fc.deadline.Seconds(), 1)
}

func TestReplyFailuresYieldNoReply(t *testing.T) {
	cases := map[string]*fakeCompleter{
		"error":      {err: errors.New("503")},
		"no choices": {resp: &openai.ChatCompletion{}},
		"empty":      {resp: completion("   ")},
	}
	for name, fc := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := newOpenAI(fc, "gpt-test", 10*time.Second).Reply(context.Background(), i18n.FA, "", "چرا؟")
			assert.False(t, ok)
		})
	}
}

func TestReplyHonorsCallerCancellation(t *testing.T) {
	fc := &fakeCompleter{block: true}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, ok := newOpenAI(fc, "", 0).Reply(ctx, i18n.EN, "", "hello?")
	assert.False(t, ok)
}

func TestClampTimeout(t *testing.T) {
	assert.Equal(t, MaxTimeout, ClampTimeout(0))
	assert.Equal(t, MinTimeout, ClampTimeout(time.Second))
	assert.Equal(t, 12*time.Second, ClampTimeout(12*time.Second))
	assert.Equal(t, MaxTimeout, ClampTimeout(time.Minute))
}

func TestNewOpenAIWithoutKeyIsDisabled(t *testing.T) {
	r := NewOpenAI(Options{})
	_, ok := r.Reply(context.Background(), i18n.EN, "", "hi?")
	assert.False(t, ok)
	assert.IsType(t, Disabled{}, r)
}

func TestContextFor(t *testing.T) {
	s := session.New(1)
	s.Language = i18n.EN
	s.StartHiring()
	s.QuestionIndex = 2
	v := "Ada"
	s.SetAnswer(hiring.KeyFullName, &v)

	out := ContextFor(s)
	assert.Contains(t, out, "question 3/12")
	assert.Contains(t, out, "Last selected focus: applications and open roles.")
	assert.Contains(t, out, "1 answers saved so far.")
	assert.Contains(t, out, "Current question (contact):")

	s.MarkVoiceWait()
	out = ContextFor(s)
	assert.Contains(t, out, "voice sample")
	assert.NotContains(t, out, "Current question")
}
