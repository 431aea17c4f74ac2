package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
)

func ptr(s string) *string { return &s }

func TestStartAndResetHiring(t *testing.T) {
	s := New(7)
	s.Language = i18n.EN
	s.ContactPending = true
	s.StartHiring()
	assert.Equal(t, FlowApply, s.Flow)
	assert.Equal(t, 0, s.QuestionIndex)
	assert.Equal(t, "apply", s.LastMenuChoice)
	assert.False(t, s.ContactPending)

	s.SetAnswer(hiring.KeyFullName, ptr("Ada"))
	s.MarkVoiceWait()
	s.VoiceFileID = "f1"
	s.ResetHiring()
	assert.Equal(t, FlowIdle, s.Flow)
	assert.Empty(t, s.Answers)
	assert.False(t, s.WaitingVoice)
	assert.Empty(t, s.VoiceFileID)
	assert.Equal(t, i18n.EN, s.Language, "language survives a reset")
}

func TestHasIncompleteApplication(t *testing.T) {
	s := New(1)
	assert.False(t, s.HasIncompleteApplication())

	s.Flow = FlowApply
	s.SetAnswer(hiring.KeyFullName, ptr("Ada"))
	assert.False(t, s.HasIncompleteApplication(), "index 0 is not worth resuming")
	s.QuestionIndex = 1
	assert.True(t, s.HasIncompleteApplication())

	s.Flow = FlowConfirm
	assert.True(t, s.HasIncompleteApplication())
}

func TestParkAndUnpark(t *testing.T) {
	s := New(1)
	s.Flow = FlowApply
	s.QuestionIndex = hiring.Count - 1
	s.SetAnswer(hiring.KeyFullName, ptr("Ada"))
	s.MarkVoiceWait()

	s.ParkForResume()
	assert.Equal(t, FlowIdle, s.Flow)
	assert.False(t, s.WaitingVoice)
	assert.True(t, s.InResumePrompt())
	assert.Empty(t, s.Sanitize(), "parked session satisfies the invariants")

	assert.Equal(t, FlowApply, s.Unpark())
	assert.True(t, s.WaitingVoice)
	assert.False(t, s.InResumePrompt())
}

func TestParkKeepsEditStateAside(t *testing.T) {
	s := New(1)
	s.Flow = FlowConfirm
	s.SetAnswer(hiring.KeyFullName, ptr("Ada"))
	s.EditMode = true
	s.AwaitingEditSelection = true

	s.ParkForResume()
	assert.Equal(t, FlowIdle, s.Flow)
	assert.False(t, s.EditMode)
	assert.False(t, s.AwaitingEditSelection)
	assert.Empty(t, s.Sanitize())

	data, err := Marshal(s)
	require.NoError(t, err)
	restored, err := Unmarshal(1, data)
	require.NoError(t, err)
	assert.True(t, restored.InResumePrompt())

	assert.Equal(t, FlowConfirm, restored.Unpark())
	assert.True(t, restored.EditMode)
	assert.True(t, restored.AwaitingEditSelection)
	assert.Empty(t, restored.Sanitize())
}

func TestNeedsExitConfirmation(t *testing.T) {
	s := New(1)
	assert.False(t, s.NeedsExitConfirmation())
	s.Flow = FlowContactMessage
	assert.True(t, s.NeedsExitConfirmation())
}

func TestAIQuota(t *testing.T) {
	s := New(1)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < AIMaxReplies; i++ {
		require.True(t, s.AllowAIReply(now))
		s.RecordAIReply()
	}
	assert.False(t, s.AllowAIReply(now.Add(time.Minute)))
	assert.True(t, s.AllowAIReply(now.Add(AIWindow+time.Second)), "window rolls over")
}

func TestSanitize(t *testing.T) {
	s := New(1)
	s.Flow = FlowIdle
	s.WaitingVoice = true
	s.EditMode = true
	s.AwaitingEditSelection = true
	s.ContactMessageDraft = "hi"
	s.SetAnswer("bogus", ptr("x"))

	fixed := s.Sanitize()
	assert.Len(t, fixed, 5)
	assert.False(t, s.WaitingVoice)
	assert.False(t, s.EditMode)
	assert.False(t, s.AwaitingEditSelection)
	assert.Empty(t, s.ContactMessageDraft)
	assert.NotContains(t, s.Answers, "bogus")

	s = New(2)
	s.Flow = FlowApply
	s.QuestionIndex = 40
	s.Sanitize()
	assert.Equal(t, 0, s.QuestionIndex)

	s = New(3)
	s.Flow = FlowContactMessage
	s.ContactReviewPending = true
	s.Sanitize()
	assert.False(t, s.ContactReviewPending)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := New(42)
	s.Language = i18n.FA
	s.StartHiring()
	s.QuestionIndex = 3
	s.SetAnswer(hiring.KeyFullName, ptr("سارا"))
	s.SetAnswer(hiring.KeySalary, nil)
	s.VoiceMessageID = 99

	data, err := Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"flow": "APPLY"`)
	assert.Contains(t, string(data), `"language": "fa"`)

	got, err := Unmarshal(42, data)
	require.NoError(t, err)
	assert.Equal(t, s.Flow, got.Flow)
	assert.Equal(t, s.Language, got.Language)
	assert.Equal(t, 3, got.QuestionIndex)
	assert.Equal(t, "سارا", got.Answer(hiring.KeyFullName))
	assert.Contains(t, got.Answers, hiring.KeySalary)
	assert.Nil(t, got.Answers[hiring.KeySalary])
	assert.Equal(t, 99, got.VoiceMessageID)
}

func TestUnmarshalDegradesBadEnums(t *testing.T) {
	got, err := Unmarshal(1, []byte(`{"language":"klingon","flow":"WARP","question_index":2}`))
	require.NoError(t, err)
	assert.False(t, got.HasLanguage())
	assert.Equal(t, FlowIdle, got.Flow)

	_, err = Unmarshal(1, []byte(`{"language":`))
	assert.Error(t, err)
}
