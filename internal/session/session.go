// Package session models the per-user conversation state and its snapshot
// form. It performs no I/O.
package session

import (
	"strings"
	"time"

	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
)

// Flow is the top-level conversational mode.
type Flow string

const (
	FlowIdle           Flow = "IDLE"
	FlowApply          Flow = "APPLY"
	FlowConfirm        Flow = "CONFIRM"
	FlowContactMessage Flow = "CONTACT_MESSAGE"
)

// ParseFlow maps a stored flow name to a Flow.
func ParseFlow(name string) (Flow, bool) {
	switch f := Flow(strings.ToUpper(strings.TrimSpace(name))); f {
	case FlowIdle, FlowApply, FlowConfirm, FlowContactMessage:
		return f, true
	}
	return FlowIdle, false
}

const (
	// AIMaxReplies is the AI fallback quota per window.
	AIMaxReplies = 5
	// AIWindow is the rolling window of the AI fallback quota.
	AIWindow = 10 * time.Minute
)

// Session is the state of one user's conversation.
type Session struct {
	UserID   int64
	Language i18n.Language
	Flow     Flow

	QuestionIndex int
	Answers       map[string]*string

	WaitingVoice   bool
	VoiceFilePath  string
	VoiceFileID    string
	VoiceMessageID int
	UserChatID     int64
	VoiceSkipped   bool

	EditMode              bool
	AwaitingEditSelection bool

	ContactPending       bool
	ContactReviewPending bool
	ContactMessageDraft  string

	ExitConfirmationPending bool
	ExitConfirmationFlow    Flow

	// Resume* hold the form state parked while the resume prompt is shown.
	ResumeOriginalFlow    Flow
	ResumeWaitingVoice    bool
	ResumeEditMode        bool
	ResumeAwaitingEditSel bool

	AwaitingViewRoles bool
	LastMenuChoice    string

	AIReplyCount  int
	AIWindowStart time.Time

	IsCandidate bool
	UpdatedAt   time.Time
}

// New returns an idle session with no language chosen.
func New(userID int64) *Session {
	return &Session{UserID: userID, Flow: FlowIdle, Answers: map[string]*string{}}
}

// HasLanguage reports whether the user picked a language.
func (s *Session) HasLanguage() bool { return s.Language.Valid() }

func (s *Session) clearVoice() {
	s.WaitingVoice = false
	s.VoiceFilePath = ""
	s.VoiceFileID = ""
	s.VoiceMessageID = 0
	s.UserChatID = 0
	s.VoiceSkipped = false
}

// ClearContact drops every contact sub-flow field.
func (s *Session) ClearContact() {
	s.ContactPending = false
	s.ContactReviewPending = false
	s.ContactMessageDraft = ""
}

func (s *Session) clearForm() {
	s.QuestionIndex = 0
	s.Answers = map[string]*string{}
	s.clearVoice()
	s.EditMode = false
	s.AwaitingEditSelection = false
	s.ClearContact()
	s.CancelExitConfirmation()
	s.clearParked()
	s.AwaitingViewRoles = false
}

func (s *Session) clearParked() {
	s.ResumeOriginalFlow = ""
	s.ResumeWaitingVoice = false
	s.ResumeEditMode = false
	s.ResumeAwaitingEditSel = false
}

// ResetHiring returns to IDLE and wipes every apply, contact, edit and voice
// sub-state. Language and AI quota are kept.
func (s *Session) ResetHiring() {
	s.clearForm()
	s.Flow = FlowIdle
	s.LastMenuChoice = ""
}

// StartHiring enters APPLY at the first question with a clean form.
func (s *Session) StartHiring() {
	s.clearForm()
	s.Flow = FlowApply
	s.LastMenuChoice = "apply"
}

func (s *Session) MarkVoiceWait()   { s.WaitingVoice = true }
func (s *Session) FinishVoiceWait() { s.WaitingVoice = false }

// ClearVoiceArtifacts forgets a received voice sample before a re-record.
func (s *Session) ClearVoiceArtifacts() { s.clearVoice() }

// RequestExitConfirmation records the flow that a confirmed exit discards.
func (s *Session) RequestExitConfirmation(flow Flow) {
	s.ExitConfirmationPending = true
	s.ExitConfirmationFlow = flow
}

func (s *Session) CancelExitConfirmation() {
	s.ExitConfirmationPending = false
	s.ExitConfirmationFlow = ""
}

// HasIncompleteApplication decides whether a stored session is worth a
// resume prompt. While the prompt is shown the parked flow is evaluated.
func (s *Session) HasIncompleteApplication() bool {
	flow, waiting := s.Flow, s.WaitingVoice
	if s.Flow == FlowIdle && s.ResumeOriginalFlow != "" {
		flow, waiting = s.ResumeOriginalFlow, s.ResumeWaitingVoice
	}
	has := len(s.Answers) > 0
	return (flow == FlowApply && s.QuestionIndex > 0 && has) ||
		(flow == FlowConfirm && has) ||
		(waiting && has)
}

// InResumePrompt reports whether the next input answers the resume question.
func (s *Session) InResumePrompt() bool {
	return s.Flow == FlowIdle && s.ResumeOriginalFlow != "" && s.HasIncompleteApplication()
}

// ParkForResume moves the live flow aside so the session idles while the
// user is asked whether to resume. Voice wait and edit state are parked too
// so none of them outlives its flow.
func (s *Session) ParkForResume() {
	s.ResumeOriginalFlow = s.Flow
	s.ResumeWaitingVoice = s.WaitingVoice
	s.ResumeEditMode = s.EditMode
	s.ResumeAwaitingEditSel = s.AwaitingEditSelection
	s.Flow = FlowIdle
	s.WaitingVoice = false
	s.EditMode = false
	s.AwaitingEditSelection = false
	s.CancelExitConfirmation()
}

// Unpark restores the flow parked by ParkForResume and returns it.
func (s *Session) Unpark() Flow {
	flow := s.ResumeOriginalFlow
	if flow == "" {
		flow = FlowIdle
	}
	s.Flow = flow
	s.WaitingVoice = s.ResumeWaitingVoice && flow == FlowApply
	s.EditMode = s.ResumeEditMode && (flow == FlowApply || flow == FlowConfirm)
	s.AwaitingEditSelection = s.ResumeAwaitingEditSel && flow == FlowConfirm
	s.clearParked()
	return flow
}

// NeedsExitConfirmation reports whether leaving now would discard work.
func (s *Session) NeedsExitConfirmation() bool {
	switch s.Flow {
	case FlowApply, FlowConfirm, FlowContactMessage:
		return true
	}
	return s.WaitingVoice || s.ContactPending || s.AwaitingEditSelection
}

// AnsweredCount counts non-empty answers.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, v := range s.Answers {
		if v != nil && strings.TrimSpace(*v) != "" {
			n++
		}
	}
	return n
}

// SetAnswer stores value for key; nil marks an explicit skip.
func (s *Session) SetAnswer(key string, value *string) {
	if s.Answers == nil {
		s.Answers = map[string]*string{}
	}
	s.Answers[key] = value
}

// Answer returns the stored value for key, or "" when absent or skipped.
func (s *Session) Answer(key string) string {
	if v := s.Answers[key]; v != nil {
		return *v
	}
	return ""
}

// CurrentQuestion returns the question under the cursor, if in range.
func (s *Session) CurrentQuestion() (hiring.Question, bool) {
	if s.QuestionIndex < 0 || s.QuestionIndex >= hiring.Count {
		return hiring.Question{}, false
	}
	return hiring.Questions[s.QuestionIndex], true
}

// AllowAIReply rolls the AI window forward and reports whether another AI
// reply fits the quota.
func (s *Session) AllowAIReply(now time.Time) bool {
	if s.AIWindowStart.IsZero() || now.Sub(s.AIWindowStart) > AIWindow {
		s.AIWindowStart = now
		s.AIReplyCount = 0
	}
	return s.AIReplyCount < AIMaxReplies
}

func (s *Session) RecordAIReply() { s.AIReplyCount++ }

// Sanitize repairs invariant violations in place and returns a short
// description of each repair.
func (s *Session) Sanitize() []string {
	var fixed []string
	if s.Answers == nil {
		s.Answers = map[string]*string{}
	}
	for k := range s.Answers {
		if !hiring.ValidKey(k) {
			delete(s.Answers, k)
			fixed = append(fixed, "unknown_answer_key")
		}
	}
	if s.Flow == FlowApply && (s.QuestionIndex < 0 || s.QuestionIndex >= hiring.Count) {
		s.QuestionIndex = 0
		if s.WaitingVoice {
			s.QuestionIndex = hiring.Count - 1
		}
		fixed = append(fixed, "question_index_out_of_range")
	}
	if s.WaitingVoice && s.Flow != FlowApply {
		s.WaitingVoice = false
		fixed = append(fixed, "waiting_voice_outside_apply")
	}
	if s.Flow == FlowContactMessage {
		if s.ContactReviewPending && s.ContactMessageDraft == "" {
			s.ContactReviewPending = false
			fixed = append(fixed, "review_without_draft")
		}
	} else if s.ContactPending || s.ContactReviewPending || s.ContactMessageDraft != "" {
		s.ClearContact()
		fixed = append(fixed, "contact_state_outside_contact_flow")
	}
	if s.EditMode && s.Flow != FlowApply && s.Flow != FlowConfirm {
		s.EditMode = false
		fixed = append(fixed, "edit_mode_outside_form")
	}
	if s.AwaitingEditSelection && s.Flow != FlowConfirm {
		s.AwaitingEditSelection = false
		fixed = append(fixed, "edit_selection_outside_confirm")
	}
	return fixed
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	c.Answers = make(map[string]*string, len(s.Answers))
	for k, v := range s.Answers {
		if v == nil {
			c.Answers[k] = nil
			continue
		}
		val := *v
		c.Answers[k] = &val
	}
	return &c
}

// AnswersCopy returns a deep copy of the answers.
func (s *Session) AnswersCopy() map[string]*string {
	return s.Clone().Answers
}
