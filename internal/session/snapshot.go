package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/codexs/hirebot/internal/i18n"
)

// Snapshot is the persisted form of a Session. Enums are stored by name and
// optional identifiers as nullable values.
type Snapshot struct {
	Language                *string            `json:"language"`
	Flow                    *string            `json:"flow"`
	QuestionIndex           int                `json:"question_index"`
	Answers                 map[string]*string `json:"answers"`
	WaitingVoice            bool               `json:"waiting_voice"`
	VoiceFilePath           *string            `json:"voice_file_path"`
	VoiceFileID             *string            `json:"voice_file_id"`
	VoiceMessageID          *int               `json:"voice_message_id"`
	UserChatID              *int64             `json:"user_chat_id"`
	IsCandidate             bool               `json:"is_candidate"`
	EditMode                bool               `json:"edit_mode"`
	ContactPending          bool               `json:"contact_pending"`
	ContactReviewPending    bool               `json:"contact_review_pending"`
	ContactMessageDraft     *string            `json:"contact_message_draft"`
	AwaitingEditSelection   bool               `json:"awaiting_edit_selection"`
	VoiceSkipped            bool               `json:"voice_skipped"`
	ExitConfirmationPending bool               `json:"exit_confirmation_pending"`
	ExitConfirmationFlow    *string            `json:"exit_confirmation_flow"`
	ResumeOriginalFlow      *string            `json:"resume_original_flow"`
	ResumeWaitingVoice      bool               `json:"resume_waiting_voice,omitempty"`
	ResumeEditMode          bool               `json:"resume_edit_mode,omitempty"`
	ResumeAwaitingEditSel   bool               `json:"resume_awaiting_edit_selection,omitempty"`
	AwaitingViewRoles       bool               `json:"awaiting_view_roles"`
	LastMenuChoice          *string            `json:"last_menu_choice"`
	AIReplyCount            int                `json:"ai_reply_count"`
	AIWindowStart           *time.Time         `json:"ai_window_start"`
	UpdatedAt               *time.Time         `json:"updated_at,omitempty"`
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func nonZero[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

// ToSnapshot converts s into its persisted form.
func (s *Session) ToSnapshot() Snapshot {
	snap := Snapshot{
		Language:                strPtr(string(s.Language)),
		Flow:                    strPtr(string(s.Flow)),
		QuestionIndex:           s.QuestionIndex,
		Answers:                 s.AnswersCopy(),
		WaitingVoice:            s.WaitingVoice,
		VoiceFilePath:           strPtr(s.VoiceFilePath),
		VoiceFileID:             strPtr(s.VoiceFileID),
		VoiceMessageID:          nonZero(s.VoiceMessageID),
		UserChatID:              nonZero(s.UserChatID),
		IsCandidate:             s.IsCandidate,
		EditMode:                s.EditMode,
		ContactPending:          s.ContactPending,
		ContactReviewPending:    s.ContactReviewPending,
		ContactMessageDraft:     strPtr(s.ContactMessageDraft),
		AwaitingEditSelection:   s.AwaitingEditSelection,
		VoiceSkipped:            s.VoiceSkipped,
		ExitConfirmationPending: s.ExitConfirmationPending,
		ExitConfirmationFlow:    strPtr(string(s.ExitConfirmationFlow)),
		ResumeOriginalFlow:      strPtr(string(s.ResumeOriginalFlow)),
		ResumeWaitingVoice:      s.ResumeWaitingVoice,
		ResumeEditMode:          s.ResumeEditMode,
		ResumeAwaitingEditSel:   s.ResumeAwaitingEditSel,
		AwaitingViewRoles:       s.AwaitingViewRoles,
		LastMenuChoice:          strPtr(s.LastMenuChoice),
		AIReplyCount:            s.AIReplyCount,
		AIWindowStart:           nonZero(s.AIWindowStart),
		UpdatedAt:               nonZero(s.UpdatedAt),
	}
	return snap
}

// FromSnapshot rebuilds a session. Unknown enum values degrade to safe
// defaults: language unset, flow IDLE.
func FromSnapshot(userID int64, snap Snapshot) *Session {
	s := New(userID)
	if lang, ok := i18n.Parse(deref(snap.Language)); ok {
		s.Language = lang
	}
	if flow, ok := ParseFlow(deref(snap.Flow)); ok {
		s.Flow = flow
	}
	s.QuestionIndex = snap.QuestionIndex
	if snap.Answers != nil {
		s.Answers = snap.Answers
	}
	s.WaitingVoice = snap.WaitingVoice
	s.VoiceFilePath = deref(snap.VoiceFilePath)
	s.VoiceFileID = deref(snap.VoiceFileID)
	s.VoiceMessageID = deref(snap.VoiceMessageID)
	s.UserChatID = deref(snap.UserChatID)
	s.IsCandidate = snap.IsCandidate
	s.EditMode = snap.EditMode
	s.ContactPending = snap.ContactPending
	s.ContactReviewPending = snap.ContactReviewPending
	s.ContactMessageDraft = deref(snap.ContactMessageDraft)
	s.AwaitingEditSelection = snap.AwaitingEditSelection
	s.VoiceSkipped = snap.VoiceSkipped
	s.ExitConfirmationPending = snap.ExitConfirmationPending
	if flow, ok := ParseFlow(deref(snap.ExitConfirmationFlow)); ok {
		s.ExitConfirmationFlow = flow
	}
	if flow, ok := ParseFlow(deref(snap.ResumeOriginalFlow)); ok {
		s.ResumeOriginalFlow = flow
		s.ResumeWaitingVoice = snap.ResumeWaitingVoice
		s.ResumeEditMode = snap.ResumeEditMode
		s.ResumeAwaitingEditSel = snap.ResumeAwaitingEditSel
	}
	s.AwaitingViewRoles = snap.AwaitingViewRoles
	s.LastMenuChoice = deref(snap.LastMenuChoice)
	s.AIReplyCount = snap.AIReplyCount
	s.AIWindowStart = deref(snap.AIWindowStart)
	s.UpdatedAt = deref(snap.UpdatedAt)
	return s
}

// Marshal encodes s as an indented JSON snapshot.
func Marshal(s *Session) ([]byte, error) {
	data, err := json.MarshalIndent(s.ToSnapshot(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal session %d: %w", s.UserID, err)
	}
	return data, nil
}

// Unmarshal decodes a JSON snapshot. Malformed JSON is an error; well formed
// JSON with bad enum values is not.
func Unmarshal(userID int64, data []byte) (*Session, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal session %d: %w", userID, err)
	}
	return FromSnapshot(userID, snap), nil
}
