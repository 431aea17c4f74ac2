package ai

import (
	"fmt"
	"strings"

	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
	"github.com/codexs/hirebot/internal/session"
)

var menuTopics = map[string]i18n.Text{
	"apply":   hiring.TopicApply,
	"about":   hiring.TopicAbout,
	"updates": hiring.TopicUpdates,
	"contact": hiring.TopicContact,
	"history": hiring.TopicHistory,
}

// summarize describes where the user is in the conversation.
func summarize(s *session.Session) string {
	var summary string
	switch {
	case s.Flow == session.FlowApply && s.WaitingVoice:
		summary = "User must submit the mandatory English voice sample."
	case s.Flow == session.FlowApply:
		summary = fmt.Sprintf("User is filling the hiring application (question %d/%d).", s.QuestionIndex+1, hiring.Count)
	case s.Flow == session.FlowConfirm:
		summary = "User is reviewing answers before submission."
	case s.Flow == session.FlowContactMessage && s.ContactPending:
		summary = "User is deciding whether to leave a contact/support message."
	case s.Flow == session.FlowContactMessage:
		summary = "User is composing a contact/support message."
	default:
		summary = "User is at the main menu."
	}

	parts := []string{summary}
	if topic, ok := menuTopics[s.LastMenuChoice]; ok {
		parts = append(parts, fmt.Sprintf("Last selected focus: %s.", topic.Get(s.Language)))
	}
	if n := s.AnsweredCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d answers saved so far.", n))
	}
	if s.WaitingVoice {
		parts = append(parts, "Voice sample is still pending.")
	}
	return strings.Join(parts, " ")
}

// ContextFor builds the context block sent ahead of the user's message.
func ContextFor(s *session.Session) string {
	out := summarize(s)
	if s.Flow == session.FlowApply && !s.WaitingVoice {
		if q, ok := s.CurrentQuestion(); ok {
			out += fmt.Sprintf("\nCurrent question (%s): %s", q.Key, q.Prompt.Get(s.Language))
		}
	}
	return out
}
