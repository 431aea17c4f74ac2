package conversation

import (
	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/intent"
	"github.com/codexs/hirebot/internal/session"
)

func (t *turn) openContact() {
	t.s.AwaitingViewRoles = false
	t.s.Flow = session.FlowContactMessage
	t.s.ClearContact()
	t.s.ContactPending = true
	t.dirty = true
	t.sayL(hiring.ContactInfo, yesNoKeyboard(t.lang()))
}

// contactPrompt repeats the prompt of the current contact sub-step.
func (t *turn) contactPrompt() {
	lang := t.lang()
	switch {
	case t.s.ContactReviewPending:
		t.reviewPrompt()
	case t.s.ContactPending:
		t.say(hiring.ContactInfo.Get(lang), yesNoKeyboard(lang))
	default:
		t.say(hiring.ContactMessagePrompt.Get(lang), backKeyboard(lang))
	}
}

func (t *turn) reviewPrompt() {
	lang := t.lang()
	msg := hiring.Fill(hiring.ContactMessageReview.Get(lang), "message", hiring.Escape(t.s.ContactMessageDraft))
	t.say(msg, contactReviewKeyboard(lang))
}

// contactText drives the decision gate, drafting and review sub-steps.
func (t *turn) contactText(text string) {
	lang := t.s.Language
	switch {
	case t.s.ContactReviewPending:
		switch text {
		case hiring.ContactSendButton.Get(lang):
			t.submitContact()
		case hiring.ContactEditButton.Get(lang):
			t.s.ContactReviewPending = false
			t.s.ContactMessageDraft = ""
			t.dirty = true
			t.say(hiring.ContactMessagePrompt.Get(lang), backKeyboard(lang))
		default:
			t.reviewPrompt()
		}

	case t.s.ContactPending:
		switch {
		case intent.IsYes(text, lang):
			t.s.ContactPending = false
			t.dirty = true
			t.say(hiring.ContactMessagePrompt.Get(lang), backKeyboard(lang))
		case intent.IsNo(text, lang):
			t.s.ClearContact()
			t.s.Flow = session.FlowIdle
			t.dirty = true
			t.say(hiring.ContactSkip.Get(lang), mainMenuKeyboard(lang))
		default:
			t.say(hiring.ContactDecisionReminder.Get(lang), yesNoKeyboard(lang))
		}

	default:
		if text == "" {
			t.say(hiring.ContactMessagePrompt.Get(lang), backKeyboard(lang))
			return
		}
		if !hiring.WithinLength(text, hiring.MaxAnswerLength) {
			t.say(hiring.ErrorTextTooLong.Get(lang), backKeyboard(lang))
			return
		}
		t.s.ContactMessageDraft = text
		t.s.ContactReviewPending = true
		t.dirty = true
		t.reviewPrompt()
	}
}

// submitContact commits the draft. A failed write keeps the draft under
// review so the user can press send again.
func (t *turn) submitContact() {
	lang := t.s.Language
	if err := t.e.finalizer.SubmitContact(t.ctx, t.s, t.applicant(), t.s.ContactMessageDraft); err != nil {
		t.say(hiring.ErrorGeneric.Get(lang), nil)
		t.reviewPrompt()
		return
	}
	t.s.ClearContact()
	t.s.Flow = session.FlowIdle
	t.dirty = true
	t.say(hiring.ContactThanks.Get(lang), mainMenuKeyboard(lang))
}
