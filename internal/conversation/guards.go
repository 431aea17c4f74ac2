package conversation

import (
	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/intent"
	"github.com/codexs/hirebot/internal/session"
)

// text runs the guards in priority order. The first guard that applies
// handles the input.
func (t *turn) text(text string) {
	if !t.s.HasLanguage() {
		t.chooseLanguage(text)
		return
	}
	lang := t.s.Language

	if t.s.InResumePrompt() {
		t.resumeAnswer(text)
		return
	}

	if intent.IsMenuCommand(text, lang) || intent.IsBackCommand(text, lang) {
		t.leave()
		return
	}

	if t.s.ExitConfirmationPending {
		t.exitAnswer(text)
		return
	}

	if intent.IsBackButton(text, lang) {
		t.backButton()
		return
	}

	if t.s.WaitingVoice {
		t.say(hiring.VoiceWaitingReminder.Get(lang), backKeyboard(lang))
		return
	}

	if t.s.AwaitingViewRoles {
		t.viewRolesAnswer(text)
		return
	}

	if t.s.AwaitingEditSelection {
		t.editSelection(text)
		return
	}

	switch t.s.Flow {
	case session.FlowApply:
		t.answer(text)
	case session.FlowConfirm:
		t.confirmAnswer(text)
	case session.FlowContactMessage:
		t.contactText(text)
	default:
		t.menuChoice(text)
	}
}

func (t *turn) chooseLanguage(text string) {
	choice, ok := intent.ResolveLanguage(text)
	if !ok {
		reminder := hiring.LanguageReminder.EN + "\n" + hiring.LanguageReminder.FA
		t.say(reminder, languageKeyboard())
		return
	}
	t.s.ResetHiring()
	t.s.Language = choice
	t.dirty = true
	t.welcome()
	t.mainMenu()
}

// leave handles a menu or back keyword: ask before discarding work,
// otherwise go straight to the menu.
func (t *turn) leave() {
	if t.s.NeedsExitConfirmation() {
		t.askExit()
		return
	}
	t.s.ResetHiring()
	t.mainMenu()
}

func (t *turn) askExit() {
	t.s.RequestExitConfirmation(t.s.Flow)
	t.sayL(hiring.ExitConfirmPrompt, yesNoKeyboard(t.lang()))
}

func (t *turn) exitAnswer(text string) {
	lang := t.s.Language
	switch {
	case intent.IsYes(text, lang):
		t.s.ResetHiring()
		t.forget()
		t.say(hiring.ExitConfirmDone.Get(lang), mainMenuKeyboard(lang))
	case intent.IsNo(text, lang):
		t.s.CancelExitConfirmation()
		t.dirty = true
		t.say(hiring.ExitConfirmCancel.Get(lang), nil)
		t.rerender()
	default:
		t.say(hiring.ExitConfirmPrompt.Get(lang), yesNoKeyboard(lang))
	}
}

func (t *turn) backButton() {
	switch {
	case t.s.EditMode:
		t.s.EditMode = false
		t.dirty = true
		t.confirmation()
	case t.s.AwaitingEditSelection:
		t.s.AwaitingEditSelection = false
		t.dirty = true
		t.confirmation()
	case t.s.Flow == session.FlowApply || t.s.Flow == session.FlowConfirm || t.s.WaitingVoice:
		t.askExit()
	default:
		// Also aborts the contact flow.
		if t.s.Flow == session.FlowContactMessage {
			t.dirty = true
		}
		t.s.ResetHiring()
		t.mainMenu()
	}
}

// rerender repeats the prompt of whatever sub-state is active.
func (t *turn) rerender() {
	lang := t.lang()
	switch {
	case t.s.WaitingVoice:
		t.say(hiring.VoicePrompt.Get(lang), backKeyboard(lang))
	case t.s.Flow == session.FlowApply:
		t.askQuestion()
	case t.s.Flow == session.FlowConfirm && t.s.AwaitingEditSelection:
		t.say(hiring.EditPrompt.Get(lang), editKeyboard(lang))
	case t.s.Flow == session.FlowConfirm:
		t.confirmation()
	case t.s.Flow == session.FlowContactMessage:
		t.contactPrompt()
	default:
		t.mainMenu()
	}
}

func (t *turn) offerResume() {
	if !t.s.InResumePrompt() {
		t.s.ParkForResume()
	}
	t.landing()
	t.resumePrompt()
}

func (t *turn) resumePrompt() {
	lang := t.lang()
	progress := i18nDigits(t.s.AnsweredCount(), lang)
	t.say(hiring.Fill(hiring.ResumePrompt.Get(lang), "progress", progress), resumeKeyboard(lang))
}

func (t *turn) resumeAnswer(text string) {
	lang := t.s.Language
	switch {
	case text == hiring.ResumeYes.Get(lang) || intent.IsYes(text, lang):
		t.s.Unpark()
		t.dirty = true
		t.rerender()
	case text == hiring.ResumeNo.Get(lang) || intent.IsNo(text, lang),
		intent.IsMenuCommand(text, lang), intent.IsBackCommand(text, lang), intent.IsBackButton(text, lang):
		t.s.ResetHiring()
		t.forget()
		t.mainMenu()
	default:
		t.resumePrompt()
	}
}

func (t *turn) viewRolesAnswer(text string) {
	lang := t.s.Language
	switch {
	case text == hiring.ViewRolesYes.Get(lang) || intent.IsYes(text, lang):
		t.s.AwaitingViewRoles = false
		t.openApply()
	case text == hiring.ViewRolesNo.Get(lang) || intent.IsNo(text, lang):
		t.s.AwaitingViewRoles = false
		t.mainMenu()
	default:
		t.say(hiring.AboutCTA.Get(lang), viewRolesKeyboard(lang))
	}
}

func (t *turn) confirmAnswer(text string) {
	lang := t.s.Language
	switch {
	case intent.IsYes(text, lang):
		t.finalize()
	case intent.IsNo(text, lang):
		t.s.AwaitingEditSelection = true
		t.dirty = true
		t.say(hiring.EditSummary(t.s.Answers, lang)+"\n\n"+hiring.EditPrompt.Get(lang), editKeyboard(lang))
	default:
		t.say(hiring.ConfirmPrompt.Get(lang), yesNoKeyboard(lang))
	}
}
