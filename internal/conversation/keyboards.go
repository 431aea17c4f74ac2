package conversation

import (
	"strconv"

	"github.com/codexs/hirebot/internal/chat"
	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
	"github.com/codexs/hirebot/internal/intent"
)

func mainMenuKeyboard(lang i18n.Language) *chat.Keyboard {
	return chat.Rows(intent.MenuLayout(lang)...)
}

func languageKeyboard() *chat.Keyboard {
	kb := chat.Rows([]string{hiring.LanguageButtons.EN, hiring.LanguageButtons.FA})
	kb.OneTime = true
	return kb
}

func yesNoKeyboard(lang i18n.Language) *chat.Keyboard {
	return chat.Rows([]string{hiring.YesLabel.Get(lang), hiring.NoLabel.Get(lang)})
}

func backKeyboard(lang i18n.Language) *chat.Keyboard {
	return chat.Rows([]string{hiring.BackToMenu.Get(lang)})
}

func resumeKeyboard(lang i18n.Language) *chat.Keyboard {
	return chat.Rows([]string{hiring.ResumeYes.Get(lang), hiring.ResumeNo.Get(lang)})
}

func viewRolesKeyboard(lang i18n.Language) *chat.Keyboard {
	return chat.Rows([]string{hiring.ViewRolesYes.Get(lang), hiring.ViewRolesNo.Get(lang)})
}

func contactReviewKeyboard(lang i18n.Language) *chat.Keyboard {
	return chat.Rows([]string{hiring.ContactSendButton.Get(lang), hiring.ContactEditButton.Get(lang)})
}

// editKeyboard lists the question numbers three per row, then the voice
// re-record option and the back button.
func editKeyboard(lang i18n.Language) *chat.Keyboard {
	num := func(n int) string { return i18n.LocalizeDigits(strconv.Itoa(n), lang) }
	kb := &chat.Keyboard{}
	var row []string
	for i := 1; i <= hiring.Count; i++ {
		row = append(row, num(i))
		if len(row) == 3 {
			kb.Append(row...)
			row = nil
		}
	}
	if len(row) > 0 {
		kb.Append(row...)
	}
	kb.Append(num(hiring.Count + 1))
	kb.Append(hiring.BackToMenu.Get(lang))
	return kb
}

func questionKeyboard(q hiring.Question, lang i18n.Language) *chat.Keyboard {
	switch q.Input {
	case hiring.InputContact:
		kb := &chat.Keyboard{OneTime: true}
		kb.AppendButton(chat.Button{Text: hiring.ShareContactButton.Get(lang), RequestContact: true})
		return kb.Append(hiring.BackToMenu.Get(lang))
	case hiring.InputLocation:
		kb := &chat.Keyboard{OneTime: true}
		kb.AppendButton(chat.Button{Text: hiring.ShareLocationButton.Get(lang), RequestLocation: true})
		return kb.Append(hiring.BackToMenu.Get(lang))
	}
	kb := &chat.Keyboard{}
	if q.Keyboard != nil {
		for _, row := range q.Keyboard.Get(lang) {
			kb.Append(row...)
		}
	}
	return kb.Append(hiring.BackToMenu.Get(lang))
}
