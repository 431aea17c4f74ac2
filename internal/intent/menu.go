package intent

import (
	"strconv"
	"strings"

	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
)

// MenuAction is a main menu selection. The set of implementations is closed.
type MenuAction interface {
	menuAction()
	// Name is the stable identifier stored as the last menu choice.
	Name() string
}

type (
	OpenApply      struct{}
	OpenAbout      struct{}
	OpenUpdates    struct{}
	OpenContact    struct{}
	OpenHistory    struct{}
	SwitchLanguage struct{}
)

func (OpenApply) menuAction()      {}
func (OpenAbout) menuAction()      {}
func (OpenUpdates) menuAction()    {}
func (OpenContact) menuAction()    {}
func (OpenHistory) menuAction()    {}
func (SwitchLanguage) menuAction() {}

func (OpenApply) Name() string      { return "apply" }
func (OpenAbout) Name() string      { return "about" }
func (OpenUpdates) Name() string    { return "updates" }
func (OpenContact) Name() string    { return "contact" }
func (OpenHistory) Name() string    { return "history" }
func (SwitchLanguage) Name() string { return "switch" }

// Topic returns the localized topic name of a, used in fallback hints.
func Topic(a MenuAction) i18n.Text {
	switch a.(type) {
	case OpenApply:
		return hiring.TopicApply
	case OpenAbout:
		return hiring.TopicAbout
	case OpenUpdates:
		return hiring.TopicUpdates
	case OpenContact:
		return hiring.TopicContact
	case OpenHistory:
		return hiring.TopicHistory
	}
	return i18n.Text{}
}

var menuButtons = []struct {
	label  i18n.Text
	action MenuAction
}{
	{hiring.MenuApply, OpenApply{}},
	{hiring.MenuAbout, OpenAbout{}},
	{hiring.MenuUpdates, OpenUpdates{}},
	{hiring.MenuContact, OpenContact{}},
	{hiring.MenuHistory, OpenHistory{}},
	{hiring.MenuSwitch, SwitchLanguage{}},
}

// MatchMenuButton resolves an exact main menu button label in lang.
func MatchMenuButton(text string, lang i18n.Language) (MenuAction, bool) {
	t := strings.TrimSpace(text)
	for _, b := range menuButtons {
		if t == b.label.Get(lang) {
			return b.action, true
		}
	}
	return nil, false
}

// MenuLayout returns the main menu button labels as keyboard rows.
func MenuLayout(lang i18n.Language) [][]string {
	return [][]string{
		{hiring.MenuApply.Get(lang)},
		{hiring.MenuAbout.Get(lang), hiring.MenuUpdates.Get(lang)},
		{hiring.MenuContact.Get(lang), hiring.MenuHistory.Get(lang)},
		{hiring.MenuSwitch.Get(lang)},
	}
}

// InferTopic guesses a menu section from keywords in free text. Topics are
// tried in the order apply, about, updates, contact.
func InferTopic(text string, lang i18n.Language) (MenuAction, bool) {
	n := Normalize(text)
	if strings.TrimSpace(n) == "" {
		return nil, false
	}
	for _, t := range topicKeywords {
		for _, kw := range t.words.Get(lang) {
			if strings.Contains(n, kw) {
				return t.action, true
			}
		}
	}
	return nil, false
}

// ParseNumber reads a positive integer, accepting Persian digits.
func ParseNumber(text string) (int, bool) {
	t := strings.TrimSpace(i18n.NormalizeDigits(text))
	t = strings.TrimSuffix(t, ".")
	n, err := strconv.Atoi(t)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
