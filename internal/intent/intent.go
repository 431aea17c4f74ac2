// Package intent classifies free text typed by a user into commands,
// menu selections and question-like input.
package intent

import (
	"regexp"
	"strings"

	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
)

// Kind is the outcome of Classify.
type Kind int

const (
	None Kind = iota
	MenuCommand
	BackCommand
	RepeatCommand
	QuestionLike
	MenuButton
	InferredTopic
)

func (k Kind) String() string {
	switch k {
	case MenuCommand:
		return "menu_command"
	case BackCommand:
		return "back_command"
	case RepeatCommand:
		return "repeat_command"
	case QuestionLike:
		return "question"
	case MenuButton:
		return "menu_button"
	case InferredTopic:
		return "inferred_topic"
	}
	return "none"
}

type vocab = i18n.Localized[map[string]struct{}]

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

var (
	menuCommands = vocab{
		EN: set("menu", "mainmenu", "startover", "cancel", "stop", "quit", "restart"),
		FA: set("منو", "منویاصلی", "بازگشتبمنو", "بازگشتبهمنو", "لغو"),
	}
	backCommands = vocab{
		EN: set("back", "previous", "goback"),
		FA: set("بازگشت", "برگشت", "قبلی"),
	}
	repeatCommands = vocab{
		EN: set("repeat", "again", "what", "pardon", "huh"),
		FA: set("تکرار", "دوباره", "چی", "??"),
	}
	yesWords = vocab{
		EN: set("yes", "y", "yeah", "yep", "sure", "ok", "okay", "affirmative", "confirm"),
		FA: set("بله", "بلی", "اره", "آره", "اوکی", "باشه", "حتما", "حتماً"),
	}
	noWords = vocab{
		EN: set("no", "n", "nope", "nah"),
		FA: set("خیر", "نه", "نخیر"),
	}
	skipWords = vocab{
		EN: set("skip", "pass", "later", "notnow"),
		FA: set("رد", "ردکردن", "بعدا", "بعداً", "فعلاخیر", "بیخیال"),
	}

	questionKeywords = i18n.L(
		[]string{"what", "why", "how", "help", "explain", "where", "who"},
		[]string{"چی", "چطور", "چرا", "کمک", "کجا", "کی"},
	)
)

// topicKeywords is checked in order; the first topic with a hit wins.
var topicKeywords = []struct {
	action MenuAction
	words  i18n.Localized[[]string]
}{
	{OpenApply{}, i18n.L(
		[]string{"apply", "application", "job", "career", "role", "position", "hire"},
		[]string{"درخواست", "شغل", "کار", "استخدام", "فرصت"},
	)},
	{OpenAbout{}, i18n.L(
		[]string{"about", "studio", "company", "codexs"},
		[]string{"درباره", "استودیو", "codexs", "شرکت"},
	)},
	{OpenUpdates{}, i18n.L(
		[]string{"news", "update", "launch", "what s new", "latest"},
		[]string{"خبر", "آپدیت", "بروزرسانی", "لانچ", "جدید"},
	)},
	{OpenContact{}, i18n.L(
		[]string{"contact", "support", "help", "reach", "message"},
		[]string{"تماس", "پشتیبانی", "کمک", "پیام"},
	)},
}

var (
	intentStrip = regexp.MustCompile(`[^a-zA-Z0-9\x{0600}-\x{06FF}\s]`)
	answerStrip = regexp.MustCompile(`[^\p{L}\p{N}_\x{0600}-\x{06FF}]+`)
)

// Normalize lowercases text and blanks every character outside ASCII
// alphanumerics, the Arabic script block and whitespace.
func Normalize(text string) string {
	return strings.ToLower(intentStrip.ReplaceAllString(text, " "))
}

// Collapse is Normalize with all whitespace removed, so "Main Menu" and
// "mainmenu" compare equal.
func Collapse(text string) string {
	return strings.Join(strings.Fields(Normalize(text)), "")
}

func normalizeAnswer(text string) string {
	return answerStrip.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), "")
}

func in(v vocab, lang i18n.Language, word string) bool {
	_, ok := v.Get(lang)[word]
	return ok
}

func IsMenuCommand(text string, lang i18n.Language) bool {
	return in(menuCommands, lang, Collapse(text))
}

func IsBackCommand(text string, lang i18n.Language) bool {
	return in(backCommands, lang, Collapse(text))
}

// IsRepeat matches repeat keywords and a bare question mark.
func IsRepeat(text string, lang i18n.Language) bool {
	switch strings.TrimSpace(text) {
	case "?", "؟", "??":
		return true
	}
	return in(repeatCommands, lang, Collapse(text))
}

// IsBackButton matches the localized back button label exactly.
func IsBackButton(text string, lang i18n.Language) bool {
	return strings.TrimSpace(text) == hiring.BackToMenu.Get(lang)
}

// IsYes matches the yes button label or a yes word.
func IsYes(text string, lang i18n.Language) bool {
	t := strings.TrimSpace(text)
	return t == hiring.YesLabel.Get(lang) || in(yesWords, lang, normalizeAnswer(t))
}

// IsNo matches the no button label or a no word.
func IsNo(text string, lang i18n.Language) bool {
	t := strings.TrimSpace(text)
	return t == hiring.NoLabel.Get(lang) || in(noWords, lang, normalizeAnswer(t))
}

// IsSkip matches the skip label, case-insensitively, or a skip word.
func IsSkip(text string, lang i18n.Language) bool {
	t := strings.TrimSpace(text)
	return strings.EqualFold(t, hiring.SkipLabel.Get(lang)) || in(skipWords, lang, normalizeAnswer(t))
}

// LooksLikeQuestion is true for a literal question mark or an interrogative
// keyword of lang.
func LooksLikeQuestion(text string, lang i18n.Language) bool {
	if strings.ContainsAny(text, "?؟") {
		return true
	}
	n := Normalize(text)
	for _, kw := range questionKeywords.Get(lang) {
		if strings.Contains(n, kw) {
			return true
		}
	}
	return false
}

// ResolveLanguage maps a language button label to its language.
func ResolveLanguage(text string) (i18n.Language, bool) {
	t := strings.TrimSpace(text)
	switch t {
	case hiring.LanguageButtons.EN:
		return i18n.EN, true
	case hiring.LanguageButtons.FA:
		return i18n.FA, true
	}
	return "", false
}

// Result is a full classification of one text.
type Result struct {
	Kind   Kind
	Action MenuAction
}

// Classify applies the precedence used at the top level: commands, then an
// exact menu button, then an inferred topic, then question detection.
func Classify(text string, lang i18n.Language) Result {
	switch {
	case IsMenuCommand(text, lang):
		return Result{Kind: MenuCommand}
	case IsBackCommand(text, lang):
		return Result{Kind: BackCommand}
	case IsRepeat(text, lang):
		return Result{Kind: RepeatCommand}
	}
	if a, ok := MatchMenuButton(text, lang); ok {
		return Result{Kind: MenuButton, Action: a}
	}
	if a, ok := InferTopic(text, lang); ok {
		return Result{Kind: InferredTopic, Action: a}
	}
	if LooksLikeQuestion(text, lang) {
		return Result{Kind: QuestionLike}
	}
	return Result{Kind: None}
}
