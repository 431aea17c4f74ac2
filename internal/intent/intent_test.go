package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
)

func TestCommands(t *testing.T) {
	assert.True(t, IsMenuCommand("Main Menu", i18n.EN))
	assert.True(t, IsMenuCommand("/menu", i18n.EN))
	assert.True(t, IsMenuCommand("منو", i18n.FA))
	assert.False(t, IsMenuCommand("menu please tell me", i18n.EN))

	assert.True(t, IsBackCommand("Go back", i18n.EN))
	assert.True(t, IsBackCommand("برگشت", i18n.FA))

	assert.True(t, IsRepeat("?", i18n.EN))
	assert.True(t, IsRepeat("؟", i18n.FA))
	assert.True(t, IsRepeat("Repeat", i18n.EN))
	assert.False(t, IsRepeat("Ada", i18n.EN))

	assert.True(t, IsBackButton(hiring.BackToMenu.FA, i18n.FA))
	assert.False(t, IsBackButton(hiring.BackToMenu.FA, i18n.EN))
}

func TestYesNoSkip(t *testing.T) {
	cases := []struct {
		text string
		lang i18n.Language
		yes  bool
		no   bool
		skip bool
	}{
		{hiring.YesLabel.EN, i18n.EN, true, false, false},
		{"yes!", i18n.EN, true, false, false},
		{"Sure", i18n.EN, true, false, false},
		{"آره", i18n.FA, true, false, false},
		{hiring.NoLabel.EN, i18n.EN, false, true, false},
		{"nope", i18n.EN, false, true, false},
		{"نه", i18n.FA, false, true, false},
		{"SKIP", i18n.EN, false, false, true},
		{hiring.SkipLabel.FA, i18n.FA, false, false, true},
		{"Ada Lovelace", i18n.EN, false, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.yes, IsYes(tc.text, tc.lang))
			assert.Equal(t, tc.no, IsNo(tc.text, tc.lang))
			assert.Equal(t, tc.skip, IsSkip(tc.text, tc.lang))
		})
	}
}

func TestLooksLikeQuestion(t *testing.T) {
	assert.True(t, LooksLikeQuestion("is remote ok?", i18n.EN))
	assert.True(t, LooksLikeQuestion("What is the salary range", i18n.EN))
	assert.True(t, LooksLikeQuestion("چرا باید صدا بفرستم", i18n.FA))
	assert.False(t, LooksLikeQuestion("Ada Lovelace", i18n.EN))
	assert.False(t, LooksLikeQuestion("ada@example.com", i18n.EN))
}

func TestMatchMenuButton(t *testing.T) {
	a, ok := MatchMenuButton(hiring.MenuApply.EN, i18n.EN)
	assert.True(t, ok)
	assert.Equal(t, OpenApply{}, a)

	a, ok = MatchMenuButton("  "+hiring.MenuSwitch.FA+" ", i18n.FA)
	assert.True(t, ok)
	assert.Equal(t, "switch", a.Name())

	_, ok = MatchMenuButton(hiring.MenuApply.FA, i18n.EN)
	assert.False(t, ok, "labels only match in the session language")
}

func TestInferTopic(t *testing.T) {
	cases := map[string]MenuAction{
		"I want a job":             OpenApply{},
		"tell me about the studio": OpenAbout{},
		"any news":                 OpenUpdates{},
		"I need support":           OpenContact{},
	}
	for text, want := range cases {
		got, ok := InferTopic(text, i18n.EN)
		assert.True(t, ok, text)
		assert.Equal(t, want, got, text)
	}

	got, ok := InferTopic("میخواهم استخدام شوم", i18n.FA)
	assert.True(t, ok)
	assert.Equal(t, OpenApply{}, got)

	_, ok = InferTopic("hello there", i18n.EN)
	assert.False(t, ok)
}

func TestClassifyPrecedence(t *testing.T) {
	assert.Equal(t, MenuCommand, Classify("menu", i18n.EN).Kind)
	assert.Equal(t, RepeatCommand, Classify("What?", i18n.EN).Kind)
	assert.Equal(t, MenuButton, Classify(hiring.MenuAbout.EN, i18n.EN).Kind)

	r := Classify("how do I apply", i18n.EN)
	assert.Equal(t, InferredTopic, r.Kind)
	assert.Equal(t, OpenApply{}, r.Action)

	assert.Equal(t, QuestionLike, Classify("why is the sky blue", i18n.EN).Kind)
	assert.Equal(t, None, Classify("hello there", i18n.EN).Kind)
}

func TestResolveLanguage(t *testing.T) {
	lang, ok := ResolveLanguage(hiring.LanguageButtons.FA)
	assert.True(t, ok)
	assert.Equal(t, i18n.FA, lang)

	_, ok = ResolveLanguage("English")
	assert.False(t, ok)
}

func TestParseNumber(t *testing.T) {
	n, ok := ParseNumber("۱۳")
	assert.True(t, ok)
	assert.Equal(t, 13, n)

	n, ok = ParseNumber(" 3. ")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = ParseNumber("0")
	assert.False(t, ok)
	_, ok = ParseNumber("three")
	assert.False(t, ok)
}
