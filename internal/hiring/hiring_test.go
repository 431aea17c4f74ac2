package hiring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexs/hirebot/internal/i18n"
)

func TestQuestionsShape(t *testing.T) {
	require.Len(t, Questions, 12)
	seen := map[string]bool{}
	for _, q := range Questions {
		assert.False(t, seen[q.Key], "duplicate key %s", q.Key)
		seen[q.Key] = true
		assert.NotEmpty(t, q.Prompt.EN)
		assert.NotEmpty(t, q.Prompt.FA)
	}
	assert.True(t, Questions[11].Optional)
	assert.Equal(t, InputContact, Questions[2].Input)
	assert.Equal(t, InputLocation, Questions[3].Input)
	assert.True(t, ValidKey(KeyEmail))
	assert.False(t, ValidKey("favourite_colour"))
}

func TestValidators(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) bool
		in   string
		want bool
	}{
		{"email ok", ValidEmail, "a@b.com", true},
		{"email bad", ValidEmail, "not-an-email", false},
		{"phone ok", ValidPhone, "+1 234 567 8900", true},
		{"phone iran", ValidPhone, "+98 912 345 6789", true},
		{"phone short", ValidPhone, "12345", false},
		{"phone letters", ValidPhone, "call me", false},
		{"location ok", ValidLocation, "Tehran, Iran (UTC+3:30)", true},
		{"location persian comma", ValidLocation, "تهران، ایران", true},
		{"location one word", ValidLocation, "Tehran", false},
		{"portfolio domain", ValidPortfolio, "my github: alice", true},
		{"portfolio url", ValidPortfolio, "https://alice.dev/work", true},
		{"portfolio prose", ValidPortfolio, "I made stuff", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.fn(tc.in))
		})
	}
	assert.True(t, WithinLength(strings.Repeat("ب", 1000), MaxAnswerLength))
	assert.False(t, WithinLength(strings.Repeat("a", 1001), MaxAnswerLength))
}

func TestQuestionBox(t *testing.T) {
	box := QuestionBox(0, i18n.EN)
	assert.True(t, strings.HasPrefix(box, "<b>Question 1/12 (8%)\n"))
	assert.Contains(t, box, "What's your full legal name?")
	assert.Contains(t, box, "\n\n<i>First and last name")

	last := QuestionBox(11, i18n.EN)
	assert.Contains(t, last, "(100%)\n██████████")
}

func TestSummaries(t *testing.T) {
	name := "Ada <Lovelace>"
	long := strings.Repeat("x", 80)
	answers := map[string]*string{KeyFullName: &name, KeyMotivation: &long}

	s := Summary(answers, VoiceState{Received: true}, i18n.EN)
	assert.Contains(t, s, "Ada &lt;Lovelace&gt;")
	assert.Contains(t, s, "<b>Email:</b> <i>(skipped)</i>")
	assert.Contains(t, s, "- Voice sample: ✅ received")
	assert.True(t, strings.HasSuffix(s, "Is everything correct?"))

	e := EditSummary(answers, i18n.FA)
	assert.Contains(t, e, "۱. <b>نام و نام خانوادگی:</b>")
	assert.Contains(t, e, strings.Repeat("x", 47)+"...")
	assert.Contains(t, e, "۱۳.")
}

func TestNativeShareFormats(t *testing.T) {
	assert.Equal(t, "+989121234567 (Sara K)", ContactAnswer("989121234567", "Sara", "K"))
	assert.Equal(t, "Lat 35.6892, Lon 51.3890", LocationAnswer(35.68919, 51.389))
}

func TestFill(t *testing.T) {
	assert.Equal(t, "ID APP-1", Fill("ID {app_id}", "app_id", "APP-1"))
}
