package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalizedGet(t *testing.T) {
	v := L("hello", "سلام")
	assert.Equal(t, "hello", v.Get(EN))
	assert.Equal(t, "سلام", v.Get(FA))
	assert.Equal(t, "hello", v.Get(""), "unset language reads English")
}

func TestParseAndToggle(t *testing.T) {
	lang, ok := Parse(" FA ")
	assert.True(t, ok)
	assert.Equal(t, FA, lang)

	_, ok = Parse("de")
	assert.False(t, ok)

	assert.Equal(t, EN, FA.Toggle())
	assert.Equal(t, FA, EN.Toggle())
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "13", NormalizeDigits("۱۳"))
	assert.Equal(t, "۱۲", LocalizeDigits("12", FA))
	assert.Equal(t, "12", LocalizeDigits("12", EN))
}
