// Package i18n holds the language enum and the Localized value wrapper used by
// every user-facing string in the bot.
package i18n

import "strings"

// Language is a supported conversation language. The zero value means unset.
type Language string

const (
	EN Language = "en"
	FA Language = "fa"
)

// Parse maps a stored language code to a Language. Unknown codes report false.
func Parse(code string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(code))) {
	case EN:
		return EN, true
	case FA:
		return FA, true
	}
	return "", false
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool { return l == EN || l == FA }

// Toggle returns the other supported language.
func (l Language) Toggle() Language {
	if l == FA {
		return EN
	}
	return FA
}

// Label is the short flag label used in group notifications.
func (l Language) Label() string {
	if l == FA {
		return "🇮🇷 FA"
	}
	return "🇬🇧 EN"
}

// Localized carries one value per supported language.
type Localized[T any] struct {
	EN T
	FA T
}

// L builds a Localized value.
func L[T any](en, fa T) Localized[T] { return Localized[T]{EN: en, FA: fa} }

// Get returns the value for lang. Unset or unknown languages read English.
func (l Localized[T]) Get(lang Language) T {
	if lang == FA {
		return l.FA
	}
	return l.EN
}

// Text is the common case of a localized string.
type Text = Localized[string]

var persianDigits = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
)

// NormalizeDigits rewrites Persian digit glyphs into ASCII digits.
func NormalizeDigits(s string) string { return persianDigits.Replace(s) }

var asciiToPersian = strings.NewReplacer(
	"0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴",
	"5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹",
)

// LocalizeDigits renders ASCII digits with the glyphs of lang.
func LocalizeDigits(s string, lang Language) string {
	if lang == FA {
		return asciiToPersian.Replace(s)
	}
	return s
}
