package hiring

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxAnswerLength caps free-text answers and contact messages, in characters.
const MaxAnswerLength = 1000

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneSeparators = regexp.MustCompile(`[\s\-()+]`)
	phonePattern    = regexp.MustCompile(`^(\+?\d{1,4}[\s\-]?)?\(?\d{1,4}\)?[\s\-]?\d{1,4}[\s\-]?\d{1,9}$`)
	nonDigits       = regexp.MustCompile(`\D`)
	urlPattern      = regexp.MustCompile(`(?i)^(https?://)?([\da-z.-]+)\.([a-z.]{2,6})([/\w .-]*)*/?$`)

	portfolioDomains = []string{
		"github.com", "behance.net", "dribbble.com", "linkedin.com",
		"portfolio", "github", "behance", "dribbble",
	}
)

// WithinLength reports whether the trimmed text fits max characters.
func WithinLength(s string, max int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= max
}

func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// ValidPhone accepts 7 to 15 digits once common separators are removed.
func ValidPhone(s string) bool {
	cleaned := phoneSeparators.ReplaceAllString(strings.TrimSpace(s), "")
	if !phonePattern.MatchString(cleaned) {
		return false
	}
	digits := nonDigits.ReplaceAllString(cleaned, "")
	return len(digits) >= 7 && len(digits) <= 15
}

// ValidLocation wants something shaped like "City, Country (Timezone)".
func ValidLocation(s string) bool {
	structured := strings.Contains(s, ",") || strings.Contains(s, "،") ||
		(strings.Contains(s, "(") && strings.Contains(s, ")"))
	return structured &&
		len(strings.Fields(s)) >= 2 &&
		utf8.RuneCountInString(strings.TrimSpace(s)) >= 5
}

// ValidPortfolio accepts a URL or a mention of a known portfolio host.
func ValidPortfolio(s string) bool {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, d := range portfolioDomains {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return urlPattern.MatchString(s)
}
