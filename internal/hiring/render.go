package hiring

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/codexs/hirebot/internal/i18n"
)

// Escape makes user input safe inside HTML parse mode.
func Escape(s string) string { return html.EscapeString(s) }

// Truncate shortens s to max runes, ending with "..." when cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// Progress renders "Question n/N (p%)" followed by a ten block bar.
func Progress(index int, lang i18n.Language) string {
	current := index + 1
	pct := current * 100 / Count
	filled := current * 10 / Count
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	head := Fill(QuestionProgress.Get(lang), "current", strconv.Itoa(current), "total", strconv.Itoa(Count))
	return fmt.Sprintf("%s (%d%%)\n%s", head, pct, bar)
}

// QuestionBox renders the prompt of question index with its progress header.
// The first prompt line is the title; the rest is shown as an instruction.
func QuestionBox(index int, lang i18n.Language) string {
	prompt := Questions[index].Prompt.Get(lang)
	title, instruction, _ := strings.Cut(prompt, "\n")
	parts := []string{"<b>" + Progress(index, lang) + "</b>", "", title}
	if instruction != "" {
		if !strings.HasPrefix(instruction, "<i>") {
			instruction = "<i>" + instruction + "</i>"
		}
		parts = append(parts, "", instruction)
	}
	return strings.Join(parts, "\n")
}

func displayAnswer(v *string, lang i18n.Language, max int) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "<i>" + SkippedText.Get(lang) + "</i>"
	}
	return Truncate(Escape(*v), max)
}

// VoiceState feeds the voice status line of the summary.
type VoiceState struct {
	Received bool
	Skipped  bool
}

// Summary renders the confirmation summary ending with the confirm question.
func Summary(answers map[string]*string, voice VoiceState, lang i18n.Language) string {
	lines := []string{"<b>" + SummaryHeader.Get(lang) + "</b>", ""}
	for _, q := range Questions {
		lines = append(lines, fmt.Sprintf("<b>%s:</b> %s", q.Label.Get(lang), displayAnswer(answers[q.Key], lang, 150)))
	}
	status := VoiceStatusPending.Get(lang)
	switch {
	case voice.Received:
		status = VoiceStatusReceived.Get(lang)
	case voice.Skipped:
		status = VoiceStatusSkipped.Get(lang)
	}
	lines = append(lines, "", Fill(VoiceStatusLine.Get(lang), "status", status), "", ConfirmPrompt.Get(lang))
	return strings.Join(lines, "\n")
}

// EditSummary lists numbered answers so the user can pick one to edit.
func EditSummary(answers map[string]*string, lang i18n.Language) string {
	lines := []string{EditSummaryHeader.Get(lang), ""}
	for i, q := range Questions {
		n := i18n.LocalizeDigits(strconv.Itoa(i+1), lang)
		lines = append(lines, fmt.Sprintf("%s. <b>%s:</b> %s", n, q.Label.Get(lang), displayAnswer(answers[q.Key], lang, 50)))
	}
	lines = append(lines, fmt.Sprintf("%s. <b>%s</b>", i18n.LocalizeDigits(strconv.Itoa(Count+1), lang), EditSummaryVoice.Get(lang)))
	lines = append(lines, "", "💡 "+EditSummaryTip.Get(lang))
	return strings.Join(lines, "\n")
}

// EditPreview shows the current answer before the question is asked again.
func EditPreview(v *string, lang i18n.Language) string {
	value := SkippedText.Get(lang)
	if v != nil && strings.TrimSpace(*v) != "" {
		value = Truncate(Escape(*v), 100)
	}
	return Fill(EditCurrentAnswer.Get(lang), "value", value)
}

// AboutSection renders one about block.
func AboutSection(s Section) string {
	return "<b>" + s.Title + "</b>\n" + s.Body
}

// UpdateCard renders the caption of an update card.
func UpdateCard(c Card) string {
	out := "<b>" + c.Title + "</b>\n" + c.Body
	if c.CTAURL != "" {
		label := c.CTALabel
		if label == "" {
			label = "Link"
		}
		out += "\n" + label + ": " + c.CTAURL
	}
	return out
}

// FormatDate renders a submission timestamp for history listings.
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// ContactAnswer formats a natively shared phone contact.
func ContactAnswer(phone, first, last string) string {
	phone = strings.TrimSpace(phone)
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	name := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if name == "" {
		return phone
	}
	return fmt.Sprintf("%s (%s)", phone, name)
}

// LocationAnswer formats a natively shared location.
func LocationAnswer(lat, lon float64) string {
	return fmt.Sprintf("Lat %.4f, Lon %.4f", lat, lon)
}
