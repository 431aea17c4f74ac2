package notify

import (
	"fmt"
	"strings"

	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/storage"
)

const separator = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

type field struct {
	Label string
	Key   string
}

// cardFields is the order answers appear in on every review surface.
var cardFields = []field{
	{"👤 Name", hiring.KeyFullName},
	{"📧 Email", hiring.KeyEmail},
	{"📞 Contact", hiring.KeyContact},
	{"🌍 Location", hiring.KeyLocation},
	{"💼 Role Focus", hiring.KeyRoleCategory},
	{"🧰 Skills", hiring.KeySkills},
	{"📊 Experience", hiring.KeyExperience},
	{"📁 Portfolio", hiring.KeyPortfolio},
	{"🧠 Motivation", hiring.KeyMotivation},
	{"🗓 Earliest Start", hiring.KeyStartDate},
	{"⏱ Preferred Hours", hiring.KeyWorkingHours},
	{"💰 Salary", hiring.KeySalary},
}

func valueOrDash(app *storage.Application, key string) string {
	if v := strings.TrimSpace(app.Answer(key)); v != "" {
		return v
	}
	return "—"
}

func voiceStatusHTML(app *storage.Application) string {
	switch {
	case app.VoiceFileID != "":
		return "✅ <b>Attached below</b>"
	case app.VoiceSkipped:
		return "⚠️ <b>Skipped</b>"
	}
	return "⏳ <b>Pending</b>"
}

func voiceStatusPlain(app *storage.Application) string {
	switch {
	case app.HasVoice():
		return "received"
	case app.VoiceSkipped:
		return "skipped"
	}
	return "pending"
}

// ApplicationCard renders the HTML announcement posted to the review group.
func ApplicationCard(app *storage.Application) string {
	lines := []string{separator, "<b>🚀 NEW CODEXS APPLICATION</b>", separator, ""}
	if app.ID != "" {
		lines = append(lines, "<b>🆔 Application ID:</b> "+app.ID, "")
	}
	for _, f := range cardFields {
		lines = append(lines, "<b>"+f.Label+":</b>", hiring.Escape(valueOrDash(app, f.Key)), "")
	}
	lines = append(lines, "<b>🎙 Voice Sample:</b>", voiceStatusHTML(app), "")

	a := app.Applicant
	linkText := "User " + fmt.Sprint(a.TelegramID)
	if a.Username != "" {
		linkText = "@" + hiring.Escape(a.Username)
	}
	lines = append(lines,
		"<b>🆔 Telegram:</b>",
		fmt.Sprintf(`<a href="tg://user?id=%d">%s</a> (ID: %d)`, a.TelegramID, linkText, a.TelegramID),
		"",
		separator,
	)
	return strings.Join(lines, "\n")
}

// ContactCard renders the HTML announcement of a contact message.
func ContactCard(msg *storage.ContactMessage, heading string) string {
	s := msg.Sender
	return strings.Join([]string{
		heading,
		"📝 Language: " + msg.Language.Label(),
		strings.TrimSpace("👤 From: " + hiring.Escape(strings.TrimSpace(s.FirstName+" "+s.LastName))),
		fmt.Sprintf("🆔 %s (ID %d)", hiring.Escape(s.Handle()), s.TelegramID),
		"",
		"💬 Message:",
		hiring.Escape(msg.Message),
	}, "\n")
}

// plainSummary is the markup-free application digest used by chat mirrors.
func plainSummary(app *storage.Application, bold func(string) string) string {
	lines := []string{bold("New application " + app.ID)}
	for _, f := range cardFields {
		lines = append(lines, fmt.Sprintf("%s %s", bold(f.Label+":"), valueOrDash(app, f.Key)))
	}
	lines = append(lines,
		fmt.Sprintf("%s %s", bold("🎙 Voice:"), voiceStatusPlain(app)),
		fmt.Sprintf("%s %s (ID %d)", bold("🆔 Telegram:"), app.Applicant.Handle(), app.Applicant.TelegramID),
	)
	return strings.Join(lines, "\n")
}

func plainContact(msg *storage.ContactMessage, bold func(string) string) string {
	return strings.Join([]string{
		bold("New contact message"),
		fmt.Sprintf("%s %s", bold("From:"), msg.Sender.Name()),
		fmt.Sprintf("%s %s (ID %d)", bold("Telegram:"), msg.Sender.Handle(), msg.Sender.TelegramID),
		fmt.Sprintf("%s %s", bold("Language:"), msg.Language),
		"",
		msg.Message,
	}, "\n")
}
