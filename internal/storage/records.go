package storage

import (
	"strings"
	"time"

	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
)

// Applicant identifies the Telegram user behind a submission.
type Applicant struct {
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
}

// Name returns "first last", or "Unknown" when both are empty.
func (a Applicant) Name() string {
	if n := strings.TrimSpace(a.FirstName + " " + a.LastName); n != "" {
		return n
	}
	return "Unknown"
}

// Handle returns "@username", or a dash when there is no username.
func (a Applicant) Handle() string {
	if a.Username != "" {
		return "@" + a.Username
	}
	return "—"
}

// Application is one finalized hiring form.
type Application struct {
	ID            string             `json:"application_id"`
	SubmittedAt   time.Time          `json:"submitted_at"`
	Language      i18n.Language      `json:"language"`
	Applicant     Applicant          `json:"applicant"`
	Answers       map[string]*string `json:"answers"`
	VoiceFilePath string             `json:"voice_file_path,omitempty"`
	VoiceFileID   string             `json:"voice_file_id,omitempty"`
	VoiceSkipped  bool               `json:"voice_skipped"`
}

// HasVoice reports whether a voice sample was stored with the application.
func (a *Application) HasVoice() bool {
	return a.VoiceFilePath != "" || a.VoiceFileID != ""
}

// Answer returns the answer for key or "" when skipped or missing.
func (a *Application) Answer(key string) string {
	if v := a.Answers[key]; v != nil {
		return *v
	}
	return ""
}

// Email falls back to the Telegram username, then to "N/A".
func (a *Application) Email() string {
	if e := a.Answer(hiring.KeyEmail); e != "" {
		return e
	}
	if a.Applicant.Username != "" {
		return a.Applicant.Username
	}
	return "N/A"
}

// ContactMessage is a free-form message sent through the contact flow.
type ContactMessage struct {
	SubmittedAt time.Time     `json:"submitted_at"`
	Language    i18n.Language `json:"language"`
	Sender      Applicant     `json:"sender"`
	Message     string        `json:"message"`
}
