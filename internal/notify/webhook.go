package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codexs/hirebot/core/telegram/netutil"
	"github.com/codexs/hirebot/internal/chat"
	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/storage"
)

const webhookTimeout = 10 * time.Second

// Webhook posts JSON payloads to HTTP endpoints. Applications and contact
// messages go to separate URLs; an empty URL disables that stream.
type Webhook struct {
	appURL     string
	contactURL string
	token      string
	client     *http.Client
	files      chat.Files
}

var _ Notifier = (*Webhook)(nil)

// WebhookOptions configure NewWebhook.
type WebhookOptions struct {
	ApplicationURL string
	ContactURL     string
	// Token is sent as a Bearer token when set.
	Token  string
	Client *http.Client
	// Files resolves voice_file_url. Optional.
	Files chat.Files
}

func NewWebhook(opts WebhookOptions) *Webhook {
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &Webhook{
		appURL:     opts.ApplicationURL,
		contactURL: opts.ContactURL,
		token:      opts.Token,
		client:     client,
		files:      opts.Files,
	}
}

func (w *Webhook) Name() string { return "webhook" }

type applicationPayload struct {
	ApplicationID     string             `json:"application_id"`
	SubmittedAt       string             `json:"submitted_at"`
	Language          string             `json:"language"`
	Answers           map[string]*string `json:"answers"`
	FullName          string             `json:"full_name"`
	Email             string             `json:"email"`
	Contact           string             `json:"contact"`
	Portfolio         string             `json:"portfolio"`
	VoiceFilePath     string             `json:"voice_file_path,omitempty"`
	VoiceFileID       string             `json:"voice_file_id,omitempty"`
	VoiceFileURL      string             `json:"voice_file_url,omitempty"`
	VoiceSkipped      bool               `json:"voice_skipped"`
	TelegramID        int64              `json:"telegram_id"`
	TelegramUsername  string             `json:"telegram_username"`
	TelegramFirstName string             `json:"telegram_first_name"`
	TelegramLastName  string             `json:"telegram_last_name"`
}

type contactPayload struct {
	SubmittedAt string            `json:"submitted_at"`
	Language    string            `json:"language"`
	Message     string            `json:"message"`
	Sender      storage.Applicant `json:"sender"`
}

func (w *Webhook) NotifyApplication(ctx context.Context, ev ApplicationEvent) error {
	if w.appURL == "" {
		return nil
	}
	app := ev.App
	p := applicationPayload{
		ApplicationID:     app.ID,
		SubmittedAt:       app.SubmittedAt.UTC().Format(time.RFC3339),
		Language:          string(app.Language),
		Answers:           app.Answers,
		FullName:          app.Answer(hiring.KeyFullName),
		Email:             app.Answer(hiring.KeyEmail),
		Contact:           app.Answer(hiring.KeyContact),
		Portfolio:         app.Answer(hiring.KeyPortfolio),
		VoiceFilePath:     app.VoiceFilePath,
		VoiceFileID:       app.VoiceFileID,
		VoiceSkipped:      app.VoiceSkipped,
		TelegramID:        app.Applicant.TelegramID,
		TelegramUsername:  app.Applicant.Username,
		TelegramFirstName: app.Applicant.FirstName,
		TelegramLastName:  app.Applicant.LastName,
	}
	if w.files != nil && app.VoiceFileID != "" {
		// A missing URL only thins the payload.
		if u, err := w.files.FileURL(ctx, app.VoiceFileID); err == nil {
			p.VoiceFileURL = u
		}
	}
	return w.post(ctx, w.appURL, p)
}

func (w *Webhook) NotifyContact(ctx context.Context, msg *storage.ContactMessage) error {
	if w.contactURL == "" {
		return nil
	}
	return w.post(ctx, w.contactURL, contactPayload{
		SubmittedAt: msg.SubmittedAt.UTC().Format(time.RFC3339),
		Language:    string(msg.Language),
		Message:     msg.Message,
		Sender:      msg.Sender,
	})
}

func (w *Webhook) post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook: encode: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, webhookTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.token != "" {
		req.Header.Set("Authorization", "Bearer "+w.token)
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook: %w", &netutil.StatusError{Code: resp.StatusCode, URL: req.URL.Host})
	}
	return nil
}
