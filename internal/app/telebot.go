package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/codexs/hirebot/core/telegram/keyboard"
	"github.com/codexs/hirebot/core/telegram/middleware"
	"github.com/codexs/hirebot/core/telegram/netutil"
	"github.com/codexs/hirebot/internal/chat"

	tele "gopkg.in/telebot.v4"
)

const defaultAPIURL = "https://api.telegram.org"

// botAPI is the part of *tele.Bot the adapter calls.
type botAPI interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Forward(to tele.Recipient, msg tele.Editable, opts ...interface{}) (*tele.Message, error)
	FileByID(fileID string) (tele.File, error)
	Download(file *tele.File, localFilename string) error
}

// Telegram adapts a telebot bot to chat.Sender and chat.Files.
type Telegram struct {
	api     botAPI
	fileURL string
}

var (
	_ chat.Sender = (*Telegram)(nil)
	_ chat.Files  = (*Telegram)(nil)
)

// NewTelegram wraps bot.
func NewTelegram(bot *tele.Bot) *Telegram {
	return newTelegram(bot, bot.URL, bot.Token)
}

func newTelegram(api botAPI, apiURL, token string) *Telegram {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Telegram{api: api, fileURL: strings.TrimRight(apiURL, "/") + "/file/bot" + token + "/"}
}

func markup(kb *chat.Keyboard) *tele.ReplyMarkup {
	switch {
	case kb == nil:
		return nil
	case kb.Remove:
		return keyboard.RemoveKeyboard()
	}
	rows := make([][]keyboard.Button, 0, len(kb.Rows))
	for _, r := range kb.Rows {
		row := make([]keyboard.Button, 0, len(r))
		for _, b := range r {
			row = append(row, keyboard.Button{Text: b.Text, Contact: b.RequestContact, Location: b.RequestLocation})
		}
		rows = append(rows, row)
	}
	return keyboard.Reply(kb.OneTime, rows...)
}

func sendOpts(kb *chat.Keyboard) []interface{} {
	opts := []interface{}{tele.ModeHTML, tele.NoPreview}
	if m := markup(kb); m != nil {
		opts = append(opts, m)
	}
	return opts
}

// redacted hides the bot token in Error while keeping the cause for
// errors.Is and errors.As.
type redacted struct{ err error }

func (r redacted) Error() string { return netutil.Redact(r.err) }
func (r redacted) Unwrap() error { return r.err }

func wrap(action string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("telegram %s: %w", action, redacted{err})
}

func (t *Telegram) SendText(ctx context.Context, chatID int64, text string, kb *chat.Keyboard) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	msg, err := t.api.Send(tele.ChatID(chatID), text, sendOpts(kb)...)
	if err != nil {
		return 0, wrap("send text", err)
	}
	middleware.CountSend(ctx, kb != nil && !kb.Remove)
	return msg.ID, nil
}

func (t *Telegram) SendPhoto(ctx context.Context, chatID int64, photo chat.Photo, caption string, kb *chat.Keyboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var file tele.File
	switch {
	case photo.Path != "":
		file = tele.FromDisk(photo.Path)
	case photo.URL != "":
		file = tele.FromURL(photo.URL)
	default:
		return fmt.Errorf("telegram send photo: no source")
	}
	_, err := t.api.Send(tele.ChatID(chatID), &tele.Photo{File: file, Caption: caption}, sendOpts(kb)...)
	if err != nil {
		return wrap("send photo", err)
	}
	middleware.CountSend(ctx, kb != nil && !kb.Remove)
	return nil
}

func (t *Telegram) SendVoice(ctx context.Context, chatID int64, fileID, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	voice := &tele.Voice{File: tele.File{FileID: fileID}, Caption: caption}
	if _, err := t.api.Send(tele.ChatID(chatID), voice, tele.ModeHTML); err != nil {
		return wrap("send voice", err)
	}
	middleware.CountSend(ctx, false)
	return nil
}

func (t *Telegram) Forward(ctx context.Context, toChatID, fromChatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src := tele.StoredMessage{MessageID: strconv.Itoa(messageID), ChatID: fromChatID}
	if _, err := t.api.Forward(tele.ChatID(toChatID), src); err != nil {
		return wrap("forward", err)
	}
	return nil
}

// FileURL returns the download URL of a file. The URL embeds the bot token,
// so it must only be handed to trusted receivers.
func (t *Telegram) FileURL(ctx context.Context, fileID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, err := t.api.FileByID(fileID)
	if err != nil {
		return "", wrap("get file", err)
	}
	if f.FilePath == "" {
		return "", fmt.Errorf("telegram get file: empty path for %s", fileID)
	}
	return t.fileURL + f.FilePath, nil
}

// Download saves a file to dst, creating its directory.
func (t *Telegram) Download(ctx context.Context, fileID, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("telegram download: %w", err)
	}
	f := tele.File{FileID: fileID}
	if err := t.api.Download(&f, dst); err != nil {
		return wrap("download", err)
	}
	return nil
}
