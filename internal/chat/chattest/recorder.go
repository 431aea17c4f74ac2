// Package chattest provides an in-memory chat.Sender for tests.
package chattest

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/codexs/hirebot/internal/chat"
)

// Message is one recorded outbound call.
type Message struct {
	// ID is the message id the recorder assigned.
	ID        int
	Action    string
	ChatID    int64
	Text      string
	Photo     chat.Photo
	FileID    string
	FromChat  int64
	MessageID int
	Keyboard  *chat.Keyboard
}

// Recorder captures outbound calls. Set Fail to make an action return an error.
type Recorder struct {
	mu     sync.Mutex
	msgs   []Message
	nextID int
	Fail   map[string]error

	// Files
	URLs        map[string]string
	Downloaded  map[string]string
	DownloadErr error
}

var (
	_ chat.Sender = (*Recorder)(nil)
	_ chat.Files  = (*Recorder)(nil)
)

func New() *Recorder {
	return &Recorder{Fail: map[string]error{}, URLs: map[string]string{}, Downloaded: map[string]string{}}
}

func (r *Recorder) record(m Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.Fail[m.Action]; err != nil {
		return err
	}
	r.nextID++
	m.ID = r.nextID
	r.msgs = append(r.msgs, m)
	return nil
}

func (r *Recorder) SendText(_ context.Context, chatID int64, text string, kb *chat.Keyboard) (int, error) {
	if err := r.record(Message{Action: "text", ChatID: chatID, Text: text, Keyboard: kb}); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextID, nil
}

func (r *Recorder) SendPhoto(_ context.Context, chatID int64, photo chat.Photo, caption string, kb *chat.Keyboard) error {
	return r.record(Message{Action: "photo", ChatID: chatID, Photo: photo, Text: caption, Keyboard: kb})
}

func (r *Recorder) SendVoice(_ context.Context, chatID int64, fileID, caption string) error {
	return r.record(Message{Action: "voice", ChatID: chatID, FileID: fileID, Text: caption})
}

func (r *Recorder) Forward(_ context.Context, toChatID, fromChatID int64, messageID int) error {
	return r.record(Message{Action: "forward", ChatID: toChatID, FromChat: fromChatID, MessageID: messageID})
}

func (r *Recorder) FileURL(_ context.Context, fileID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.URLs[fileID], nil
}

// Download writes a small placeholder file to dst.
func (r *Recorder) Download(_ context.Context, fileID, dst string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.DownloadErr != nil {
		return r.DownloadErr
	}
	if err := os.WriteFile(dst, []byte("OggS"), 0o644); err != nil {
		return err
	}
	r.Downloaded[fileID] = dst
	return nil
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.msgs...)
}

// To returns the messages sent to chatID.
func (r *Recorder) To(chatID int64) []Message {
	var out []Message
	for _, m := range r.Messages() {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

// Last returns the most recent message, or the zero Message.
func (r *Recorder) Last() Message {
	msgs := r.Messages()
	if len(msgs) == 0 {
		return Message{}
	}
	return msgs[len(msgs)-1]
}

// Texts joins the texts and captions of all recorded messages.
func (r *Recorder) Texts() string {
	var b strings.Builder
	for _, m := range r.Messages() {
		b.WriteString(m.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// Reset forgets recorded messages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = nil
}
