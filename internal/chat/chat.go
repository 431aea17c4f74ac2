// Package chat is the outbound side of the messaging channel. The
// conversation engine, the finalizer and the notifiers talk to Telegram only
// through these interfaces. Every text is sent in HTML parse mode.
package chat

import "context"

// Button is one reply keyboard button.
type Button struct {
	Text            string
	RequestContact  bool
	RequestLocation bool
}

// Keyboard is a reply keyboard. Remove hides any keyboard the client shows.
type Keyboard struct {
	Rows    [][]Button
	OneTime bool
	Remove  bool
}

// Rows builds a keyboard of plain text buttons.
func Rows(rows ...[]string) *Keyboard {
	kb := &Keyboard{Rows: make([][]Button, 0, len(rows))}
	for _, r := range rows {
		kb.Append(r...)
	}
	return kb
}

// Append adds one row of plain text buttons.
func (k *Keyboard) Append(labels ...string) *Keyboard {
	row := make([]Button, 0, len(labels))
	for _, l := range labels {
		row = append(row, Button{Text: l})
	}
	k.Rows = append(k.Rows, row)
	return k
}

// AppendButton adds a row holding a single button.
func (k *Keyboard) AppendButton(b Button) *Keyboard {
	k.Rows = append(k.Rows, []Button{b})
	return k
}

// Labels flattens the keyboard into its button texts.
func (k *Keyboard) Labels() []string {
	if k == nil {
		return nil
	}
	var out []string
	for _, r := range k.Rows {
		for _, b := range r {
			out = append(out, b.Text)
		}
	}
	return out
}

// RemoveKeyboard hides the reply keyboard.
var RemoveKeyboard = &Keyboard{Remove: true}

// Photo points at a local file or a URL. Path wins when both are set.
type Photo struct {
	Path string
	URL  string
}

// Sender delivers outbound messages. Implementations must be safe for
// concurrent use.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string, kb *Keyboard) (messageID int, err error)
	SendPhoto(ctx context.Context, chatID int64, photo Photo, caption string, kb *Keyboard) error
	SendVoice(ctx context.Context, chatID int64, fileID, caption string) error
	Forward(ctx context.Context, toChatID, fromChatID int64, messageID int) error
}

// Files resolves and downloads files users sent to the bot.
type Files interface {
	FileURL(ctx context.Context, fileID string) (string, error)
	Download(ctx context.Context, fileID, dst string) error
}
