package keyboard

import tele "gopkg.in/telebot.v4"

// Button is one reply keyboard button. Contact and Location turn it into a
// request for the user's phone number or position.
type Button struct {
	Text     string
	Contact  bool
	Location bool
}

// RemoveKeyboard returns a markup that hides the keyboard.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// Reply builds a resized reply keyboard from rows of buttons.
func Reply(oneTime bool, rows ...[]Button) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: oneTime}
	keyboard := make([]tele.Row, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tele.Btn, 0, len(row))
		for _, b := range row {
			switch {
			case b.Contact:
				buttons = append(buttons, markup.Contact(b.Text))
			case b.Location:
				buttons = append(buttons, markup.Location(b.Text))
			default:
				buttons = append(buttons, markup.Text(b.Text))
			}
		}
		keyboard = append(keyboard, markup.Row(buttons...))
	}
	markup.Reply(keyboard...)
	return markup
}

// ReplyButtons builds a reply keyboard from rows of text.
func ReplyButtons(rows ...[]string) *tele.ReplyMarkup {
	out := make([][]Button, 0, len(rows))
	for _, row := range rows {
		r := make([]Button, 0, len(row))
		for _, label := range row {
			r = append(r, Button{Text: label})
		}
		out = append(out, r)
	}
	return Reply(false, out...)
}
