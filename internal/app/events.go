package app

import (
	"github.com/codexs/hirebot/internal/conversation"
	"github.com/codexs/hirebot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

func applicant(u *tele.User) storage.Applicant {
	return storage.Applicant{
		TelegramID: u.ID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
	}
}

// newEvent starts an event for the private chat update in c. It reports
// false when the update has no sender or message.
func newEvent(c tele.Context, kind conversation.Kind) (conversation.Event, bool) {
	user, msg := c.Sender(), c.Message()
	if user == nil || msg == nil {
		return conversation.Event{}, false
	}
	chatID := user.ID
	if ch := c.Chat(); ch != nil {
		chatID = ch.ID
	}
	return conversation.Event{
		Kind:      kind,
		UserID:    user.ID,
		ChatID:    chatID,
		MessageID: msg.ID,
		From:      applicant(user),
		Text:      msg.Text,
	}, true
}

// messageEvent classifies a non-command message.
func messageEvent(c tele.Context) (conversation.Event, bool) {
	ev, ok := newEvent(c, conversation.KindText)
	if !ok {
		return ev, false
	}
	msg := c.Message()
	switch {
	case msg.Voice != nil:
		ev.Kind = conversation.KindVoice
		ev.Voice = &conversation.Voice{
			FileID:   msg.Voice.FileID,
			Size:     msg.Voice.FileSize,
			Duration: msg.Voice.Duration,
		}
	case msg.Audio != nil:
		ev.Kind = conversation.KindVoice
		ev.Voice = &conversation.Voice{
			FileID:   msg.Audio.FileID,
			Size:     msg.Audio.FileSize,
			Duration: msg.Audio.Duration,
			Audio:    true,
			FileName: msg.Audio.FileName,
		}
	case msg.Contact != nil:
		ev.Kind = conversation.KindContact
		ev.Contact = &conversation.Contact{
			Phone:     msg.Contact.PhoneNumber,
			FirstName: msg.Contact.FirstName,
			LastName:  msg.Contact.LastName,
		}
	case msg.Location != nil:
		ev.Kind = conversation.KindLocation
		ev.Location = &conversation.Location{
			Lat: float64(msg.Location.Lat),
			Lon: float64(msg.Location.Lng),
		}
	case msg.Text == "":
		return ev, false
	}
	return ev, true
}
