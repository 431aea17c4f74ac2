package conversation

import "github.com/codexs/hirebot/internal/storage"

// Kind is the type of an inbound event.
type Kind int

const (
	KindText Kind = iota
	KindStart
	KindMenu
	KindHelp
	KindStatus
	KindCommands
	KindVoice
	KindContact
	KindLocation
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindStart:
		return "start"
	case KindMenu:
		return "menu"
	case KindHelp:
		return "help"
	case KindStatus:
		return "status"
	case KindCommands:
		return "commands"
	case KindVoice:
		return "voice"
	case KindContact:
		return "contact"
	case KindLocation:
		return "location"
	}
	return "unknown"
}

// Voice is a voice note or an audio file.
type Voice struct {
	FileID string
	// Size is in bytes; zero when the client did not report it.
	Size     int64
	Duration int
	// Audio is true for audio documents; FileName then carries the extension.
	Audio    bool
	FileName string
}

// Contact is a natively shared phone contact.
type Contact struct {
	Phone     string
	FirstName string
	LastName  string
}

// Location is a natively shared location.
type Location struct {
	Lat float64
	Lon float64
}

// Event is one inbound private-chat update, already stripped of transport
// types.
type Event struct {
	Kind      Kind
	UserID    int64
	ChatID    int64
	MessageID int
	From      storage.Applicant

	Text     string
	Voice    *Voice
	Contact  *Contact
	Location *Location
}
