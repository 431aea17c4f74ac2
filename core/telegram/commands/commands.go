package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Scope says where a command may run and who may run it.
type Scope int

const (
	// ScopeUser commands run in private chats for everyone.
	ScopeUser Scope = iota
	// ScopeAdmin commands run in private chats for configured admins.
	ScopeAdmin
	// ScopeGroup commands run only in the staff group, for its administrators.
	ScopeGroup
)

func (s Scope) String() string {
	switch s {
	case ScopeAdmin:
		return "admin"
	case ScopeGroup:
		return "group"
	default:
		return "user"
	}
}

// Command represents a bot command with its handler, description, and metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	Scope       Scope
	Hidden      bool
	Aliases     []string
}
