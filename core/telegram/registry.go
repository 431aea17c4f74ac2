package telegram

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

// Registry holds bot commands keyed by their slash name.
type Registry struct {
	commands map[string]commands.Command
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]commands.Command)}
}

// RegisterCommand adds a new command. Invalid and duplicate registrations are
// logged and skipped.
func (r *Registry) RegisterCommand(name string, cmd commands.Command) {
	if r == nil || name == "" || cmd.Handler == nil || cmd.Description == "" {
		logger.TWire.LogAttrs(context.Background(), slog.LevelWarn, "register.command.skip",
			slog.String("name", name),
			slog.String("reason", "invalid"),
		)
		return
	}
	if name[0] != '/' {
		logger.TWire.LogAttrs(context.Background(), slog.LevelWarn, "register.command.skip",
			slog.String("name", name),
			slog.String("reason", "no_slash_prefix"),
		)
		return
	}
	if _, _, exists := r.LookupCommand(name); exists {
		logger.TWire.LogAttrs(context.Background(), slog.LevelWarn, "register.command.duplicate",
			slog.String("name", name),
		)
		return
	}
	r.commands[name] = cmd
}

// ListCommands returns the visible commands of one scope sorted by name.
func (r *Registry) ListCommands(scope commands.Scope) []tele.Command {
	var list []tele.Command
	for cmd, meta := range r.commands {
		if meta.Hidden || meta.Scope != scope {
			continue
		}
		list = append(list, tele.Command{Text: strings.TrimPrefix(cmd, "/"), Description: meta.Description})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	return list
}

// LookupCommand searches for a command by name or its aliases and returns the canonical key with metadata if found.
func (r *Registry) LookupCommand(name string) (string, commands.Command, bool) {
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	if cmd, ok := r.commands[name]; ok {
		return name, cmd, true
	}
	for key, cmd := range r.commands {
		for _, alias := range cmd.Aliases {
			if alias == name || "/"+alias == name {
				return key, cmd, true
			}
		}
	}
	return "", commands.Command{}, false
}

// Commands returns all registered commands.
func (r *Registry) Commands() map[string]commands.Command {
	return r.commands
}

// CommandTargets names the chats that see the admin and group command menus.
type CommandTargets struct {
	AdminIDs    []int64
	GroupChatID int64
}

// commandSetter is the part of tele.Bot used to publish menus.
type commandSetter interface {
	SetCommands(opts ...interface{}) error
}

// SetupCommands publishes the command menus. Every private chat sees the
// user commands, admins additionally see admin commands and the staff group
// sees group commands. Failures are logged, never fatal.
func SetupCommands(bot commandSetter, reg *Registry, targets CommandTargets) {
	if bot == nil || reg == nil {
		return
	}
	user := reg.ListCommands(commands.ScopeUser)
	publish := func(scope tele.CommandScope, cmds []tele.Command) {
		if len(cmds) == 0 {
			return
		}
		if err := bot.SetCommands(cmds, scope); err != nil {
			logger.TWire.LogAttrs(context.Background(), slog.LevelError, "register.commands.set_failed",
				slog.String("scope", string(scope.Type)),
				slog.Int64("chat_id", scope.ChatID),
				slog.String("err", err.Error()),
			)
		}
	}

	publish(tele.CommandScope{Type: tele.CommandScopeAllPrivateChats}, user)
	if admin := reg.ListCommands(commands.ScopeAdmin); len(admin) > 0 {
		merged := append(append([]tele.Command{}, user...), admin...)
		for _, id := range targets.AdminIDs {
			publish(tele.CommandScope{Type: tele.CommandScopeChat, ChatID: id}, merged)
		}
	}
	if targets.GroupChatID != 0 {
		publish(tele.CommandScope{Type: tele.CommandScopeChat, ChatID: targets.GroupChatID}, reg.ListCommands(commands.ScopeGroup))
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "commands.published"),
		slog.Int("user", len(user)),
		slog.Int("admins", len(targets.AdminIDs)),
		slog.Bool("group", targets.GroupChatID != 0),
	)
}
