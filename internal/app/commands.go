package app

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/codexs/hirebot/core/logger"
	tg "github.com/codexs/hirebot/core/telegram"
	"github.com/codexs/hirebot/core/telegram/commands"
	tghelpers "github.com/codexs/hirebot/core/telegram/helpers"
	"github.com/codexs/hirebot/internal/chat"
	"github.com/codexs/hirebot/internal/conversation"
	"github.com/codexs/hirebot/internal/hiring"
	"github.com/codexs/hirebot/internal/i18n"
	"github.com/codexs/hirebot/internal/report"
	"github.com/codexs/hirebot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

// Handlers turns Telegram updates into engine events and answers the admin
// and group commands.
type Handlers struct {
	engine        *conversation.Engine
	reporter      *report.Reporter
	sender        chat.Sender
	sessions      storage.SessionStore
	groupChatID   int64
	retentionDays int
}

// HandlersOptions wires Handlers.
type HandlersOptions struct {
	Engine        *conversation.Engine
	Reporter      *report.Reporter
	Sender        chat.Sender
	Sessions      storage.SessionStore
	GroupChatID   int64
	RetentionDays int
}

func NewHandlers(opts HandlersOptions) *Handlers {
	days := opts.RetentionDays
	if days <= 0 {
		days = 30
	}
	return &Handlers{
		engine:        opts.Engine,
		reporter:      opts.Reporter,
		sender:        opts.Sender,
		sessions:      opts.Sessions,
		groupChatID:   opts.GroupChatID,
		retentionDays: days,
	}
}

// Registry declares every command the bot answers.
func (h *Handlers) Registry() *tg.Registry {
	reg := tg.NewRegistry()

	user := []struct {
		name, desc string
		kind       conversation.Kind
		aliases    []string
	}{
		{"/start", "Start or restart the bot", conversation.KindStart, nil},
		{"/menu", "Back to the main menu", conversation.KindMenu, []string{"/cancel"}},
		{"/help", "How to use the bot", conversation.KindHelp, nil},
		{"/status", "Your application status", conversation.KindStatus, nil},
		{"/commands", "List the available commands", conversation.KindCommands, nil},
	}
	for _, u := range user {
		reg.RegisterCommand(u.name, commands.Command{
			Handler:     h.conversationCommand(u.kind),
			Description: u.desc,
			Scope:       commands.ScopeUser,
			Aliases:     u.aliases,
		})
	}

	reg.RegisterCommand("/admin", commands.Command{Handler: h.adminMenu, Description: "Admin panel", Scope: commands.ScopeAdmin})
	reg.RegisterCommand("/botstatus", commands.Command{Handler: h.botStatus, Description: "Bot status and health", Scope: commands.ScopeAdmin, Aliases: []string{"/adminstatus"}})
	reg.RegisterCommand("/stats", commands.Command{Handler: h.stats, Description: "Application statistics", Scope: commands.ScopeAdmin})
	reg.RegisterCommand("/sessions", commands.Command{Handler: h.listSessions, Description: "List active sessions", Scope: commands.ScopeAdmin})
	reg.RegisterCommand("/cleanup", commands.Command{Handler: h.cleanup, Description: "Remove old session snapshots", Scope: commands.ScopeAdmin})
	reg.RegisterCommand("/debug", commands.Command{Handler: h.debug, Description: "Inspect a user's session", Scope: commands.ScopeAdmin})
	reg.RegisterCommand("/testgroup", commands.Command{Handler: h.testGroup, Description: "Send a test group notification", Scope: commands.ScopeAdmin})

	reg.RegisterCommand("/daily", commands.Command{Handler: h.daily, Description: "Daily report", Scope: commands.ScopeGroup, Aliases: []string{"/report"}})
	reg.RegisterCommand("/gstats", commands.Command{Handler: h.groupStats, Description: "Detailed statistics", Scope: commands.ScopeGroup})
	reg.RegisterCommand("/recent", commands.Command{Handler: h.recent, Description: "Recent applications", Scope: commands.ScopeGroup})
	reg.RegisterCommand("/app", commands.Command{Handler: h.application, Description: "Application details by ID", Scope: commands.ScopeGroup})
	reg.RegisterCommand("/ghelp", commands.Command{Handler: h.groupHelp, Description: "Group command help", Scope: commands.ScopeGroup})
	return reg
}

// Message feeds a private text, voice, contact or location message to the
// engine.
func (h *Handlers) Message(c tele.Context) error {
	ev, ok := messageEvent(c)
	if !ok {
		return nil
	}
	return h.engine.Handle(tghelpers.BuildContext(c), ev)
}

func (h *Handlers) conversationCommand(kind conversation.Kind) tele.HandlerFunc {
	return func(c tele.Context) error {
		ev, ok := newEvent(c, kind)
		if !ok {
			return nil
		}
		return h.engine.Handle(tghelpers.BuildContext(c), ev)
	}
}

// lang picks the reply language for a command: the user's conversation
// language, then their client language, then English.
func (h *Handlers) lang(ctx context.Context, c tele.Context) i18n.Language {
	user := c.Sender()
	if user == nil {
		return i18n.EN
	}
	if s, ok := h.engine.Session(user.ID); ok && s.HasLanguage() {
		return s.Language
	}
	if h.sessions != nil {
		if s, ok := h.sessions.Load(ctx, user.ID); ok && s.HasLanguage() {
			return s.Language
		}
	}
	if l, ok := i18n.Parse(user.LanguageCode); ok {
		return l
	}
	return i18n.EN
}

func (h *Handlers) reply(ctx context.Context, c tele.Context, text string) error {
	ch := c.Chat()
	if ch == nil {
		return nil
	}
	_, err := h.sender.SendText(ctx, ch.ID, text, nil)
	return err
}

// answer renders a report and replies with it. Report failures become the
// generic error reply.
func (h *Handlers) answer(c tele.Context, render func(context.Context, i18n.Language) (string, error)) error {
	ctx := tghelpers.BuildContext(c)
	lang := h.lang(ctx, c)
	text, err := render(ctx, lang)
	if err != nil {
		logger.Error(ctx, "app", "report.render",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		text = hiring.ErrorGeneric.Get(lang)
	}
	return h.reply(ctx, c, text)
}

func (h *Handlers) adminMenu(c tele.Context) error {
	return h.answer(c, func(_ context.Context, lang i18n.Language) (string, error) {
		return hiring.AdminMenu.Get(lang), nil
	})
}

func (h *Handlers) botStatus(c tele.Context) error { return h.answer(c, h.reporter.BotStatus) }

func (h *Handlers) stats(c tele.Context) error { return h.answer(c, h.reporter.Stats) }

func (h *Handlers) listSessions(c tele.Context) error { return h.answer(c, h.reporter.Sessions) }

func (h *Handlers) cleanup(c tele.Context) error {
	days := h.retentionDays
	if args := c.Args(); len(args) > 0 {
		if n, err := strconv.Atoi(i18n.NormalizeDigits(args[0])); err == nil && n > 0 {
			days = n
		}
	}
	return h.answer(c, func(ctx context.Context, lang i18n.Language) (string, error) {
		return h.reporter.Cleanup(ctx, days, lang)
	})
}

func (h *Handlers) debug(c tele.Context) error {
	return h.answer(c, func(ctx context.Context, lang i18n.Language) (string, error) {
		args := c.Args()
		if len(args) == 0 {
			return hiring.AdminDebugUsage.Get(lang), nil
		}
		uid, err := strconv.ParseInt(i18n.NormalizeDigits(args[0]), 10, 64)
		if err != nil {
			return hiring.AdminDebugUsage.Get(lang), nil
		}
		return h.reporter.Debug(ctx, uid, lang)
	})
}

func (h *Handlers) testGroup(c tele.Context) error {
	return h.answer(c, func(ctx context.Context, lang i18n.Language) (string, error) {
		if h.groupChatID == 0 {
			return hiring.AdminTestGroupOff.Get(lang), nil
		}
		if _, err := h.sender.SendText(ctx, h.groupChatID, hiring.AdminTestGroupMsg, nil); err != nil {
			return "", err
		}
		return hiring.AdminTestGroupOK.Get(lang), nil
	})
}

func (h *Handlers) daily(c tele.Context) error { return h.answer(c, h.reporter.Daily) }

func (h *Handlers) groupStats(c tele.Context) error { return h.answer(c, h.reporter.GroupStats) }

func (h *Handlers) recent(c tele.Context) error { return h.answer(c, h.reporter.Recent) }

func (h *Handlers) application(c tele.Context) error {
	id := strings.Join(c.Args(), " ")
	return h.answer(c, func(ctx context.Context, lang i18n.Language) (string, error) {
		return h.reporter.Application(ctx, id, lang)
	})
}

func (h *Handlers) groupHelp(c tele.Context) error {
	return h.answer(c, func(_ context.Context, lang i18n.Language) (string, error) {
		return hiring.GroupHelpText.Get(lang), nil
	})
}

// NotAdmin tells a non-admin their user id so it can be added to the
// configuration.
func (h *Handlers) NotAdmin(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	lang := h.lang(ctx, c)
	var uid int64
	if u := c.Sender(); u != nil {
		uid = u.ID
	}
	text := hiring.AdminAccessDenied.Get(lang) + "\n\n" +
		hiring.Fill(hiring.AdminYourID.Get(lang), "user_id", strconv.FormatInt(uid, 10))
	return h.reply(ctx, c, text)
}

// WrongChat answers group commands used outside the staff group.
func (h *Handlers) WrongChat(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	return h.reply(ctx, c, hiring.GroupOnlyCommand.Get(h.lang(ctx, c)))
}

// NotGroupAdmin answers group members who are not administrators.
func (h *Handlers) NotGroupAdmin(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	return h.reply(ctx, c, hiring.GroupAdminRequired.Get(h.lang(ctx, c)))
}

// Limited answers admin and group commands over the rate limit.
func (h *Handlers) Limited(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	return h.reply(ctx, c, hiring.RateLimitMessage.Get(h.lang(ctx, c)))
}
