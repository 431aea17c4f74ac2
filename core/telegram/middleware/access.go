package middleware

import (
	"log/slog"

	"github.com/codexs/hirebot/core/logger"
	tghelpers "github.com/codexs/hirebot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// AccessOptions defines how chat and role checks behave.
type AccessOptions struct {
	// IsAdmin reports whether a user may run admin commands.
	IsAdmin func(userID int64) bool
	// GroupChatID is the only group where group commands run; 0 disables them.
	GroupChatID int64
	// MemberStatus resolves a user's role in a chat. It defaults to the
	// bot's getChatMember call.
	MemberStatus func(c tele.Context) (tele.MemberStatus, error)

	OnNotAdmin      tele.HandlerFunc
	OnWrongChat     tele.HandlerFunc
	OnNotGroupAdmin tele.HandlerFunc
}

func reject(c tele.Context, reason string, h tele.HandlerFunc) error {
	ctx := tghelpers.BuildContext(c)
	logger.Info(ctx, "tg", "access.denied", slog.String("reason", reason))
	if h != nil {
		return h(c)
	}
	return nil
}

// PrivateOnly drops updates that do not come from a private chat.
func PrivateOnly(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if chat := c.Chat(); chat == nil || chat.Type != tele.ChatPrivate {
			return nil
		}
		return next(c)
	}
}

// AdminOnly ensures that only configured admins can invoke downstream handlers.
func AdminOnly(opts AccessOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.IsAdmin == nil || !opts.IsAdmin(user.ID) {
				return reject(c, "not_admin", opts.OnNotAdmin)
			}
			return next(c)
		}
	}
}

// GroupAdminOnly lets a command run only inside the configured group and only
// for that group's administrators or its creator.
func GroupAdminOnly(opts AccessOptions) tele.MiddlewareFunc {
	status := opts.MemberStatus
	if status == nil {
		status = chatMemberStatus
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat := c.Chat()
			if opts.GroupChatID == 0 || chat == nil || chat.ID != opts.GroupChatID {
				return reject(c, "wrong_chat", opts.OnWrongChat)
			}
			role, err := status(c)
			if err != nil {
				ctx := tghelpers.BuildContext(c)
				logger.Warn(ctx, "tg", "access.member_lookup",
					slog.String("status", "fail"),
					slog.String("err", err.Error()),
				)
				return reject(c, "member_lookup", opts.OnNotGroupAdmin)
			}
			if role != tele.Administrator && role != tele.Creator {
				return reject(c, "not_group_admin", opts.OnNotGroupAdmin)
			}
			return next(c)
		}
	}
}

func chatMemberStatus(c tele.Context) (tele.MemberStatus, error) {
	member, err := c.Bot().ChatMemberOf(c.Chat(), c.Sender())
	if err != nil {
		return "", err
	}
	return member.Role, nil
}
