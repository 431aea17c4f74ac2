package notify

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"

	"github.com/codexs/hirebot/internal/storage"
)

// slackPoster is the part of the Slack client used here.
type slackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// Slack mirrors submissions into a Slack channel.
type Slack struct {
	client  slackPoster
	channel string
}

var _ Notifier = (*Slack)(nil)

func NewSlack(token, channel string) *Slack {
	return &Slack{client: slackapi.New(token), channel: channel}
}

func (s *Slack) Name() string { return "slack" }

func slackBold(v string) string { return "*" + v + "*" }

func (s *Slack) NotifyApplication(ctx context.Context, ev ApplicationEvent) error {
	return s.post(ctx, plainSummary(ev.App, slackBold))
}

func (s *Slack) NotifyContact(ctx context.Context, msg *storage.ContactMessage) error {
	return s.post(ctx, plainContact(msg, slackBold))
}

func (s *Slack) post(ctx context.Context, text string) error {
	if _, _, err := s.client.PostMessageContext(ctx, s.channel, slackapi.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("slack: post message: %w", err)
	}
	return nil
}
