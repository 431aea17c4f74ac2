package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/codexs/hirebot/internal/storage"
)

const discordColor = 0x36a64f

// discordSession is the part of *discordgo.Session used here.
type discordSession interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Discord mirrors submissions into a Discord channel as embeds. It only uses
// the REST API, so no gateway connection is opened.
type Discord struct {
	sess    discordSession
	channel string
}

var _ Notifier = (*Discord)(nil)

func NewDiscord(token, channel string) (*Discord, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	return &Discord{sess: dg, channel: channel}, nil
}

func (d *Discord) Name() string { return "discord" }

func (d *Discord) NotifyApplication(ctx context.Context, ev ApplicationEvent) error {
	app := ev.App
	embed := &discordgo.MessageEmbed{
		Title: "New application " + app.ID,
		Color: discordColor,
	}
	for _, f := range cardFields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Label,
			Value:  truncateRunes(valueOrDash(app, f.Key), 1024),
			Inline: len([]rune(valueOrDash(app, f.Key))) <= 40,
		})
	}
	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "🎙 Voice", Value: voiceStatusPlain(app), Inline: true},
		&discordgo.MessageEmbedField{
			Name:   "🆔 Telegram",
			Value:  fmt.Sprintf("%s (ID %d)", app.Applicant.Handle(), app.Applicant.TelegramID),
			Inline: true,
		},
	)
	return d.send(ctx, embed)
}

func (d *Discord) NotifyContact(ctx context.Context, msg *storage.ContactMessage) error {
	return d.send(ctx, &discordgo.MessageEmbed{
		Title:       "New contact message",
		Description: truncateRunes(msg.Message, 4096),
		Color:       discordColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "From", Value: msg.Sender.Name(), Inline: true},
			{Name: "Telegram", Value: fmt.Sprintf("%s (ID %d)", msg.Sender.Handle(), msg.Sender.TelegramID), Inline: true},
			{Name: "Language", Value: string(msg.Language), Inline: true},
		},
	})
}

func (d *Discord) send(ctx context.Context, embed *discordgo.MessageEmbed) error {
	if _, err := d.sess.ChannelMessageSendEmbed(d.channel, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord: send embed: %w", err)
	}
	return nil
}
