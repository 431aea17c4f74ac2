package telegram

import (
	"net"
	"strconv"
	"time"

	coreconfig "github.com/codexs/hirebot/core/config"

	tele "gopkg.in/telebot.v4"
)

const defaultPollTimeout = 10 * time.Second

// updateTypes limits delivery to plain messages. The bot sends reply
// keyboards only, so callback queries never arrive.
var updateTypes = []string{"message"}

// NewPoller picks the update source for the configured run mode: a webhook
// listener when telegram.run_mode is "webhook", long polling otherwise.
func NewPoller(cfg *coreconfig.Config) tele.Poller {
	if cfg == nil {
		return &tele.LongPoller{Timeout: defaultPollTimeout, AllowedUpdates: updateTypes}
	}
	if cfg.Telegram.RunMode == coreconfig.RunModeWebhook {
		hook := cfg.Webhook
		return &tele.Webhook{
			Listen:         net.JoinHostPort(hook.Listen, strconv.Itoa(hook.Port)),
			AllowedUpdates: updateTypes,
			SecretToken:    hook.SecretToken,
			DropUpdates:    cfg.Telegram.DropPending,
			Endpoint:       &tele.WebhookEndpoint{PublicURL: hook.URL},
		}
	}

	timeout := time.Duration(cfg.Telegram.LongPollTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultPollTimeout
	}
	return &tele.LongPoller{Timeout: timeout, AllowedUpdates: updateTypes}
}
