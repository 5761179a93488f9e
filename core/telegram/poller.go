package telegram

import (
	"net"
	"strconv"
	"strings"
	"time"

	coreconfig "github.com/nedz/interviewbot/core/config"

	tele "gopkg.in/telebot.v4"
)

const defaultLongPollTimeout = 10 * time.Second

// PollerOptions configures BuildPoller.
type PollerOptions struct {
	RunMode         string
	LongPollTimeout time.Duration
	WebhookListen   string
	WebhookPort     int
	WebhookURL      string
	// AllowedUpdates limits the update types Telegram delivers; empty means all.
	AllowedUpdates []string
}

// PollerOptionsFromConfig maps the telegram and webhook sections of cfg.
func PollerOptionsFromConfig(cfg *coreconfig.Config) PollerOptions {
	return PollerOptions{
		RunMode:         cfg.Telegram.RunMode,
		LongPollTimeout: time.Duration(cfg.Telegram.LongPollTimeoutSeconds) * time.Second,
		WebhookListen:   cfg.Webhook.Listen,
		WebhookPort:     cfg.Webhook.Port,
		WebhookURL:      cfg.Webhook.URL,
	}
}

func (o PollerOptions) webhook() bool {
	return strings.EqualFold(strings.TrimSpace(o.RunMode), coreconfig.RunModeWebhook)
}

// pollTimeout is the effective long-poll timeout.
func (o PollerOptions) pollTimeout() time.Duration {
	if o.LongPollTimeout <= 0 {
		return defaultLongPollTimeout
	}
	return o.LongPollTimeout
}

// BuildPoller returns a webhook listener or a long poller.
func BuildPoller(opts PollerOptions) tele.Poller {
	if opts.webhook() {
		return &tele.Webhook{
			Listen:         net.JoinHostPort(opts.WebhookListen, strconv.Itoa(opts.WebhookPort)),
			AllowedUpdates: opts.AllowedUpdates,
			Endpoint:       &tele.WebhookEndpoint{PublicURL: opts.WebhookURL},
		}
	}
	return &tele.LongPoller{
		Timeout:        opts.pollTimeout(),
		AllowedUpdates: opts.AllowedUpdates,
	}
}
