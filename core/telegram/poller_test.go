package telegram

import (
	"testing"
	"time"

	coreconfig "github.com/nedz/interviewbot/core/config"

	tele "gopkg.in/telebot.v4"
)

func TestBuildPollerLongpollDefaults(t *testing.T) {
	p := BuildPoller(PollerOptions{RunMode: "longpoll", AllowedUpdates: []string{"message"}})
	lp, ok := p.(*tele.LongPoller)
	if !ok {
		t.Fatalf("poller = %T, want *tele.LongPoller", p)
	}
	if lp.Timeout != defaultLongPollTimeout {
		t.Fatalf("timeout = %v", lp.Timeout)
	}
	if len(lp.AllowedUpdates) != 1 || lp.AllowedUpdates[0] != "message" {
		t.Fatalf("allowed updates = %v", lp.AllowedUpdates)
	}
}

func TestBuildPollerWebhook(t *testing.T) {
	cfg := &coreconfig.Config{
		Telegram: coreconfig.TelegramConfig{RunMode: " Webhook ", LongPollTimeoutSeconds: 30},
		Webhook:  coreconfig.WebhookConfig{Listen: "0.0.0.0", Port: 8443, URL: "https://bot.example.org/hook"},
	}
	opts := PollerOptionsFromConfig(cfg)
	if opts.pollTimeout() != 30*time.Second {
		t.Fatalf("poll timeout = %v", opts.pollTimeout())
	}
	wh, ok := BuildPoller(opts).(*tele.Webhook)
	if !ok {
		t.Fatalf("poller = %T, want *tele.Webhook", BuildPoller(opts))
	}
	if wh.Listen != "0.0.0.0:8443" {
		t.Fatalf("listen = %q", wh.Listen)
	}
	if wh.Endpoint == nil || wh.Endpoint.PublicURL != "https://bot.example.org/hook" {
		t.Fatalf("unexpected endpoint %+v", wh.Endpoint)
	}
}
