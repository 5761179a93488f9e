package middleware

import (
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/nedz/interviewbot/core/logger"
	tghelpers "github.com/nedz/interviewbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

const (
	payloadLimit  = 256
	usernameLimit = 64
)

// seenUpdates remembers update ids for a few seconds. Command routes wrap the
// logger a second time and the receipt line must be written once.
var seenUpdates = expirable.NewLRU[int, struct{}](4096, nil, 10*time.Second)

func firstSighting(updateID int) bool {
	if seenUpdates.Contains(updateID) {
		return false
	}
	seenUpdates.Add(updateID, struct{}{})
	return true
}

// LoggerMiddleware seeds the per-update context and writes one sampled
// update.received line.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		if !firstSighting(upd.ID) {
			tghelpers.BuildContext(c)
			return next(c)
		}
		ctx := tghelpers.NewUpdateContext(c)
		if !logger.ShouldSampleDebug() {
			return next(c)
		}

		attrs := []slog.Attr{slog.String("status", "ok")}
		if chat := c.Chat(); chat != nil {
			attrs = append(attrs, slog.String("chat_type", string(chat.Type)))
		}
		if user := c.Sender(); user != nil {
			if user.Username != "" {
				attrs = append(attrs, slog.String("username", logger.SanitizeLimit(user.Username, usernameLimit)))
			}
			if user.LanguageCode != "" {
				attrs = append(attrs, slog.String("lang", user.LanguageCode))
			}
		}
		if upd.Message != nil {
			if t := c.Text(); t != "" {
				attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(t, payloadLimit)))
			}
		}
		logger.Debug(ctx, "tg", "update.received", attrs...)
		return next(c)
	}
}
