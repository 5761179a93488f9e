package router

import (
	"time"

	tg "github.com/nedz/interviewbot/core/telegram"
	"github.com/nedz/interviewbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// TextOptions controls fallback behaviour for text updates.
type TextOptions struct {
	UnknownText tele.HandlerFunc
}

// TextRoute builds the handler for plain text. Text matching a registered command
// name or alias (without the telebot endpoint match, e.g. "next") is routed to it;
// anything else goes to opts.UnknownText or is logged as skipped.
func TextRoute(reg *tg.Registry, opts TextOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil && !cmd.AdminOnly {
				return summary{handler: handlerName(key), start: start}.run(c, cmd.Handler)
			}
		}

		if opts.UnknownText != nil {
			return summary{handler: "unknown_text", start: start}.run(c, opts.UnknownText)
		}

		summary{handler: "unknown_text", start: start, status: "skip"}.log(c, nil)
		return nil
	}

	return tg.Route{
		Endpoint: tele.OnText,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
