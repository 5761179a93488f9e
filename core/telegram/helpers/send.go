package helpers

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/nedz/interviewbot/core/logger"
	"github.com/nedz/interviewbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

const actionSendText = "send.text"

var dispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher routes helper sends through d. With nil, sends run inline.
func SetDispatcher(d *sender.Dispatcher) {
	dispatcher.Store(d)
}

// dispatch queues run on the dispatcher. A full or closed queue degrades to
// an inline call so replies are never silently dropped.
func dispatch(c tele.Context, endpoint string, run func() error) error {
	d := dispatcher.Load()
	if d == nil {
		return run()
	}
	ctx := BuildContext(c)
	err := d.Enqueue(ctx, actionSendText, endpoint, run)
	if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
		logger.Warn(ctx, "tg.sender", "queue.fallback",
			slog.String("status", "skip"),
			slog.String("endpoint", endpoint),
			slog.String("err", err.Error()),
		)
		return run()
	}
	return err
}

// sendArgs turns an optional *tele.SendOptions into telebot's variadic form.
func sendArgs(opts []*tele.SendOptions) []any {
	if len(opts) == 0 || opts[0] == nil {
		return nil
	}
	return []any{opts[0]}
}

func hasMarkup(opts []*tele.SendOptions) bool {
	return len(opts) > 0 && opts[0] != nil && opts[0].ReplyMarkup != nil
}

// accepted records a reply in the update's ReplyStats when err is nil.
func accepted(c tele.Context, opts []*tele.SendOptions, err error) error {
	if err == nil {
		Replies(c).record(hasMarkup(opts))
	}
	return err
}

// SendText sends plain text to the chat of the current update.
func SendText(c tele.Context, text string, opts ...*tele.SendOptions) error {
	args := sendArgs(opts)
	return accepted(c, opts, dispatch(c, "sendMessage", func() error {
		return c.Send(text, args...)
	}))
}

// SendTextTo sends plain text to chatID. When chatID is the update's own chat
// the send goes through c so reply counters see it.
func SendTextTo(c tele.Context, chatID int64, text string, opts ...*tele.SendOptions) error {
	if chat := c.Chat(); chat != nil && chat.ID == chatID {
		return SendText(c, text, opts...)
	}
	args := sendArgs(opts)
	return accepted(c, opts, dispatch(c, "sendMessage", func() error {
		_, err := c.Bot().Send(tele.ChatID(chatID), text, args...)
		return err
	}))
}
