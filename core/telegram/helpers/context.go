package helpers

import (
	"context"

	"github.com/nedz/interviewbot/core/logger"

	tele "gopkg.in/telebot.v4"
)

// ctxKey is the tele.Context storage slot for the per-update context.Context.
const ctxKey = "interviewbot.ctx"

// updateIDs returns the update, user and chat ids, zero when absent.
func updateIDs(c tele.Context) (updateID int, userID, chatID int64) {
	updateID = c.Update().ID
	if u := c.Sender(); u != nil {
		userID = u.ID
	}
	if ch := c.Chat(); ch != nil {
		chatID = ch.ID
	}
	return updateID, userID, chatID
}

// NewUpdateContext derives a fresh logging context for the update in c and
// stores it so later BuildContext calls return the same value.
func NewUpdateContext(c tele.Context) context.Context {
	updateID, userID, chatID := updateIDs(c)
	ctx := logger.WithRID(logger.Background(), logger.BuildRID(updateID, chatID, userID))
	ctx = logger.WithUpdateMeta(ctx, updateID, userID, chatID)
	ctx = logger.WithLogger(ctx, logger.Component("tg"))
	c.Set(ctxKey, ctx)
	return ctx
}

// BuildContext returns the context stored for the current update, creating it
// on first use. Handlers pass it to services so their logs carry the rid.
func BuildContext(c tele.Context) context.Context {
	if ctx, ok := c.Get(ctxKey).(context.Context); ok && ctx != nil {
		return ctx
	}
	return NewUpdateContext(c)
}

// WithHandler tags the update context with the routed handler name.
func WithHandler(c tele.Context, handler string) context.Context {
	ctx := BuildContext(c)
	if handler == "" || logger.HandlerFrom(ctx) == handler {
		return ctx
	}
	ctx = logger.WithHandler(ctx, handler)
	c.Set(ctxKey, ctx)
	return ctx
}
