package middleware

import (
	"github.com/nedz/interviewbot/core/metrics"
	tghelpers "github.com/nedz/interviewbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// UpdateKind classifies an update for metrics labels.
func UpdateKind(upd tele.Update) string {
	switch {
	case upd.Message != nil && len(upd.Message.Text) > 0 && upd.Message.Text[0] == '/':
		return "command"
	case upd.Message != nil:
		return "message"
	case upd.Callback != nil:
		return "callback"
	default:
		return "other"
	}
}

// MessageMetricsMiddleware counts inbound updates and attaches reply counters
// that the handler summary reports.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		metrics.UpdatesTotal.WithLabelValues(UpdateKind(c.Update())).Inc()
		tghelpers.TrackReplies(c)
		return next(c)
	}
}
