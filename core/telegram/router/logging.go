package router

import (
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/nedz/interviewbot/core/logger"
	"github.com/nedz/interviewbot/core/metrics"
	tghelpers "github.com/nedz/interviewbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

const errLimit = 256

// summary describes one routed update for the handler.handled line.
type summary struct {
	handler string
	start   time.Time
	// status and outcome override the values derived from the handler error.
	status  string
	outcome string
}

func (s summary) statusFor(err error) (status, outcome string) {
	status, outcome = s.status, s.outcome
	if status == "" {
		status = "ok"
		if err != nil {
			status = "fail"
		}
	}
	if outcome == "" {
		outcome = "ok"
		if err != nil {
			outcome = "fail"
		}
	}
	return status, outcome
}

// run tags the context with the handler, calls fn and records the summary.
func (s summary) run(c tele.Context, fn tele.HandlerFunc) error {
	tghelpers.WithHandler(c, s.handler)
	err := fn(c)
	s.log(c, err)
	return err
}

func (s summary) log(c tele.Context, err error) {
	ctx := tghelpers.WithHandler(c, s.handler)
	status, outcome := s.statusFor(err)

	elapsed := time.Since(s.start)
	metrics.RecordHandler(s.handler, outcome, elapsed.Seconds())

	replies := tghelpers.Replies(c)
	attrs := []slog.Attr{
		slog.String("status", status),
		slog.String("outcome", outcome),
		slog.Int("messages", replies.Messages()),
		slog.Bool("kb", replies.Keyboard()),
		slog.Int64("duration_ms", logger.RoundMS(elapsed).Milliseconds()),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(err.Error(), errLimit)),
			slog.String("err_code", errorCode(err)),
		)
	}
	logger.Info(ctx, "tg", "handler.handled", attrs...)
}

// handlerName turns a command endpoint into a metrics-safe label.
func handlerName(endpoint string) string {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(endpoint), "/"))
	if name == "" {
		return "unknown"
	}
	return strings.ReplaceAll(name, " ", "_")
}

// errorCode prefers an explicit Code() and falls back to the error type name.
func errorCode(err error) string {
	if err == nil {
		return ""
	}
	if c, ok := err.(interface{ Code() string }); ok {
		if code := strings.TrimSpace(c.Code()); code != "" {
			return strings.ToUpper(strings.ReplaceAll(code, " ", "_"))
		}
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "UNKNOWN_ERROR"
	}
	return strings.ToUpper(t.Name())
}
