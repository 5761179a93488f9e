package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/nedz/interviewbot/core/logger"
	tghelpers "github.com/nedz/interviewbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// ErrHandlerPanic wraps a value recovered from a panicking handler.
var ErrHandlerPanic = errors.New("telegram: handler panic")

const stackLimit = 4096

// RecoverMiddleware turns handler panics into ErrHandlerPanic so one bad
// update cannot take down the poller.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			stack := debug.Stack()
			if len(stack) > stackLimit {
				stack = stack[:stackLimit]
			}
			logger.Error(tghelpers.BuildContext(c), "tg", "handler.panic",
				slog.String("status", "fail"),
				slog.String("err", fmt.Sprint(r)),
				slog.String("stack", string(stack)),
			)
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}()
		return next(c)
	}
}
