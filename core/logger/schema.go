package logger

import (
	"log/slog"
	"slices"
	"strings"
)

// levelName maps a slog level onto the four names written to the level field.
func levelName(l slog.Level) string {
	switch {
	case l < slog.LevelInfo:
		return "DEBUG"
	case l < slog.LevelWarn:
		return "INFO"
	case l < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

// enum is a closed set of lower-case field values.
type enum map[string]struct{}

func newEnum(values ...string) enum {
	e := make(enum, len(values))
	for _, v := range values {
		e[v] = struct{}{}
	}
	return e
}

// match lower-cases raw and reports whether it belongs to the set.
func (e enum) match(raw string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	_, ok := e[v]
	return v, ok
}

var (
	statusValues  = newEnum("ok", "fail", "skip", "retry", "cancelled")
	outcomeValues = newEnum("ok", "fail", "cancelled")
)

// defaultKeyOrder is the text-format column order; other keys follow sorted.
var defaultKeyOrder = slices.Concat(
	[]string{"ts", "level", "component", "event", "status"},
	[]string{"rid", "rid_full", "ts_unix_nano", "update_id", "user_id", "chat_id", "chat_type", "handler"},
	[]string{"command", "action", "from_state", "to_state", "remaining", "interview_id", "outcome"},
	[]string{"duration_ms", "messages", "kb", "count", "source", "origin", "duplicates"},
	[]string{"payload", "lang", "username"},
	[]string{"mode", "listen", "port", "public_url", "http_code", "db", "host"},
	[]string{"err", "err_code", "error_kind", "attempt", "attempts", "delay_ms", "backoff_ms"},
)
