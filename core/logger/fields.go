package logger

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
)

// fields is a flattened log line before encoding.
type fields map[string]any

// add flattens attr (and nested groups) under prefix.
func (f fields) add(prefix string, attr slog.Attr) {
	key := attr.Key
	switch {
	case key == "":
		key = prefix
	case prefix != "":
		key = prefix + "." + key
	}
	v := attr.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, child := range v.Group() {
			f.add(key, child)
		}
		return
	}
	if key == "" {
		return
	}
	if k, val, ok := normalizeValue(key, v); ok {
		f[k] = val
	}
}

// fill copies src entries whose keys are not set yet.
func (f fields) fill(src map[string]any) {
	for k, v := range src {
		if _, ok := f[k]; !ok {
			f[k] = v
		}
	}
}

// setDefault stores the first non-empty candidate when key is empty or missing.
func (f fields) setDefault(key string, candidates ...string) {
	if s, _ := f.str(key); s != "" {
		return
	}
	for _, c := range candidates {
		if c != "" {
			f[key] = c
			return
		}
	}
}

func (f fields) str(key string) (string, bool) {
	v, ok := f[key]
	if !ok {
		return "", false
	}
	switch x := v.(type) {
	case string:
		return x, true
	case fmt.Stringer:
		return x.String(), true
	default:
		return fmt.Sprint(x), true
	}
}

// compactRID shortens rid; JSON output keeps the original as rid_full.
func (f fields) compactRID(keepFull bool) {
	rid, _ := f.str("rid")
	if rid == "" {
		return
	}
	compact := CompactRID(rid)
	if compact == rid {
		return
	}
	if _, seen := f["rid_full"]; keepFull && !seen {
		f["rid_full"] = rid
	}
	f["rid"] = compact
}

// normalizeEnums canonicalizes level and status and drops unknown outcomes.
// Unknown statuses are kept lower-cased so nothing a caller logged is lost.
func (f fields) normalizeEnums() {
	if level, ok := f.str("level"); ok {
		level = strings.ToUpper(strings.TrimSpace(level))
		if level == "WARNING" {
			level = "WARN"
		}
		f["level"] = level
	}
	if s, _ := f.str("status"); s != "" {
		f["status"], _ = statusValues.match(s)
	}
	if o, _ := f.str("outcome"); o != "" {
		if v, ok := outcomeValues.match(o); ok {
			f["outcome"] = v
		} else {
			delete(f, "outcome")
		}
	}
}

// prune removes nil and empty string values.
func (f fields) prune() {
	for k, v := range f {
		switch x := v.(type) {
		case nil:
			delete(f, k)
		case string:
			if x == "" {
				delete(f, k)
			}
		case fmt.Stringer:
			if x.String() == "" {
				delete(f, k)
			}
		}
	}
}

func joinGroups(groups []string) string {
	return strings.Join(groups, ".")
}

// durationKey maps duration attributes onto *_ms keys.
func durationKey(key string) string {
	switch {
	case key == "duration":
		return "duration_ms"
	case strings.HasSuffix(key, "_ms"):
		return key
	}
	return key + "_ms"
}

func normalizeValue(key string, v slog.Value) (string, any, bool) {
	switch v.Kind() {
	case slog.KindString:
		return key, strings.TrimSpace(v.String()), true
	case slog.KindBool:
		return key, v.Bool(), true
	case slog.KindInt64:
		return key, v.Int64(), true
	case slog.KindUint64:
		if u := v.Uint64(); u <= math.MaxInt64 {
			return key, int64(u), true
		}
		return key, v.Uint64(), true
	case slog.KindFloat64:
		return key, v.Float64(), true
	case slog.KindDuration:
		return durationKey(key), RoundMS(v.Duration()).Milliseconds(), true
	case slog.KindTime:
		return key, v.Time().UTC().Format(time.RFC3339Nano), true
	}

	switch x := v.Any().(type) {
	case nil:
		return key, nil, false
	case error:
		return key, x.Error(), true
	case string:
		return key, strings.TrimSpace(x), true
	case time.Duration:
		return durationKey(key), RoundMS(x).Milliseconds(), true
	case fmt.Stringer:
		return key, x.String(), true
	default:
		return key, fmt.Sprint(x), true
	}
}
