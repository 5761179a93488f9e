package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	coreconfig "github.com/nedz/interviewbot/core/config"
)

const (
	defaultSampleNum = 1
	defaultSampleDen = 50
)

type options struct {
	level     slog.Level
	format    logFormat
	keyOrder  []string
	profile   string
	sampleNum int
	sampleDen int
	trace     bool
	filePath  string
}

func resolveOptions(cfg *coreconfig.Config) options {
	var lc coreconfig.LoggingConfig
	if cfg != nil {
		lc = cfg.Logging
	}
	o := options{
		level:    parseLevel(lc.Level),
		profile:  strings.ToLower(strings.TrimSpace(lc.Profile)),
		keyOrder: parseKeyOrder(lc.KeysOrder),
		trace:    isTruthy(os.Getenv("TRACE")) || isTruthy(os.Getenv("LOG_TRACE")),
	}
	if o.profile == "" {
		o.profile = "prod"
	}
	o.format = parseFormat(lc.Format, o.profile)
	o.sampleNum, o.sampleDen = parseDebugSample(lc.DebugSample)

	dir, file := strings.TrimSpace(lc.Dir), strings.TrimSpace(lc.BotFile)
	if dir != "" && file != "" {
		o.filePath = filepath.Join(dir, file)
	}
	return o
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// parseFormat honours an explicit format and otherwise picks kv for debug/dev profiles.
func parseFormat(raw, profile string) logFormat {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "kv", "text", "pretty":
		return formatKV
	case "json":
		return formatJSON
	}
	if profile == "debug" || profile == "dev" {
		return formatKV
	}
	return formatJSON
}

func parseKeyOrder(raw string) []string {
	raw = strings.TrimSpace(raw)
	var order []string
	if raw != "" && raw != "default" {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				order = append(order, p)
			}
		}
	}
	if len(order) == 0 {
		return append([]string(nil), defaultKeyOrder...)
	}
	return order
}

// parseDebugSample returns the debug sampling ratio; "0" disables sampling.
func parseDebugSample(raw string) (int, int) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultSampleNum, defaultSampleDen
	}
	if raw == "0" || raw == "off" {
		return 0, 0
	}
	num, den := parseRatio(raw)
	if num <= 0 || den <= 0 {
		return defaultSampleNum, defaultSampleDen
	}
	return num, den
}

// openOutputs returns stdout plus the optional log file. A file that cannot be
// opened is reported on the standard logger and skipped.
func openOutputs(o options) ([]io.Writer, []io.Closer) {
	writers := []io.Writer{os.Stdout}
	if o.filePath == "" {
		return writers, nil
	}
	if err := os.MkdirAll(filepath.Dir(o.filePath), 0o755); err != nil {
		log.Printf("logger: failed to create log dir: %v", err)
		return writers, nil
	}
	f, err := os.OpenFile(o.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("logger: failed to open log file %s: %v", o.filePath, err)
		return writers, nil
	}
	return append(writers, f), []io.Closer{f}
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
