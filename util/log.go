// Package util holds the logging helpers shared by the schedbench packages.
package util

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

const (
	LevelTrace slog.Level = slog.LevelInfo + 1
)

// Trace logs a progress message at LevelTrace on the default logger.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// ParseLevel maps a configured level name to a slog level. Unknown names
// fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a text logger that prints LevelTrace as "TRACE".
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey {
				return a
			}

			if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
				a.Value = slog.StringValue("TRACE")
			}

			return a
		},
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
