// Package logging builds the process logger on log/slog.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns a text logger on stderr at the given level.
// Supported levels: debug, info, warn, error (default info).
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}
