package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New constructs a text logger on stderr with the level taken from LOG_LEVEL.
func New(service string) *slog.Logger {
	return NewWithWriter(os.Stderr, service)
}

func NewWithWriter(w io.Writer, service string) *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("service", service)
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
