package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger returns a slog logger backed by a charmbracelet/log handler.
// charmbracelet levels share slog's numeric values.
func newLogger(w io.Writer, level string) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           log.Level(parseLogLevel(level)),
	})
	return slog.New(handler)
}
