package logger

import (
	"log/slog"
	"os"
)

// New returns the structured logger used across the service.
// Level defaults to info; LOG_LEVEL=debug turns on store-level detail.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
