package logger

import (
	"log/slog"
	"os"
	"strings"

	"pr-size-check/internal/config"
)

// Setup initializes and configures the application logger. Logs go to
// stderr so stdout stays clean for the host environment.
func Setup(settings config.Settings) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLogLevel(settings.LogLevel),
	}

	var handler slog.Handler
	switch strings.ToLower(settings.LogFormat) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts a string log level to slog.Level. Unknown values
// fall back to info.
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
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
