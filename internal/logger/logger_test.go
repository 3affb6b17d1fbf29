package logger

import (
	"log/slog"
	"testing"

	"pr-size-check/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tc := range cases {
		if got := parseLogLevel(tc.input); got != tc.expected {
			t.Errorf("parseLogLevel(%q) = %v, expected %v", tc.input, got, tc.expected)
		}
	}
}

func TestSetup_SetsDefaultLogger(t *testing.T) {
	logger := Setup(config.Settings{LogFormat: "json", LogLevel: "debug"})

	if logger == nil {
		t.Fatal("Setup returned nil logger")
	}
	if slog.Default() != logger {
		t.Error("Setup did not set the default logger")
	}
	if !logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("debug level not enabled after Setup with debug")
	}
}

func TestSetup_TextIsDefaultFormat(t *testing.T) {
	logger := Setup(config.Settings{})

	if _, ok := logger.Handler().(*slog.TextHandler); !ok {
		t.Errorf("expected TextHandler by default, got %T", logger.Handler())
	}
}
