package config

import "os"

// Settings are process-level knobs read from the environment, separate from
// the per-run policy tiers.
type Settings struct {
	LogFormat string // "text" (default) or "json"
	LogLevel  string // "debug", "info", "warn", "error"
}

// LoadSettings reads the logging settings from the environment.
func LoadSettings() Settings {
	return Settings{
		LogFormat: os.Getenv("PSC_LOG_FORMAT"),
		LogLevel:  os.Getenv("PSC_LOG_LEVEL"),
	}
}
