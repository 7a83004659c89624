package logger

import "log/slog"

// Config holds logger configuration.
type Config struct {
	Sentry SentryConfig
	// Level is the minimum level written to stdout ("debug", "info", "warn", "error").
	Level slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel determines which log levels to send to Sentry (e.g., slog.LevelWarn for warnings+errors)
	MinLevel slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"warn"`
}
