// Package logger provides structured logging with context extraction, secret
// redaction and Sentry integration.
//
// Loggers are built on log/slog and write JSON to stdout. Every record passes
// through a RedactingHandler, so attributes such as access_token, code or
// client_secret are replaced with "[REDACTED]" before reaching any destination.
//
// # Basic Usage
//
//	log := logger.New(logger.Config{Level: slog.LevelInfo}, requestIDExtractor)
//	log.InfoContext(ctx, "login completed", slog.String("provider", "google"))
//
// # Context Extractors
//
// A ContextExtractor pulls a request-scoped attribute out of the context on
// every log call:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// # Sentry Integration
//
// When Config.Sentry.DSN is set, errors create Sentry issues and warnings are
// stored as Sentry logs (unless Sentry.MinLevel is error). An empty DSN or a
// failed initialization falls back to stdout only. Register Flush as a
// shutdown hook so buffered events are delivered before exit.
//
// Use NewNope in tests and as a library default.
package logger
