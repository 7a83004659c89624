package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// New creates a JSON logger writing to stdout at cfg.Level.
// Secret attributes are redacted and context extractors are applied.
// If cfg.Sentry.DSN is set, warnings and errors are also sent to Sentry;
// an empty DSN or a failed Sentry init falls back to stdout only.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return newLogger(os.Stdout, cfg, extractors...)
}

func newLogger(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	stdoutHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.Level,
	})

	if cfg.Sentry.DSN == "" {
		return slog.New(WithContext(NewRedactingHandler(stdoutHandler), extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdoutHandler).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(WithContext(NewRedactingHandler(stdoutHandler), extractors...))
	}

	// Errors become Sentry issues; MinLevel decides whether warnings are kept as logs.
	eventLevel := []slog.Level{slog.LevelError}
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.Sentry.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: eventLevel,
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	combined := newMultiHandler(stdoutHandler, sentryHandler)
	return slog.New(WithContext(NewRedactingHandler(combined), extractors...))
}

// Flush returns a shutdown hook that waits for buffered Sentry events to be
// delivered. It is a no-op when Sentry was never initialized.
func Flush(timeout time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		wait := timeout
		if deadline, ok := ctx.Deadline(); ok {
			wait = min(wait, time.Until(deadline))
		}
		sentry.Flush(wait)
		return nil
	}
}
