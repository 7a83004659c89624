package logger

import "log/slog"

// NewNope returns a logger whose handler reports every level as disabled,
// so records are never built. Library constructors fall back to it when
// no logger is passed.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
