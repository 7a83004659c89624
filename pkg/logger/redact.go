package logger

import (
	"context"
	"log/slog"
	"strings"
)

const redactedValue = "[REDACTED]"

// DefaultSecretKeys are attribute keys whose values are never written.
var DefaultSecretKeys = []string{
	"access_token",
	"authorization",
	"client_secret",
	"code",
	"id_token",
	"refresh_token",
	"token",
}

// RedactingHandler wraps a slog.Handler and replaces the value of every
// attribute whose key matches a secret key (case-insensitive), including
// attributes nested in groups. It sits in front of all destinations so
// stdout and Sentry see the same redacted record.
type RedactingHandler struct {
	next slog.Handler
	keys map[string]struct{}
}

// NewRedactingHandler creates a RedactingHandler. With no keys,
// DefaultSecretKeys is used.
func NewRedactingHandler(next slog.Handler, keys ...string) slog.Handler {
	if len(keys) == 0 {
		keys = DefaultSecretKeys
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[strings.ToLower(k)] = struct{}{}
	}
	return &RedactingHandler{next: next, keys: set}
}

func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *RedactingHandler) Handle(ctx context.Context, rec slog.Record) error {
	out := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.redact(a))
		return true
	})
	return h.next.Handle(ctx, out)
}

func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = h.redact(a)
	}
	return &RedactingHandler{next: h.next.WithAttrs(clean), keys: h.keys}
}

func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{next: h.next.WithGroup(name), keys: h.keys}
}

func (h *RedactingHandler) redact(a slog.Attr) slog.Attr {
	if _, ok := h.keys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, redactedValue)
	}
	if a.Value.Kind() != slog.KindGroup {
		return a
	}
	group := a.Value.Group()
	clean := make([]any, len(group))
	for i, ga := range group {
		clean[i] = h.redact(ga)
	}
	return slog.Group(a.Key, clean...)
}
