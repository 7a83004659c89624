package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/subwate/googlelogin/pkg/logger"
)

// RequestIDHeader is the response header carrying the request ID.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds upstream IDs copied into logs and headers.
const maxRequestIDLength = 128

type requestIDKey struct{}

type requestIDOptions struct {
	headers  []string
	generate func() string
}

// RequestIDOption configures the RequestID middleware.
type RequestIDOption func(*requestIDOptions)

// WithRequestIDHeaders replaces the incoming headers searched for an
// upstream ID. The first acceptable value wins.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(o *requestIDOptions) {
		o.headers = headers
	}
}

// WithRequestIDGenerator replaces uuid.NewString as the ID source.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(o *requestIDOptions) {
		if gen != nil {
			o.generate = gen
		}
	}
}

// RequestID tags each request with an ID stored in the context and echoed
// in the X-Request-ID response header. Upstream IDs from X-Request-ID or
// X-Correlation-ID are reused when short and printable.
func RequestID(opts ...RequestIDOption) func(http.Handler) http.Handler {
	o := &requestIDOptions{
		headers:  []string{RequestIDHeader, "X-Correlation-ID"},
		generate: uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := upstreamRequestID(r.Header, o.headers)
			if id == "" {
				id = o.generate()
			}

			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
		})
	}
}

func upstreamRequestID(h http.Header, names []string) string {
	for _, name := range names {
		if v := h.Get(name); validRequestID(v) {
			return v
		}
	}
	return ""
}

func validRequestID(v string) bool {
	if v == "" || len(v) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < 0x21 || v[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID returns the request ID stored by RequestID, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds "request_id" to every record logged with a
// request context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := GetRequestID(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
