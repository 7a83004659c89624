package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/subwate/googlelogin/middlewares"
	"github.com/subwate/googlelogin/pkg/oauth"
)

// errorResponse is the JSON body of every non-2xx answer.
type errorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error:     msg,
		RequestID: middlewares.GetRequestID(r.Context()),
	})
}

// writeProviderError maps a provider failure to 504 when the deadline
// passed and 502 otherwise. The kind travels in the body so callers can
// tell a failed token exchange from a failed profile fetch.
func (h *Handler) writeProviderError(w http.ResponseWriter, r *http.Request, step string, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}

	kind := oauth.KindOf(err)
	h.logger.WarnContext(r.Context(), "google login failed",
		slog.String("step", step),
		slog.String("kind", kind.String()),
		slog.String("error", err.Error()),
	)

	writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		Kind:      kind.String(),
		RequestID: middlewares.GetRequestID(r.Context()),
	})
}
