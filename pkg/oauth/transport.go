package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/subwate/googlelogin/pkg/logger"
)

const (
	contentTypeForm = "application/x-www-form-urlencoded"

	// maxResponseSize caps how much of a provider response is read.
	maxResponseSize = 1 << 20
)

// Transport issues a single outbound POST to a provider endpoint and
// classifies the outcome. It never retries.
type Transport struct {
	client *http.Client
	logger *slog.Logger
}

// NewTransport creates a Transport. A nil client falls back to
// http.DefaultClient, a nil logger discards output.
func NewTransport(client *http.Client, log *slog.Logger) *Transport {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logger.NewNope()
	}
	return &Transport{client: client, logger: log}
}

// Post sends form (or an empty body when form is nil) to endpoint.
// When authorization is non-empty it is sent verbatim as the
// Authorization header.
//
// The response body is returned for 2xx statuses. Every failure is an
// *Error of kind KindDataGetFailed. If ctx was cancelled or timed out,
// the returned error also matches ctx.Err() through errors.Is.
func (t *Transport) Post(ctx context.Context, endpoint string, form url.Values, authorization string) (string, error) {
	var body io.Reader = http.NoBody
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", newError(KindDataGetFailed, err.Error(), err)
	}
	req.Header.Set("Content-Type", contentTypeForm)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.ErrorContext(ctx, "provider request failed",
			slog.String("host", req.URL.Host),
			slog.String("path", req.URL.Path),
			slog.String("error", err.Error()),
		)
		return "", newError(KindDataGetFailed, err.Error(), withContextErr(ctx, err))
	}
	defer resp.Body.Close()

	t.logger.DebugContext(ctx, "provider responded",
		slog.String("host", req.URL.Host),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		msg := fmt.Sprintf("return status code : %d", resp.StatusCode)
		return "", newError(KindDataGetFailed, msg, nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return "", newError(KindDataGetFailed, err.Error(), withContextErr(ctx, err))
	}
	if len(data) > maxResponseSize {
		return "", newError(KindDataGetFailed, "response too large", nil)
	}
	if len(data) == 0 {
		return "", newError(KindDataGetFailed, "response is null", nil)
	}

	return string(data), nil
}

// withContextErr makes sure a cancellation observed during the call stays
// visible to the caller even if the client wrapped it away.
func withContextErr(ctx context.Context, err error) error {
	ctxErr := ctx.Err()
	if ctxErr == nil || errors.Is(err, ctxErr) {
		return err
	}
	return errors.Join(err, ctxErr)
}
