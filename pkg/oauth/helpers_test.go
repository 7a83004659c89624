package oauth_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/subwate/googlelogin/pkg/oauth"
)

const (
	testClientID     = "test-id"
	testClientSecret = "test-secret"
	testRedirectURL  = "https://example.com/auth/google/callback"
)

func testConfig() oauth.GoogleConfig {
	return oauth.GoogleConfig{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		RedirectURL:  testRedirectURL,
	}
}

// capturedRequest is what a provider test server saw.
type capturedRequest struct {
	Header http.Header
	Method string
	Path   string
	Body   string
}

// newProviderServer starts a server answering /token and /userinfo with the
// given status and body. Requests are sent to the returned channel.
func newProviderServer(t *testing.T, status int, body string) (*httptest.Server, <-chan capturedRequest) {
	t.Helper()

	requests := make(chan capturedRequest, 4)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		requests <- capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   string(data),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	return ts, requests
}

func endpointOptions(ts *httptest.Server) []oauth.Option {
	return []oauth.Option{
		oauth.WithHTTPClient(ts.Client()),
		oauth.WithEndpoints(ts.URL+"/token", ts.URL+"/userinfo"),
	}
}

// roundTripFunc lets a test observe the outgoing request exactly as the
// client built it, before any server-side header normalization.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	rec := httptest.NewRecorder()
	rec.Header().Set("Content-Type", "application/json")
	rec.WriteHeader(status)
	_, _ = io.Copy(rec, strings.NewReader(body))
	return rec.Result()
}
