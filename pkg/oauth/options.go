package oauth

import (
	"log/slog"
	"net/http"

	googleOAuth "golang.org/x/oauth2/google"
)

// Option configures Google OAuth components.
type Option func(*options)

type options struct {
	httpClient  *http.Client
	logger      *slog.Logger
	tokenURL    string
	userInfoURL string
}

func newOptions(opts ...Option) *options {
	o := &options{
		tokenURL:    googleOAuth.Endpoint.TokenURL,
		userInfoURL: GoogleUserInfoURL,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithHTTPClient sets a custom HTTP client for provider requests.
// This is useful for testing with httptest servers or injecting
// custom transports and timeouts.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets the logger used for request diagnostics.
// Tokens, codes and secrets are never passed to it.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithEndpoints overrides the token and userinfo endpoints.
// Empty values keep the defaults.
func WithEndpoints(tokenURL, userInfoURL string) Option {
	return func(o *options) {
		if tokenURL != "" {
			o.tokenURL = tokenURL
		}
		if userInfoURL != "" {
			o.userInfoURL = userInfoURL
		}
	}
}
