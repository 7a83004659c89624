package oauth

import (
	"context"

	"golang.org/x/oauth2"
)

// Authenticator is the narrow surface a login flow needs from a provider.
// Implementations perform no persistence and issue no sessions.
type Authenticator interface {
	// Name returns the provider identifier (e.g., "google").
	Name() string

	// AuthCodeURL returns the consent page URL carrying state.
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string

	// ExchangeCodeForToken trades an authorization code for an access token.
	ExchangeCodeForToken(ctx context.Context, code string) (string, error)

	// FetchUserIdentity resolves an access token into a UserIdentity.
	FetchUserIdentity(ctx context.Context, accessToken string) (*UserIdentity, error)
}
