package oauth

import (
	"context"

	"golang.org/x/oauth2"
	googleOAuth "golang.org/x/oauth2/google"
)

const (
	// GoogleProviderName is the identifier for Google OAuth provider.
	GoogleProviderName = "google"

	// GoogleUserInfoURL is the OpenID Connect userinfo endpoint.
	GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

// GoogleDefaultScopes returns the scopes needed for the email and name claims.
func GoogleDefaultScopes() []string {
	return []string{"openid", "email", "profile"}
}

// Google implements Authenticator on top of a TokenExchanger and a
// ProfileFetcher sharing one HTTP client.
type Google struct {
	config   *oauth2.Config
	exchange *TokenExchanger
	profile  *ProfileFetcher
}

// NewGoogle creates a Google authenticator.
// Returns an error if ClientID, ClientSecret or RedirectURL is empty.
func NewGoogle(cfg GoogleConfig, opts ...Option) (*Google, error) {
	exchange, err := NewTokenExchanger(cfg, opts...)
	if err != nil {
		return nil, err
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = GoogleDefaultScopes()
	}

	return &Google{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     googleOAuth.Endpoint,
		},
		exchange: exchange,
		profile:  NewProfileFetcher(opts...),
	}, nil
}

// Name returns the provider identifier.
func (g *Google) Name() string {
	return GoogleProviderName
}

// AuthCodeURL generates the consent page URL the user is redirected to.
func (g *Google) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return g.config.AuthCodeURL(state, opts...)
}

// ExchangeCodeForToken trades an authorization code for an access token.
func (g *Google) ExchangeCodeForToken(ctx context.Context, code string) (string, error) {
	return g.exchange.Exchange(ctx, code)
}

// FetchUserIdentity resolves an access token into a UserIdentity.
func (g *Google) FetchUserIdentity(ctx context.Context, accessToken string) (*UserIdentity, error) {
	return g.profile.Fetch(ctx, accessToken)
}
