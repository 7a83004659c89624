// Package oauth implements the server side of Google's OAuth2 authorization code flow.
//
// The package covers the two network steps that follow the consent redirect: trading the
// authorization code for an access token, and trading the access token for the user's
// profile. Both steps share a Transport that performs exactly one POST per call and
// classifies the outcome.
//
// # Features
//
//   - TokenExchanger: authorization code to access token
//   - ProfileFetcher: access token to UserIdentity (email + nickname)
//   - Google: both steps plus the consent URL, behind the Authenticator interface
//   - Typed errors with a Kind for each failure class
//   - Functional options for custom HTTP clients, loggers and endpoints
//   - Configuration struct with env tags for environment-based setup
//
// # Usage
//
//	provider, err := oauth.NewGoogle(oauth.GoogleConfig{
//		ClientID:     os.Getenv("GOOGLE_OAUTH_CLIENT_ID"),
//		ClientSecret: os.Getenv("GOOGLE_OAUTH_CLIENT_SECRET"),
//		RedirectURL:  "https://example.com/auth/google/callback",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// In the callback handler
//	token, err := provider.ExchangeCodeForToken(ctx, code)
//	if err != nil {
//		// handle error
//	}
//
//	user, err := provider.FetchUserIdentity(ctx, token)
//	if err != nil {
//		// handle error
//	}
//
// # Wire Format
//
// The token request is a form-encoded POST to https://oauth2.googleapis.com/token with
// grant_type=authorization_code, client_id, client_secret, redirect_uri and code. The
// userinfo request is a POST to https://www.googleapis.com/oauth2/v3/userinfo with an
// empty body and "Authorization: Bearer <token>". Both requests carry
// "Content-Type: application/x-www-form-urlencoded".
//
// # Error Handling
//
// Every failure is an *Error with one of three kinds:
//
//   - KindDataGetFailed: non-2xx status, empty body or network error
//   - KindAccessTokenGetFailed: token response without a usable access_token
//   - KindUserInfoGetFailed: any userinfo failure, including transport errors
//
// Use errors.Is with the matching sentinel or KindOf:
//
//	if errors.Is(err, oauth.ErrUserInfoGetFailed) {
//		// profile unavailable
//	}
//
// ProfileFetcher collapses transport failures into KindUserInfoGetFailed; the transport
// error is still reachable with errors.Unwrap. A cancelled or expired context is reported
// as a failure that also matches context.Canceled or context.DeadlineExceeded.
//
// # Testing
//
// Use WithEndpoints and WithHTTPClient to point the provider at a test server:
//
//	ts := httptest.NewServer(handler)
//	defer ts.Close()
//
//	provider, err := oauth.NewGoogle(cfg,
//		oauth.WithHTTPClient(ts.Client()),
//		oauth.WithEndpoints(ts.URL+"/token", ts.URL+"/userinfo"),
//	)
//
// # Security
//
//   - Access tokens, codes and client secrets are never logged
//   - No retries, refresh or caching: each call is a single attempt
//   - Validate the state parameter before calling ExchangeCodeForToken
package oauth
