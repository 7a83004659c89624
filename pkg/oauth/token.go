package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
)

const grantTypeAuthorizationCode = "authorization_code"

// TokenExchanger trades an authorization code for an access token at
// the provider's token endpoint.
type TokenExchanger struct {
	transport *Transport
	cfg       GoogleConfig
	tokenURL  string
}

// NewTokenExchanger creates a TokenExchanger for the given credentials.
// Returns an error if ClientID, ClientSecret or RedirectURL is empty.
func NewTokenExchanger(cfg GoogleConfig, opts ...Option) (*TokenExchanger, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts...)
	return &TokenExchanger{
		transport: NewTransport(o.httpClient, o.logger),
		cfg:       cfg,
		tokenURL:  o.tokenURL,
	}, nil
}

// Exchange posts the authorization code to the token endpoint and returns
// the access token verbatim.
//
// Transport failures are returned as KindDataGetFailed. A response that is
// not JSON or lacks a non-empty string access_token is
// KindAccessTokenGetFailed.
func (e *TokenExchanger) Exchange(ctx context.Context, code string) (string, error) {
	form := url.Values{
		"grant_type":    {grantTypeAuthorizationCode},
		"client_id":     {e.cfg.ClientID},
		"client_secret": {e.cfg.ClientSecret},
		"redirect_uri":  {e.cfg.RedirectURL},
		"code":          {code},
	}

	body, err := e.transport.Post(ctx, e.tokenURL, form, "")
	if err != nil {
		return "", err
	}

	token, err := parseAccessToken(body)
	if err != nil {
		return "", newError(KindAccessTokenGetFailed, "access token parsing error", err)
	}
	return token, nil
}

var errNoAccessToken = errors.New("access_token is missing")

func parseAccessToken(body string) (string, error) {
	var resp struct {
		AccessToken *string `json:"access_token"`
	}
	if err := json.NewDecoder(strings.NewReader(body)).Decode(&resp); err != nil {
		return "", err
	}
	if resp.AccessToken == nil || *resp.AccessToken == "" {
		return "", errNoAccessToken
	}
	return *resp.AccessToken, nil
}
