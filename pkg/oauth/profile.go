package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// UserIdentity is the normalized identity returned by the userinfo endpoint.
// Nickname carries the provider's "name" claim.
type UserIdentity struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// ProfileFetcher resolves an access token into a UserIdentity.
type ProfileFetcher struct {
	transport   *Transport
	userInfoURL string
}

// NewProfileFetcher creates a ProfileFetcher. It needs no credentials.
func NewProfileFetcher(opts ...Option) *ProfileFetcher {
	o := newOptions(opts...)
	return &ProfileFetcher{
		transport:   NewTransport(o.httpClient, o.logger),
		userInfoURL: o.userInfoURL,
	}
}

// Fetch posts to the userinfo endpoint with "Bearer <accessToken>" and
// returns the user's email and name. The request is sent even for an
// empty token; rejecting it is up to the provider.
//
// Every failure, including transport errors, is reported as
// KindUserInfoGetFailed. The transport error stays reachable through
// errors.Unwrap.
func (f *ProfileFetcher) Fetch(ctx context.Context, accessToken string) (*UserIdentity, error) {
	body, err := f.transport.Post(ctx, f.userInfoURL, nil, "Bearer "+accessToken)
	if err != nil {
		return nil, newError(KindUserInfoGetFailed, err.Error(), err)
	}

	var claims userInfoClaims
	if err := json.NewDecoder(strings.NewReader(body)).Decode(&claims); err != nil {
		return nil, newError(KindUserInfoGetFailed, err.Error(), err)
	}

	email, name := claimText(claims.Email), claimText(claims.Name)
	if isBlank(name) || isBlank(email) {
		msg := fmt.Sprintf("value is blank name: %s email: %s", name, email)
		return nil, newError(KindUserInfoGetFailed, msg, nil)
	}

	return &UserIdentity{
		Email:    email,
		Nickname: name,
	}, nil
}

// userInfoClaims is the subset of Google's userinfo response this
// package consumes.
type userInfoClaims struct {
	Email json.RawMessage `json:"email"`
	Name  json.RawMessage `json:"name"`
}

// claimText renders a claim as text: strings are unquoted, numbers and
// booleans keep their literal form. Missing, null, object and array
// claims read as "".
func claimText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '{', '[', 'n':
		return ""
	default:
		return string(raw)
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
