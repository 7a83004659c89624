package oauth_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subwate/googlelogin/pkg/oauth"
)

func TestNewTokenExchanger(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		e, err := oauth.NewTokenExchanger(testConfig())
		require.NoError(t, err)
		require.NotNil(t, e)
	})

	t.Run("missing client ID", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.ClientID = ""
		e, err := oauth.NewTokenExchanger(cfg)
		require.ErrorIs(t, err, oauth.ErrMissingClientID)
		require.Nil(t, e)
	})

	t.Run("missing client secret", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.ClientSecret = ""
		e, err := oauth.NewTokenExchanger(cfg)
		require.ErrorIs(t, err, oauth.ErrMissingClientSecret)
		require.Nil(t, e)
	})

	t.Run("missing redirect URL", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.RedirectURL = ""
		e, err := oauth.NewTokenExchanger(cfg)
		require.ErrorIs(t, err, oauth.ErrMissingRedirectURL)
		require.Nil(t, e)
	})
}

func TestTokenExchanger_Exchange(t *testing.T) {
	t.Parallel()

	t.Run("returns access token", func(t *testing.T) {
		t.Parallel()
		ts, requests := newProviderServer(t, http.StatusOK, `{"access_token":"T","token_type":"Bearer","expires_in":3599}`)

		e, err := oauth.NewTokenExchanger(testConfig(), endpointOptions(ts)...)
		require.NoError(t, err)

		token, err := e.Exchange(context.Background(), "auth-code")
		require.NoError(t, err)
		require.Equal(t, "T", token)

		req := <-requests
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/token", req.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
		assert.Empty(t, req.Header.Get("Authorization"))

		form, err := url.ParseQuery(req.Body)
		require.NoError(t, err)
		assert.Equal(t, "authorization_code", form.Get("grant_type"))
		assert.Equal(t, testClientID, form.Get("client_id"))
		assert.Equal(t, testClientSecret, form.Get("client_secret"))
		assert.Equal(t, testRedirectURL, form.Get("redirect_uri"))
		assert.Equal(t, "auth-code", form.Get("code"))
	})

	t.Run("reserved characters are form encoded", func(t *testing.T) {
		t.Parallel()
		ts, requests := newProviderServer(t, http.StatusOK, `{"access_token":"T"}`)

		cfg := testConfig()
		cfg.ClientSecret = "s&e=c+r%t"
		cfg.RedirectURL = "https://example.com/cb?next=/home&x=1"
		e, err := oauth.NewTokenExchanger(cfg, endpointOptions(ts)...)
		require.NoError(t, err)

		_, err = e.Exchange(context.Background(), "4/0A&code=x")
		require.NoError(t, err)

		req := <-requests
		form, err := url.ParseQuery(req.Body)
		require.NoError(t, err)
		assert.Equal(t, "s&e=c+r%t", form.Get("client_secret"))
		assert.Equal(t, "https://example.com/cb?next=/home&x=1", form.Get("redirect_uri"))
		assert.Equal(t, "4/0A&code=x", form.Get("code"))
		assert.Len(t, form, 5)
	})

	t.Run("token content is not validated", func(t *testing.T) {
		t.Parallel()
		ts, _ := newProviderServer(t, http.StatusOK, `{"access_token":"  ya29.weird token  "}`)

		e, err := oauth.NewTokenExchanger(testConfig(), endpointOptions(ts)...)
		require.NoError(t, err)

		token, err := e.Exchange(context.Background(), "code")
		require.NoError(t, err)
		require.Equal(t, "  ya29.weird token  ", token)
	})

	t.Run("bad request status", func(t *testing.T) {
		t.Parallel()
		ts, _ := newProviderServer(t, http.StatusBadRequest, `{"error":"invalid_grant"}`)

		e, err := oauth.NewTokenExchanger(testConfig(), endpointOptions(ts)...)
		require.NoError(t, err)

		token, err := e.Exchange(context.Background(), "expired")
		require.Empty(t, token)
		require.ErrorIs(t, err, oauth.ErrDataGetFailed)
		require.Equal(t, oauth.KindDataGetFailed, oauth.KindOf(err))
		require.Contains(t, err.Error(), "400")
	})

	t.Run("unparsable body", func(t *testing.T) {
		t.Parallel()
		ts, _ := newProviderServer(t, http.StatusOK, `<html>not json</html>`)

		e, err := oauth.NewTokenExchanger(testConfig(), endpointOptions(ts)...)
		require.NoError(t, err)

		_, err = e.Exchange(context.Background(), "code")
		require.ErrorIs(t, err, oauth.ErrAccessTokenGetFailed)
		require.EqualError(t, err, "access token parsing error")
	})

	t.Run("missing access_token", func(t *testing.T) {
		t.Parallel()
		ts, _ := newProviderServer(t, http.StatusOK, `{"id_token":"x"}`)

		e, err := oauth.NewTokenExchanger(testConfig(), endpointOptions(ts)...)
		require.NoError(t, err)

		_, err = e.Exchange(context.Background(), "code")
		require.ErrorIs(t, err, oauth.ErrAccessTokenGetFailed)
		require.Equal(t, oauth.KindAccessTokenGetFailed, oauth.KindOf(err))
	})

	t.Run("empty access_token", func(t *testing.T) {
		t.Parallel()
		ts, _ := newProviderServer(t, http.StatusOK, `{"access_token":""}`)

		e, err := oauth.NewTokenExchanger(testConfig(), endpointOptions(ts)...)
		require.NoError(t, err)

		_, err = e.Exchange(context.Background(), "code")
		require.ErrorIs(t, err, oauth.ErrAccessTokenGetFailed)
	})

	t.Run("non-string access_token", func(t *testing.T) {
		t.Parallel()
		ts, _ := newProviderServer(t, http.StatusOK, `{"access_token":42}`)

		e, err := oauth.NewTokenExchanger(testConfig(), endpointOptions(ts)...)
		require.NoError(t, err)

		_, err = e.Exchange(context.Background(), "code")
		require.ErrorIs(t, err, oauth.ErrAccessTokenGetFailed)
	})

	t.Run("JSON null body", func(t *testing.T) {
		t.Parallel()
		ts, _ := newProviderServer(t, http.StatusOK, `null`)

		e, err := oauth.NewTokenExchanger(testConfig(), endpointOptions(ts)...)
		require.NoError(t, err)

		_, err = e.Exchange(context.Background(), "code")
		require.ErrorIs(t, err, oauth.ErrAccessTokenGetFailed)
	})
}
