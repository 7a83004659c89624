package oauth_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/subwate/googlelogin/pkg/oauth"
)

func TestError(t *testing.T) {
	t.Parallel()

	t.Run("message is the error string", func(t *testing.T) {
		t.Parallel()
		err := &oauth.Error{Kind: oauth.KindDataGetFailed, Message: "return status code : 500"}
		require.EqualError(t, err, "return status code : 500")
	})

	t.Run("matches only its own sentinel", func(t *testing.T) {
		t.Parallel()
		err := &oauth.Error{Kind: oauth.KindAccessTokenGetFailed, Message: "access token parsing error"}
		require.ErrorIs(t, err, oauth.ErrAccessTokenGetFailed)
		require.NotErrorIs(t, err, oauth.ErrDataGetFailed)
		require.NotErrorIs(t, err, oauth.ErrUserInfoGetFailed)
	})

	t.Run("unwraps cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("dial tcp: connection refused")
		err := &oauth.Error{Kind: oauth.KindDataGetFailed, Message: cause.Error(), Err: cause}
		require.ErrorIs(t, err, cause)
	})

	t.Run("zero kind matches nothing", func(t *testing.T) {
		t.Parallel()
		err := &oauth.Error{Message: "x"}
		require.NotErrorIs(t, err, oauth.ErrDataGetFailed)
	})
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, oauth.Kind(0), oauth.KindOf(nil))
	require.Equal(t, oauth.Kind(0), oauth.KindOf(errors.New("plain")))

	inner := &oauth.Error{Kind: oauth.KindDataGetFailed, Message: "response is null"}
	outer := &oauth.Error{Kind: oauth.KindUserInfoGetFailed, Message: inner.Message, Err: inner}
	require.Equal(t, oauth.KindUserInfoGetFailed, oauth.KindOf(outer))
	require.Equal(t, oauth.KindUserInfoGetFailed, oauth.KindOf(fmt.Errorf("login: %w", outer)))
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "OAUTH_DATA_GET_FAILED", oauth.KindDataGetFailed.String())
	require.Equal(t, "OAUTH_ACCESS_TOKEN_GET_FAILED", oauth.KindAccessTokenGetFailed.String())
	require.Equal(t, "OAUTH_USER_INFO_GET_FAILED", oauth.KindUserInfoGetFailed.String())
	require.Equal(t, "OAUTH_UNKNOWN", oauth.Kind(0).String())
}
