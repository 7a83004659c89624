package oauth

import "errors"

var (
	// ErrMissingClientID is returned when the OAuth client ID is not provided.
	ErrMissingClientID = errors.New("oauth: missing client ID")

	// ErrMissingClientSecret is returned when the OAuth client secret is not provided.
	ErrMissingClientSecret = errors.New("oauth: missing client secret")

	// ErrMissingRedirectURL is returned when the OAuth redirect URL is not provided.
	ErrMissingRedirectURL = errors.New("oauth: missing redirect URL")

	// ErrDataGetFailed matches any error of kind KindDataGetFailed.
	ErrDataGetFailed = errors.New("oauth: data get failed")

	// ErrAccessTokenGetFailed matches any error of kind KindAccessTokenGetFailed.
	ErrAccessTokenGetFailed = errors.New("oauth: access token get failed")

	// ErrUserInfoGetFailed matches any error of kind KindUserInfoGetFailed.
	ErrUserInfoGetFailed = errors.New("oauth: user info get failed")
)

// Kind classifies a provider failure.
type Kind int

const (
	// KindDataGetFailed is a transport-level failure: non-2xx status,
	// empty body or a network error.
	KindDataGetFailed Kind = iota + 1

	// KindAccessTokenGetFailed means the token endpoint answered but the
	// response carried no usable access_token.
	KindAccessTokenGetFailed

	// KindUserInfoGetFailed covers every userinfo failure: transport,
	// parsing and blank profile fields.
	KindUserInfoGetFailed
)

func (k Kind) String() string {
	switch k {
	case KindDataGetFailed:
		return "OAUTH_DATA_GET_FAILED"
	case KindAccessTokenGetFailed:
		return "OAUTH_ACCESS_TOKEN_GET_FAILED"
	case KindUserInfoGetFailed:
		return "OAUTH_USER_INFO_GET_FAILED"
	default:
		return "OAUTH_UNKNOWN"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindDataGetFailed:
		return ErrDataGetFailed
	case KindAccessTokenGetFailed:
		return ErrAccessTokenGetFailed
	case KindUserInfoGetFailed:
		return ErrUserInfoGetFailed
	default:
		return nil
	}
}

// Error is a classified provider failure. Message is the human readable
// part and is what Error returns; Err keeps the underlying cause.
type Error struct {
	Err     error
	Message string
	Kind    Kind
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel error for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of the outermost *Error in err's chain.
// Returns zero if err carries no *Error.
func KindOf(err error) Kind {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return 0
}
