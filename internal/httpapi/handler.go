// Package httpapi exposes the Google login flow over HTTP.
package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/subwate/googlelogin/pkg/cookie"
	"github.com/subwate/googlelogin/pkg/oauth"
	"github.com/subwate/googlelogin/pkg/state"
)

const (
	stateCookieName = "__oauth_state"
	cookiePath      = "/auth/google"

	// maxExchangeBody caps the JSON body of POST /auth/google/exchange.
	maxExchangeBody = 8 << 10
)

// Handler serves the login endpoints. It owns no user data: the identity
// is returned to the caller, which decides how to persist or authenticate it.
type Handler struct {
	auth            oauth.Authenticator
	states          state.Store
	logger          *slog.Logger
	stateTTL        time.Duration
	providerTimeout time.Duration
	secureCookies   bool
	cookieSecret    string
	cookies         *cookie.Manager
}

// Option configures a Handler.
type Option func(*Handler)

// WithStateTTL sets how long a consent redirect stays valid.
func WithStateTTL(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.stateTTL = d
		}
	}
}

// WithProviderTimeout bounds the combined token and profile calls.
func WithProviderTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.providerTimeout = d
		}
	}
}

// WithSecureCookies sets the Secure attribute of the state cookie.
func WithSecureCookies(secure bool) Option {
	return func(h *Handler) {
		h.secureCookies = secure
	}
}

// WithCookieSecret sets the key signing the state cookie. Without a
// valid secret a random per-process key is used.
func WithCookieSecret(secret string) Option {
	return func(h *Handler) {
		h.cookieSecret = secret
	}
}

// NewHandler creates a Handler.
func NewHandler(auth oauth.Authenticator, states state.Store, log *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		auth:            auth,
		states:          states,
		logger:          log,
		stateTTL:        state.DefaultTTL,
		providerTimeout: 10 * time.Second,
		secureCookies:   true,
	}
	for _, opt := range opts {
		opt(h)
	}

	if cookie.ValidSecret(h.cookieSecret) != nil {
		if h.cookieSecret != "" {
			h.logger.Warn("cookie secret too short, using a per-process key")
		}
		h.cookieSecret = rand.Text() + rand.Text()
	}
	h.cookies = cookie.New(
		cookie.WithSecret(h.cookieSecret),
		cookie.WithPath(cookiePath),
		cookie.WithSecure(h.secureCookies),
	)
	return h
}

// Login starts the flow: it records a fresh state value and redirects the
// browser to Google's consent page.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	st, err := state.New()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "generate state", slog.String("error", err.Error()))
		writeError(w, r, http.StatusInternalServerError, "state generation failed")
		return
	}

	if err := h.states.Save(r.Context(), st, h.stateTTL); err != nil {
		h.logger.ErrorContext(r.Context(), "save state", slog.String("error", err.Error()))
		writeError(w, r, http.StatusInternalServerError, "state storage failed")
		return
	}

	if err := h.cookies.SetSigned(w, stateCookieName, st, int(h.stateTTL.Seconds())); err != nil {
		h.logger.ErrorContext(r.Context(), "set state cookie", slog.String("error", err.Error()))
		writeError(w, r, http.StatusInternalServerError, "state cookie failed")
		return
	}

	http.Redirect(w, r, h.auth.AuthCodeURL(st), http.StatusFound)
}

// Callback completes the flow started by Login. The state in the query
// must equal the signed cookie's state and still be pending in the store.
// A state carried by a valid cookie is consumed on every outcome, including
// a provider error or a query mismatch.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	cookieState, cookieErr := h.cookies.GetSigned(r, stateCookieName)
	h.cookies.Delete(w, stateCookieName)

	pending := false
	if cookieErr == nil {
		var err error
		if pending, err = h.states.Consume(r.Context(), cookieState); err != nil {
			h.logger.ErrorContext(r.Context(), "consume state", slog.String("error", err.Error()))
			writeError(w, r, http.StatusInternalServerError, "state storage failed")
			return
		}
	}

	if providerErr := q.Get("error"); providerErr != "" {
		h.logger.WarnContext(r.Context(), "consent not granted", slog.String("provider_error", providerErr))
		writeError(w, r, http.StatusBadRequest, providerErr)
		return
	}

	if cookieErr != nil || !pending || q.Get("state") != cookieState {
		writeError(w, r, http.StatusBadRequest, "invalid state")
		return
	}

	h.completeLogin(w, r, q.Get("code"))
}

type exchangeRequest struct {
	Code string `json:"code"`
}

// Exchange serves clients that ran the consent step themselves and post
// the authorization code as JSON ({"code": "..."}) or as a form field.
func (h *Handler) Exchange(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxExchangeBody)

	var code string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req exchangeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid request body")
			return
		}
		code = req.Code
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid request body")
			return
		}
		code = r.PostForm.Get("code")
	}

	h.completeLogin(w, r, code)
}

// completeLogin runs both provider steps and answers with the identity.
func (h *Handler) completeLogin(w http.ResponseWriter, r *http.Request, code string) {
	if code == "" {
		writeError(w, r, http.StatusBadRequest, "missing code")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.providerTimeout)
	defer cancel()

	token, err := h.auth.ExchangeCodeForToken(ctx, code)
	if err != nil {
		h.writeProviderError(w, r, "token", err)
		return
	}

	user, err := h.auth.FetchUserIdentity(ctx, token)
	if err != nil {
		h.writeProviderError(w, r, "userinfo", err)
		return
	}

	h.logger.InfoContext(r.Context(), "google login completed", slog.String("provider", h.auth.Name()))
	writeJSON(w, http.StatusOK, user)
}
