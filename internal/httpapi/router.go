package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/subwate/googlelogin/middlewares"
)

// NewRouter mounts the login and health endpoints:
//
//	GET  /auth/google/login     redirect to the consent page
//	GET  /auth/google/callback  provider redirect target
//	POST /auth/google/exchange  code posted by a client
//	GET  /health/live
//	GET  /health/ready
func NewRouter(h *Handler, checks Checks, log *slog.Logger, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middlewares.RequestID(),
		middleware.RealIP,
		middlewares.RequestLogger(log),
		middlewares.Recover(log),
	)

	r.Get("/health/live", Live)
	r.Get("/health/ready", Ready(checks, log))

	r.Route("/auth/google", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Get("/login", h.Login)
		r.Get("/callback", h.Callback)
		r.Post("/exchange", h.Exchange)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	return r
}
