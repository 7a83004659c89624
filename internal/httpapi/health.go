package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"

	defaultCheckTimeout = 5 * time.Second
)

// CheckFunc reports whether a dependency is usable.
type CheckFunc func(ctx context.Context) error

// Checks is a map of named readiness checks.
type Checks map[string]CheckFunc

type healthResponse struct {
	Checks map[string]string `json:"checks,omitempty"`
	Status string            `json:"status"`
}

// Live always answers 200; it only proves the process serves requests.
func Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: statusHealthy})
}

// Ready runs all checks concurrently and answers 503 if any fails.
func Ready(checks Checks, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), defaultCheckTimeout)
		defer cancel()

		var (
			mu      sync.Mutex
			results = make(map[string]string, len(checks))
			g       errgroup.Group
		)

		for name, check := range checks {
			g.Go(func() error {
				result := statusHealthy
				if err := check(ctx); err != nil {
					result = statusUnhealthy
					log.WarnContext(ctx, "health check failed",
						slog.String("check", name),
						slog.String("error", err.Error()),
					)
				}
				mu.Lock()
				results[name] = result
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		resp := healthResponse{Status: statusHealthy, Checks: results}
		status := http.StatusOK
		for _, result := range results {
			if result == statusUnhealthy {
				resp.Status = statusUnhealthy
				status = http.StatusServiceUnavailable
				break
			}
		}
		writeJSON(w, status, resp)
	}
}
