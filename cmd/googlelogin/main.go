// Command googlelogin serves the Google authorization-code login flow.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/subwate/googlelogin/internal/config"
	"github.com/subwate/googlelogin/internal/httpapi"
	"github.com/subwate/googlelogin/internal/server"
	"github.com/subwate/googlelogin/middlewares"
	"github.com/subwate/googlelogin/pkg/logger"
	"github.com/subwate/googlelogin/pkg/oauth"
	"github.com/subwate/googlelogin/pkg/state"
)

func main() {
	if err := run(); err != nil {
		slog.Error("googlelogin stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(".env.local", ".env")
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor())
	if cfg.HTTP.CookieSecret == "" {
		log.Warn("HTTP_COOKIE_SECRET not set, state cookies only verify on this instance")
	}
	hooks := []server.ShutdownHook{logger.Flush(2 * time.Second)}

	google, err := oauth.NewGoogle(cfg.Google,
		oauth.WithHTTPClient(&http.Client{Timeout: cfg.ProviderTimeout}),
		oauth.WithLogger(log.With(slog.String("component", "oauth"))),
	)
	if err != nil {
		return err
	}

	var (
		store  state.Store
		checks = httpapi.Checks{}
	)
	if cfg.RedisURL != "" {
		client, err := state.Open(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		store = state.NewRedis(client, "")
		checks["redis"] = state.Healthcheck(client)
		hooks = append([]server.ShutdownHook{func(context.Context) error { return client.Close() }}, hooks...)
	} else {
		mem := state.NewMemory(time.Minute)
		store = mem
		hooks = append([]server.ShutdownHook{func(context.Context) error { return mem.Close() }}, hooks...)
	}

	handler := httpapi.NewHandler(google, store, log,
		httpapi.WithStateTTL(cfg.StateTTL),
		httpapi.WithProviderTimeout(cfg.ProviderTimeout),
		httpapi.WithSecureCookies(cfg.HTTP.SecureCookies),
		httpapi.WithCookieSecret(cfg.HTTP.CookieSecret),
	)

	return server.Run(ctx, server.Config{
		Handler:         httpapi.NewRouter(handler, checks, log, cfg.HTTP.RequestTimeout),
		Logger:          log,
		Address:         cfg.HTTP.Addr,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
		ShutdownHooks:   hooks,
	})
}
