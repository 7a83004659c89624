package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/subwate/googlelogin/internal/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_OAUTH_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_OAUTH_CLIENT_SECRET", "client-secret")
	t.Setenv("GOOGLE_OAUTH_REDIRECT_URL", "https://example.com/auth/google/callback")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "client-id", cfg.Google.ClientID)
	require.Equal(t, "client-secret", cfg.Google.ClientSecret)
	require.Equal(t, "https://example.com/auth/google/callback", cfg.Google.RedirectURL)
	require.Empty(t, cfg.Google.Scopes)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	require.Equal(t, 15*time.Second, cfg.HTTP.ShutdownTimeout)
	require.True(t, cfg.HTTP.SecureCookies)
	require.Equal(t, 10*time.Minute, cfg.StateTTL)
	require.Equal(t, 10*time.Second, cfg.ProviderTimeout)
	require.Equal(t, slog.LevelInfo, cfg.Logger.Level)
	require.Equal(t, slog.LevelWarn, cfg.Logger.Sentry.MinLevel)
	require.Equal(t, "production", cfg.Logger.Sentry.Environment)
	require.Empty(t, cfg.RedisURL)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("GOOGLE_OAUTH_SCOPES", "openid,email")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("OAUTH_STATE_TTL", "5m")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, []string{"openid", "email"}, cfg.Google.Scopes)
	require.Equal(t, slog.LevelDebug, cfg.Logger.Level)
	require.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	require.Equal(t, 5*time.Minute, cfg.StateTTL)
	require.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("GOOGLE_OAUTH_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_OAUTH_CLIENT_SECRET", "")
	t.Setenv("GOOGLE_OAUTH_REDIRECT_URL", "https://example.com/cb")
	os.Unsetenv("GOOGLE_OAUTH_CLIENT_SECRET")

	_, err := config.Load()
	require.ErrorIs(t, err, config.ErrParse)
}

func TestLoad_Invalid(t *testing.T) {
	setRequired(t)
	t.Setenv("GOOGLE_OAUTH_REDIRECT_URL", "not a url")

	_, err := config.Load()
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("OAUTH_STATE_TTL", "10ms")

	_, err := config.Load()
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestLoad_DotEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_ADDR", ":7000")

	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("HTTP_ADDR=:6000\nOAUTH_PROVIDER_TIMEOUT=3s\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("OAUTH_PROVIDER_TIMEOUT") })

	cfg, err := config.Load(filepath.Join(dir, "missing.env"), file)
	require.NoError(t, err)

	require.Equal(t, ":7000", cfg.HTTP.Addr, "environment wins over dotenv")
	require.Equal(t, 3*time.Second, cfg.ProviderTimeout)
}

func TestLoad_EarlierDotEnvWins(t *testing.T) {
	setRequired(t)

	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	shared := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(local, []byte("HTTP_ADDR=:5001\n"), 0o600))
	require.NoError(t, os.WriteFile(shared, []byte("HTTP_ADDR=:5002\nHTTP_REQUEST_TIMEOUT=7s\n"), 0o600))
	for _, key := range []string{"HTTP_ADDR", "HTTP_REQUEST_TIMEOUT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := config.Load(local, shared)
	require.NoError(t, err)

	require.Equal(t, ":5001", cfg.HTTP.Addr)
	require.Equal(t, 7*time.Second, cfg.HTTP.RequestTimeout)
}

func TestLoad_ShortCookieSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_COOKIE_SECRET", "too-short")

	_, err := config.Load()
	require.ErrorIs(t, err, config.ErrInvalid)
}
