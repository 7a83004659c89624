// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/subwate/googlelogin/pkg/logger"
	"github.com/subwate/googlelogin/pkg/oauth"
)

var (
	// ErrParse is returned when environment variables cannot be parsed.
	ErrParse = errors.New("config: parse environment")

	// ErrInvalid is returned when the parsed configuration fails validation.
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config is the complete service configuration.
type Config struct {
	Google oauth.GoogleConfig
	Logger logger.Config
	HTTP   HTTPConfig

	// RedisURL selects the Redis state store; empty keeps state in memory.
	RedisURL string `env:"REDIS_URL" validate:"omitempty,url"`

	// StateTTL bounds the time between consent redirect and callback.
	StateTTL time.Duration `env:"OAUTH_STATE_TTL" envDefault:"10m" validate:"min=1s"`

	// ProviderTimeout bounds each call to Google.
	ProviderTimeout time.Duration `env:"OAUTH_PROVIDER_TIMEOUT" envDefault:"10s" validate:"min=100ms"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080" validate:"required"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s" validate:"min=1s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"15s" validate:"min=1s"`
	// SecureCookies marks the state cookie Secure; disable only for local http.
	SecureCookies bool `env:"HTTP_SECURE_COOKIES" envDefault:"true"`
	// CookieSecret signs the state cookie. Empty means a per-process key,
	// which only works with a single instance.
	CookieSecret string `env:"HTTP_COOKIE_SECRET" validate:"omitempty,min=32"`
}

// Load reads the optional dotenv files, parses the environment and
// validates the result. Missing dotenv files are skipped. Variables already
// set in the environment win over dotenv values, and earlier files win over
// later ones, so list the most specific file first.
func Load(files ...string) (*Config, error) {
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Join(ErrParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints declared in validate tags.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return errors.Join(ErrInvalid, err)
	}
	return nil
}
