package oauth

// GoogleConfig holds the Google OAuth client credentials. The values are
// read once at startup and never mutated.
type GoogleConfig struct {
	ClientID     string   `env:"GOOGLE_OAUTH_CLIENT_ID,required" validate:"required"`
	ClientSecret string   `env:"GOOGLE_OAUTH_CLIENT_SECRET,required" validate:"required"`
	RedirectURL  string   `env:"GOOGLE_OAUTH_REDIRECT_URL,required" validate:"required,url"`
	Scopes       []string `env:"GOOGLE_OAUTH_SCOPES" envSeparator:","`
}

func (c GoogleConfig) validate() error {
	if c.ClientID == "" {
		return ErrMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrMissingClientSecret
	}
	if c.RedirectURL == "" {
		return ErrMissingRedirectURL
	}
	return nil
}
