package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// Validate checks the configuration for errors.
//
// Struct-tag validation covers the declarative constraints; the checks
// below cover what tags cannot express.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return err
	}

	if err := cfg.Database.Validate(); err != nil {
		return err
	}

	if len(cfg.Auth.TokenSecret) < 32 {
		return fmt.Errorf("auth token secret must be at least 32 characters; " +
			"set auth.token_secret or the QUOTESHELF_AUTH_TOKEN_SECRET environment variable")
	}

	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be between %d and %d, got %d",
			bcrypt.MinCost, bcrypt.MaxCost, cfg.Auth.BcryptCost)
	}

	if cfg.OAuth.Google.ClientID != "" {
		if cfg.OAuth.Google.ClientSecret == "" {
			return fmt.Errorf("oauth.google.client_secret is required when client_id is set")
		}
		if cfg.OAuth.Google.RedirectURL == "" {
			return fmt.Errorf("oauth.google.redirect_url is required when client_id is set")
		}
	}

	return nil
}
