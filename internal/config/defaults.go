package config

import (
	"strings"
	"time"

	"github.com/quoteshelf/quoteshelf/internal/models"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// Zero values (0, "", false, nil) are replaced with defaults; explicit
// values are preserved. The token secret deliberately has no default.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)

	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}

	cfg.Server.ApplyDefaults()
	cfg.Database.ApplyDefaults()

	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 24 * time.Hour
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = models.DefaultBcryptCost
	}
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// GetDefaultConfig returns a configuration populated entirely from defaults.
// The result is not valid to run the server: the token secret is empty and
// must be supplied by the operator.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
