// Package config loads the quoteshelf configuration from file, environment,
// and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/quoteshelf/quoteshelf/internal/api"
	"github.com/quoteshelf/quoteshelf/internal/store"
)

// Config represents the quoteshelf server configuration.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (QUOTESHELF_*)
//  2. Configuration file (YAML)
//  3. Default values
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0" yaml:"shutdown_timeout"`

	// Server configures the HTTP API server
	Server api.Config `mapstructure:"server" yaml:"server"`

	// Database configures persistence (SQLite or PostgreSQL)
	Database store.Config `mapstructure:"database" yaml:"database"`

	// Auth configures session tokens
	Auth AuthConfig `mapstructure:"auth" yaml:"auth"`

	// OAuth configures external sign-in providers
	OAuth OAuthConfig `mapstructure:"oauth" yaml:"oauth"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// AuthConfig configures session token issuing.
type AuthConfig struct {
	// TokenSecret is the HMAC signing key for session tokens.
	// Must be at least 32 characters. There is no default: the server
	// refuses to start without one.
	// Override: QUOTESHELF_AUTH_TOKEN_SECRET
	TokenSecret string `mapstructure:"token_secret" yaml:"token_secret,omitempty"`

	// TokenTTL is the session token lifetime. Default: 24h.
	TokenTTL time.Duration `mapstructure:"token_ttl" yaml:"token_ttl"`

	// BcryptCost is the bcrypt cost parameter for password hashing.
	// Valid values are 4 to 31. Default: 10.
	BcryptCost int `mapstructure:"bcrypt_cost" yaml:"bcrypt_cost"`
}

// OAuthConfig configures external sign-in providers.
type OAuthConfig struct {
	// Google holds the Google OAuth client registration. Sign-in with
	// Google is disabled when the client id is empty.
	Google GoogleConfig `mapstructure:"google" yaml:"google"`
}

// GoogleConfig holds the Google OAuth client registration.
type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id" yaml:"client_id,omitempty"`
	ClientSecret string `mapstructure:"client_secret" yaml:"client_secret,omitempty"`
	RedirectURL  string `mapstructure:"redirect_url" yaml:"redirect_url,omitempty"`
}

// Load loads configuration from file, environment, and defaults.
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	configFileFound, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if configFileFound {
		if err := v.Unmarshal(&cfg, viper.DecodeHook(durationDecodeHook())); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	ApplyDefaults(&cfg)

	// The environment overrides any token secret in the file.
	if secret := os.Getenv("QUOTESHELF_AUTH_TOKEN_SECRET"); secret != "" {
		cfg.Auth.TokenSecret = secret
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration with helpful error messages when the config
// file is missing.
func MustLoad(configPath string) (*Config, error) {
	if configPath == "" {
		if !DefaultConfigExists() {
			return nil, fmt.Errorf("no configuration file found at default location: %s\n\n"+
				"Please initialize a configuration file first:\n"+
				"  quoteshelf init\n\n"+
				"Or specify a custom config file:\n"+
				"  quoteshelf <command> --config /path/to/config.yaml",
				GetDefaultConfigPath())
		}
		configPath = GetDefaultConfigPath()
	} else {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s\n\n"+
				"Please create the configuration file:\n"+
				"  quoteshelf init --config %s",
				configPath, configPath)
		}
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the specified file path in YAML.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: the file may carry OAuth client secrets.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use the QUOTESHELF_ prefix and underscores.
	// Example: QUOTESHELF_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("QUOTESHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
// Returns (fileFound, error) where fileFound indicates if a config file was found.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	return true, nil
}

// durationDecodeHook returns a mapstructure decode hook that converts
// strings like "30s", "5m", "1h" to time.Duration.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to the
// current directory if the home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "quoteshelf")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "quoteshelf")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// GetConfigDir returns the configuration directory path (exposed for the init command).
func GetConfigDir() string {
	return getConfigDir()
}
