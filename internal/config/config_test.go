package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/quoteshelf/quoteshelf/internal/store"
)

const testSecret = "config-test-secret-that-is-long-enough"

func validTestConfig() *Config {
	cfg := GetDefaultConfig()
	cfg.Auth.TokenSecret = testSecret
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" {
		t.Errorf("logging level = %q, want INFO", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("logging format = %q, want text", cfg.Logging.Format)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("shutdown timeout = %v, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Type != store.DatabaseTypeSQLite {
		t.Errorf("database type = %q, want sqlite", cfg.Database.Type)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("token ttl = %v, want 24h", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("bcrypt cost = %d, want 10", cfg.Auth.BcryptCost)
	}

	t.Run("level is normalized", func(t *testing.T) {
		cfg := &Config{}
		cfg.Logging.Level = "debug"
		ApplyDefaults(cfg)
		if cfg.Logging.Level != "DEBUG" {
			t.Errorf("logging level = %q, want DEBUG", cfg.Logging.Level)
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		if err := Validate(validTestConfig()); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Logging.Level = "INVALID"
		err := Validate(cfg)
		if err == nil {
			t.Fatal("Validate() accepted an invalid log level")
		}
		if !strings.Contains(err.Error(), "oneof") {
			t.Errorf("error = %v, want a oneof violation", err)
		}
	})

	t.Run("invalid log format", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Logging.Format = "xml"
		if err := Validate(cfg); err == nil {
			t.Error("Validate() accepted an invalid log format")
		}
	})

	t.Run("missing token secret", func(t *testing.T) {
		cfg := GetDefaultConfig()
		err := Validate(cfg)
		if err == nil {
			t.Fatal("Validate() accepted an empty token secret")
		}
		if !strings.Contains(err.Error(), "token secret") {
			t.Errorf("error = %v, want a token secret message", err)
		}
	})

	t.Run("short token secret", func(t *testing.T) {
		cfg := GetDefaultConfig()
		cfg.Auth.TokenSecret = "too-short"
		if err := Validate(cfg); err == nil {
			t.Error("Validate() accepted a short token secret")
		}
	})

	t.Run("bcrypt cost out of range", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Auth.BcryptCost = 99
		err := Validate(cfg)
		if err == nil {
			t.Fatal("Validate() accepted an out-of-range bcrypt cost")
		}
		if !strings.Contains(err.Error(), "bcrypt_cost") {
			t.Errorf("error = %v, want a bcrypt_cost message", err)
		}
	})

	t.Run("partial google config", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.OAuth.Google.ClientID = "client-id"
		if err := Validate(cfg); err == nil {
			t.Error("Validate() accepted a google client id without a secret")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Setenv("QUOTESHELF_AUTH_TOKEN_SECRET", testSecret)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
logging:
  level: debug
  format: json
shutdown_timeout: 10s
server:
  port: 9000
  read_timeout: 5s
database:
  type: sqlite
  sqlite:
    path: ` + filepath.Join(dir, "catalog.db") + `
auth:
  token_ttl: 2h
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("logging level = %q, want DEBUG", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("logging format = %q, want json", cfg.Logging.Format)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown timeout = %v, want 10s", cfg.ShutdownTimeout)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("server port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("read timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("token ttl = %v, want 2h", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.TokenSecret != testSecret {
		t.Error("token secret was not taken from the environment")
	}

	// Unset fields still get defaults.
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("write timeout = %v, want default 30s", cfg.Server.WriteTimeout)
	}
}

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := validTestConfig()
	cfg.Database.SQLite.Path = filepath.Join(dir, "catalog.db")
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("saved config missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	t.Setenv("QUOTESHELF_AUTH_TOKEN_SECRET", testSecret)
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if loaded.Server.Port != cfg.Server.Port {
		t.Errorf("round-tripped port = %d, want %d", loaded.Server.Port, cfg.Server.Port)
	}
}
