package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quoteshelf/quoteshelf/internal/api"
	"github.com/quoteshelf/quoteshelf/internal/auth"
	"github.com/quoteshelf/quoteshelf/internal/config"
	"github.com/quoteshelf/quoteshelf/internal/logger"
	"github.com/quoteshelf/quoteshelf/internal/store"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the quoteshelf server",
	Long: `Start the quoteshelf server with the specified configuration.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/quoteshelf/config.yaml.

Examples:
  # Start with default config location
  quoteshelf start

  # Start with custom config file
  quoteshelf start --config /etc/quoteshelf/config.yaml

  # Start with environment variable overrides
  QUOTESHELF_LOGGING_LEVEL=DEBUG quoteshelf start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	logger.Info("starting quoteshelf",
		"version", Version,
		"database", cfg.Database.Type,
		"port", cfg.Server.Port,
	)

	s, err := store.New(&cfg.Database)
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret: cfg.Auth.TokenSecret,
		TTL:    cfg.Auth.TokenTTL,
	})
	if err != nil {
		return err
	}

	var google *auth.GoogleProvider
	googleConfig := auth.GoogleConfig{
		ClientID:     cfg.OAuth.Google.ClientID,
		ClientSecret: cfg.OAuth.Google.ClientSecret,
		RedirectURL:  cfg.OAuth.Google.RedirectURL,
	}
	if googleConfig.Enabled() {
		google = auth.NewGoogleProvider(googleConfig)
		logger.Info("google sign-in enabled")
	}

	server := api.NewServer(cfg.Server, s, tokens, google, cfg.Auth.BcryptCost)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		return err
	}

	logger.Info("quoteshelf stopped")
	return nil
}
