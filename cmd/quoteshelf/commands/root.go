// Package commands implements the CLI commands for the quoteshelf server.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/quoteshelf/quoteshelf/internal/config"
	"github.com/quoteshelf/quoteshelf/internal/logger"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "quoteshelf",
	Short: "Quoteshelf - book quotes catalog server",
	Long: `Quoteshelf is a REST backend for a catalog of book quotes: authors,
books, quotes with categories and upvotes, and the user accounts that
upload them. Access is guarded by signed bearer tokens, with local
email/password login and optional Google sign-in.

Use "quoteshelf [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/quoteshelf/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(initCmd)
}

// GetConfigFile returns the config file path from the global flag.
func GetConfigFile() string {
	return cfgFile
}

// InitLogger initializes the structured logger from the configuration.
func InitLogger(cfg *config.Config) error {
	return logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}
