package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quoteshelf/quoteshelf/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample quoteshelf configuration file with a freshly
generated token signing secret.

By default, the configuration file is created at
$XDG_CONFIG_HOME/quoteshelf/config.yaml. Use --config to specify a custom
path.

Examples:
  # Initialize with default location
  quoteshelf init

  # Initialize with custom path
  quoteshelf init --config /etc/quoteshelf/config.yaml

  # Force overwrite existing config
  quoteshelf init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	cfg := config.GetDefaultConfig()

	secret, err := generateTokenSecret()
	if err != nil {
		return fmt.Errorf("failed to generate token secret: %w", err)
	}
	cfg.Auth.TokenSecret = secret

	if err := config.SaveConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to customize your setup")
	fmt.Println("  2. Start the server with: quoteshelf start")
	fmt.Printf("  3. Or specify custom config: quoteshelf start --config %s\n", configPath)

	return nil
}

// generateTokenSecret returns a random 48-byte secret, base64-encoded.
func generateTokenSecret() (string, error) {
	buf := make([]byte, 48)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawStdEncoding.EncodeToString(buf), nil
}
