package cli

import (
	"os"

	"github.com/spf13/cobra"
)

const (
	defaultPort       = "3000"
	defaultConfigPath = "config/config.yaml"
)

var (
	port       string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quizzer",
		Short: "Real-time multiplayer quiz room server",
	}

	cmd.PersistentFlags().StringVar(&port, "port", envOr("PORT", defaultPort), "port to listen on")
	cmd.PersistentFlags().StringVar(&configPath, "config", envOr("CONFIG_PATH", defaultConfigPath), "path to YAML config")
	cmd.AddCommand(NewStartCmd(&configPath, &port))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
