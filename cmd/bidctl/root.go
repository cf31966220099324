// Package main provides bidctl, the operator CLI for the bidhub API.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bidhub-api/internal/config"
	"github.com/bidhub-api/internal/pkg/logging"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	logger     zerolog.Logger
	globalOpts struct {
		verbose bool
		envFile string
	}
)

// exitCodeError ends the process with code after the command has already
// written its own output.
type exitCodeError struct{ code int }

func (e exitCodeError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

var rootCmd = &cobra.Command{
	Use:   "bidctl",
	Short: "Operator tooling for the bidhub API",
	Long: `bidctl runs one-off administrative tasks against the bidhub backend.

It reads the same environment (and .env file) as the API server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(globalOpts.envFile); err != nil && cmd.Flags().Changed("env-file") {
			return fmt.Errorf("load %s: %w", globalOpts.envFile, err)
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		level := "warn"
		if globalOpts.verbose {
			level = "debug"
		}
		logger = logging.Setup(level, true)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.envFile, "env-file", ".env", "Environment file to load before reading config")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exit exitCodeError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
