// Package main provides the entry point for the developer portfolio backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/dev-portfolio/internal/app"
	"github.com/jonathan/dev-portfolio/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Developer portfolio backend",
	Long: `Serves a GitHub repository catalog and a parsed resume over HTTP, and exposes
the same data on the command line.

Configuration comes from an optional JSON, YAML or TOML file (--config),
overlaid by environment variables and a .env file in the working directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON, YAML or TOML config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig resolves the configuration for the current invocation.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// loadApp resolves the configuration and builds the services.
func loadApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg)
}
