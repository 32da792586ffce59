package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/dev-portfolio/internal/app"
	"github.com/jonathan/dev-portfolio/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server exposing the repository catalog and the parsed resume as JSON and HTML endpoints.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides server.port and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:       cfg.Server.Port,
		CORSOrigin: cfg.Server.CORSOrigin,
	}, a)
	return srv.Start(cmd.Context())
}
