package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumenpage/materials-cli/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local development materials service",
	Long: `Run a self-contained materials service backed by sqlite. It speaks
the same REST contract as the production service, so the picker and the
other subcommands work against it unchanged.

Examples:
  materials-cli serve
  materials-cli serve --addr 127.0.0.1:8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	srv, err := server.New(&cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to start materials service: %w", err)
	}
	return srv.Run()
}
