package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cobra "github.com/spf13/cobra"

	logger "github.com/uioperator/uictl/internal/logger"
	mcpserver "github.com/uioperator/uictl/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server exposing screen control tools",
	Long: `Start an MCP server exposing mouse, keyboard, grid, and screenshot
tools. The default stdio transport suits MCP clients that spawn the
server as a subprocess; the http transport serves the same tools over a
network endpoint.

Positions can be given as pixel coordinates or as grid coordinates such
as 'B2' or 'B2.A1'. The grid can be reconfigured at runtime with the
grid_configure tool.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if transport, _ := cmd.Flags().GetString("transport"); transport != "" {
			cfg.Server.Transport = transport
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Server.Port = port
		}
		if host, _ := cmd.Flags().GetString("host"); host != "" {
			cfg.Server.Host = host
		}

		server, err := mcpserver.New(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := server.Close(); err != nil {
				logger.Warn("Failed to close server", "error", err)
			}
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.Server.Transport == "http" {
			fmt.Fprintf(os.Stderr, "MCP server listening on http://%s%s\n", cfg.Server.Addr(), cfg.Server.Path)
		}
		return server.Serve(ctx)
	},
}

func init() {
	serveCmd.Flags().String("transport", "", "MCP transport: stdio or http (default from config)")
	serveCmd.Flags().Int("port", 0, "HTTP port (http transport only)")
	serveCmd.Flags().String("host", "", "HTTP host (http transport only)")

	rootCmd.AddCommand(serveCmd)
}
