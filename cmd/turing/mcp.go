package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [path]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the machine as MCP tools (simulate, describe_machine, machine_graph)
and resources so AI agents can run it.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := machineOptions(cmd, args)
		storeOptions(cmd, &opts)
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		log.SetOutput(os.Stderr)
		level := slog.LevelInfo
		if opts.Debug {
			level = slog.LevelDebug
		}
		logger := logging.NewTee(os.Stderr, opts.LogWriter, level)

		m, err := cli.NewMachine(opts, logger)
		if err != nil {
			return err
		}

		serverOpts := []mcp.Option{mcp.WithLogger(logger)}
		store, closer, err := cli.OpenStore(opts)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer.Close()
		}
		if store != nil {
			serverOpts = append(serverOpts, mcp.WithStore(store))
		}
		srv := mcp.NewServer(m, serverOpts...)

		switch transport {
		case "stdio":
			logger.Info("Starting Turing MCP Server (Stdio)", "machine", m.Name)
			return srv.ServeStdio()
		case "sse":
			logger.Info("Starting Turing MCP Server (SSE)", "port", port, "machine", m.Name)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("MCP server failed: %w", err)
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	addStoreFlags(mcpCmd)
}
