package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/pkg/adapters/loam"
	"github.com/aretw0/reel/pkg/adapters/mcp"
	"github.com/aretw0/reel/pkg/adapters/memory"
	"github.com/aretw0/reel/pkg/session"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts Reel as an MCP Server.
This allows AI agents to plan transitions and drive counters as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		presetsDir, _ := cmd.Flags().GetString("presets")
		debug, _ := cmd.Flags().GetBool("debug")

		// Configure logger
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		logger := logging.New(level)
		slog.SetDefault(logger)

		manager := session.NewManager(session.WithLogger(logger), session.WithSink(memory.NewSink()))
		opts := []mcp.Option{mcp.WithLogger(logger)}
		if presetsDir != "" {
			presets, err := loam.Open(presetsDir)
			if err != nil {
				log.Fatalf("Error opening presets: %v", err)
			}
			opts = append(opts, mcp.WithPresets(presets))
		}
		srv := mcp.NewServer(manager, opts...)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			slog.Info("Starting Reel MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP Server execution failed", "err", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting Reel MCP Server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil && err != http.ErrServerClosed {
				slog.Error("MCP Server execution failed", "err", err)
				os.Exit(1)
			}
			slog.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
