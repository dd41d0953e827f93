package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/reel/internal/cli"
	"github.com/aretw0/reel/internal/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Hosts counters behind a JSON API with live timeline and frame streams (SSE).

Settings come from the environment and can be overridden with flags:
  REEL_ADDR, REEL_TICK_INTERVAL, REEL_LOG_LEVEL, REEL_METRICS,
  REEL_REDIS_ADDR, REEL_REDIS_PASSWORD, REEL_REDIS_DB, REEL_REDIS_PREFIX, REEL_REDIS_TTL,
  REEL_LOCK_TTL, REEL_PRESETS_DIR, REEL_COUNTERS_FILE`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadServerConfig()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("presets") {
			cfg.PresetsDir, _ = cmd.Flags().GetString("presets")
		}
		if cmd.Flags().Changed("counters") {
			cfg.CountersFile, _ = cmd.Flags().GetString("counters")
		}
		if cmd.Flags().Changed("redis") {
			cfg.RedisAddr, _ = cmd.Flags().GetString("redis")
		}
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			cfg.LogLevel = "debug"
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cli.Serve(ctx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().String("counters", "", "YAML file declaring counters to create at startup")
	serveCmd.Flags().String("redis", "", "Redis address for timeline fan-out and locking")
}
