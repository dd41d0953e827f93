package main

import (
	"fmt"
	"os"

	"github.com/aretw0/reel/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reel",
	Short: "Reel animates counters like the reels of a slot machine",
	Long: `Reel plans and plays slot-machine style counter animations.
Every changed character scrolls through a strip of filler characters and
lands on its new value, all at once or one slot after another.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("presets", "", "Directory containing preset documents")
	rootCmd.PersistentFlags().Bool("debug", false, "Log lifecycle events to stderr")
}

// addCounterFlags registers the flags that select a counter's options.
func addCounterFlags(cmd *cobra.Command) {
	cmd.Flags().String("preset", "", "Preset to start from")
	cmd.Flags().String("counters", "", "YAML file declaring counters")
	cmd.Flags().String("counter", "", "Counter to pick from the counters file")
	cmd.Flags().StringArray("set", nil, "Option override as key=value (repeatable)")
	cmd.Flags().Int64("seed", 0, "Seed for the filler characters (0 picks a random seed)")
}

// counterOptions reads the flags registered by addCounterFlags.
func counterOptions(cmd *cobra.Command) cli.CounterOptions {
	presets, _ := cmd.Flags().GetString("presets")
	debug, _ := cmd.Flags().GetBool("debug")
	preset, _ := cmd.Flags().GetString("preset")
	counters, _ := cmd.Flags().GetString("counters")
	counter, _ := cmd.Flags().GetString("counter")
	set, _ := cmd.Flags().GetStringArray("set")
	seed, _ := cmd.Flags().GetInt64("seed")

	if preset != "" && presets == "" {
		presets = "."
	}
	return cli.CounterOptions{
		PresetsDir:   presets,
		Preset:       preset,
		CountersFile: counters,
		CounterID:    counter,
		Set:          set,
		Seed:         seed,
		Debug:        debug,
	}
}
