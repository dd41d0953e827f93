package main

import (
	"github.com/aretw0/reel/internal/cli"
	"github.com/spf13/cobra"
)

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Open an interactive counter playground",
	Long: `Opens a full-screen playground: type a value and press enter to animate to it,
use the arrow keys to count up and down, Tab to switch the timing mode and Ctrl+D
to flip the scroll direction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fps, _ := cmd.Flags().GetInt("fps")
		counter := counterOptions(cmd)
		counter.Record, _ = cmd.Flags().GetString("record")
		return cli.RunDemo(cmd.Context(), cli.DemoOptions{
			CounterOptions: counter,
			FPS:            fps,
		})
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	addCounterFlags(demoCmd)
	demoCmd.Flags().Int("fps", 60, "Frames per second")
	demoCmd.Flags().String("record", "", "Directory to keep the latest timeline in as JSON")
}
