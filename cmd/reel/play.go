package main

import (
	"os"

	"github.com/aretw0/reel/internal/cli"
	"github.com/spf13/cobra"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play [value...]",
	Short: "Play counter animations in the terminal",
	Long: `Animates a counter in the terminal. Without a configured value the first
argument becomes the counter's value. The counter plays from its start value
(when one is set), then moves to each remaining value in turn.

Values are read as numbers when they look like numbers, as a sequence of
symbols when they are a JSON array, and as text otherwise.`,
	Example: `  reel play --set value=0 1250 98765
  reel play --from 1 --set sequential_animation_mode=true 9999
  reel play --presets ./presets --preset arcade --watch 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		jsonMode, _ := cmd.Flags().GetBool("json")
		fps, _ := cmd.Flags().GetInt("fps")
		quiet, _ := cmd.Flags().GetBool("quiet")
		watch, _ := cmd.Flags().GetBool("watch")

		counter := counterOptions(cmd)
		counter.Record, _ = cmd.Flags().GetString("record")

		opts := cli.PlayOptions{
			CounterOptions: counter,
			Values:         args,
			From:           from,
			JSON:           jsonMode,
			FPS:            fps,
			Quiet:          quiet,
			Watch:          watch,
		}
		return cli.Play(cmd.Context(), opts, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	addCounterFlags(playCmd)

	playCmd.Flags().String("from", "", "Start value of the first animation")
	playCmd.Flags().Bool("json", false, "Print frames as JSON lines")
	playCmd.Flags().Int("fps", 0, "Frames per second (default 30)")
	playCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
	playCmd.Flags().BoolP("watch", "w", false, "Replay when the preset changes on disk")
	playCmd.Flags().String("record", "", "Directory to keep the latest timeline in as JSON")
}
