package main

import (
	"os"

	"github.com/aretw0/reel/internal/cli"
	"github.com/spf13/cobra"
)

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe [preset]",
	Short: "Describe a preset, or list every preset",
	Long:  `Renders the preset documents of the presets directory (--presets, default ".") as markdown.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("presets")
		style, _ := cmd.Flags().GetString("style")

		opts := cli.DescribeOptions{PresetsDir: dir, Style: style}
		if len(args) > 0 {
			opts.Preset = args[0]
		}
		return cli.Describe(cmd.Context(), opts, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().String("style", "", "Glamour style (dark, light, notty, ...); detected when empty")
}
