package main

import (
	"os"

	"github.com/aretw0/reel/internal/cli"
	"github.com/spf13/cobra"
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan <to>",
	Short: "Print the animation timeline for a value change",
	Long: `Plans the transition to a value without playing it and prints one row per slot:
the token it starts from, the token it lands on, when it starts and how long it spins.

Formats:
- text (default): aligned table
- json: the timeline handed to renderers
- gantt: a Mermaid gantt chart`,
	Example: `  reel plan --from 98 1,250
  reel plan --from 123 456 --set sequential_slot_result_mode=true --format gantt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		manual, _ := cmd.Flags().GetBool("manual")
		format, _ := cmd.Flags().GetString("format")

		return cli.Plan(cmd.Context(), cli.PlanOptions{
			CounterOptions: counterOptions(cmd),
			From:           from,
			To:             args[0],
			Manual:         manual,
			Format:         format,
		}, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	addCounterFlags(planCmd)

	planCmd.Flags().String("from", "", "Value the transition starts from")
	planCmd.Flags().Bool("manual", false, "Plan a replay in which every slot spins")
	planCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, json or gantt")
}
