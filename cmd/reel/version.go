package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/reel"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of reel",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("reel version %s\n", strings.TrimSpace(reel.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
