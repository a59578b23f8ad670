package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/fitlanding"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fitlanding",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fitlanding version %s\n", strings.TrimSpace(fitlanding.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
