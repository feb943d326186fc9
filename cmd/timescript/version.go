package main

import (
	"fmt"

	"github.com/aretw0/timescript"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of timescript",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "timescript version %s\n", timescript.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
