package main

import (
	"github.com/aretw0/timescript/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [file]",
	Short: "Export the dialogue flow as a Mermaid diagram",
	Long:  `Compiles the script and outputs a Mermaid diagram (graph TD) of the dialogue flow and its branches.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		source, err := cli.ReadSource(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		return app.RunGraph(cmd.Context(), source)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
