package main

import (
	"github.com/aretw0/timescript/internal/cli"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Render the script as a readable screenplay",
	Long: `Compiles the script and renders it as Markdown in the terminal.
Raw Markdown is written when stdout is not a terminal and no style is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		style, _ := cmd.Flags().GetString("style")

		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		source, err := cli.ReadSource(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		return app.RunPreview(cmd.Context(), source, style)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().String("style", "", "Glamour style (dark, light, notty, auto)")
}
