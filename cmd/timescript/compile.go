package main

import (
	"github.com/aretw0/timescript/internal/cli"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a script into a structured document",
	Long: `Compiles a TimeScript file and writes the result as json, yaml or the engine envelope.
Use "-" to read the script from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		source, err := cli.ReadSource(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		return app.RunCompile(cmd.Context(), args[0], source, cli.CompileOptions{
			Format: format,
			Output: output,
		})
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("format", "f", "json", "Output format (json, yaml, engine)")
	compileCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
}
