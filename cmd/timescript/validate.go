package main

import (
	"github.com/aretw0/timescript/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a script and report diagnostics",
	Long: `Validates a TimeScript file line by line and prints every diagnostic.
Exits with a non-zero status when any error is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")

		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if watch {
			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()
			return app.RunWatchValidate(sc, args[0])
		}

		source, err := cli.ReadSource(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		return app.RunValidate(cmd.Context(), args[0], source)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolP("watch", "w", false, "Re-validate the file on every save")
}
