package main

import (
	"fmt"
	"os"

	"github.com/aretw0/timescript/internal/cli"
	"github.com/aretw0/timescript/internal/presentation/tui"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "timescript",
	Short: "TimeScript is a compiler for branching dialogue scripts",
	Long: `TimeScript compiles line-oriented dialogue scripts into structured documents
and validates them line by line.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		tui.PrintBanner(out, termenv.NewOutput(out).EnvColorProfile())
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML or JSON configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override (debug, info, warn, error)")
}

// newApp builds the application from the persistent flags.
// The caller must Close it.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	configPath, _ := cmd.Flags().GetString("config")
	logLevel, _ := cmd.Flags().GetString("log-level")
	return cli.NewApp(cli.AppOptions{
		ConfigPath: configPath,
		LogLevel:   logLevel,
	}, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
