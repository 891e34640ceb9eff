package main

import (
	"fmt"
	"os"

	"github.com/helmcode/healthai/cmd"
	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "healthai",
		Short: "Rule-based symptom and lab report checker",
		Long: `healthai matches selected symptoms against a reference catalog to suggest
specialists, precautions, tests and an urgency level, and scans lab report
text for values below reference minimums.

It is not a diagnostic tool and does not replace professional medical advice.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddGlobalFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(
		cmd.NewSymptomsCmd(),
		cmd.NewLabCmd(),
		cmd.NewCatalogCmd(),
		cmd.NewServeCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "healthai version %s\n", version)
		},
	}
}
