package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/helmcode/healthai/pkg/analyzer"
	"github.com/helmcode/healthai/pkg/formatter"
)

var (
	labText         string
	labOutputFormat string
)

func NewLabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lab [FILE]",
		Short: "Scan lab report text for values below reference minimums",
		Long: `Scan free-form lab report text for known tests and flag readings that fall
below the reference minimum.

The report is read from --text, from FILE, or from standard input when neither
is given.

Examples:
  # Analyze a report file
  healthai lab report.txt

  # Analyze inline text
  healthai lab --text "Hemoglobin: 10.2 g/dL, Vitamin D: 15 ng/mL"

  # Pipe a report in and get YAML back
  cat report.txt | healthai lab -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLab,
	}

	cmd.Flags().StringVar(&labText, "text", "", "Report text to analyze")
	cmd.Flags().StringVarP(&labOutputFormat, "output", "o", "human", "Output format (human, json, yaml)")

	return cmd
}

func runLab(cmd *cobra.Command, args []string) error {
	if err := validFormat(labOutputFormat); err != nil {
		return err
	}
	if labText != "" && len(args) > 0 {
		return fmt.Errorf("use either FILE or --text, not both")
	}

	text, source, err := readReport(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())

	s := newSpinner("Loading reference catalog...")
	s.Start()
	store, err := openStore(cmd.Context(), cfg)
	s.Stop()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	out := cmd.OutOrStdout()
	if labOutputFormat == "human" {
		printHeader(out, "🧪 Lab Report Analysis", fmt.Sprintf("📄 Source: %s", source))
	}

	a := analyzer.New(store, analyzer.WithLogger(logger))
	return formatter.DisplayLab(out, a.AnalyzeLab(text), labOutputFormat)
}

func readReport(cmd *cobra.Command, args []string) (text, source string, err error) {
	switch {
	case labText != "":
		return labText, "--text", nil
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read report: %w", err)
		}
		return string(data), args[0], nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}
}
