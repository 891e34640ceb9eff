package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/helmcode/healthai/pkg/analyzer"
	"github.com/helmcode/healthai/pkg/formatter"
)

var symptomsOutputFormat string

func NewSymptomsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symptoms NAME...",
		Short: "Analyze a set of selected symptoms",
		Long: `Aggregate specialists, precautions and recommended tests for the selected
symptoms, derive an overall urgency and look for a matching condition pattern.

Symptom names must match the catalog exactly. Use "healthai catalog symptoms"
to browse them.

Examples:
  # Analyze two symptoms
  healthai symptoms "Burning Urination" "Frequent Urination"

  # Emit JSON for scripting
  healthai symptoms Fever Cough "Sore Throat" -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSymptoms,
	}

	cmd.Flags().StringVarP(&symptomsOutputFormat, "output", "o", "human", "Output format (human, json, yaml)")

	return cmd
}

func runSymptoms(cmd *cobra.Command, args []string) error {
	if err := validFormat(symptomsOutputFormat); err != nil {
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
	human := symptomsOutputFormat == "human"

	var unknown []string
	for _, name := range args {
		if _, ok := store.Symptom(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == len(args) {
		return fmt.Errorf("no known symptoms given: %s", strings.Join(unknown, ", "))
	}
	if len(unknown) > 0 {
		printWarning(cmd.ErrOrStderr(), fmt.Sprintf("Unknown symptoms ignored: %s", strings.Join(unknown, ", ")))
	}

	if human {
		printHeader(out, "🩺 Symptom Analysis", fmt.Sprintf("📝 Selected: %s", strings.Join(args, ", ")))
	}

	a := analyzer.New(store, analyzer.WithLogger(logger))
	result := a.AnalyzeSymptoms(analyzer.NewSelection(args...))

	return formatter.DisplaySymptoms(out, result, symptomsOutputFormat)
}
