package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/healthai/pkg/model"
)

const disclaimer = "This tool is for informational purposes only and is not a substitute for professional " +
	"medical advice, diagnosis, or treatment. If you are experiencing chest pain, difficulty " +
	"breathing, or severe bleeding, call emergency services immediately."

// DisplaySymptoms renders a symptom analysis in the requested format.
func DisplaySymptoms(w io.Writer, result *model.AnalysisResult, format string) error {
	switch format {
	case "json":
		return displayJSON(w, result)
	case "yaml":
		return displayYAML(w, result)
	case "human":
		fallthrough
	default:
		displaySymptomsHuman(w, result)
	}
	return nil
}

// DisplayLab renders a lab analysis in the requested format.
func DisplayLab(w io.Writer, result *model.LabAnalysisResult, format string) error {
	switch format {
	case "json":
		return displayJSON(w, result)
	case "yaml":
		return displayYAML(w, result)
	case "human":
		fallthrough
	default:
		displayLabHuman(w, result)
	}
	return nil
}

// Display renders any value as json or yaml, and as a plain list for human output
// when v is a slice of strings.
func Display(w io.Writer, v any, format string) error {
	switch format {
	case "json":
		return displayJSON(w, v)
	case "yaml":
		return displayYAML(w, v)
	}
	if items, ok := v.([]string); ok {
		for _, item := range items {
			fmt.Fprintf(w, "  • %s\n", item)
		}
		return nil
	}
	return displayYAML(w, v)
}

func displayJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func displayYAML(w io.Writer, v any) error {
	output, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(output))
	return nil
}

func displaySymptomsHuman(w io.Writer, result *model.AnalysisResult) {
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	fmt.Fprintln(w)

	urgencyColor := getSeverityColor(result.Urgency)
	urgencyColor.Fprintf(w, "%s OVERALL URGENCY: %s\n\n", getSeverityIcon(result.Urgency), strings.ToUpper(string(result.Urgency)))

	if c := result.Condition; c != nil {
		yellow.Fprintln(w, "🩺 POSSIBLE CONDITION:")
		fmt.Fprintf(w, "   %s %s\n", getSeverityIcon(c.Urgency), c.Name)
		if c.Description != "" {
			fmt.Fprintln(w, wrapText(c.Description, 80, "   "))
		}
		for _, o := range c.Outcomes {
			fmt.Fprintf(w, "   • %s\n", o)
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintf(w, "%s\n\n", color.HiBlackString("No specific condition pattern matched the selected symptoms."))
	}

	printList(w, cyan, "👨‍⚕️ RECOMMENDED SPECIALISTS:", result.Specialists)
	printList(w, white, "🛡️  PRECAUTIONS:", result.Precautions)
	printList(w, white, "🧪 SUGGESTED TESTS:", result.Tests)

	printFooter(w, result.Timestamp.Format("2006-01-02 15:04:05"))
}

func displayLabHuman(w io.Writer, result *model.LabAnalysisResult) {
	red := color.New(color.FgRed, color.Bold)
	green := color.New(color.FgGreen, color.Bold)

	fmt.Fprintln(w)

	if len(result.Findings) == 0 {
		green.Fprintln(w, "✓ NO LOW VALUES DETECTED")
		fmt.Fprintf(w, "   Scanned %d characters; no tracked biomarker was below its reference minimum.\n\n", result.RawLength)
		printFooter(w, result.Timestamp.Format("2006-01-02 15:04:05"))
		return
	}

	red.Fprintf(w, "⚠️  %d LOW VALUE(S) DETECTED:\n", len(result.Findings))
	for i, f := range result.Findings {
		fmt.Fprintf(w, "   %d. %s: %s %s (min %s %s)\n", i+1, f.Test,
			color.RedString(formatValue(f.Value)), f.Unit, formatValue(f.Min), f.Unit)
		fmt.Fprintf(w, "      Indication: %s\n", f.Indication)
		fmt.Fprintf(w, "      Specialist: %s\n", color.CyanString(f.Specialist))
		for _, s := range f.Suggestions {
			fmt.Fprintf(w, "      • %s\n", s)
		}
		fmt.Fprintln(w)
	}

	printFooter(w, result.Timestamp.Format("2006-01-02 15:04:05"))
}

func printList(w io.Writer, heading *color.Color, title string, items []string) {
	if len(items) == 0 {
		return
	}
	heading.Fprintln(w, title)
	for _, item := range items {
		fmt.Fprintf(w, "   • %s\n", item)
	}
	fmt.Fprintln(w)
}

func printFooter(w io.Writer, timestamp string) {
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintln(w, color.HiBlackString(wrapText(disclaimer, 80, "")))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Generated %s. Run with -o json or -o yaml for machine-readable output", timestamp))
}

func formatValue(v float64) string {
	return fmt.Sprintf("%g", v)
}

func getSeverityColor(severity model.Severity) *color.Color {
	switch severity {
	case model.SeverityEmergency:
		return color.New(color.FgRed, color.Bold)
	case model.SeverityModerate:
		return color.New(color.FgYellow, color.Bold)
	case model.SeverityLow:
		return color.New(color.FgGreen, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}

func getSeverityIcon(severity model.Severity) string {
	switch severity {
	case model.SeverityEmergency:
		return "🔴"
	case model.SeverityModerate:
		return "🟠"
	case model.SeverityLow:
		return "🟢"
	default:
		return "⚪"
	}
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
