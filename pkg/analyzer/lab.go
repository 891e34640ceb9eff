package analyzer

import (
	"slices"
	"unicode/utf8"

	"github.com/helmcode/healthai/pkg/model"
	"github.com/helmcode/healthai/pkg/parser"
)

// AnalyzeLab extracts a value for every biomarker mentioned in text and reports the
// ones below their reference minimum, in catalog order. Biomarkers that are not
// mentioned, have no number near the mention, or are at or above the minimum
// produce nothing.
func (a *Analyzer) AnalyzeLab(text string) *model.LabAnalysisResult {
	result := &model.LabAnalysisResult{
		Findings:  []model.LabFinding{},
		RawLength: utf8.RuneCountInString(text),
		Timestamp: a.now(),
	}
	if text == "" {
		return result
	}

	normalized := parser.NormalizeLabText(text)
	for _, ref := range a.store.LabReferences() {
		reading, ok := parser.FindReading(normalized, ref.Keywords)
		if !ok {
			continue
		}
		a.log.Debug().
			Str("test", ref.Name).
			Str("keyword", reading.Keyword).
			Int("offset", reading.Offset).
			Str("raw", reading.Raw).
			Float64("value", reading.Value).
			Msg("lab value detected")

		if reading.Value < ref.Min {
			result.Findings = append(result.Findings, model.LabFinding{
				Test:        ref.Name,
				Value:       reading.Value,
				Min:         ref.Min,
				Unit:        ref.Unit,
				Indication:  ref.Indication,
				Suggestions: slices.Clone(ref.Suggestions),
				Specialist:  ref.Specialist,
			})
		}
	}
	return result
}
