package analyzer

import (
	"sort"

	"github.com/helmcode/healthai/pkg/model"
)

// minConditionMatches is the smallest number of pattern symptoms that must be
// selected for a condition to be considered at all.
const minConditionMatches = 2

// Selection is a set of selected symptom names. It has no order of its own; the
// pipelines always walk it in catalog order.
type Selection map[string]struct{}

// NewSelection builds a Selection from names, ignoring duplicates.
func NewSelection(names ...string) Selection {
	s := make(Selection, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is selected.
func (s Selection) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Aggregate is the merged guidance of the selected symptoms.
type Aggregate struct {
	Symptoms    []string
	Specialists []string
	Precautions []string
	Tests       []string
	Severity    model.Severity
}

// Aggregate merges specialists, precautions and tests of every selected symptom,
// deduplicated in first-seen order, and takes the highest severity. Names that
// are not in the catalog contribute nothing.
func (a *Analyzer) Aggregate(sel Selection) Aggregate {
	var specialists, precautions, tests orderedSet
	agg := Aggregate{Severity: model.SeverityLow}

	for _, sym := range a.store.Symptoms() {
		if !sel.Has(sym.Name) {
			continue
		}
		agg.Symptoms = append(agg.Symptoms, sym.Name)
		specialists.add(sym.Specialists...)
		precautions.add(sym.Precautions...)
		tests.add(sym.Tests...)
		agg.Severity = agg.Severity.Max(sym.Severity)
	}

	agg.Specialists = specialists.list()
	agg.Precautions = precautions.list()
	agg.Tests = tests.list()
	return agg
}

// MatchCondition scores every condition pattern against the selection and returns
// the best candidate with its match count, or nil when no pattern qualifies.
//
// A pattern is a candidate when at least two of its symptoms are selected and the
// selected ones cover at least half of the pattern. The candidate with the most
// matches wins; on a tie the pattern declared first in the catalog is kept.
func (a *Analyzer) MatchCondition(sel Selection) (*model.ConditionPattern, int) {
	var best *model.ConditionPattern
	bestCount := 0

	for _, c := range a.store.Conditions() {
		count := 0
		for _, name := range c.Symptoms {
			if sel.Has(name) {
				count++
			}
		}
		if !isCandidate(count, len(c.Symptoms)) {
			continue
		}
		if count > bestCount {
			match := c
			best = &match
			bestCount = count
		}
	}

	if best != nil {
		a.log.Debug().Str("condition", best.Name).Int("matches", bestCount).Msg("condition matched")
	}
	return best, bestCount
}

func isCandidate(matchCount, patternSize int) bool {
	return matchCount >= minConditionMatches && float64(matchCount) >= float64(patternSize)/2
}

// AnalyzeSymptoms aggregates the selection and matches it against the condition
// patterns. An empty selection yields an empty result with low urgency.
func (a *Analyzer) AnalyzeSymptoms(sel Selection) *model.AnalysisResult {
	result := &model.AnalysisResult{
		Symptoms:    []string{},
		Specialists: []string{},
		Urgency:     model.SeverityLow,
		Precautions: []string{},
		Tests:       []string{},
		Timestamp:   a.now(),
	}
	if len(sel) == 0 {
		return result
	}

	agg := a.Aggregate(sel)
	result.Symptoms = append(result.Symptoms, agg.Symptoms...)
	result.Symptoms = append(result.Symptoms, a.unknown(sel)...)
	result.Specialists = append(result.Specialists, agg.Specialists...)
	result.Precautions = append(result.Precautions, agg.Precautions...)
	result.Tests = append(result.Tests, agg.Tests...)
	result.Urgency = agg.Severity

	if match, _ := a.MatchCondition(sel); match != nil {
		result.Condition = match
		result.Urgency = result.Urgency.Max(match.Urgency)
	}

	a.log.Debug().
		Int("selected", len(sel)).
		Str("urgency", string(result.Urgency)).
		Msg("symptoms analyzed")
	return result
}

// unknown returns the selected names missing from the catalog, sorted.
func (a *Analyzer) unknown(sel Selection) []string {
	var out []string
	for name := range sel {
		if _, ok := a.store.Symptom(name); !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func (o *orderedSet) add(values ...string) {
	if o.seen == nil {
		o.seen = make(map[string]struct{})
	}
	for _, v := range values {
		if _, ok := o.seen[v]; ok {
			continue
		}
		o.seen[v] = struct{}{}
		o.items = append(o.items, v)
	}
}

func (o *orderedSet) list() []string {
	return o.items
}
