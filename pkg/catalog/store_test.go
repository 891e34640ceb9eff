package catalog

import (
	"errors"
	"math"
	"testing"

	"github.com/helmcode/healthai/pkg/model"
)

func validSymptom(name string) model.SymptomRecord {
	return model.SymptomRecord{Name: name, Category: "General", Severity: model.SeverityLow}
}

func validLab(name string) model.LabReferenceEntry {
	return model.LabReferenceEntry{Name: name, Keywords: []string{"x"}, Min: 1}
}

func TestNew_Valid(t *testing.T) {
	s, err := New(
		[]model.SymptomRecord{validSymptom("B"), validSymptom("A")},
		[]model.ConditionPattern{{Symptoms: []string{"A"}, Name: "c", Urgency: model.SeverityLow}},
		[]model.LabReferenceEntry{validLab("l")},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := s.SymptomNames()
	if len(names) != 2 || names[0] != "B" || names[1] != "A" {
		t.Errorf("expected declared order [B A], got %v", names)
	}
	if _, ok := s.Symptom("A"); !ok {
		t.Error("expected lookup of A to succeed")
	}
	if _, ok := s.Symptom("a"); ok {
		t.Error("expected lookup to be case-sensitive")
	}
}

func TestNew_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name       string
		symptoms   []model.SymptomRecord
		conditions []model.ConditionPattern
		labs       []model.LabReferenceEntry
	}{
		{
			name:       "empty pattern",
			conditions: []model.ConditionPattern{{Name: "c", Urgency: model.SeverityLow}},
		},
		{
			name:       "unknown urgency",
			conditions: []model.ConditionPattern{{Symptoms: []string{"A"}, Name: "c", Urgency: "critical"}},
		},
		{
			name: "no keywords",
			labs: []model.LabReferenceEntry{{Name: "l", Min: 1}},
		},
		{
			name: "empty keyword",
			labs: []model.LabReferenceEntry{{Name: "l", Keywords: []string{""}, Min: 1}},
		},
		{
			name: "negative minimum",
			labs: []model.LabReferenceEntry{{Name: "l", Keywords: []string{"x"}, Min: -1}},
		},
		{
			name: "NaN minimum",
			labs: []model.LabReferenceEntry{{Name: "l", Keywords: []string{"x"}, Min: math.NaN()}},
		},
		{
			name: "infinite minimum",
			labs: []model.LabReferenceEntry{{Name: "l", Keywords: []string{"x"}, Min: math.Inf(1)}},
		},
		{
			name: "duplicate lab reference",
			labs: []model.LabReferenceEntry{validLab("l"), validLab("l")},
		},
		{
			name:     "duplicate symptom",
			symptoms: []model.SymptomRecord{validSymptom("A"), validSymptom("A")},
		},
		{
			name:     "unknown category",
			symptoms: []model.SymptomRecord{{Name: "A", Category: "Dental", Severity: model.SeverityLow}},
		},
		{
			name:     "unknown severity",
			symptoms: []model.SymptomRecord{{Name: "A", Category: "General", Severity: "high"}},
		},
		{
			name:     "empty symptom name",
			symptoms: []model.SymptomRecord{validSymptom("")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.symptoms, tt.conditions, tt.labs)
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestNew_ZeroMinimumIsValid(t *testing.T) {
	_, err := New(nil, nil, []model.LabReferenceEntry{{Name: "l", Keywords: []string{"x"}, Min: 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStore_AccessorsReturnCopies(t *testing.T) {
	a := validSymptom("A")
	a.Precautions = []string{"Rest"}
	s, err := New(
		[]model.SymptomRecord{a},
		[]model.ConditionPattern{{Symptoms: []string{"A", "B"}, Name: "c", Urgency: model.SeverityLow, Outcomes: []string{"Consult doctor"}}},
		[]model.LabReferenceEntry{{Name: "l", Keywords: []string{"x"}, Min: 1, Suggestions: []string{"Iron"}}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	syms := s.Symptoms()
	syms[0].Name = "mutated"
	if got := s.Symptoms()[0].Name; got != "A" {
		t.Errorf("expected store to be unaffected, got %q", got)
	}
	rec, _ := s.Symptom("A")
	rec.Precautions[0] = "mutated"
	if got, _ := s.Symptom("A"); got.Precautions[0] != "Rest" {
		t.Errorf("expected Symptom() precautions to be unaffected, got %q", got.Precautions[0])
	}
	syms = s.Symptoms()
	syms[0].Precautions[0] = "mutated"
	if got := s.Symptoms()[0].Precautions[0]; got != "Rest" {
		t.Errorf("expected Symptoms() precautions to be unaffected, got %q", got)
	}
	conds := s.Conditions()
	conds[0].Outcomes[0] = "mutated"
	if got := s.Conditions()[0].Outcomes[0]; got != "Consult doctor" {
		t.Errorf("expected condition outcomes to be unaffected, got %q", got)
	}
	labs := s.LabReferences()
	labs[0].Suggestions[0] = "mutated"
	if got := s.LabReferences()[0].Suggestions[0]; got != "Iron" {
		t.Errorf("expected lab suggestions to be unaffected, got %q", got)
	}

	cats := s.Categories()
	cats[0] = "mutated"
	if Categories[0] != "General" {
		t.Error("expected category set to be unaffected")
	}
}

func TestNew_DoesNotAliasInput(t *testing.T) {
	a := validSymptom("A")
	a.Tests = []string{"CBC"}
	input := []model.SymptomRecord{a}
	s, err := New(input, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	input[0].Tests[0] = "mutated"
	if got, _ := s.Symptom("A"); got.Tests[0] != "CBC" {
		t.Errorf("expected store to own its records, got %q", got.Tests[0])
	}
}

func TestNew_NormalizesMissingLists(t *testing.T) {
	s, err := New([]model.SymptomRecord{validSymptom("A")}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := s.Symptom("A")
	if got.Tags == nil || got.Specialists == nil || got.Precautions == nil || got.Tests == nil {
		t.Errorf("expected empty, non-nil lists, got %+v", got)
	}
}

func TestDefault(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("default catalog failed to load: %v", err)
	}
	if got := len(s.SymptomNames()); got != 40 {
		t.Errorf("expected 40 symptoms, got %d", got)
	}
	if got := len(s.Conditions()); got != 9 {
		t.Errorf("expected 9 condition patterns, got %d", got)
	}
	labs := s.LabReferences()
	if len(labs) != 12 {
		t.Fatalf("expected 12 lab references, got %d", len(labs))
	}
	if labs[0].Name != "Hemoglobin" || labs[0].Min != 13.0 {
		t.Errorf("expected Hemoglobin (min 13) first, got %s (%v)", labs[0].Name, labs[0].Min)
	}

	fever, ok := s.Symptom("Fever")
	if !ok {
		t.Fatal("expected Fever in default catalog")
	}
	if fever.Severity != model.SeverityModerate {
		t.Errorf("expected Fever to be moderate, got %s", fever.Severity)
	}
	if sob, _ := s.Symptom("Shortness of Breath"); sob.Severity != model.SeverityEmergency {
		t.Errorf("expected Shortness of Breath to be emergency, got %s", sob.Severity)
	}
}
