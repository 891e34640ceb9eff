package catalog

import (
	"errors"
	"fmt"
	"math"

	"github.com/helmcode/healthai/pkg/model"
)

// ErrInvalidCatalog is wrapped by every load-time validation failure.
var ErrInvalidCatalog = errors.New("invalid reference catalog")

// Categories is the fixed set of symptom categories, in display order.
var Categories = []string{
	"General",
	"Digestive",
	"Respiratory",
	"ENT (Ear/Nose/Throat)",
	"Musculoskeletal",
	"Skin",
	"Urinary",
	"Eye",
	"Neurological",
	"Mental Health",
}

// Store is the immutable reference catalog. Enumeration order is the order the
// records were declared in, never map order.
type Store struct {
	symptoms   []model.SymptomRecord
	index      map[string]int
	conditions []model.ConditionPattern
	labs       []model.LabReferenceEntry
}

// New validates the records and freezes them into a Store.
func New(symptoms []model.SymptomRecord, conditions []model.ConditionPattern, labs []model.LabReferenceEntry) (*Store, error) {
	s := &Store{
		symptoms:   make([]model.SymptomRecord, len(symptoms)),
		index:      make(map[string]int, len(symptoms)),
		conditions: make([]model.ConditionPattern, len(conditions)),
		labs:       make([]model.LabReferenceEntry, len(labs)),
	}
	for i, sym := range symptoms {
		s.symptoms[i] = sym.Clone()
	}
	for i, c := range conditions {
		s.conditions[i] = c.Clone()
	}
	for i, l := range labs {
		s.labs[i] = l.Clone()
	}

	for i, sym := range s.symptoms {
		if err := validateSymptom(sym); err != nil {
			return nil, err
		}
		if _, dup := s.index[sym.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate symptom %q", ErrInvalidCatalog, sym.Name)
		}
		s.index[sym.Name] = i
	}
	for i, c := range s.conditions {
		if err := validateCondition(c); err != nil {
			return nil, fmt.Errorf("condition #%d: %w", i, err)
		}
	}
	labNames := make(map[string]struct{}, len(s.labs))
	for _, l := range s.labs {
		if err := validateLab(l); err != nil {
			return nil, err
		}
		if _, dup := labNames[l.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate lab reference %q", ErrInvalidCatalog, l.Name)
		}
		labNames[l.Name] = struct{}{}
	}

	return s, nil
}

func validateSymptom(sym model.SymptomRecord) error {
	if sym.Name == "" {
		return fmt.Errorf("%w: symptom with empty name", ErrInvalidCatalog)
	}
	if !knownCategory(sym.Category) {
		return fmt.Errorf("%w: symptom %q has unknown category %q", ErrInvalidCatalog, sym.Name, sym.Category)
	}
	if !sym.Severity.Valid() {
		return fmt.Errorf("%w: symptom %q has unknown severity %q", ErrInvalidCatalog, sym.Name, sym.Severity)
	}
	return nil
}

func validateCondition(c model.ConditionPattern) error {
	if len(c.Symptoms) == 0 {
		return fmt.Errorf("%w: condition %q has an empty symptom pattern", ErrInvalidCatalog, c.Name)
	}
	if !c.Urgency.Valid() {
		return fmt.Errorf("%w: condition %q has unknown urgency %q", ErrInvalidCatalog, c.Name, c.Urgency)
	}
	return nil
}

func validateLab(l model.LabReferenceEntry) error {
	if l.Name == "" {
		return fmt.Errorf("%w: lab reference with empty name", ErrInvalidCatalog)
	}
	if len(l.Keywords) == 0 {
		return fmt.Errorf("%w: lab reference %q has no keywords", ErrInvalidCatalog, l.Name)
	}
	for _, k := range l.Keywords {
		if k == "" {
			return fmt.Errorf("%w: lab reference %q has an empty keyword", ErrInvalidCatalog, l.Name)
		}
	}
	if math.IsNaN(l.Min) || math.IsInf(l.Min, 0) || l.Min < 0 {
		return fmt.Errorf("%w: lab reference %q has invalid minimum %v", ErrInvalidCatalog, l.Name, l.Min)
	}
	return nil
}

func knownCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Symptom looks up a symptom by its exact, case-sensitive name.
func (s *Store) Symptom(name string) (model.SymptomRecord, bool) {
	i, ok := s.index[name]
	if !ok {
		return model.SymptomRecord{}, false
	}
	return s.symptoms[i].Clone(), true
}

// SymptomNames returns all symptom names in catalog order.
func (s *Store) SymptomNames() []string {
	names := make([]string, len(s.symptoms))
	for i, sym := range s.symptoms {
		names[i] = sym.Name
	}
	return names
}

// Symptoms returns deep copies of all symptom records in catalog order.
func (s *Store) Symptoms() []model.SymptomRecord {
	out := make([]model.SymptomRecord, len(s.symptoms))
	for i, sym := range s.symptoms {
		out[i] = sym.Clone()
	}
	return out
}

// Conditions returns deep copies of all condition patterns in catalog order.
func (s *Store) Conditions() []model.ConditionPattern {
	out := make([]model.ConditionPattern, len(s.conditions))
	for i, c := range s.conditions {
		out[i] = c.Clone()
	}
	return out
}

// LabReferences returns deep copies of all lab reference entries in catalog order.
func (s *Store) LabReferences() []model.LabReferenceEntry {
	out := make([]model.LabReferenceEntry, len(s.labs))
	for i, l := range s.labs {
		out[i] = l.Clone()
	}
	return out
}

// Categories returns the symptom category set.
func (s *Store) Categories() []string {
	return append([]string(nil), Categories...)
}
