package model

import "slices"

// cloneStrings copies s into new backing storage. A nil list becomes an empty one,
// so absent YAML lists and empty database arrays look the same.
func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}

// Clone returns a deep copy of r.
func (r SymptomRecord) Clone() SymptomRecord {
	r.Tags = cloneStrings(r.Tags)
	r.Specialists = cloneStrings(r.Specialists)
	r.Precautions = cloneStrings(r.Precautions)
	r.Tests = cloneStrings(r.Tests)
	return r
}

// Clone returns a deep copy of c.
func (c ConditionPattern) Clone() ConditionPattern {
	c.Symptoms = cloneStrings(c.Symptoms)
	c.Outcomes = cloneStrings(c.Outcomes)
	return c
}

// Clone returns a deep copy of l.
func (l LabReferenceEntry) Clone() LabReferenceEntry {
	l.Keywords = cloneStrings(l.Keywords)
	l.Suggestions = cloneStrings(l.Suggestions)
	return l
}
