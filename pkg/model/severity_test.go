package model

import "testing"

func TestSeverity_Max(t *testing.T) {
	tests := []struct {
		a, b Severity
		want Severity
	}{
		{SeverityLow, SeverityLow, SeverityLow},
		{SeverityLow, SeverityModerate, SeverityModerate},
		{SeverityModerate, SeverityLow, SeverityModerate},
		{SeverityModerate, SeverityEmergency, SeverityEmergency},
		{SeverityEmergency, SeverityModerate, SeverityEmergency},
		{SeverityLow, Severity("unknown"), SeverityLow},
	}
	for _, tt := range tests {
		if got := tt.a.Max(tt.b); got != tt.want {
			t.Errorf("%s.Max(%s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSeverity_Valid(t *testing.T) {
	for _, s := range []Severity{SeverityLow, SeverityModerate, SeverityEmergency} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if Severity("critical").Valid() {
		t.Error("expected critical to be invalid")
	}
	if Severity("").Valid() {
		t.Error("expected empty severity to be invalid")
	}
}
