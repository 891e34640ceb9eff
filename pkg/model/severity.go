package model

// Severity is an urgency tier. Tiers are totally ordered: low < moderate < emergency.
type Severity string

const (
	SeverityLow       Severity = "low"
	SeverityModerate  Severity = "moderate"
	SeverityEmergency Severity = "emergency"
)

// Rank returns the position of s in the tier order, or -1 for an unknown tier.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityModerate:
		return 1
	case SeverityEmergency:
		return 2
	default:
		return -1
	}
}

// Valid reports whether s is one of the known tiers.
func (s Severity) Valid() bool {
	return s.Rank() >= 0
}

// Max returns the more urgent of s and other.
func (s Severity) Max(other Severity) Severity {
	if other.Rank() > s.Rank() {
		return other
	}
	return s
}
