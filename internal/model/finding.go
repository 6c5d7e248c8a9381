package model

// FindingKind classifies a detected inconsistency
type FindingKind string

const (
	KindNumericalContradiction FindingKind = "numerical_contradiction" // Same metric, different values across slides
	KindSummationError         FindingKind = "summation_error"         // Claimed total does not match its parts
	KindLogicalContradiction   FindingKind = "logical_contradiction"   // Qualitative claim contradicted by quantitative data
	KindOmission               FindingKind = "omission"                // Lists of features/benefits diverge across slides
)

// Severity indicates the importance of a finding
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return string(s)
	default:
		return "unknown"
	}
}

// Finding is one detected issue in the case file. Findings are produced only
// by the analyzer and are immutable once returned.
type Finding struct {
	Kind           FindingKind `json:"kind"`
	InvolvedSlides []int       `json:"involved_slides"` // Non-empty; every index exists in the case file
	Explanation    string      `json:"explanation"`
	Severity       Severity    `json:"severity,omitempty"`
}
