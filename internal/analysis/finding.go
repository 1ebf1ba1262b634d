// Package analysis runs the inconsistency-detection pipeline: batch
// passes over slide text, one global pass over a numeric/date digest,
// then merge, confidence filtering and duplicate collapsing.
package analysis

// FindingType is the category of an inconsistency as reported by the
// model. Unrecognized or absent categories map to TypeUnknown.
type FindingType string

const (
	TypeNumericalConflict    FindingType = "Numerical Conflict"
	TypeTimelineMismatch     FindingType = "Timeline Mismatch"
	TypeLogicalContradiction FindingType = "Logical Contradiction"
	TypeDataRelationship     FindingType = "Data Relationship Error"
	TypeUnknown              FindingType = "Unknown"
)

// Finding is one inconsistency record. Never mutated after parsing;
// slide order is preserved for display, identity ignores it.
type Finding struct {
	Type       FindingType `json:"type"`
	Confidence float64     `json:"confidence"`
	Slides     []int       `json:"slides"`
	Issue      string      `json:"issue"`
	Evidence   []string    `json:"evidence"`
}
