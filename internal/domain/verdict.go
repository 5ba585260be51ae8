package domain

// Verdict is the tri-state outcome of comparing one attribute between the
// parts list and the web catalog.
type Verdict string

const (
	// VerdictMatch means both sides are present and equal under the
	// attribute's normalization rules.
	VerdictMatch Verdict = "MATCH"

	// VerdictMismatch means both sides are present and differ. An ambiguous
	// comparison with both sides present is a mismatch, never a fourth state.
	VerdictMismatch Verdict = "MISMATCH"

	// VerdictUnresolved means one or both sides are absent, so no comparison
	// was possible.
	VerdictUnresolved Verdict = "UNRESOLVED"
)

// Comparison pairs a verdict with a human-readable explanation suitable for
// writing into the comparison row of the worksheet.
type Comparison struct {
	Verdict Verdict `json:"verdict"`
	Comment string  `json:"comment"`
}
