package domain

import "strings"

// KeyPrefix is the marker every retrievable product number starts with.
// Cells that do not carry it are ignored during key extraction, not rejected.
const KeyPrefix = "A2V"

// ProductKey identifies one catalog article. Keys are stored uppercased and
// trimmed, so comparison is a plain string compare.
type ProductKey string

// ParseProductKey normalizes a raw cell value and reports whether it is an
// eligible product key.
func ParseProductKey(raw string) (ProductKey, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if !strings.HasPrefix(normalized, KeyPrefix) {
		return "", false
	}
	return ProductKey(normalized), true
}

// ProductRecord is one article as retrieved from the web catalog. The value
// fields keep the raw text of the page; normalization happens at comparison
// time. Records are created once per key and never mutated afterwards.
type ProductRecord struct {
	Key           ProductKey `json:"key"`
	URL           string     `json:"url"`
	Title         string     `json:"title"`
	AlternateID   string     `json:"alternateId"`
	WeightText    string     `json:"weightText"`
	DimensionText string     `json:"dimensionText"`
	MaterialText  string     `json:"materialText"`
	MaterialClass string     `json:"materialClass"`
}

// RetrievalOutcome is the per-key result of a batch fetch: either a record or
// the error that prevented one. Exactly one of the two fields is set.
type RetrievalOutcome struct {
	Record *ProductRecord
	Err    error
}

// DimensionTriple holds length, breadth and height in whole millimeters.
// The assignment is positional: the first, second and third numeric token of
// the source text become L, B and H. A nil component means the token was
// absent or unparseable.
type DimensionTriple struct {
	L *int `json:"l,omitempty"`
	B *int `json:"b,omitempty"`
	H *int `json:"h,omitempty"`
}

// Empty reports whether no component could be parsed.
func (d DimensionTriple) Empty() bool {
	return d.L == nil && d.B == nil && d.H == nil
}
