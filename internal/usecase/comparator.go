package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/partsight/backend/internal/domain"
)

// Comment fragments for absence handling, shared by all attribute families
const (
	commentBothMissing = "both values missing"
	commentListMissing = "parts list value missing"
	commentWebMissing  = "catalog value missing"
)

// Comparator produces per-attribute verdicts between a parts-list value and a
// catalog value. The parts-list side is always the first argument.
type Comparator struct {
	weightTolerancePct float64
}

// NewComparator creates a comparator. tolerancePct is the allowed relative
// weight deviation in percent; zero demands exact equality.
func NewComparator(tolerancePct float64) *Comparator {
	if tolerancePct < 0 {
		tolerancePct = 0
	}
	return &Comparator{weightTolerancePct: tolerancePct}
}

// checkPresence handles the three-way absence cases shared by every
// comparison. ok is true when both sides are present and the caller should
// compare them.
func checkPresence(list, web string) (result domain.Comparison, ok bool) {
	listEmpty := strings.TrimSpace(list) == ""
	webEmpty := strings.TrimSpace(web) == ""

	switch {
	case listEmpty && webEmpty:
		return domain.Comparison{Verdict: domain.VerdictUnresolved, Comment: commentBothMissing}, false
	case listEmpty:
		return domain.Comparison{Verdict: domain.VerdictUnresolved, Comment: commentListMissing}, false
	case webEmpty:
		return domain.Comparison{Verdict: domain.VerdictUnresolved, Comment: commentWebMissing}, false
	}
	return domain.Comparison{}, true
}

// CompareText compares two free-text values case-insensitively with
// collapsed whitespace.
func (c *Comparator) CompareText(list, web string) domain.Comparison {
	if result, ok := checkPresence(list, web); !ok {
		return result
	}

	if strings.EqualFold(collapseWhitespace(list), collapseWhitespace(web)) {
		return domain.Comparison{Verdict: domain.VerdictMatch, Comment: "identical"}
	}
	return domain.Comparison{
		Verdict: domain.VerdictMismatch,
		Comment: fmt.Sprintf("%q vs. %q", strings.TrimSpace(list), strings.TrimSpace(web)),
	}
}

// CompareIdentifier compares two article identifiers ignoring case,
// whitespace, hyphens, slashes and underscores.
func (c *Comparator) CompareIdentifier(list, web string) domain.Comparison {
	if result, ok := checkPresence(list, web); !ok {
		return result
	}

	if NormalizeIdentifier(list) == NormalizeIdentifier(web) {
		return domain.Comparison{Verdict: domain.VerdictMatch, Comment: "identical"}
	}
	return domain.Comparison{
		Verdict: domain.VerdictMismatch,
		Comment: fmt.Sprintf("%q vs. %q", strings.TrimSpace(list), strings.TrimSpace(web)),
	}
}

// CompareWeight normalizes both sides to kilograms and compares them within
// the configured tolerance. The comment always reports the relative delta in
// percent, list side as reference.
func (c *Comparator) CompareWeight(list, web string) domain.Comparison {
	if result, ok := checkPresence(list, web); !ok {
		return result
	}

	listKg, listOK := NormalizeWeightKg(list)
	webKg, webOK := NormalizeWeightKg(web)
	switch {
	case !listOK && !webOK:
		return domain.Comparison{Verdict: domain.VerdictUnresolved, Comment: "no numeric weight on either side"}
	case !listOK:
		return domain.Comparison{Verdict: domain.VerdictUnresolved, Comment: "parts list weight not numeric"}
	case !webOK:
		return domain.Comparison{Verdict: domain.VerdictUnresolved, Comment: "catalog weight not numeric"}
	}

	// Floor the reference to avoid dividing by zero on a zero-weight row
	reference := math.Max(math.Abs(listKg), equalityEpsilon)
	deltaPct := (webKg - listKg) / reference * 100
	comment := fmt.Sprintf("%.2f kg vs. %.2f kg (%+.1f%%)", listKg, webKg, deltaPct)

	if WithinTolerance(listKg, webKg, c.weightTolerancePct) {
		return domain.Comparison{Verdict: domain.VerdictMatch, Comment: comment}
	}
	return domain.Comparison{Verdict: domain.VerdictMismatch, Comment: comment}
}

// CompareDimensions compares the three discrete length/width/height cells of
// the parts list against one combined catalog dimension text. All three axes
// must agree for a match; an axis present on only one side is a mismatch.
func (c *Comparator) CompareDimensions(lenRaw, widRaw, heiRaw, combined string) domain.Comparison {
	listTriple := tripleFromCells(lenRaw, widRaw, heiRaw)
	webTriple := ParseDimensionTriple(combined)

	switch {
	case listTriple.Empty() && webTriple.Empty():
		return domain.Comparison{Verdict: domain.VerdictUnresolved, Comment: commentBothMissing}
	case listTriple.Empty():
		return domain.Comparison{Verdict: domain.VerdictUnresolved, Comment: commentListMissing}
	case webTriple.Empty():
		return domain.Comparison{Verdict: domain.VerdictUnresolved, Comment: commentWebMissing}
	}

	comment := fmt.Sprintf("%s vs. %s", formatTriple(listTriple), formatTriple(webTriple))
	if axisEqual(listTriple.L, webTriple.L) &&
		axisEqual(listTriple.B, webTriple.B) &&
		axisEqual(listTriple.H, webTriple.H) {
		return domain.Comparison{Verdict: domain.VerdictMatch, Comment: comment}
	}
	return domain.Comparison{Verdict: domain.VerdictMismatch, Comment: comment}
}

// tripleFromCells builds a dimension triple from the three discrete
// worksheet cells, which are assumed to hold millimeter values.
func tripleFromCells(lenRaw, widRaw, heiRaw string) domain.DimensionTriple {
	var triple domain.DimensionTriple
	for i, raw := range []string{lenRaw, widRaw, heiRaw} {
		value, ok := parseDecimal(raw)
		if !ok {
			continue
		}
		rounded := int(math.Round(value))
		switch i {
		case 0:
			triple.L = &rounded
		case 1:
			triple.B = &rounded
		case 2:
			triple.H = &rounded
		}
	}
	return triple
}

func axisEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// formatTriple renders a triple as "LxBxH mm" with "?" for absent components
func formatTriple(t domain.DimensionTriple) string {
	component := func(v *int) string {
		if v == nil {
			return "?"
		}
		return fmt.Sprintf("%d", *v)
	}
	return fmt.Sprintf("%sx%sx%s mm", component(t.L), component(t.B), component(t.H))
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
