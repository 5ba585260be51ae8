package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/partsight/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	// First signed decimal token, comma or dot as decimal separator
	decimalTokenRegex = regexp.MustCompile(`[-+]?\d+(?:[.,]\d+)?`)

	// Milligram unit anywhere in the stripped, lowercased text
	milligramRegex = regexp.MustCompile(`mg`)

	// A lowercase g that is not the g of "kg". This is a substring check, not
	// unit tokenization: contrived inputs around "kg"/"mg" boundaries can
	// misclassify. Known fragility, kept for parity with the lenient-parse
	// policy.
	gramRegex = regexp.MustCompile(`(?:^|[^k])g`)

	// Standalone metric ton: a t not embedded in a word
	tonRegex = regexp.MustCompile(`(?:^|[^a-z])t(?:$|[^a-z])`)

	// Characters stripped from identifiers before equality checks
	identifierNoiseRegex = regexp.MustCompile(`[\s\-/_]`)

	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// equalityEpsilon bounds float comparisons when no tolerance is configured.
const equalityEpsilon = 1e-9

// parseDecimal extracts the first signed decimal token from raw. The parse is
// deliberately lenient: surrounding non-numeric text is ignored and a comma
// counts as decimal separator. The second return is false when raw carries no
// numeric token at all.
func parseDecimal(raw string) (float64, bool) {
	stripped := whitespaceRegex.ReplaceAllString(raw, "")
	token := decimalTokenRegex.FindString(stripped)
	if token == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// NormalizeWeightKg parses a raw weight text into kilograms. Unit detection
// runs on the lowercased, whitespace-stripped text; a missing unit means the
// value is assumed to already be in kilograms (explicit default-unit policy).
func NormalizeWeightKg(raw string) (float64, bool) {
	value, ok := parseDecimal(raw)
	if !ok {
		return 0, false
	}

	stripped := strings.ToLower(whitespaceRegex.ReplaceAllString(raw, ""))
	switch {
	case milligramRegex.MatchString(stripped):
		return value / 1_000_000, true
	case gramRegex.MatchString(stripped):
		return value / 1_000, true
	case strings.Contains(stripped, "kg"):
		return value, true
	case tonRegex.MatchString(stripped):
		return value * 1_000, true
	default:
		return value, true
	}
}

// dimensionTokenRegex matches unsigned numeric tokens inside dimension text
var dimensionTokenRegex = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// ParseDimensionTriple parses a combined dimension text like "30x20x10 mm"
// into whole millimeters. Tokens map positionally: first=L, second=B,
// third=H; there is no way to tell which axis a bare number represents, so
// the order is an assumption, not a guarantee. Fewer than three tokens leave
// the remaining components nil. Without a recognized unit the values are
// taken as millimeters.
func ParseDimensionTriple(raw string) domain.DimensionTriple {
	stripped := strings.ToLower(whitespaceRegex.ReplaceAllString(raw, ""))
	stripped = strings.ReplaceAll(stripped, "×", "x")

	scale := 1.0
	switch {
	case strings.Contains(stripped, "cm"):
		scale = 10
	case strings.Contains(stripped, "mm"):
		scale = 1
	case strings.Contains(stripped, "m"):
		scale = 1000
	}

	var triple domain.DimensionTriple
	targets := []**int{&triple.L, &triple.B, &triple.H}
	for i, token := range dimensionTokenRegex.FindAllString(stripped, 3) {
		value, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
		if err != nil {
			continue
		}
		rounded := int(math.Round(value * scale))
		*targets[i] = &rounded
	}
	return triple
}

// NormalizeIdentifier uppercases an identifier and strips whitespace,
// hyphens, slashes and underscores so that formatting variants of the same
// article number compare equal.
func NormalizeIdentifier(raw string) string {
	return identifierNoiseRegex.ReplaceAllString(strings.ToUpper(raw), "")
}

// WithinTolerance reports whether b lies within tolerancePct percent of a.
// A zero (or negative) tolerance demands epsilon-bounded exact equality.
func WithinTolerance(a, b, tolerancePct float64) bool {
	if tolerancePct <= 0 {
		return math.Abs(a-b) < equalityEpsilon
	}
	return math.Abs(a-b) <= math.Abs(a)*tolerancePct/100
}

// MaterialCodeNotRelevant is the single canonical classification code.
const MaterialCodeNotRelevant = "n.s.r."

// materialProcessKeywords name the manufacturing processes a classification
// text can declare irrelevant
var materialProcessKeywords = []string{
	"schweiss", "schweiß", // weld
	"guss", "gegossen", // cast
	"kleb",     // adhesive
	"schmiede", // forge
}

// ClassifyMaterial maps a raw material-classification text to the canonical
// code. The text must carry a negation marker, at least one process keyword
// and a relevance marker at the same time; any weaker signal yields "" rather
// than a best guess.
func ClassifyMaterial(raw string) string {
	text := strings.ToLower(raw)

	if !strings.Contains(text, "nicht") && !strings.Contains(text, "not") {
		return ""
	}
	if !strings.Contains(text, "relevant") {
		return ""
	}
	for _, keyword := range materialProcessKeywords {
		if strings.Contains(text, keyword) {
			return MaterialCodeNotRelevant
		}
	}
	return ""
}
