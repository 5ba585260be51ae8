package usecase

import (
	"math"
	"testing"
)

func TestParseDecimal(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{name: "plain integer", raw: "42", want: 42, ok: true},
		{name: "dot decimal", raw: "3.25", want: 3.25, ok: true},
		{name: "comma decimal", raw: "3,2", want: 3.2, ok: true},
		{name: "negative value", raw: "-1,5", want: -1.5, ok: true},
		{name: "surrounding text is ignored", raw: "ca. 12,5 kg netto", want: 12.5, ok: true},
		{name: "internal whitespace stripped", raw: " 1 234 ", want: 1234, ok: true},
		{name: "no numeric token", raw: "unknown", ok: false},
		{name: "empty string", raw: "", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parseDecimal(tc.raw)
			if ok != tc.ok {
				t.Fatalf("parseDecimal(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
			}
			if ok && math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("parseDecimal(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNormalizeWeightKg(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{name: "milligrams", raw: "500 mg", want: 0.0005, ok: true},
		{name: "grams", raw: "250 g", want: 0.25, ok: true},
		{name: "kilograms", raw: "3 kg", want: 3, ok: true},
		{name: "kilograms comma decimal", raw: "3,2 kg", want: 3.2, ok: true},
		{name: "metric tons", raw: "2.5 t", want: 2500, ok: true},
		{name: "no unit means kilograms", raw: "3,2", want: 3.2, ok: true},
		{name: "uppercase unit", raw: "4 KG", want: 4, ok: true},
		{name: "g directly after number", raw: "750g", want: 0.75, ok: true},
		{name: "no numeric token", raw: "kg", ok: false},
		{name: "empty string", raw: "", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeWeightKg(tc.raw)
			if ok != tc.ok {
				t.Fatalf("NormalizeWeightKg(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
			}
			if ok && math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("NormalizeWeightKg(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

// Weight with an explicit kg unit must equal the bare decimal parse, since kg
// is the identity scale.
func TestNormalizeWeightKgMatchesParseDecimalForKg(t *testing.T) {
	for _, raw := range []string{"1,5", "12,25", "0,001", "990,0"} {
		decimal, ok := parseDecimal(raw)
		if !ok {
			t.Fatalf("parseDecimal(%q) unexpectedly failed", raw)
		}
		weight, ok := NormalizeWeightKg(raw + " kg")
		if !ok {
			t.Fatalf("NormalizeWeightKg(%q) unexpectedly failed", raw+" kg")
		}
		if math.Abs(decimal-weight) > 1e-12 {
			t.Errorf("NormalizeWeightKg(%q) = %v, want parseDecimal result %v", raw+" kg", weight, decimal)
		}
	}
}

func TestParseDimensionTriple(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	testCases := []struct {
		name string
		raw  string
		want [3]*int
	}{
		{name: "millimeters", raw: "30x20x10 mm", want: [3]*int{intPtr(30), intPtr(20), intPtr(10)}},
		{name: "meters scale to mm", raw: "0.3 x 0.2 x 0.1 m", want: [3]*int{intPtr(300), intPtr(200), intPtr(100)}},
		{name: "centimeters scale to mm", raw: "12 x 8 x 4 cm", want: [3]*int{intPtr(120), intPtr(80), intPtr(40)}},
		{name: "no unit defaults to mm", raw: "100x50x25", want: [3]*int{intPtr(100), intPtr(50), intPtr(25)}},
		{name: "multiplication sign separator", raw: "30×20×10 mm", want: [3]*int{intPtr(30), intPtr(20), intPtr(10)}},
		{name: "uppercase separator", raw: "30X20X10", want: [3]*int{intPtr(30), intPtr(20), intPtr(10)}},
		{name: "comma decimals rounded", raw: "10,6 x 20,4 x 1,5 cm", want: [3]*int{intPtr(106), intPtr(204), intPtr(15)}},
		{name: "two tokens leave height absent", raw: "30x20 mm", want: [3]*int{intPtr(30), intPtr(20), nil}},
		{name: "single token", raw: "45 mm", want: [3]*int{intPtr(45), nil, nil}},
		{name: "no tokens", raw: "n/a", want: [3]*int{nil, nil, nil}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDimensionTriple(tc.raw)
			for _, pair := range []struct {
				axis string
				got  *int
				want *int
			}{
				{"L", got.L, tc.want[0]},
				{"B", got.B, tc.want[1]},
				{"H", got.H, tc.want[2]},
			} {
				if (pair.got == nil) != (pair.want == nil) {
					t.Fatalf("ParseDimensionTriple(%q).%s presence = %v, want %v",
						tc.raw, pair.axis, pair.got != nil, pair.want != nil)
				}
				if pair.got != nil && *pair.got != *pair.want {
					t.Errorf("ParseDimensionTriple(%q).%s = %d, want %d", tc.raw, pair.axis, *pair.got, *pair.want)
				}
			}
		})
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	t.Run("formatting variants compare equal", func(t *testing.T) {
		a := NormalizeIdentifier("a2v-1234 56/7")
		b := NormalizeIdentifier("A2V123456 7")
		if a != b {
			t.Errorf("NormalizeIdentifier variants differ: %q vs %q", a, b)
		}
	})

	t.Run("strips underscores and slashes", func(t *testing.T) {
		if got := NormalizeIdentifier("ab_12/34-z"); got != "AB1234Z" {
			t.Errorf("NormalizeIdentifier = %q, want AB1234Z", got)
		}
	})
}

func TestWithinTolerance(t *testing.T) {
	testCases := []struct {
		name      string
		a, b, pct float64
		want      bool
	}{
		{name: "zero tolerance rejects near values", a: 100, b: 101, pct: 0, want: false},
		{name: "zero tolerance accepts equal values", a: 100, b: 100, pct: 0, want: true},
		{name: "one percent over within two percent", a: 100, b: 101, pct: 2, want: true},
		{name: "1.5 percent under within two percent", a: 100, b: 98.5, pct: 2, want: true},
		{name: "ten percent under outside two percent", a: 100, b: 90, pct: 2, want: false},
		{name: "boundary is inclusive", a: 100, b: 102, pct: 2, want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WithinTolerance(tc.a, tc.b, tc.pct); got != tc.want {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, want %v", tc.a, tc.b, tc.pct, got, tc.want)
			}
		})
	}
}

func TestClassifyMaterial(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "full weld negation", raw: "Nicht Schweiss relevant", want: MaterialCodeNotRelevant},
		{name: "umlaut spelling", raw: "nicht schweißrelevant", want: MaterialCodeNotRelevant},
		{name: "cast negation", raw: "Guss nicht relevant", want: MaterialCodeNotRelevant},
		{name: "adhesive negation", raw: "Nicht klebrelevant", want: MaterialCodeNotRelevant},
		{name: "missing negation", raw: "Schweiss relevant", want: ""},
		{name: "missing relevance marker", raw: "nicht schweissbar", want: ""},
		{name: "missing process keyword", raw: "nicht relevant", want: ""},
		{name: "empty text", raw: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyMaterial(tc.raw); got != tc.want {
				t.Errorf("ClassifyMaterial(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}
