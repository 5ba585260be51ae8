package usecase

import (
	"strings"
	"testing"

	"github.com/partsight/backend/internal/domain"
)

func TestCompareText(t *testing.T) {
	c := NewComparator(0)

	testCases := []struct {
		name      string
		list, web string
		verdict   domain.Verdict
	}{
		{name: "identical values", list: "Brake disc", web: "Brake disc", verdict: domain.VerdictMatch},
		{name: "case insensitive", list: "BRAKE DISC", web: "brake disc", verdict: domain.VerdictMatch},
		{name: "collapsed whitespace", list: "Brake  disc ", web: " Brake disc", verdict: domain.VerdictMatch},
		{name: "different values", list: "Brake disc", web: "Brake caliper", verdict: domain.VerdictMismatch},
		{name: "both missing", list: "", web: "  ", verdict: domain.VerdictUnresolved},
		{name: "list side missing", list: "", web: "Brake disc", verdict: domain.VerdictUnresolved},
		{name: "web side missing", list: "Brake disc", web: "", verdict: domain.VerdictUnresolved},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.CompareText(tc.list, tc.web)
			if got.Verdict != tc.verdict {
				t.Errorf("CompareText(%q, %q) = %s, want %s", tc.list, tc.web, got.Verdict, tc.verdict)
			}
			if got.Comment == "" {
				t.Error("comment must never be empty")
			}
		})
	}

	t.Run("mismatch comment names both values", func(t *testing.T) {
		got := c.CompareText("Brake disc", "Brake caliper")
		if !strings.Contains(got.Comment, "Brake disc") || !strings.Contains(got.Comment, "Brake caliper") {
			t.Errorf("mismatch comment %q should contain both raw values", got.Comment)
		}
	})

	t.Run("absence comment names the missing side", func(t *testing.T) {
		if got := c.CompareText("", "x"); got.Comment != commentListMissing {
			t.Errorf("comment = %q, want %q", got.Comment, commentListMissing)
		}
		if got := c.CompareText("x", ""); got.Comment != commentWebMissing {
			t.Errorf("comment = %q, want %q", got.Comment, commentWebMissing)
		}
	})
}

func TestCompareIdentifier(t *testing.T) {
	c := NewComparator(0)

	testCases := []struct {
		name      string
		list, web string
		verdict   domain.Verdict
	}{
		{name: "formatting variants match", list: "a2v-1234 56/7", web: "A2V123456 7", verdict: domain.VerdictMatch},
		{name: "underscores ignored", list: "AB_12", web: "AB12", verdict: domain.VerdictMatch},
		{name: "different identifiers", list: "A2V100", web: "A2V200", verdict: domain.VerdictMismatch},
		{name: "both missing", list: "", web: "", verdict: domain.VerdictUnresolved},
		{name: "one side missing", list: "A2V100", web: "", verdict: domain.VerdictUnresolved},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.CompareIdentifier(tc.list, tc.web)
			if got.Verdict != tc.verdict {
				t.Errorf("CompareIdentifier(%q, %q) = %s, want %s", tc.list, tc.web, got.Verdict, tc.verdict)
			}
		})
	}
}

func TestCompareWeight(t *testing.T) {
	t.Run("exact match required at zero tolerance", func(t *testing.T) {
		c := NewComparator(0)

		if got := c.CompareWeight("2,5 kg", "2.5 kg"); got.Verdict != domain.VerdictMatch {
			t.Errorf("verdict = %s, want MATCH (%s)", got.Verdict, got.Comment)
		}
		if got := c.CompareWeight("100 kg", "101 kg"); got.Verdict != domain.VerdictMismatch {
			t.Errorf("verdict = %s, want MISMATCH (%s)", got.Verdict, got.Comment)
		}
	})

	t.Run("tolerance allows small deviation", func(t *testing.T) {
		c := NewComparator(2)

		if got := c.CompareWeight("100 kg", "101 kg"); got.Verdict != domain.VerdictMatch {
			t.Errorf("verdict = %s, want MATCH (%s)", got.Verdict, got.Comment)
		}
		if got := c.CompareWeight("100 kg", "90 kg"); got.Verdict != domain.VerdictMismatch {
			t.Errorf("verdict = %s, want MISMATCH (%s)", got.Verdict, got.Comment)
		}
	})

	t.Run("units are normalized before comparing", func(t *testing.T) {
		c := NewComparator(0)

		if got := c.CompareWeight("500 g", "0,5 kg"); got.Verdict != domain.VerdictMatch {
			t.Errorf("verdict = %s, want MATCH (%s)", got.Verdict, got.Comment)
		}
	})

	t.Run("comment reports the percentage delta", func(t *testing.T) {
		c := NewComparator(0)

		got := c.CompareWeight("100 kg", "101 kg")
		if !strings.Contains(got.Comment, "+1.0%") {
			t.Errorf("comment %q should report the +1.0%% delta", got.Comment)
		}
	})

	t.Run("zero reference does not divide by zero", func(t *testing.T) {
		c := NewComparator(0)

		got := c.CompareWeight("0 kg", "1 kg")
		if got.Verdict != domain.VerdictMismatch {
			t.Errorf("verdict = %s, want MISMATCH", got.Verdict)
		}
	})

	t.Run("unparseable weight is unresolved", func(t *testing.T) {
		c := NewComparator(0)

		if got := c.CompareWeight("tbd", "1 kg"); got.Verdict != domain.VerdictUnresolved {
			t.Errorf("verdict = %s, want UNRESOLVED", got.Verdict)
		}
	})

	t.Run("both sides missing is unresolved", func(t *testing.T) {
		c := NewComparator(0)

		if got := c.CompareWeight("", ""); got.Verdict != domain.VerdictUnresolved {
			t.Errorf("verdict = %s, want UNRESOLVED", got.Verdict)
		}
	})
}

func TestCompareDimensions(t *testing.T) {
	c := NewComparator(0)

	testCases := []struct {
		name             string
		length, wid, hei string
		combined         string
		verdict          domain.Verdict
	}{
		{name: "all axes equal", length: "30", wid: "20", hei: "10", combined: "30x20x10 mm", verdict: domain.VerdictMatch},
		{name: "unit conversion on web side", length: "300", wid: "200", hei: "100", combined: "0.3 x 0.2 x 0.1 m", verdict: domain.VerdictMatch},
		{name: "one axis differs", length: "30", wid: "20", hei: "11", combined: "30x20x10 mm", verdict: domain.VerdictMismatch},
		{name: "axis present on one side only", length: "30", wid: "20", hei: "10", combined: "30x20 mm", verdict: domain.VerdictMismatch},
		{name: "both sides empty", length: "", wid: "", hei: "", combined: "", verdict: domain.VerdictUnresolved},
		{name: "list side empty", length: "", wid: "", hei: "", combined: "30x20x10", verdict: domain.VerdictUnresolved},
		{name: "web side empty", length: "30", wid: "20", hei: "10", combined: "", verdict: domain.VerdictUnresolved},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.CompareDimensions(tc.length, tc.wid, tc.hei, tc.combined)
			if got.Verdict != tc.verdict {
				t.Errorf("CompareDimensions = %s, want %s (%s)", got.Verdict, tc.verdict, got.Comment)
			}
		})
	}
}

func TestNewComparatorClampsNegativeTolerance(t *testing.T) {
	c := NewComparator(-5)
	if got := c.CompareWeight("100 kg", "101 kg"); got.Verdict != domain.VerdictMismatch {
		t.Errorf("negative tolerance should behave like zero, got %s", got.Verdict)
	}
}
