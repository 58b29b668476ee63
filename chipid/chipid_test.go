package chipid

import "testing"

func TestNormalize(t *testing.T) {
	for input, expected := range map[string]string{
		"A.B.C":          "A",
		"A":              "A",
		"GSM123.CEL":     "GSM123",
		"GSM123.C":       "GSM123",
		"":               "",
		".hidden":        "",
		"chip_7_HTA2.0":  "chip_7_HTA2",
		"GSM123.CEL.bak": "GSM123",
	} {
		if got := Normalize(input); got != expected {
			t.Errorf("Normalize(%q): expected %q, got %q", input, expected, got)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, v := range []string{"A.B.C", "A", "x.y"} {
		if once, twice := Normalize(v), Normalize(Normalize(v)); once != twice {
			t.Errorf("Normalize is not idempotent for %q: %q vs %q", v, once, twice)
		}
	}
}

func TestSuffix(t *testing.T) {
	for _, v := range []struct {
		Label    string
		Suffix   string
		Complete bool
	}{
		{"X.C", "C", true},
		{"patient42.N", "N", true},
		{"patient42.P.rep2", "P", true},
		{"X", "", false},
		{"X.", "", true},
	} {
		suffix, ok := Suffix(v.Label)
		if suffix != v.Suffix || ok != v.Complete {
			t.Errorf("Suffix(%q): expected (%q, %v), got (%q, %v)", v.Label, v.Suffix, v.Complete, suffix, ok)
		}
	}

	if got := WithSuffix("GSM1", "C"); got != "GSM1.C" {
		t.Errorf("WithSuffix: got %q", got)
	}
}
