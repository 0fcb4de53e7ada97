package util

import "testing"

func TestNormalizeTicker(t *testing.T) {
	if got := NormalizeTicker("  msft "); got != "MSFT" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestIsValidTicker(t *testing.T) {
	valid := []string{"MSFT", "BRK.B", "RDS-A", "A", "7203"}
	for _, s := range valid {
		if !IsValidTicker(s) {
			t.Fatalf("expected %q valid", s)
		}
	}

	invalid := []string{"", "MS FT", "msft", ".MSFT", "MSFT.", "BRK..B", "$AAPL", "VERYLONGSYMBOL"}
	for _, s := range invalid {
		if IsValidTicker(s) {
			t.Fatalf("expected %q invalid", s)
		}
	}
}
