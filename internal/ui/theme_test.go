package ui

import (
	"strings"
	"testing"
)

func TestClampRatio(t *testing.T) {
	for in, want := range map[float64]float64{-0.5: 0, 0: 0, 0.25: 0.25, 1: 1, 1.5: 1} {
		if got := ClampRatio(in); got != want {
			t.Fatalf("ClampRatio(%v)=%v, want %v", in, got, want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	cases := []struct {
		ratio  float64
		filled int
	}{
		{0, 0}, {0.5, 5}, {1, 10}, {1.3, 10}, {-1, 0},
	}
	for _, c := range cases {
		bar := ProgressBar(c.ratio, 10)
		if got := strings.Count(bar, "#"); got != c.filled {
			t.Fatalf("ProgressBar(%v) filled=%d, want %d (%q)", c.ratio, got, c.filled, bar)
		}
		if got := strings.Count(bar, "-"); got != 10-c.filled {
			t.Fatalf("ProgressBar(%v) empty=%d, want %d (%q)", c.ratio, got, 10-c.filled, bar)
		}
	}
}

func TestBadgeLevelUp(t *testing.T) {
	if !strings.Contains(BadgeLevelUp, IconTrophy) || !strings.Contains(BadgeLevelUp, "LEVEL UP") {
		t.Fatalf("BadgeLevelUp=%q", BadgeLevelUp)
	}
}
