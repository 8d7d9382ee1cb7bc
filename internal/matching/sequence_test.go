package matching

import (
	"math"
	"testing"
)

func TestSequenceRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "black wallet", "black wallet", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "wallet", "", 0.0},
		{"disjoint", "abc", "xyz", 0.0},
		// One shared block of 3 chars out of 8 total: 2*3/8.
		{"partial overlap", "abcd", "bcde", 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sequenceRatio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("sequenceRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSequenceRatioSymmetric(t *testing.T) {
	a, b := "black leather wallet", "worn leather purse"
	if sequenceRatio(a, b) != sequenceRatio(b, a) {
		t.Errorf("sequenceRatio not symmetric for %q and %q", a, b)
	}
}
