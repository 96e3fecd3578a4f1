package plates

import (
	"math"
	"testing"
)

var gymPlates = []float64{20, 15, 10, 5, 2.5, 1.25}

func TestPerSide(t *testing.T) {
	tests := []struct {
		name      string
		target    float64
		bar       float64
		available []float64
		want      []float64
	}{
		{
			name:      "exact fill",
			target:    100,
			bar:       20,
			available: gymPlates,
			want:      []float64{20, 20},
		},
		{
			name:      "fractional plates",
			target:    97.5,
			bar:       20,
			available: gymPlates,
			want:      []float64{20, 15, 2.5, 1.25},
		},
		{
			name:      "target below bar",
			target:    15,
			bar:       20,
			available: gymPlates,
			want:      nil,
		},
		{
			name:      "target equals bar",
			target:    20,
			bar:       20,
			available: gymPlates,
			want:      nil,
		},
		{
			name:      "underfill when denominations cannot reach",
			target:    24,
			bar:       20,
			available: []float64{5}, // per side 2, smallest plate 5
			want:      nil,
		},
		{
			name:      "underfill drops leftover",
			target:    33,
			bar:       20,
			available: []float64{5}, // per side 6.5 -> one 5, 1.5 dropped
			want:      []float64{5},
		},
		{
			name:      "unsorted input",
			target:    70,
			bar:       20,
			available: []float64{2.5, 20, 5, 10},
			want:      []float64{20, 5},
		},
		{
			name:      "no plates available",
			target:    100,
			bar:       20,
			available: nil,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PerSide(tt.target, tt.bar, tt.available)
			if len(got) != len(tt.want) {
				t.Fatalf("PerSide(%v, %v) = %v, want %v", tt.target, tt.bar, got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("plate[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPerSideNeverOverfills(t *testing.T) {
	targets := []float64{21, 33.75, 60, 97.5, 101.25, 142.5}
	for _, target := range targets {
		side := PerSide(target, 20, gymPlates)
		if got := Total(20, side); got > target+1e-9 {
			t.Errorf("target %v: loaded %v, overshoots", target, got)
		}
	}
}

func TestTotal(t *testing.T) {
	if got := Total(20, []float64{20, 15, 2.5, 1.25}); math.Abs(got-97.5) > 1e-9 {
		t.Errorf("Total = %v, want 97.5", got)
	}
	if got := Total(45, nil); got != 45 {
		t.Errorf("Total with empty side = %v, want 45", got)
	}
}
