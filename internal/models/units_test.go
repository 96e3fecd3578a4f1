package models

import (
	"math"
	"testing"
)

func TestConversion(t *testing.T) {
	tests := []struct {
		kg  float64
		lbs float64
	}{
		{0, 0},
		{20, 44.0924},
		{100, 220.462},
	}

	for _, tt := range tests {
		if got := KgToLbs(tt.kg); math.Abs(got-tt.lbs) > 1e-3 {
			t.Errorf("KgToLbs(%v) = %v, want %v", tt.kg, got, tt.lbs)
		}
	}

	// Round trip drifts only by the rounding baked into the two factors.
	if got := LbsToKg(KgToLbs(100)); math.Abs(got-100) > 0.01 {
		t.Errorf("round trip 100kg = %v", got)
	}
}

func TestUnitValid(t *testing.T) {
	if !UnitKg.Valid() || !UnitLbs.Valid() {
		t.Error("kg and lbs must be valid units")
	}
	if Unit("stone").Valid() {
		t.Error("unknown unit reported valid")
	}
}

func TestSetVolume(t *testing.T) {
	s := Set{Count: 5, Weight: 80}
	if got := s.Volume(); got != 400 {
		t.Errorf("Volume = %v, want 400", got)
	}
}
