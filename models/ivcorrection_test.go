package models

import (
	"errors"
	"math"
	"testing"
)

func TestAutoFactorBounds(t *testing.T) {
	auto := IVCorrectionAuto()

	prev := 0.0
	for _, days := range []int{0, 1, 5, 15, 30, 45, 90, 180, 365, 1000, 3650} {
		factor := auto.Factor(days)
		if factor < 0.08 || factor > 0.25 {
			t.Errorf("days=%d: factor %v outside [0.08, 0.25]", days, factor)
		}
		if factor < prev {
			t.Errorf("days=%d: factor %v decreased from %v", days, factor, prev)
		}
		prev = factor
	}
}

func TestAutoFactorValues(t *testing.T) {
	auto := IVCorrectionAuto()

	// At the 30-day anchor the term bias vanishes.
	if factor := auto.Factor(30); math.Abs(factor-0.08) > 1e-12 {
		t.Errorf("factor at 30 days: got %v, want 0.08", factor)
	}
	// Short tenors clamp to the floor, long tenors to the cap.
	if factor := auto.Factor(1); factor != 0.08 {
		t.Errorf("factor at 1 day: got %v, want 0.08", factor)
	}
	if factor := auto.Factor(3650); factor != 0.25 {
		t.Errorf("factor at 3650 days: got %v, want 0.25", factor)
	}
}

func TestFixedValidation(t *testing.T) {
	for _, fraction := range []float64{-0.1, 1.0001, 2, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := IVCorrectionFixed(fraction).Validate(); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("fraction %v: expected ErrInvalidConfiguration, got %v", fraction, err)
		}
	}
	for _, fraction := range []float64{0, 0.5, 1} {
		if err := IVCorrectionFixed(fraction).Validate(); err != nil {
			t.Errorf("fraction %v: unexpected error %v", fraction, err)
		}
	}
}

func TestApply(t *testing.T) {
	corrected, factor := IVCorrectionFixed(0.25).Apply(0.4, 30)
	if math.Abs(corrected-0.3) > 1e-12 || factor != 0.25 {
		t.Errorf("fixed apply: got (%v, %v), want (0.3, 0.25)", corrected, factor)
	}

	corrected, _ = IVCorrectionNone().Apply(0.4, 30)
	if corrected != 0.4 {
		t.Errorf("none apply: got %v, want 0.4", corrected)
	}

	// A heavy correction on a tiny vol hits the floor.
	corrected, _ = IVCorrectionFixed(0.9).Apply(0.02, 30)
	if corrected != MinCorrectedVolatility {
		t.Errorf("floored apply: got %v, want %v", corrected, MinCorrectedVolatility)
	}
}

func TestParseIVCorrection(t *testing.T) {
	cases := []struct {
		in   string
		mode IVCorrectionMode
	}{
		{"auto", IVCorrectionModeAuto},
		{"none", IVCorrectionModeNone},
		{"", IVCorrectionModeNone},
		{"0.15", IVCorrectionModeFixed},
	}
	for _, tc := range cases {
		correction, err := ParseIVCorrection(tc.in)
		if err != nil {
			t.Errorf("parse %q: %v", tc.in, err)
			continue
		}
		if correction.Mode() != tc.mode {
			t.Errorf("parse %q: got mode %v, want %v", tc.in, correction.Mode(), tc.mode)
		}
	}

	// ParseFloat accepts these spellings, so the range check has to catch
	// them at parse time.
	for _, in := range []string{"bogus", "NaN", "nan", "Inf", "-Inf", "1.5", "-0.2"} {
		if _, err := ParseIVCorrection(in); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("parse %q: expected ErrInvalidConfiguration, got %v", in, err)
		}
	}
}

func TestModeString(t *testing.T) {
	if s := IVCorrectionNone().String(); s != "none" {
		t.Errorf("none: got %q", s)
	}
	if s := IVCorrectionAuto().String(); s != "auto" {
		t.Errorf("auto: got %q", s)
	}
	if s := IVCorrectionFixed(0.1).String(); s != "fixed" {
		t.Errorf("fixed: got %q", s)
	}
}
