package models

import (
	"fmt"
	"math"
	"strconv"
)

// IVCorrectionMode selects how raw market-quoted implied volatility is
// adjusted before simulation. Quoted IV systematically overstates
// subsequently realized volatility (the volatility risk premium), more so
// at longer tenors.
type IVCorrectionMode int

const (
	IVCorrectionModeNone IVCorrectionMode = iota
	IVCorrectionModeFixed
	IVCorrectionModeAuto
)

const (
	autoBaseBias  = 0.08
	autoTermCoeff = 0.05
	autoMinFactor = 0.08
	autoMaxFactor = 0.25

	// MinCorrectedVolatility floors the corrected value so the simulation
	// never runs with zero variance.
	MinCorrectedVolatility = 0.01
)

// IVCorrection is the bias-correction policy applied to raw implied
// volatility. The zero value is the "none" policy.
type IVCorrection struct {
	mode     IVCorrectionMode
	fraction float64
}

func IVCorrectionNone() IVCorrection { return IVCorrection{mode: IVCorrectionModeNone} }

func IVCorrectionAuto() IVCorrection { return IVCorrection{mode: IVCorrectionModeAuto} }

// IVCorrectionFixed shaves a constant fraction off the raw volatility. The
// fraction must lie in [0, 1]; Validate enforces this.
func IVCorrectionFixed(fraction float64) IVCorrection {
	return IVCorrection{mode: IVCorrectionModeFixed, fraction: fraction}
}

// ParseIVCorrection accepts "auto", "none" (or empty) or a fixed fraction in
// decimal text, e.g. "0.15".
func ParseIVCorrection(s string) (IVCorrection, error) {
	switch s {
	case "auto":
		return IVCorrectionAuto(), nil
	case "none", "":
		return IVCorrectionNone(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return IVCorrection{}, fmt.Errorf("%w: unknown iv correction %q", ErrInvalidConfiguration, s)
	}
	fixed := IVCorrectionFixed(f)
	if err := fixed.Validate(); err != nil {
		return IVCorrection{}, err
	}
	return fixed, nil
}

func (c IVCorrection) Validate() error {
	// Accept-only-if-in-domain so NaN (which fails every comparison, and
	// which strconv.ParseFloat happily produces from "NaN") is rejected too.
	if c.mode == IVCorrectionModeFixed && !(c.fraction >= 0 && c.fraction <= 1) {
		return fmt.Errorf("%w: fixed iv correction %v outside [0, 1]", ErrInvalidConfiguration, c.fraction)
	}
	return nil
}

func (c IVCorrection) Mode() IVCorrectionMode { return c.mode }

// String reports the mode name used in result bundles.
func (c IVCorrection) String() string {
	switch c.mode {
	case IVCorrectionModeFixed:
		return "fixed"
	case IVCorrectionModeAuto:
		return "auto"
	default:
		return "none"
	}
}

// Factor returns the correction fraction applied at the given tenor. The
// auto policy grows with days to expiration (term-structure contango) and is
// clamped to [0.08, 0.25] to avoid degenerate results at the extremes.
func (c IVCorrection) Factor(daysToExpiration int) float64 {
	switch c.mode {
	case IVCorrectionModeFixed:
		return c.fraction
	case IVCorrectionModeAuto:
		days := math.Max(float64(daysToExpiration), 1)
		factor := autoBaseBias + autoTermCoeff*math.Log(days/30)
		return math.Min(math.Max(factor, autoMinFactor), autoMaxFactor)
	default:
		return 0
	}
}

// Apply corrects a raw quoted volatility, flooring the result at
// MinCorrectedVolatility, and reports the factor that was used.
func (c IVCorrection) Apply(rawVolatility float64, daysToExpiration int) (corrected, factor float64) {
	factor = c.Factor(daysToExpiration)
	corrected = math.Max(MinCorrectedVolatility, rawVolatility*(1-factor))
	return corrected, factor
}
