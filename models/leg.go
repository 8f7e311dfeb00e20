package models

import (
	"fmt"
	"math"
)

// OptionLeg is one option position within a multi-leg strategy. Premium is
// stored as a positive value regardless of side; one leg is exactly one
// 100-share contract.
type OptionLeg struct {
	Strike  float64 `json:"strike"`
	Premium float64 `json:"premium"`
	IsCall  bool    `json:"is_call"`
	IsLong  bool    `json:"is_long"`
}

func (l OptionLeg) Validate() error {
	// Accept-only-if-in-domain comparisons keep NaN strikes/premiums out.
	if !(l.Strike > 0) || math.IsInf(l.Strike, 0) {
		return fmt.Errorf("%w: strike must be positive and finite, got %v", ErrInvalidLeg, l.Strike)
	}
	if !(l.Premium >= 0) || math.IsInf(l.Premium, 0) {
		return fmt.Errorf("%w: premium must be non-negative and finite, got %v", ErrInvalidLeg, l.Premium)
	}
	return nil
}

// Side reports "long" or "short".
func (l OptionLeg) Side() string {
	if l.IsLong {
		return "long"
	}
	return "short"
}

// Type reports "call" or "put".
func (l OptionLeg) Type() string {
	if l.IsCall {
		return "call"
	}
	return "put"
}
