package montecarlo

import (
	"math"

	"github.com/dhmueller/mcval/models"
	"gonum.org/v1/gonum/floats"
)

// legPayoffs computes one leg's per-contract payoff across the simulated
// price sample, plus the leg's inception cashflow (positive = credit). Both
// sides pay the flat transaction cost.
func (s *Simulator) legPayoffs(prices []float64, leg models.OptionLeg) ([]float64, float64) {
	fee := s.cfg.TransactionCostPerContract
	premium := ContractMultiplier * leg.Premium

	payoffs := make([]float64, len(prices))
	for i, price := range prices {
		var intrinsic float64
		if leg.IsCall {
			intrinsic = math.Max(price-leg.Strike, 0)
		} else {
			intrinsic = math.Max(leg.Strike-price, 0)
		}
		intrinsic *= ContractMultiplier

		if leg.IsLong {
			payoffs[i] = intrinsic - premium - fee
		} else {
			payoffs[i] = premium - intrinsic - fee
		}
	}

	cashflow := premium - fee
	if leg.IsLong {
		cashflow = -(premium + fee)
	}
	return payoffs, cashflow
}

// aggregatePayoffs sums the per-leg payoff vectors into one strategy payoff
// vector and totals the inception cashflows. Legs do not interact: the
// aggregate at any price is the sum of the leg payoffs at that price.
func (s *Simulator) aggregatePayoffs(prices []float64, legs []models.OptionLeg) ([]float64, float64) {
	total := make([]float64, len(prices))
	var netCashflow float64
	for _, leg := range legs {
		payoffs, cashflow := s.legPayoffs(prices, leg)
		floats.Add(total, payoffs)
		netCashflow += cashflow
	}
	return total, netCashflow
}
