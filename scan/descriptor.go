package scan

import (
	"fmt"

	"github.com/dhmueller/mcval/models"
	"github.com/dhmueller/mcval/montecarlo"
)

// StrategyFile is the on-disk batch format consumed by the CLI.
type StrategyFile struct {
	Strategies []StrategyDescriptor `json:"strategies"`
}

// StrategyDescriptor is the JSON form of one scenario plus its legs.
type StrategyDescriptor struct {
	Name                       string          `json:"name"`
	CurrentPrice               float64         `json:"current_price"`
	Volatility                 float64         `json:"volatility"`
	DaysToExpiration           int             `json:"days_to_expiration"`
	RiskFreeRate               float64         `json:"risk_free_rate"`
	DividendYield              float64         `json:"dividend_yield"`
	NumSimulations             int             `json:"num_simulations"`
	RandomSeed                 *uint64         `json:"random_seed,omitempty"`
	TransactionCostPerContract float64         `json:"transaction_cost_per_contract"`
	IVCorrection               string          `json:"iv_correction"`
	Legs                       []LegDescriptor `json:"legs"`
}

// LegDescriptor keeps the side flags as pointers so a leg that never says
// call-or-put / long-or-short is rejected instead of silently defaulting to
// a short put.
type LegDescriptor struct {
	Strike  float64 `json:"strike"`
	Premium float64 `json:"premium"`
	IsCall  *bool   `json:"is_call"`
	IsLong  *bool   `json:"is_long"`
}

// Job converts the descriptor into an engine job, rejecting legs with
// missing side flags and unknown correction policies.
func (d StrategyDescriptor) Job() (Job, error) {
	correction, err := models.ParseIVCorrection(d.IVCorrection)
	if err != nil {
		return Job{}, fmt.Errorf("%s: %w", d.Name, err)
	}

	legs := make([]models.OptionLeg, 0, len(d.Legs))
	for i, leg := range d.Legs {
		if leg.IsCall == nil || leg.IsLong == nil {
			return Job{}, fmt.Errorf("%s: leg %d: %w: is_call and is_long are required", d.Name, i, models.ErrInvalidLeg)
		}
		legs = append(legs, models.OptionLeg{
			Strike:  leg.Strike,
			Premium: leg.Premium,
			IsCall:  *leg.IsCall,
			IsLong:  *leg.IsLong,
		})
	}

	return Job{
		Name: d.Name,
		Config: montecarlo.Config{
			CurrentPrice:               d.CurrentPrice,
			Volatility:                 d.Volatility,
			DaysToExpiration:           d.DaysToExpiration,
			RiskFreeRate:               d.RiskFreeRate,
			DividendYield:              d.DividendYield,
			NumSimulations:             d.NumSimulations,
			RandomSeed:                 d.RandomSeed,
			TransactionCostPerContract: d.TransactionCostPerContract,
			IVCorrection:               correction,
		},
		Legs: legs,
	}, nil
}
