package models

// PercentileLevels are the payoff-distribution percentiles reported by the
// full valuation path.
var PercentileLevels = []int{5, 10, 25, 50, 75, 90, 95}

// LegAnalysis is the per-leg breakdown inside a ValuationResult.
type LegAnalysis struct {
	Side       string  `json:"side"`
	Type       string  `json:"type"`
	Strike     float64 `json:"strike"`
	Premium    float64 `json:"premium"`
	MeanPayoff float64 `json:"mean_payoff"`
	Cashflow   float64 `json:"cashflow"`
}

// ValuationResult is the full statistics bundle for one strategy valuation.
// All money values are nominal dollars for a single 1-contract (100-share)
// position per leg. Only ExpectedValue is discounted; percentiles, extremes
// and the standard deviation describe the terminal payoff distribution.
type ValuationResult struct {
	ExpectedValue    float64 `json:"expected_value"`
	ExpectedValueRaw float64 `json:"expected_value_raw"`
	DiscountFactor   float64 `json:"discount_factor"`

	RawVolatility       float64 `json:"raw_volatility"`
	CorrectedVolatility float64 `json:"corrected_volatility"`
	IVCorrectionFactor  float64 `json:"iv_correction_factor"`
	IVCorrectionMode    string  `json:"iv_correction_mode"`

	InitialCashflow       float64 `json:"initial_cashflow"`
	NetDebit              float64 `json:"net_debit"`
	NetCredit             float64 `json:"net_credit"`
	TotalTransactionCosts float64 `json:"total_transaction_costs"`
	TotalContracts        int     `json:"total_contracts"`

	ProbProfit    float64 `json:"prob_profit"`
	ProbLoss      float64 `json:"prob_loss"`
	ProbBreakeven float64 `json:"prob_breakeven"`

	MaxProfit float64 `json:"max_profit"`
	MaxLoss   float64 `json:"max_loss"`
	StdDev    float64 `json:"std_dev"`

	Percentiles     map[int]float64 `json:"percentiles"`
	BreakevenPoints []float64       `json:"breakeven_points"`

	AvgSimulatedPrice float64 `json:"avg_simulated_price"`
	SimulatedPriceStd float64 `json:"simulated_price_std"`

	LegAnalysis []LegAnalysis `json:"leg_analysis"`
	NumLegs     int           `json:"num_legs"`
}
