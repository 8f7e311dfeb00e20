package montecarlo

import (
	"math"
	"sort"

	"github.com/dhmueller/mcval/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Analyze is the full path: it simulates the terminal price sample, evaluates
// and aggregates every leg, and reduces the result to the complete statistics
// bundle, including probabilities, percentiles and sample-derived breakeven
// prices.
//
// An empty leg list returns a degenerate zero-valued result carrying only the
// scenario-derived fields; it is not an error.
func (s *Simulator) Analyze(legs []models.OptionLeg) (*models.ValuationResult, error) {
	if err := validateLegs(legs); err != nil {
		return nil, err
	}

	result := &models.ValuationResult{
		DiscountFactor:      s.discountFactor,
		RawVolatility:       s.cfg.Volatility,
		CorrectedVolatility: s.correctedVolatility,
		IVCorrectionFactor:  s.ivCorrectionFactor,
		IVCorrectionMode:    s.cfg.IVCorrection.String(),
		Percentiles:         make(map[int]float64, len(models.PercentileLevels)),
		BreakevenPoints:     []float64{},
		LegAnalysis:         []models.LegAnalysis{},
		NumLegs:             len(legs),
	}
	if len(legs) == 0 {
		for _, level := range models.PercentileLevels {
			result.Percentiles[level] = 0
		}
		return result, nil
	}

	prices := s.simulatePrices()

	total := make([]float64, len(prices))
	var netCashflow float64
	for _, leg := range legs {
		payoffs, cashflow := s.legPayoffs(prices, leg)
		result.LegAnalysis = append(result.LegAnalysis, models.LegAnalysis{
			Side:       leg.Side(),
			Type:       leg.Type(),
			Strike:     leg.Strike,
			Premium:    leg.Premium,
			MeanPayoff: stat.Mean(payoffs, nil),
			Cashflow:   cashflow,
		})
		floats.Add(total, payoffs)
		netCashflow += cashflow
	}

	result.ExpectedValueRaw = stat.Mean(total, nil)
	result.ExpectedValue = result.ExpectedValueRaw * s.discountFactor

	result.InitialCashflow = netCashflow
	if netCashflow >= 0 {
		result.NetCredit = netCashflow
	} else {
		result.NetDebit = -netCashflow
	}
	result.TotalTransactionCosts = s.cfg.TransactionCostPerContract * float64(len(legs))
	result.TotalContracts = len(legs)

	n := float64(len(total))
	var profits, losses, flats int
	for _, payoff := range total {
		switch {
		case payoff > 0:
			profits++
		case payoff < 0:
			losses++
		}
		if math.Abs(payoff) < breakevenBand {
			flats++
		}
	}
	result.ProbProfit = float64(profits) / n
	result.ProbLoss = float64(losses) / n
	result.ProbBreakeven = float64(flats) / n

	result.MaxProfit = floats.Max(total)
	result.MaxLoss = floats.Min(total)
	result.StdDev = stat.StdDev(total, nil)

	sorted := make([]float64, len(total))
	copy(sorted, total)
	sort.Float64s(sorted)
	for _, level := range models.PercentileLevels {
		result.Percentiles[level] = stat.Quantile(float64(level)/100, stat.Empirical, sorted, nil)
	}

	result.BreakevenPoints = breakevenPoints(prices, total, s.breakevenBandwidth)

	result.AvgSimulatedPrice, result.SimulatedPriceStd = stat.MeanStdDev(prices, nil)

	return result, nil
}
