// Package montecarlo values arbitrary multi-leg options strategies by
// simulating the terminal price distribution of the underlying under
// risk-neutral geometric Brownian motion and reducing the aggregate payoff
// sample to a discounted expected value or a full statistics bundle.
package montecarlo

import (
	"fmt"
	"math"
	"time"

	"github.com/dhmueller/mcval/models"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// ContractMultiplier is the share count behind one option contract.
	ContractMultiplier = 100

	daysPerYear = 365

	// DefaultBreakevenBandwidth merges interpolated zero crossings that sit
	// within one dollar of each other into a single reported breakeven,
	// suppressing sampling-noise duplicates.
	DefaultBreakevenBandwidth = 1.0

	// breakevenBand is the payoff band counted as neither profit nor loss.
	breakevenBand = 1.0
)

// Config fixes one market scenario plus the simulation settings. It is read
// once by NewSimulator; a Simulator never mutates it.
type Config struct {
	CurrentPrice     float64 // underlying spot price, > 0
	Volatility       float64 // raw annualized implied volatility, decimal, > 0
	DaysToExpiration int     // simulation horizon, >= 0
	RiskFreeRate     float64 // annualized, continuous compounding
	DividendYield    float64 // annualized

	NumSimulations             int     // sample size, > 0
	RandomSeed                 *uint64 // nil for non-reproducible output
	TransactionCostPerContract float64 // flat per-leg fee, >= 0

	IVCorrection models.IVCorrection

	// BreakevenBandwidth overrides DefaultBreakevenBandwidth when positive.
	// Wider bands trade breakeven resolution for noise suppression.
	BreakevenBandwidth float64
}

// Simulator owns one market scenario and an instance-scoped random source.
// Every valuation call reseeds that source to the configured seed, so
// repeated calls on one instance reproduce bit-identical samples. The reseed
// mutates generator state, which makes a Simulator unsafe for concurrent
// calls; use one instance per goroutine.
type Simulator struct {
	cfg Config

	timeToExpiration    float64
	discountFactor      float64
	correctedVolatility float64
	ivCorrectionFactor  float64
	breakevenBandwidth  float64

	src    rand.Source
	normal distuv.Normal
}

// NewSimulator validates the configuration eagerly and derives the corrected
// volatility, time to expiration and discount factor once. All validation
// failures wrap models.ErrInvalidConfiguration.
func NewSimulator(cfg Config) (*Simulator, error) {
	// Comparisons are written accept-only-if-in-domain so NaN, which fails
	// every comparison, cannot slip through a reject-if-out-of-range gate.
	if !isFinite(cfg.CurrentPrice) || cfg.CurrentPrice <= 0 {
		return nil, fmt.Errorf("%w: current price must be positive and finite, got %v", models.ErrInvalidConfiguration, cfg.CurrentPrice)
	}
	if !isFinite(cfg.Volatility) || cfg.Volatility <= 0 {
		return nil, fmt.Errorf("%w: volatility must be positive and finite, got %v", models.ErrInvalidConfiguration, cfg.Volatility)
	}
	if cfg.DaysToExpiration < 0 {
		return nil, fmt.Errorf("%w: days to expiration must be non-negative, got %d", models.ErrInvalidConfiguration, cfg.DaysToExpiration)
	}
	if !isFinite(cfg.RiskFreeRate) {
		return nil, fmt.Errorf("%w: risk-free rate must be finite, got %v", models.ErrInvalidConfiguration, cfg.RiskFreeRate)
	}
	if !isFinite(cfg.DividendYield) {
		return nil, fmt.Errorf("%w: dividend yield must be finite, got %v", models.ErrInvalidConfiguration, cfg.DividendYield)
	}
	if cfg.NumSimulations <= 0 {
		return nil, fmt.Errorf("%w: number of simulations must be positive, got %d", models.ErrInvalidConfiguration, cfg.NumSimulations)
	}
	if !isFinite(cfg.TransactionCostPerContract) || cfg.TransactionCostPerContract < 0 {
		return nil, fmt.Errorf("%w: transaction cost must be non-negative and finite, got %v", models.ErrInvalidConfiguration, cfg.TransactionCostPerContract)
	}
	if err := cfg.IVCorrection.Validate(); err != nil {
		return nil, err
	}

	corrected, factor := cfg.IVCorrection.Apply(cfg.Volatility, cfg.DaysToExpiration)
	t := float64(cfg.DaysToExpiration) / daysPerYear

	bandwidth := cfg.BreakevenBandwidth
	if !isFinite(bandwidth) || bandwidth <= 0 {
		bandwidth = DefaultBreakevenBandwidth
	}

	seed := uint64(time.Now().UnixNano())
	if cfg.RandomSeed != nil {
		seed = *cfg.RandomSeed
	}
	src := rand.NewSource(seed)

	return &Simulator{
		cfg:                 cfg,
		timeToExpiration:    t,
		discountFactor:      math.Exp(-cfg.RiskFreeRate * t),
		correctedVolatility: corrected,
		ivCorrectionFactor:  factor,
		breakevenBandwidth:  bandwidth,
		src:                 src,
		normal:              distuv.Normal{Mu: 0, Sigma: 1, Src: src},
	}, nil
}

func (s *Simulator) TimeToExpiration() float64    { return s.timeToExpiration }
func (s *Simulator) DiscountFactor() float64      { return s.discountFactor }
func (s *Simulator) CorrectedVolatility() float64 { return s.correctedVolatility }
func (s *Simulator) IVCorrectionFactor() float64  { return s.ivCorrectionFactor }

// simulatePrices draws the terminal price sample. The instance source is
// reseeded first, so every call on a seeded Simulator reproduces the same
// sample regardless of call order. At zero time to expiration every price
// equals the spot price.
func (s *Simulator) simulatePrices() []float64 {
	if s.cfg.RandomSeed != nil {
		s.src.Seed(*s.cfg.RandomSeed)
	}

	prices := make([]float64, s.cfg.NumSimulations)
	if s.timeToExpiration == 0 {
		for i := range prices {
			prices[i] = s.cfg.CurrentPrice
		}
		return prices
	}

	drift := s.cfg.RiskFreeRate - s.cfg.DividendYield
	sigma := s.correctedVolatility
	logDrift := (drift - 0.5*sigma*sigma) * s.timeToExpiration
	shockScale := sigma * math.Sqrt(s.timeToExpiration)

	for i := range prices {
		prices[i] = s.cfg.CurrentPrice * math.Exp(logDrift+shockScale*s.normal.Rand())
	}
	return prices
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func validateLegs(legs []models.OptionLeg) error {
	for i, leg := range legs {
		if err := leg.Validate(); err != nil {
			return fmt.Errorf("leg %d: %w", i, err)
		}
	}
	return nil
}

// ExpectedValue is the fast path: the discounted mean of the aggregate
// strategy payoff. An empty leg list values to exactly 0 with no error.
func (s *Simulator) ExpectedValue(legs []models.OptionLeg) (float64, error) {
	if err := validateLegs(legs); err != nil {
		return 0, err
	}
	if len(legs) == 0 {
		return 0, nil
	}

	prices := s.simulatePrices()
	payoffs, _ := s.aggregatePayoffs(prices, legs)
	return stat.Mean(payoffs, nil) * s.discountFactor, nil
}
