package montecarlo

import (
	"math"
	"testing"

	"github.com/dhmueller/mcval/models"
)

func TestLongCallBreakeven(t *testing.T) {
	cfg := Config{
		CurrentPrice:     100,
		Volatility:       0.30,
		DaysToExpiration: 45,
		RiskFreeRate:     0.02,
		NumSimulations:   200000,
		RandomSeed:       seed(7),
		IVCorrection:     models.IVCorrectionNone(),
	}
	sim := mustSimulator(t, cfg)

	legs := []models.OptionLeg{{Strike: 100, Premium: 5, IsCall: true, IsLong: true}}
	report, err := sim.Analyze(legs)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(report.BreakevenPoints) != 1 {
		t.Fatalf("expected one breakeven, got %v", report.BreakevenPoints)
	}
	if diff := math.Abs(report.BreakevenPoints[0] - 105); diff > 1 {
		t.Errorf("breakeven: got %v, want 105 within the clustering bandwidth", report.BreakevenPoints[0])
	}

	// Profit requires the terminal price above strike plus premium; compare
	// against the lognormal tail probability.
	T := float64(cfg.DaysToExpiration) / 365
	sigma := cfg.Volatility
	z := (math.Log(105.0/cfg.CurrentPrice) - (cfg.RiskFreeRate-0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
	wantProb := 1 - normCDF(z)
	if diff := math.Abs(report.ProbProfit - wantProb); diff > 0.01 {
		t.Errorf("prob profit: got %v, analytic %v (diff %v)", report.ProbProfit, wantProb, diff)
	}
}

func TestIronCondorBreakevens(t *testing.T) {
	cfg := Config{
		CurrentPrice:     100,
		Volatility:       0.35,
		DaysToExpiration: 60,
		RiskFreeRate:     0.03,
		NumSimulations:   100000,
		RandomSeed:       seed(99),
		IVCorrection:     models.IVCorrectionNone(),
	}
	sim := mustSimulator(t, cfg)

	legs := []models.OptionLeg{
		{Strike: 95, Premium: 2, IsCall: false, IsLong: false},
		{Strike: 90, Premium: 1, IsCall: false, IsLong: true},
		{Strike: 105, Premium: 2, IsCall: true, IsLong: false},
		{Strike: 110, Premium: 1, IsCall: true, IsLong: true},
	}

	report, err := sim.Analyze(legs)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(report.BreakevenPoints) != 2 {
		t.Fatalf("expected two breakevens for an iron condor, got %v", report.BreakevenPoints)
	}
	// Net credit is $2/share, so the wings break even at 93 and 107.
	if diff := math.Abs(report.BreakevenPoints[0] - 93); diff > 1 {
		t.Errorf("lower breakeven: got %v, want 93", report.BreakevenPoints[0])
	}
	if diff := math.Abs(report.BreakevenPoints[1] - 107); diff > 1 {
		t.Errorf("upper breakeven: got %v, want 107", report.BreakevenPoints[1])
	}

	// The payoff is flat beyond both wings and flat at the top.
	if math.Abs(report.MaxProfit-200) > 1e-9 {
		t.Errorf("max profit: got %v, want 200", report.MaxProfit)
	}
	if math.Abs(report.MaxLoss-(-300)) > 1e-9 {
		t.Errorf("max loss: got %v, want -300", report.MaxLoss)
	}

	var prev float64 = math.Inf(-1)
	for _, level := range models.PercentileLevels {
		if report.Percentiles[level] < prev {
			t.Errorf("percentiles not monotone at %d: %v", level, report.Percentiles)
		}
		prev = report.Percentiles[level]
	}
}

func TestBreakevenClustering(t *testing.T) {
	// Three near-identical crossings around 100 and one isolated at 109.5.
	prices := []float64{99, 100.2, 100.4, 101, 109, 111}
	payoffs := []float64{-1, 0.5, -0.2, 2, 1, -3}

	points := breakevenPoints(prices, payoffs, DefaultBreakevenBandwidth)
	if len(points) != 2 {
		t.Fatalf("expected two clustered breakevens, got %v", points)
	}
	if points[0] <= 99.5 || points[0] >= 100.7 {
		t.Errorf("clustered breakeven: got %v, want the average around 100.2", points[0])
	}
	if math.Abs(points[1]-109.5) > 1e-9 {
		t.Errorf("isolated breakeven: got %v, want 109.5", points[1])
	}
}

func TestBreakevenUnsortedInput(t *testing.T) {
	// The scan must order by price, not by sample index.
	prices := []float64{110, 90, 100}
	payoffs := []float64{100, -100, 0.0001}

	points := breakevenPoints(prices, payoffs, DefaultBreakevenBandwidth)
	if len(points) != 1 {
		t.Fatalf("expected one breakeven, got %v", points)
	}
	if points[0] <= 90 || points[0] >= 100 {
		t.Errorf("breakeven should interpolate between 90 and 100, got %v", points[0])
	}
}

func TestBreakevenExactZeroSample(t *testing.T) {
	// A sample landing exactly on zero is itself the crossing; the
	// sign-change scan alone would step straight over it.
	prices := []float64{90, 100, 110}
	payoffs := []float64{-50, 0, 50}

	points := breakevenPoints(prices, payoffs, DefaultBreakevenBandwidth)
	if len(points) != 1 {
		t.Fatalf("expected one breakeven, got %v", points)
	}
	if points[0] != 100 {
		t.Errorf("breakeven: got %v, want exactly 100", points[0])
	}
}

func TestBreakevenNoCrossing(t *testing.T) {
	prices := []float64{90, 100, 110}
	payoffs := []float64{50, 60, 70}

	if points := breakevenPoints(prices, payoffs, DefaultBreakevenBandwidth); len(points) != 0 {
		t.Errorf("expected no breakevens for an always-profitable payoff, got %v", points)
	}
}
