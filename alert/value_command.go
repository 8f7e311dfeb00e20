package alert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhmueller/mcval/models"
	"github.com/dhmueller/mcval/montecarlo"
	"github.com/slack-go/slack"
)

const commandSimulations = 100000

// handleValue runs the full valuation path for a strategy described inline:
//
//	/value 150 0.42 63 0.03 sp150@3.47 lp145@1.72
//
// Legs are <side><type><strike>@<premium> with side l/s and type c/p. The
// command simulates without a fixed seed; it is a chat convenience, not a
// reproducibility surface.
func (b *Bot) handleValue(data slack.SlashCommand) error {
	args := strings.Fields(data.Text)
	if len(args) < 5 {
		return b.reply(data.ChannelID,
			"Usage: /value <spot> <iv> <dte> <rfr> <legs...> (legs like sp150@3.47)")
	}

	spot, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return b.reply(data.ChannelID, fmt.Sprintf("Bad spot price %q", args[0]))
	}
	iv, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return b.reply(data.ChannelID, fmt.Sprintf("Bad volatility %q", args[1]))
	}
	dte, err := strconv.Atoi(args[2])
	if err != nil {
		return b.reply(data.ChannelID, fmt.Sprintf("Bad days to expiration %q", args[2]))
	}
	rfr, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return b.reply(data.ChannelID, fmt.Sprintf("Bad risk-free rate %q", args[3]))
	}

	legs := make([]models.OptionLeg, 0, len(args)-4)
	for _, arg := range args[4:] {
		leg, err := parseLeg(arg)
		if err != nil {
			return b.reply(data.ChannelID, err.Error())
		}
		legs = append(legs, leg)
	}

	sim, err := montecarlo.NewSimulator(montecarlo.Config{
		CurrentPrice:     spot,
		Volatility:       iv,
		DaysToExpiration: dte,
		RiskFreeRate:     rfr,
		NumSimulations:   commandSimulations,
		IVCorrection:     models.IVCorrectionAuto(),
	})
	if err != nil {
		return b.reply(data.ChannelID, err.Error())
	}

	report, err := sim.Analyze(legs)
	if err != nil {
		return b.reply(data.ChannelID, err.Error())
	}

	return b.reply(data.ChannelID, formatReport(report))
}

func parseLeg(s string) (models.OptionLeg, error) {
	var leg models.OptionLeg

	if len(s) < 4 {
		return leg, fmt.Errorf("bad leg %q, expected <side><type><strike>@<premium>", s)
	}

	switch s[0] {
	case 'l':
		leg.IsLong = true
	case 's':
	default:
		return leg, fmt.Errorf("bad leg %q: side must be l or s", s)
	}

	switch s[1] {
	case 'c':
		leg.IsCall = true
	case 'p':
	default:
		return leg, fmt.Errorf("bad leg %q: type must be c or p", s)
	}

	parts := strings.SplitN(s[2:], "@", 2)
	if len(parts) != 2 {
		return leg, fmt.Errorf("bad leg %q: missing @premium", s)
	}

	strike, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return leg, fmt.Errorf("bad leg %q: strike %q", s, parts[0])
	}
	premium, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return leg, fmt.Errorf("bad leg %q: premium %q", s, parts[1])
	}

	leg.Strike = strike
	leg.Premium = premium
	return leg, leg.Validate()
}

func formatReport(r *models.ValuationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Expected value: $%.2f (raw $%.2f, discount factor %.4f)\n",
		r.ExpectedValue, r.ExpectedValueRaw, r.DiscountFactor)
	fmt.Fprintf(&b, "P(profit) %.1f%% | P(loss) %.1f%% | P(|P&L| < $1) %.1f%%\n",
		100*r.ProbProfit, 100*r.ProbLoss, 100*r.ProbBreakeven)
	fmt.Fprintf(&b, "Max profit $%.2f | Max loss $%.2f | Std dev $%.2f\n",
		r.MaxProfit, r.MaxLoss, r.StdDev)

	if len(r.BreakevenPoints) > 0 {
		points := make([]string, len(r.BreakevenPoints))
		for i, p := range r.BreakevenPoints {
			points[i] = fmt.Sprintf("$%.2f", p)
		}
		fmt.Fprintf(&b, "Breakevens: %s\n", strings.Join(points, ", "))
	}

	if r.NetCredit > 0 {
		fmt.Fprintf(&b, "Net credit $%.2f\n", r.NetCredit)
	} else if r.NetDebit > 0 {
		fmt.Fprintf(&b, "Net debit $%.2f\n", r.NetDebit)
	}

	fmt.Fprintf(&b, "IV %.4f -> %.4f (%s, factor %.4f)",
		r.RawVolatility, r.CorrectedVolatility, r.IVCorrectionMode, r.IVCorrectionFactor)

	return b.String()
}
