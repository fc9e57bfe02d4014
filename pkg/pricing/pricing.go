package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

const (
	// DefaultMargin is the overround added to fair prices
	DefaultMargin = 0.05
	// MaxMargin is the largest accepted overround
	MaxMargin = 0.25

	oddsPlaces = 2
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// DefaultPricingParams returns the default pricing parameters
func DefaultPricingParams() models.PricingParams {
	return models.PricingParams{Margin: DefaultMargin}
}

// Price converts a simulation's percentages into decimal odds. The margin is
// spread proportionally, so every implied probability grows by (1 + margin).
func Price(sim models.SimulationResult, params models.PricingParams) models.MarketOdds {
	margin := decimal.NewFromFloat(clampMargin(params.Margin))
	loading := one.Add(margin)

	price := func(pct float64) decimal.Decimal {
		prob := decimal.NewFromFloat(pct).Div(hundred).Mul(loading)
		return ProbabilityToOdds(prob)
	}

	odds := models.MarketOdds{
		Margin: margin,
		WinA:   price(sim.WinProbabilityA),
		Draw:   price(sim.DrawProbability),
		WinB:   price(sim.WinProbabilityB),
		BTTS:   price(sim.BothTeamsScoreProbability),
	}

	if len(sim.OverProbabilities) > 0 {
		odds.Over = make(map[string]decimal.Decimal, len(sim.OverProbabilities))
		for line, pct := range sim.OverProbabilities {
			odds.Over[line] = price(pct)
		}
	}

	return odds
}

// ImpliedProbability converts decimal odds to implied probability
func ImpliedProbability(odds decimal.Decimal) decimal.Decimal {
	// Implied probability = 1 / decimal_odds
	// Example: 2.50 odds = 1/2.50 = 0.40 = 40%
	if odds.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return one.Div(odds)
}

// ProbabilityToOdds converts a probability in [0, 1] to decimal odds rounded
// to two places. Impossible outcomes get no price (zero); certain ones get 1.
func ProbabilityToOdds(prob decimal.Decimal) decimal.Decimal {
	// Decimal odds = 1 / probability
	// Example: 40% probability = 1/0.40 = 2.50 odds
	if prob.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if prob.GreaterThanOrEqual(one) {
		return one
	}
	return one.Div(prob).Round(oddsPlaces)
}

func clampMargin(m float64) float64 {
	if math.IsNaN(m) || m < 0 {
		return 0
	}
	if m > MaxMargin {
		return MaxMargin
	}
	return m
}
