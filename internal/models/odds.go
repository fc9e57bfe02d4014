package models

import (
	"github.com/shopspring/decimal"
)

// PricingParams holds the margin applied when converting probabilities to odds
type PricingParams struct {
	Margin float64 // Overround added to fair prices (e.g., 0.05 = 5%)
}

// MarketOdds holds decimal odds derived from a simulation, margin included.
// A zero price marks an outcome that never occurred in any trial.
type MarketOdds struct {
	Margin decimal.Decimal            `json:"margin"`
	WinA   decimal.Decimal            `json:"win_a"`
	Draw   decimal.Decimal            `json:"draw"`
	WinB   decimal.Decimal            `json:"win_b"`
	Over   map[string]decimal.Decimal `json:"over,omitempty"` // keyed by line, e.g. "2.5"
	BTTS   decimal.Decimal            `json:"btts"`
}
