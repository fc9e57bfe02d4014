package models

// ExpectedGoalsParams holds the expected-goals formula and its bounds
type ExpectedGoalsParams struct {
	Formula       string  // Name of the weighting preset
	HomeAdvantage float64 // Multiplier on team A (home) rate, e.g. 1.1
	AwayFactor    float64 // Multiplier on team B (away) rate, e.g. 0.9
	AttackWeight  float64 // Weight on own scoring average, e.g. 0.7
	DefenseWeight float64 // Weight on opponent conceded average, e.g. 0.3
	MinRawLambda  float64
	MaxRawLambda  float64
	MinScale      float64
	MaxScale      float64
}

// SimulationParams holds Monte Carlo parameters
type SimulationParams struct {
	Trials        int
	TopScorelines int       // Scorelines kept in the result, e.g. 7
	OverLines     []float64 // Total-goals lines to report, e.g. 2.5
}

// PredictionParams bundles the parameters of every prediction stage
type PredictionParams struct {
	ExpectedGoals ExpectedGoalsParams
	Simulation    SimulationParams
	TopScorers    int
	Pricing       PricingParams
}
