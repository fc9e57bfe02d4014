package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExpectedGoalsModel is the calibrated Poisson rate pair for a fixture,
// together with the intermediate values that produced it
type ExpectedGoalsModel struct {
	LambdaA         float64 `json:"lambda_a"`
	LambdaB         float64 `json:"lambda_b"`
	RawLambdaA      float64 `json:"raw_lambda_a"`
	RawLambdaB      float64 `json:"raw_lambda_b"`
	BaseTotal       float64 `json:"base_total"`       // RawLambdaA + RawLambdaB
	HistoricalTotal float64 `json:"historical_total"` // Season-average match total
	TargetTotal     float64 `json:"target_total"`
	ScaleFactor     float64 `json:"scale_factor"`
	Formula         string  `json:"formula"`
}

// Scoreline is one exact final score and how often it occurred
type Scoreline struct {
	GoalsA      int     `json:"goals_a"`
	GoalsB      int     `json:"goals_b"`
	Count       int     `json:"count"`
	Probability float64 `json:"probability"` // Percent of trials
}

// String renders the scoreline as "goalsA-goalsB"
func (s Scoreline) String() string {
	return fmt.Sprintf("%d-%d", s.GoalsA, s.GoalsB)
}

// SimulationResult aggregates the outcome of N independent match trials.
// Probabilities are percentages.
type SimulationResult struct {
	Trials                    int                `json:"trials"`
	WinsA                     int                `json:"wins_a"`
	WinsB                     int                `json:"wins_b"`
	Draws                     int                `json:"draws"`
	WinProbabilityA           float64            `json:"win_probability_a"`
	WinProbabilityB           float64            `json:"win_probability_b"`
	DrawProbability           float64            `json:"draw_probability"`
	AverageGoalsA             float64            `json:"average_goals_a"`
	AverageGoalsB             float64            `json:"average_goals_b"`
	TopScorelines             []Scoreline        `json:"top_scorelines"`
	OverProbabilities         map[string]float64 `json:"over_probabilities,omitempty"` // keyed by line, e.g. "2.5"
	BothTeamsScoreProbability float64            `json:"both_teams_score_probability"`
}

// PlayerScoringEstimate is a player's chance of scoring at least once
type PlayerScoringEstimate struct {
	Name               string  `json:"name"`
	Position           string  `json:"position"`
	SeasonGoals        int     `json:"season_goals"`
	Appearances        int     `json:"appearances"`
	ScoringProbability float64 `json:"scoring_probability"` // Percent
}

// PredictionRequest is the input to a single prediction.
// Stats must be resolved before it reaches the predictor.
type PredictionRequest struct {
	FixtureID   string
	TeamA       string
	TeamB       string
	StatsA      *TeamSeasonStats
	StatsB      *TeamSeasonStats
	RosterA     []RosterEntry
	RosterB     []RosterEntry
	TargetTotal *float64 // e.g. a market total line
	Seed        *uint64
}

// Prediction is the full output for one fixture
type Prediction struct {
	ID          uuid.UUID               `json:"id"`
	FixtureID   string                  `json:"fixture_id"`
	TeamA       string                  `json:"team_a"`
	TeamB       string                  `json:"team_b"`
	Model       ExpectedGoalsModel      `json:"model"`
	Simulation  SimulationResult        `json:"simulation"`
	TopScorersA []PlayerScoringEstimate `json:"top_scorers_a"`
	TopScorersB []PlayerScoringEstimate `json:"top_scorers_b"`
	Odds        MarketOdds              `json:"odds"`
	Seed        uint64                  `json:"seed"`
	CreatedAt   time.Time               `json:"created_at"`
}
