package http

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

const (
	percentPlaces   = 2
	totalHundredths = 10000 // 100% in hundredths
)

// ScorelineResponse is one exact score in the API response
type ScorelineResponse struct {
	Score       string  `json:"score"`
	Probability float64 `json:"probability"`
}

// ScorerResponse is one likely scorer in the API response
type ScorerResponse struct {
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	Goals       int     `json:"goals"`
	Appearances int     `json:"appearances"`
	Probability float64 `json:"probability"`
}

// PredictionResponse represents the API response for a prediction.
// Percentages carry two decimals and winA + winB + draw is exactly 100.
type PredictionResponse struct {
	ID            string                    `json:"id"`
	FixtureID     string                    `json:"fixture_id"`
	TeamA         string                    `json:"team_a"`
	TeamB         string                    `json:"team_b"`
	LambdaA       float64                   `json:"lambdaA"`
	LambdaB       float64                   `json:"lambdaB"`
	Model         models.ExpectedGoalsModel `json:"model"`
	Trials        int                       `json:"trials"`
	WinA          float64                   `json:"winA"`
	WinB          float64                   `json:"winB"`
	Draw          float64                   `json:"draw"`
	AvgGoalsA     float64                   `json:"avgGoalsA"`
	AvgGoalsB     float64                   `json:"avgGoalsB"`
	TopScorelines []ScorelineResponse       `json:"topScorelines"`
	Overs         map[string]float64        `json:"overs"`
	BTTS          float64                   `json:"btts"`
	TopScorersA   []ScorerResponse          `json:"topScorersA"`
	TopScorersB   []ScorerResponse          `json:"topScorersB"`
	Odds          models.MarketOdds         `json:"odds"`
	Seed          uint64                    `json:"seed"`
	CreatedAt     string                    `json:"created_at"`
}

// ToPredictionResponse converts a Prediction to API response format
func ToPredictionResponse(p *models.Prediction) *PredictionResponse {
	sim := p.Simulation

	draw, winA, winB := outcomePercentages(sim.Draws, sim.WinsA, sim.WinsB)

	scorelines := make([]ScorelineResponse, len(sim.TopScorelines))
	for i, s := range sim.TopScorelines {
		scorelines[i] = ScorelineResponse{
			Score:       s.String(),
			Probability: round(s.Probability),
		}
	}

	overs := make(map[string]float64, len(sim.OverProbabilities))
	for line, pct := range sim.OverProbabilities {
		overs[line] = round(pct)
	}

	return &PredictionResponse{
		ID:            p.ID.String(),
		FixtureID:     p.FixtureID,
		TeamA:         p.TeamA,
		TeamB:         p.TeamB,
		LambdaA:       p.Model.LambdaA,
		LambdaB:       p.Model.LambdaB,
		Model:         p.Model,
		Trials:        sim.Trials,
		WinA:          winA.InexactFloat64(),
		WinB:          winB.InexactFloat64(),
		Draw:          draw.InexactFloat64(),
		AvgGoalsA:     round(sim.AverageGoalsA),
		AvgGoalsB:     round(sim.AverageGoalsB),
		TopScorelines: scorelines,
		Overs:         overs,
		BTTS:          round(sim.BothTeamsScoreProbability),
		TopScorersA:   toScorerResponses(p.TopScorersA),
		TopScorersB:   toScorerResponses(p.TopScorersB),
		Odds:          p.Odds,
		Seed:          p.Seed,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

func toScorerResponses(estimates []models.PlayerScoringEstimate) []ScorerResponse {
	scorers := make([]ScorerResponse, len(estimates))
	for i, e := range estimates {
		scorers[i] = ScorerResponse{
			Name:        e.Name,
			Position:    e.Position,
			Goals:       e.SeasonGoals,
			Appearances: e.Appearances,
			Probability: round(e.ScoringProbability),
		}
	}
	return scorers
}

// outcomePercentages splits 100% across the outcome counts with the largest
// remainder method, so the shares are non-negative and sum to exactly 100.
// Leftover hundredths go to the largest remainders, draw first on ties.
// All zero when no trials were counted.
func outcomePercentages(draws, winsA, winsB int) (draw, winA, winB decimal.Decimal) {
	counts := []int64{int64(draws), int64(winsA), int64(winsB)}
	total := counts[0] + counts[1] + counts[2]
	if total <= 0 {
		return decimal.Zero, decimal.Zero, decimal.Zero
	}

	hundredths := make([]int64, len(counts))
	remainders := make([]int64, len(counts))
	leftover := int64(totalHundredths)
	for i, c := range counts {
		hundredths[i] = c * totalHundredths / total
		remainders[i] = c * totalHundredths % total
		leftover -= hundredths[i]
	}

	order := []int{0, 1, 2}
	sort.SliceStable(order, func(i, j int) bool {
		return remainders[order[i]] > remainders[order[j]]
	})
	for i := 0; leftover > 0; i++ {
		hundredths[order[i%len(order)]]++
		leftover--
	}

	return decimal.New(hundredths[0], -percentPlaces),
		decimal.New(hundredths[1], -percentPlaces),
		decimal.New(hundredths[2], -percentPlaces)
}

func round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(percentPlaces).InexactFloat64()
}
