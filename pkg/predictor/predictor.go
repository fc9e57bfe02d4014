package predictor

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
	"github.com/cypherlabdev/match-predictor-service/pkg/pricing"
)

// ErrMissingStats is returned when a request reaches the predictor without
// resolved statistics for both teams
var ErrMissingStats = errors.New("missing team statistics")

// Predictor turns two teams' season statistics into a match prediction
type Predictor struct {
	params models.PredictionParams
	logger zerolog.Logger
}

// NewPredictor creates a new match predictor
func NewPredictor(params models.PredictionParams, logger zerolog.Logger) *Predictor {
	return &Predictor{
		params: params,
		logger: logger.With().Str("component", "predictor").Logger(),
	}
}

// DefaultPredictionParams returns the default parameters of every stage
func DefaultPredictionParams() models.PredictionParams {
	return models.PredictionParams{
		ExpectedGoals: DefaultExpectedGoalsParams(),
		Simulation:    DefaultSimulationParams(),
		TopScorers:    DefaultTopScorers,
		Pricing:       pricing.DefaultPricingParams(),
	}
}

// Predict estimates expected goals, simulates the match, ranks likely
// scorers for both teams and prices the result. Each call uses its own
// random source, seeded from req.Seed when set.
func (p *Predictor) Predict(req *models.PredictionRequest) (*models.Prediction, error) {
	if req == nil || req.StatsA == nil || req.StatsB == nil {
		return nil, ErrMissingStats
	}

	seed := rand.Uint64()
	if req.Seed != nil {
		seed = *req.Seed
	}

	model := EstimateExpectedGoals(*req.StatsA, *req.StatsB, req.TargetTotal, p.params.ExpectedGoals)
	simulation := Simulate(model.LambdaA, model.LambdaB, NewRandomSource(seed), p.params.Simulation)

	topScorersA := EstimateScorers(model.LambdaA, int(req.StatsA.GoalsFor.Total.Total), req.RosterA, p.params.TopScorers)
	topScorersB := EstimateScorers(model.LambdaB, int(req.StatsB.GoalsFor.Total.Total), req.RosterB, p.params.TopScorers)

	p.logger.Debug().
		Str("fixture_id", req.FixtureID).
		Str("team_a", req.TeamA).
		Str("team_b", req.TeamB).
		Float64("lambda_a", model.LambdaA).
		Float64("lambda_b", model.LambdaB).
		Float64("scale_factor", model.ScaleFactor).
		Uint64("seed", seed).
		Msg("match simulated")

	return &models.Prediction{
		ID:          uuid.New(),
		FixtureID:   req.FixtureID,
		TeamA:       req.TeamA,
		TeamB:       req.TeamB,
		Model:       model,
		Simulation:  simulation,
		TopScorersA: topScorersA,
		TopScorersB: topScorersB,
		Odds:        pricing.Price(simulation, p.params.Pricing),
		Seed:        seed,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
