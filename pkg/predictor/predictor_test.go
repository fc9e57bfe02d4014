package predictor

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// testPredictorSetup is a helper struct to hold test dependencies
type testPredictorSetup struct {
	predictor *Predictor
	params    models.PredictionParams
}

// setupTestPredictor creates a test predictor with default parameters
func setupTestPredictor() *testPredictorSetup {
	params := DefaultPredictionParams()
	params.Simulation.Trials = 4000

	return &testPredictorSetup{
		predictor: NewPredictor(params, zerolog.Nop()),
		params:    params,
	}
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

// testPredictionRequest returns a complete request for a home favourite
func testPredictionRequest() *models.PredictionRequest {
	statsA := homeSideStats()
	statsB := awaySideStats()

	return &models.PredictionRequest{
		FixtureID: "fixture-123",
		TeamA:     "Arsenal",
		TeamB:     "Everton",
		StatsA:    &statsA,
		StatsB:    &statsB,
		RosterA: []models.RosterEntry{
			{Name: "B. Saka", Position: "Attacker", Goals: 16, Appearances: 35},
			{Name: "K. Havertz", Position: "Attacker", Goals: 13, Appearances: 37},
		},
		RosterB: []models.RosterEntry{
			{Name: "D. Calvert-Lewin", Position: "Attacker", Goals: 7, Appearances: 32},
		},
		Seed: uint64Ptr(42),
	}
}

// TestNewPredictor tests predictor creation
func TestNewPredictor(t *testing.T) {
	setup := setupTestPredictor()
	assert.NotNil(t, setup.predictor)
	assert.Equal(t, setup.params, setup.predictor.params)
}

// TestDefaultPredictionParams tests the default stage parameters
func TestDefaultPredictionParams(t *testing.T) {
	params := DefaultPredictionParams()

	assert.Equal(t, DefaultExpectedGoalsParams(), params.ExpectedGoals)
	assert.Equal(t, 8000, params.Simulation.Trials)
	assert.Equal(t, 7, params.Simulation.TopScorelines)
	assert.Equal(t, 3, params.TopScorers)
	assert.Equal(t, 0.05, params.Pricing.Margin)
}

// TestPredict_Success tests a full prediction
func TestPredict_Success(t *testing.T) {
	setup := setupTestPredictor()
	req := testPredictionRequest()

	prediction, err := setup.predictor.Predict(req)

	require.NoError(t, err)
	require.NotNil(t, prediction)
	assert.NotEqual(t, uuid.Nil, prediction.ID)
	assert.Equal(t, "fixture-123", prediction.FixtureID)
	assert.Equal(t, "Arsenal", prediction.TeamA)
	assert.Equal(t, "Everton", prediction.TeamB)
	assert.Equal(t, uint64(42), prediction.Seed)
	assert.False(t, prediction.CreatedAt.IsZero())

	assert.InDelta(t, 1.87, prediction.Model.RawLambdaA, 1e-9)
	assert.Equal(t, 4000, prediction.Simulation.Trials)
	assert.Greater(t, prediction.Simulation.WinProbabilityA, prediction.Simulation.WinProbabilityB)

	require.Len(t, prediction.TopScorersA, 2)
	assert.Equal(t, "B. Saka", prediction.TopScorersA[0].Name)
	require.Len(t, prediction.TopScorersB, 1)

	// The favourite is priced shorter than the outsider
	assert.True(t, prediction.Odds.WinA.IsPositive())
	assert.True(t, prediction.Odds.WinA.LessThan(prediction.Odds.WinB))
	assert.Len(t, prediction.Odds.Over, 3)
}

// TestPredict_ScorerShareUsesSeasonGoals tests attribution against the team's season total
func TestPredict_ScorerShareUsesSeasonGoals(t *testing.T) {
	setup := setupTestPredictor()
	req := testPredictionRequest()

	prediction, err := setup.predictor.Predict(req)
	require.NoError(t, err)

	expected := EstimateScorers(prediction.Model.LambdaA, 68, req.RosterA, 3)
	assert.Equal(t, expected, prediction.TopScorersA)
}

// TestPredict_NoSeasonGoals tests the empty scorer result when team totals are missing
func TestPredict_NoSeasonGoals(t *testing.T) {
	setup := setupTestPredictor()
	req := testPredictionRequest()
	req.StatsB.GoalsFor.Total = models.HomeAwayTotal{}

	prediction, err := setup.predictor.Predict(req)

	require.NoError(t, err)
	assert.NotEmpty(t, prediction.TopScorersA)
	assert.Empty(t, prediction.TopScorersB)
}

// TestPredict_TargetTotal tests that the request override reaches the estimator
func TestPredict_TargetTotal(t *testing.T) {
	setup := setupTestPredictor()
	req := testPredictionRequest()
	req.TargetTotal = floatPtr(2.5)

	prediction, err := setup.predictor.Predict(req)

	require.NoError(t, err)
	assert.Equal(t, 2.5, prediction.Model.TargetTotal)
	assert.InDelta(t, 2.5, prediction.Model.LambdaA+prediction.Model.LambdaB, 1e-9)
}

// TestPredict_MissingStats tests that unresolved statistics are rejected
func TestPredict_MissingStats(t *testing.T) {
	setup := setupTestPredictor()

	prediction, err := setup.predictor.Predict(nil)
	assert.ErrorIs(t, err, ErrMissingStats)
	assert.Nil(t, prediction)

	req := testPredictionRequest()
	req.StatsB = nil
	prediction, err = setup.predictor.Predict(req)
	assert.ErrorIs(t, err, ErrMissingStats)
	assert.Nil(t, prediction)
}

// TestPredict_SeededReproducibility tests that equal seeds produce equal simulations
func TestPredict_SeededReproducibility(t *testing.T) {
	setup := setupTestPredictor()

	first, err := setup.predictor.Predict(testPredictionRequest())
	require.NoError(t, err)
	second, err := setup.predictor.Predict(testPredictionRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Model, second.Model)
	assert.Equal(t, first.Simulation, second.Simulation)
}

// TestPredict_RandomSeed tests that a seed is drawn when none is supplied
func TestPredict_RandomSeed(t *testing.T) {
	setup := setupTestPredictor()
	req := testPredictionRequest()
	req.Seed = nil

	prediction, err := setup.predictor.Predict(req)
	require.NoError(t, err)

	replay := testPredictionRequest()
	replay.Seed = uint64Ptr(prediction.Seed)
	replayed, err := setup.predictor.Predict(replay)
	require.NoError(t, err)

	assert.Equal(t, prediction.Simulation, replayed.Simulation)
}

// TestPredict_ConcurrentAccess tests concurrent predictions on one predictor
func TestPredict_ConcurrentAccess(t *testing.T) {
	setup := setupTestPredictor()
	expected, err := setup.predictor.Predict(testPredictionRequest())
	require.NoError(t, err)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	results := make(chan *models.Prediction, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prediction, err := setup.predictor.Predict(testPredictionRequest())
			if err != nil {
				errs <- err
				return
			}
			results <- prediction
		}()
	}

	wg.Wait()
	close(errs)
	close(results)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
	count := 0
	for prediction := range results {
		assert.Equal(t, expected.Simulation, prediction.Simulation)
		count++
	}
	assert.Equal(t, workers, count)
}
