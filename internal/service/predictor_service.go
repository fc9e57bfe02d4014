package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-predictor-service/internal/cache"
	"github.com/cypherlabdev/match-predictor-service/internal/metrics"
	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

var (
	// ErrTeamNotFound is returned when a request omits a team's statistics
	// and no snapshot is cached for it
	ErrTeamNotFound = errors.New("team not found")
	// ErrPredictionNotFound is returned when a prediction is absent or expired
	ErrPredictionNotFound = errors.New("prediction not found")
)

// PredictorService orchestrates match prediction with caching
type PredictorService struct {
	predictor Predictor
	cache     Cache
	publisher Publisher // optional
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewPredictorService creates a new predictor service. publisher may be nil.
func NewPredictorService(
	predictor Predictor,
	cache Cache,
	publisher Publisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *PredictorService {
	return &PredictorService{
		predictor: predictor,
		cache:     cache,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With().Str("component", "predictor_service").Logger(),
	}
}

// Predict resolves missing team statistics from cached snapshots, runs the
// predictor and caches the result. source labels the metrics.
func (s *PredictorService) Predict(ctx context.Context, source string, req *models.PredictionRequest) (*models.Prediction, error) {
	start := time.Now()

	resolved, err := s.resolve(ctx, req)
	if err != nil {
		s.observe(source, err)
		return nil, err
	}

	prediction, err := s.predictor.Predict(resolved)
	if err != nil {
		s.observe(source, err)
		return nil, fmt.Errorf("prediction failed: %w", err)
	}

	s.metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	s.metrics.ExpectedGoals.WithLabelValues("a").Observe(prediction.Model.LambdaA)
	s.metrics.ExpectedGoals.WithLabelValues("b").Observe(prediction.Model.LambdaB)
	s.observe(source, nil)

	// Cache the prediction
	if err := s.cache.SetPrediction(ctx, prediction); err != nil {
		s.metrics.CacheErrorsTotal.WithLabelValues("set_prediction").Inc()
		s.logger.Warn().
			Err(err).
			Str("fixture_id", prediction.FixtureID).
			Str("prediction_id", prediction.ID.String()).
			Msg("failed to cache prediction")
		// Don't fail the request on cache errors
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, prediction); err != nil {
			s.logger.Warn().
				Err(err).
				Str("fixture_id", prediction.FixtureID).
				Str("prediction_id", prediction.ID.String()).
				Msg("failed to publish prediction")
		}
	}

	s.logger.Info().
		Str("fixture_id", prediction.FixtureID).
		Str("prediction_id", prediction.ID.String()).
		Str("source", source).
		Float64("lambda_a", prediction.Model.LambdaA).
		Float64("lambda_b", prediction.Model.LambdaB).
		Float64("win_a", prediction.Simulation.WinProbabilityA).
		Float64("win_b", prediction.Simulation.WinProbabilityB).
		Float64("draw", prediction.Simulation.DrawProbability).
		Msg("predicted and cached match")

	return prediction, nil
}

// resolve returns a copy of req with both teams' statistics filled in
func (s *PredictorService) resolve(ctx context.Context, req *models.PredictionRequest) (*models.PredictionRequest, error) {
	resolved := *req

	if resolved.StatsA == nil {
		snapshot, err := s.teamSnapshot(ctx, req.TeamA)
		if err != nil {
			return nil, err
		}
		resolved.StatsA = &snapshot.Stats
		if resolved.RosterA == nil {
			resolved.RosterA = snapshot.Roster
		}
	}

	if resolved.StatsB == nil {
		snapshot, err := s.teamSnapshot(ctx, req.TeamB)
		if err != nil {
			return nil, err
		}
		resolved.StatsB = &snapshot.Stats
		if resolved.RosterB == nil {
			resolved.RosterB = snapshot.Roster
		}
	}

	return &resolved, nil
}

func (s *PredictorService) teamSnapshot(ctx context.Context, team string) (*models.TeamSnapshot, error) {
	snapshot, err := s.cache.GetTeamSnapshot(ctx, team)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, fmt.Errorf("%w: %q", ErrTeamNotFound, team)
	} else if err != nil {
		s.metrics.CacheErrorsTotal.WithLabelValues("get_team_snapshot").Inc()
		return nil, fmt.Errorf("failed to resolve team %q: %w", team, err)
	}

	s.logger.Debug().
		Str("team", team).
		Time("updated_at", snapshot.UpdatedAt).
		Msg("resolved team from snapshot cache")

	return snapshot, nil
}

func (s *PredictorService) observe(source string, err error) {
	status := metrics.StatusSuccess
	switch {
	case errors.Is(err, ErrTeamNotFound):
		status = metrics.StatusTeamNotFound
	case err != nil:
		status = metrics.StatusError
	}
	s.metrics.PredictionsTotal.WithLabelValues(source, status).Inc()
}

// GetPrediction retrieves a cached prediction
func (s *PredictorService) GetPrediction(ctx context.Context, fixtureID, predictionID string) (*models.Prediction, error) {
	prediction, err := s.cache.GetPrediction(ctx, fixtureID, predictionID)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, fmt.Errorf("%w: fixture=%s id=%s", ErrPredictionNotFound, fixtureID, predictionID)
	} else if err != nil {
		s.metrics.CacheErrorsTotal.WithLabelValues("get_prediction").Inc()
		return nil, fmt.Errorf("failed to retrieve prediction: %w", err)
	}

	return prediction, nil
}

// GetPredictionsByFixture retrieves all cached predictions for a fixture
func (s *PredictorService) GetPredictionsByFixture(ctx context.Context, fixtureID string) ([]*models.Prediction, error) {
	predictions, err := s.cache.GetPredictionsByFixture(ctx, fixtureID)
	if err != nil {
		s.metrics.CacheErrorsTotal.WithLabelValues("get_predictions_by_fixture").Inc()
		return nil, fmt.Errorf("failed to retrieve predictions for fixture: %w", err)
	}

	s.logger.Debug().
		Str("fixture_id", fixtureID).
		Int("count", len(predictions)).
		Msg("retrieved predictions by fixture")

	return predictions, nil
}

// IngestSnapshots stores the latest statistics for each team so later
// requests can omit them
func (s *PredictorService) IngestSnapshots(ctx context.Context, snapshots []*models.TeamSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	if err := s.cache.SetTeamSnapshots(ctx, snapshots); err != nil {
		s.metrics.CacheErrorsTotal.WithLabelValues("set_team_snapshots").Inc()
		return fmt.Errorf("failed to cache team snapshots: %w", err)
	}

	s.logger.Debug().
		Int("count", len(snapshots)).
		Msg("ingested team snapshots")

	return nil
}
