package service

import (
	"context"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

//go:generate mockgen -destination=../mocks/mock_cache.go -package=mocks github.com/cypherlabdev/match-predictor-service/internal/service Cache

// Cache is an interface that abstracts cache operations
// This allows for easier testing and mocking
type Cache interface {
	SetPrediction(ctx context.Context, prediction *models.Prediction) error
	GetPrediction(ctx context.Context, fixtureID, predictionID string) (*models.Prediction, error)
	GetPredictionsByFixture(ctx context.Context, fixtureID string) ([]*models.Prediction, error)
	SetTeamSnapshots(ctx context.Context, snapshots []*models.TeamSnapshot) error
	GetTeamSnapshot(ctx context.Context, team string) (*models.TeamSnapshot, error)
	Ping(ctx context.Context) error
	Close() error
}
