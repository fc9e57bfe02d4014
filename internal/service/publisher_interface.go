package service

import (
	"context"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

//go:generate mockgen -destination=../mocks/mock_publisher.go -package=mocks github.com/cypherlabdev/match-predictor-service/internal/service Publisher

// Publisher sends finished predictions to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, prediction *models.Prediction) error
	Close() error
}
