package service

import (
	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

//go:generate mockgen -destination=../mocks/mock_predictor.go -package=mocks github.com/cypherlabdev/match-predictor-service/internal/service Predictor

// Predictor is an interface that abstracts match prediction
// This allows for easier testing and mocking
type Predictor interface {
	Predict(req *models.PredictionRequest) (*models.Prediction, error)
}
