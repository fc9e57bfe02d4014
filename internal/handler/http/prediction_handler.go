package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/match-predictor-service/internal/metrics"
	"github.com/cypherlabdev/match-predictor-service/internal/models"
	"github.com/cypherlabdev/match-predictor-service/internal/service"
	"github.com/cypherlabdev/match-predictor-service/pkg/predictor"
)

const maxRequestBytes = 1 << 20

// PredictionHandler handles HTTP requests for match predictions
type PredictionHandler struct {
	service *service.PredictorService
	logger  zerolog.Logger
}

// NewPredictionHandler creates a new prediction HTTP handler
func NewPredictionHandler(service *service.PredictorService, logger zerolog.Logger) *PredictionHandler {
	return &PredictionHandler{
		service: service,
		logger:  logger.With().Str("component", "prediction_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided router
func (h *PredictionHandler) RegisterRoutes(router *mux.Router) {
	// Full paths on the parent router keep 405 responses for wrong methods;
	// routes of a shared prefix subrouter would mask them as 404.
	router.HandleFunc("/api/v1/predictions", h.handleCreatePrediction).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/predictions/{fixture_id}/{prediction_id}", h.handleGetPrediction).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/fixtures/{fixture_id}/predictions", h.handleGetFixturePredictions).Methods(http.MethodGet)
}

// PredictionRequest is the body of POST /api/v1/predictions. Statistics and
// rosters are raw provider payloads; omitted statistics are taken from the
// team's latest cached snapshot.
type PredictionRequest struct {
	FixtureID   string           `json:"fixture_id"`
	TeamA       string           `json:"team_a"`
	TeamB       string           `json:"team_b"`
	StatsA      json.RawMessage  `json:"stats_a,omitempty"`
	StatsB      json.RawMessage  `json:"stats_b,omitempty"`
	RosterA     json.RawMessage  `json:"roster_a,omitempty"`
	RosterB     json.RawMessage  `json:"roster_b,omitempty"`
	MarketTotal *decimal.Decimal `json:"market_total,omitempty"` // number or string, e.g. 2.5
	Seed        *uint64          `json:"seed,omitempty"`
}

// handleCreatePrediction handles POST /api/v1/predictions
func (h *PredictionHandler) handleCreatePrediction(w http.ResponseWriter, r *http.Request) {
	var body PredictionRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := decoder.Decode(&body); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	body.FixtureID = strings.TrimSpace(body.FixtureID)
	body.TeamA = strings.TrimSpace(body.TeamA)
	body.TeamB = strings.TrimSpace(body.TeamB)
	if body.FixtureID == "" || body.TeamA == "" || body.TeamB == "" {
		h.errorResponse(w, http.StatusBadRequest, "fixture_id, team_a, and team_b are required")
		return
	}

	prediction, err := h.service.Predict(r.Context(), metrics.SourceHTTP, body.toModel())
	if errors.Is(err, service.ErrTeamNotFound) {
		h.errorResponse(w, http.StatusNotFound, err.Error())
		return
	} else if err != nil {
		h.logger.Error().
			Err(err).
			Str("fixture_id", body.FixtureID).
			Msg("failed to predict match")
		h.errorResponse(w, http.StatusInternalServerError, "failed to predict match")
		return
	}

	h.jsonResponse(w, http.StatusCreated, ToPredictionResponse(prediction))
}

// toModel normalizes the raw payloads into a service request
func (b *PredictionRequest) toModel() *models.PredictionRequest {
	req := &models.PredictionRequest{
		FixtureID: b.FixtureID,
		TeamA:     b.TeamA,
		TeamB:     b.TeamB,
		Seed:      b.Seed,
	}

	if present(b.StatsA) {
		stats := predictor.ParseTeamSeasonStats(b.StatsA)
		req.StatsA = &stats
	}
	if present(b.StatsB) {
		stats := predictor.ParseTeamSeasonStats(b.StatsB)
		req.StatsB = &stats
	}
	if present(b.RosterA) {
		req.RosterA = predictor.ParseRoster(b.RosterA)
	}
	if present(b.RosterB) {
		req.RosterB = predictor.ParseRoster(b.RosterB)
	}
	if b.MarketTotal != nil {
		total := b.MarketTotal.InexactFloat64()
		req.TargetTotal = &total
	}

	return req
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// handleGetPrediction handles GET /api/v1/predictions/{fixture_id}/{prediction_id}
func (h *PredictionHandler) handleGetPrediction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	fixtureID := vars["fixture_id"]
	predictionID := vars["prediction_id"]

	prediction, err := h.service.GetPrediction(r.Context(), fixtureID, predictionID)
	if errors.Is(err, service.ErrPredictionNotFound) {
		h.logger.Debug().
			Err(err).
			Str("fixture_id", fixtureID).
			Str("prediction_id", predictionID).
			Msg("prediction not found")
		h.errorResponse(w, http.StatusNotFound, "prediction not found")
		return
	} else if err != nil {
		h.logger.Error().
			Err(err).
			Str("fixture_id", fixtureID).
			Str("prediction_id", predictionID).
			Msg("failed to retrieve prediction")
		h.errorResponse(w, http.StatusInternalServerError, "failed to retrieve prediction")
		return
	}

	h.jsonResponse(w, http.StatusOK, ToPredictionResponse(prediction))
}

// handleGetFixturePredictions handles GET /api/v1/fixtures/{fixture_id}/predictions
func (h *PredictionHandler) handleGetFixturePredictions(w http.ResponseWriter, r *http.Request) {
	fixtureID := mux.Vars(r)["fixture_id"]

	predictions, err := h.service.GetPredictionsByFixture(r.Context(), fixtureID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("fixture_id", fixtureID).
			Msg("failed to retrieve fixture predictions")
		h.errorResponse(w, http.StatusInternalServerError, "failed to retrieve predictions")
		return
	}

	responses := make([]*PredictionResponse, len(predictions))
	for i, p := range predictions {
		responses[i] = ToPredictionResponse(p)
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"fixture_id":  fixtureID,
		"count":       len(responses),
		"predictions": responses,
	})
}

// jsonResponse writes a JSON response
func (h *PredictionHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *PredictionHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
