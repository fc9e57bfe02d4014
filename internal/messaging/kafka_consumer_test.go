package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cypherlabdev/match-predictor-service/internal/cache"
	"github.com/cypherlabdev/match-predictor-service/internal/metrics"
	"github.com/cypherlabdev/match-predictor-service/internal/mocks"
	"github.com/cypherlabdev/match-predictor-service/internal/models"
	"github.com/cypherlabdev/match-predictor-service/internal/service"
)

const homeStatistics = `{
  "response": {
    "form": "WWDLW",
    "fixtures": {"played": {"home": 19, "away": 19, "total": 38}},
    "goals": {
      "for": {
        "total": {"home": 38, "away": 30, "total": 68},
        "average": {"home": "2.0", "away": "1.6", "total": "1.8"}
      },
      "against": {
        "total": {"home": 14, "away": 20, "total": 34},
        "average": {"home": "0.7", "away": "1.1", "total": "0.9"}
      }
    }
  }
}`

const awayStatistics = `{
  "response": {
    "form": "LDLWL",
    "goals": {
      "for": {
        "total": {"home": 22, "away": 18, "total": 40},
        "average": {"home": "1.2", "away": "0.9", "total": "1.1"}
      },
      "against": {
        "average": {"home": "1.3", "away": "1.5", "total": "1.4"}
      }
    }
  }
}`

const homePlayers = `{
  "response": [
    {"player": {"name": "B. Saka"}, "statistics": [{"games": {"appearences": 35, "position": "Attacker"}, "goals": {"total": 16}}]}
  ]
}`

// testKafkaConsumerSetup is a helper struct to hold test dependencies
type testKafkaConsumerSetup struct {
	consumer      *KafkaConsumer
	mockPredictor *mocks.MockPredictor
	mockCache     *mocks.MockCache
	ctx           context.Context
}

// setupTestKafkaConsumer creates a consumer driving a service with mocked dependencies
func setupTestKafkaConsumer(t *testing.T) *testKafkaConsumerSetup {
	ctrl := gomock.NewController(t)

	mockPredictor := mocks.NewMockPredictor(ctrl)
	mockCache := mocks.NewMockCache(ctrl)
	logger := zerolog.Nop()

	svc := service.NewPredictorService(mockPredictor, mockCache, nil, metrics.New(prometheus.NewRegistry()), logger)

	config := KafkaConsumerConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "match_stats",
		GroupID: "test-group",
	}
	consumer := NewKafkaConsumer(config, svc, logger)
	t.Cleanup(func() { consumer.Close() })

	return &testKafkaConsumerSetup{
		consumer:      consumer,
		mockPredictor: mockPredictor,
		mockCache:     mockCache,
		ctx:           context.Background(),
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// kafkaMessage marshals a match stats message into a Kafka message
func kafkaMessage(t *testing.T, msg models.KafkaMatchStatsMessage) kafka.Message {
	value, err := json.Marshal(msg)
	require.NoError(t, err)

	return kafka.Message{Key: []byte(msg.FixtureID), Value: value}
}

// testMatchStatsMessage returns a message carrying both teams' payloads
func testMatchStatsMessage() models.KafkaMatchStatsMessage {
	return models.KafkaMatchStatsMessage{
		FixtureID: "fixture-123",
		HomeTeam: models.KafkaTeamPayload{
			Team:       "Arsenal",
			Statistics: json.RawMessage(homeStatistics),
			Players:    json.RawMessage(homePlayers),
		},
		AwayTeam: models.KafkaTeamPayload{
			Team:       "Everton",
			Statistics: json.RawMessage(awayStatistics),
		},
		MarketTotal: floatPtr(2.5),
		Timestamp:   time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		BatchID:     "batch-123",
	}
}

func predictionFor(req *models.PredictionRequest) *models.Prediction {
	return &models.Prediction{
		ID:        uuid.New(),
		FixtureID: req.FixtureID,
		TeamA:     req.TeamA,
		TeamB:     req.TeamB,
		Model:     models.ExpectedGoalsModel{LambdaA: 1.8, LambdaB: 0.9},
		CreatedAt: time.Now().UTC(),
	}
}

// TestNewKafkaConsumer tests consumer creation
func TestNewKafkaConsumer(t *testing.T) {
	setup := setupTestKafkaConsumer(t)

	assert.NotNil(t, setup.consumer)
	assert.NotNil(t, setup.consumer.reader)
	assert.NotNil(t, setup.consumer.service)
	assert.Equal(t, "match_stats", setup.consumer.reader.Config().Topic)
	assert.Equal(t, "test-group", setup.consumer.reader.Config().GroupID)
}

// TestProcessMessage_Success tests snapshot ingestion followed by a prediction
func TestProcessMessage_Success(t *testing.T) {
	setup := setupTestKafkaConsumer(t)

	var stored []*models.TeamSnapshot
	setup.mockCache.EXPECT().
		SetTeamSnapshots(setup.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, snapshots []*models.TeamSnapshot) error {
			stored = snapshots
			return nil
		})

	var captured *models.PredictionRequest
	setup.mockPredictor.EXPECT().
		Predict(gomock.Any()).
		DoAndReturn(func(req *models.PredictionRequest) (*models.Prediction, error) {
			captured = req
			return predictionFor(req), nil
		})
	setup.mockCache.EXPECT().SetPrediction(setup.ctx, gomock.Any()).Return(nil)

	err := setup.consumer.processMessage(setup.ctx, kafkaMessage(t, testMatchStatsMessage()))

	require.NoError(t, err)

	require.Len(t, stored, 2)
	assert.Equal(t, "Arsenal", stored[0].Team)
	assert.Equal(t, "Everton", stored[1].Team)
	assert.Equal(t, 68.0, stored[0].Stats.GoalsFor.Total.Total)
	assert.Equal(t, 1.8, stored[0].Stats.GoalsFor.Average.Total)
	assert.Equal(t, "WWDLW", stored[0].Stats.Form)
	assert.Equal(t, time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC), stored[0].UpdatedAt)
	require.Len(t, stored[0].Roster, 1)
	assert.Equal(t, "B. Saka", stored[0].Roster[0].Name)
	assert.Empty(t, stored[1].Roster)

	require.NotNil(t, captured)
	assert.Equal(t, "fixture-123", captured.FixtureID)
	assert.Equal(t, "Arsenal", captured.TeamA)
	assert.Equal(t, "Everton", captured.TeamB)
	assert.Equal(t, stored[0].Stats, *captured.StatsA)
	assert.Equal(t, stored[1].Stats, *captured.StatsB)
	require.NotNil(t, captured.TargetTotal)
	assert.Equal(t, 2.5, *captured.TargetTotal)
}

// TestProcessMessage_MissingTeamStatistics tests that a team without a payload is resolved from cache
func TestProcessMessage_MissingTeamStatistics(t *testing.T) {
	setup := setupTestKafkaConsumer(t)

	msg := testMatchStatsMessage()
	msg.AwayTeam.Statistics = nil

	cachedAway := &models.TeamSnapshot{Team: "Everton", Stats: models.TeamSeasonStats{Form: "DDDDD"}}

	setup.mockCache.EXPECT().
		SetTeamSnapshots(setup.ctx, gomock.Len(1)).
		Return(nil)
	setup.mockCache.EXPECT().
		GetTeamSnapshot(setup.ctx, "Everton").
		Return(cachedAway, nil)

	var captured *models.PredictionRequest
	setup.mockPredictor.EXPECT().
		Predict(gomock.Any()).
		DoAndReturn(func(req *models.PredictionRequest) (*models.Prediction, error) {
			captured = req
			return predictionFor(req), nil
		})
	setup.mockCache.EXPECT().SetPrediction(setup.ctx, gomock.Any()).Return(nil)

	err := setup.consumer.processMessage(setup.ctx, kafkaMessage(t, msg))

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, "DDDDD", captured.StatsB.Form)
}

// TestProcessMessage_InvalidJSON tests processing with invalid JSON
func TestProcessMessage_InvalidJSON(t *testing.T) {
	setup := setupTestKafkaConsumer(t)

	err := setup.consumer.processMessage(setup.ctx, kafka.Message{Value: []byte("invalid json")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal message")
}

// TestProcessMessage_MissingFields tests messages without a fixture or team names
func TestProcessMessage_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(msg *models.KafkaMatchStatsMessage)
	}{
		{name: "Missing fixture", mutate: func(msg *models.KafkaMatchStatsMessage) { msg.FixtureID = "" }},
		{name: "Missing home team", mutate: func(msg *models.KafkaMatchStatsMessage) { msg.HomeTeam.Team = "" }},
		{name: "Missing away team", mutate: func(msg *models.KafkaMatchStatsMessage) { msg.AwayTeam.Team = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup := setupTestKafkaConsumer(t)

			msg := testMatchStatsMessage()
			tt.mutate(&msg)

			err := setup.consumer.processMessage(setup.ctx, kafkaMessage(t, msg))

			require.Error(t, err)
			assert.Contains(t, err.Error(), "missing fixture_id or team names")
		})
	}
}

// TestProcessMessage_SnapshotCacheFailure tests that the message fails when snapshots can't be stored
func TestProcessMessage_SnapshotCacheFailure(t *testing.T) {
	setup := setupTestKafkaConsumer(t)

	setup.mockCache.EXPECT().
		SetTeamSnapshots(setup.ctx, gomock.Any()).
		Return(errors.New("redis down"))

	err := setup.consumer.processMessage(setup.ctx, kafkaMessage(t, testMatchStatsMessage()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store snapshots")
}

// TestProcessMessage_UnknownTeam tests a message for a team with neither payload nor snapshot
func TestProcessMessage_UnknownTeam(t *testing.T) {
	setup := setupTestKafkaConsumer(t)

	msg := testMatchStatsMessage()
	msg.HomeTeam.Statistics = json.RawMessage("null")
	msg.AwayTeam.Statistics = nil

	setup.mockCache.EXPECT().
		GetTeamSnapshot(setup.ctx, "Arsenal").
		Return(nil, cache.ErrCacheMiss)

	err := setup.consumer.processMessage(setup.ctx, kafkaMessage(t, msg))

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrTeamNotFound))
}

// TestProcessMessage_PredictionFailure tests handling of a predictor failure
func TestProcessMessage_PredictionFailure(t *testing.T) {
	setup := setupTestKafkaConsumer(t)

	setup.mockCache.EXPECT().SetTeamSnapshots(setup.ctx, gomock.Any()).Return(nil)
	setup.mockPredictor.EXPECT().Predict(gomock.Any()).Return(nil, errors.New("boom"))

	err := setup.consumer.processMessage(setup.ctx, kafkaMessage(t, testMatchStatsMessage()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to predict fixture fixture-123")
}

// TestSnapshotFromPayload tests normalizing a single team payload
func TestSnapshotFromPayload(t *testing.T) {
	updatedAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	snapshot := snapshotFromPayload(models.KafkaTeamPayload{
		Team:       "Arsenal",
		Statistics: json.RawMessage(homeStatistics),
		Players:    json.RawMessage(homePlayers),
	}, updatedAt)

	require.NotNil(t, snapshot)
	assert.Equal(t, "Arsenal", snapshot.Team)
	assert.Equal(t, 38.0, snapshot.Stats.Played.Total)
	assert.Equal(t, 0.9, snapshot.Stats.GoalsAgainst.Average.Total)
	assert.Len(t, snapshot.Roster, 1)
	assert.Equal(t, updatedAt, snapshot.UpdatedAt)

	assert.Nil(t, snapshotFromPayload(models.KafkaTeamPayload{Team: "Arsenal"}, updatedAt))
	assert.Nil(t, snapshotFromPayload(models.KafkaTeamPayload{Team: "Arsenal", Statistics: json.RawMessage("null")}, updatedAt))
}
