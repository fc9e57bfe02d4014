package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/match-predictor-service/internal/metrics"
	"github.com/cypherlabdev/match-predictor-service/internal/models"
	"github.com/cypherlabdev/match-predictor-service/pkg/predictor"
)

// PredictionService is the part of the service layer driven by the consumer
type PredictionService interface {
	IngestSnapshots(ctx context.Context, snapshots []*models.TeamSnapshot) error
	Predict(ctx context.Context, source string, req *models.PredictionRequest) (*models.Prediction, error)
}

// KafkaConsumer consumes match statistics from Kafka, refreshes the team
// snapshot cache and predicts each fixture
type KafkaConsumer struct {
	reader  *kafka.Reader
	service PredictionService
	logger  zerolog.Logger
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "match_stats"
	GroupID string   // e.g., "match-predictor"
}

// NewKafkaConsumer creates a new Kafka consumer
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	svc PredictionService,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1e3,  // 1KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &KafkaConsumer{
		reader:  reader,
		service: svc,
		logger:  logger.With().Str("component", "kafka_consumer").Logger(),
	}
}

// Start begins consuming messages from Kafka
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping Kafka consumer")
			return c.reader.Close()

		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Error().
					Err(err).
					Int64("offset", msg.Offset).
					Str("key", string(msg.Key)).
					Msg("failed to process message")
				// Don't commit if processing failed
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage processes a single Kafka message
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var kafkaMsg models.KafkaMatchStatsMessage
	if err := json.Unmarshal(msg.Value, &kafkaMsg); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	if kafkaMsg.FixtureID == "" || kafkaMsg.HomeTeam.Team == "" || kafkaMsg.AwayTeam.Team == "" {
		return fmt.Errorf("message missing fixture_id or team names (batch_id=%s)", kafkaMsg.BatchID)
	}

	c.logger.Debug().
		Str("fixture_id", kafkaMsg.FixtureID).
		Str("batch_id", kafkaMsg.BatchID).
		Msg("processing match stats")

	updatedAt := kafkaMsg.Timestamp
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	// A team without a statistics payload is resolved from its last snapshot
	home := snapshotFromPayload(kafkaMsg.HomeTeam, updatedAt)
	away := snapshotFromPayload(kafkaMsg.AwayTeam, updatedAt)

	var snapshots []*models.TeamSnapshot
	req := &models.PredictionRequest{
		FixtureID:   kafkaMsg.FixtureID,
		TeamA:       kafkaMsg.HomeTeam.Team,
		TeamB:       kafkaMsg.AwayTeam.Team,
		TargetTotal: kafkaMsg.MarketTotal,
	}
	if home != nil {
		snapshots = append(snapshots, home)
		req.StatsA = &home.Stats
		req.RosterA = home.Roster
	}
	if away != nil {
		snapshots = append(snapshots, away)
		req.StatsB = &away.Stats
		req.RosterB = away.Roster
	}

	if err := c.service.IngestSnapshots(ctx, snapshots); err != nil {
		return fmt.Errorf("failed to store snapshots: %w", err)
	}

	prediction, err := c.service.Predict(ctx, metrics.SourceKafka, req)
	if err != nil {
		return fmt.Errorf("failed to predict fixture %s: %w", kafkaMsg.FixtureID, err)
	}

	c.logger.Info().
		Str("fixture_id", prediction.FixtureID).
		Str("prediction_id", prediction.ID.String()).
		Int("snapshots", len(snapshots)).
		Str("batch_id", kafkaMsg.BatchID).
		Msg("processed match stats")

	return nil
}

// snapshotFromPayload normalizes one team's raw provider payloads, or
// returns nil when the message carries no statistics for it
func snapshotFromPayload(payload models.KafkaTeamPayload, updatedAt time.Time) *models.TeamSnapshot {
	if len(payload.Statistics) == 0 || string(payload.Statistics) == "null" {
		return nil
	}

	return &models.TeamSnapshot{
		Team:      payload.Team,
		Stats:     predictor.ParseTeamSeasonStats(payload.Statistics),
		Roster:    predictor.ParseRoster(payload.Players),
		UpdatedAt: updatedAt,
	}
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
