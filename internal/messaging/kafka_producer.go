package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// messageWriter is the subset of *kafka.Writer used by the producer
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer publishes predictions to Kafka, keyed by fixture
type KafkaProducer struct {
	writer messageWriter
	topic  string
	logger zerolog.Logger
}

// KafkaProducerConfig holds Kafka producer configuration
type KafkaProducerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "match_predictions"
}

// NewKafkaProducer creates a new Kafka producer
func NewKafkaProducer(config KafkaProducerConfig, logger zerolog.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{}, // same fixture, same partition
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}

	return newKafkaProducer(writer, config.Topic, logger)
}

func newKafkaProducer(writer messageWriter, topic string, logger zerolog.Logger) *KafkaProducer {
	return &KafkaProducer{
		writer: writer,
		topic:  topic,
		logger: logger.With().Str("component", "kafka_producer").Logger(),
	}
}

// Publish writes a prediction to the predictions topic
func (p *KafkaProducer) Publish(ctx context.Context, prediction *models.Prediction) error {
	data, err := json.Marshal(prediction)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(prediction.FixtureID),
		Value: data,
		Time:  prediction.CreatedAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write to Kafka: %w", err)
	}

	p.logger.Debug().
		Str("topic", p.topic).
		Str("fixture_id", prediction.FixtureID).
		Str("prediction_id", prediction.ID.String()).
		Msg("published prediction")

	return nil
}

// Close flushes pending writes and closes the Kafka writer
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
