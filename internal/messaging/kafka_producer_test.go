package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// recordingWriter captures messages instead of sending them to a broker
type recordingWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

// TestNewKafkaProducer tests producer creation
func TestNewKafkaProducer(t *testing.T) {
	producer := NewKafkaProducer(KafkaProducerConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "match_predictions",
	}, zerolog.Nop())

	require.NotNil(t, producer)
	writer, ok := producer.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "match_predictions", writer.Topic)
	assert.IsType(t, &kafka.Hash{}, writer.Balancer)

	assert.NoError(t, producer.Close())
}

// TestPublish_Success tests that predictions are keyed by fixture
func TestPublish_Success(t *testing.T) {
	writer := &recordingWriter{}
	producer := newKafkaProducer(writer, "match_predictions", zerolog.Nop())

	prediction := &models.Prediction{
		ID:        uuid.New(),
		FixtureID: "fixture-123",
		TeamA:     "Arsenal",
		TeamB:     "Everton",
		Seed:      42,
		CreatedAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	err := producer.Publish(context.Background(), prediction)

	require.NoError(t, err)
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "fixture-123", string(msg.Key))
	assert.Equal(t, prediction.CreatedAt, msg.Time)

	var decoded models.Prediction
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, prediction.ID, decoded.ID)
	assert.Equal(t, uint64(42), decoded.Seed)
}

// TestPublish_WriteFailure tests handling of a broker failure
func TestPublish_WriteFailure(t *testing.T) {
	writer := &recordingWriter{err: errors.New("leader not available")}
	producer := newKafkaProducer(writer, "match_predictions", zerolog.Nop())

	err := producer.Publish(context.Background(), &models.Prediction{ID: uuid.New(), FixtureID: "fixture-123"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write to Kafka")
}

// TestProducer_Close tests closing the underlying writer
func TestProducer_Close(t *testing.T) {
	writer := &recordingWriter{}
	producer := newKafkaProducer(writer, "match_predictions", zerolog.Nop())

	assert.NoError(t, producer.Close())
	assert.True(t, writer.closed)
}
