package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = errors.New("not found in cache")

// RedisCache caches team snapshots and predictions in Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr     string // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., 10 * time.Minute
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

// predictionKey builds prediction:{fixture_id}:{prediction_id}
func predictionKey(fixtureID, predictionID string) string {
	return fmt.Sprintf("prediction:%s:%s", fixtureID, predictionID)
}

// teamKey builds team:{name}; names are matched case-insensitively
func teamKey(team string) string {
	return "team:" + strings.ToLower(strings.TrimSpace(team))
}

// SetPrediction caches a prediction
func (c *RedisCache) SetPrediction(ctx context.Context, prediction *models.Prediction) error {
	key := predictionKey(prediction.FixtureID, prediction.ID.String())

	data, err := json.Marshal(prediction)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Dur("ttl", c.ttl).
		Msg("cached prediction")

	return nil
}

// GetPrediction retrieves a cached prediction
func (c *RedisCache) GetPrediction(ctx context.Context, fixtureID, predictionID string) (*models.Prediction, error) {
	data, err := c.client.Get(ctx, predictionKey(fixtureID, predictionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("prediction %s: %w", predictionID, ErrCacheMiss)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var prediction models.Prediction
	if err := json.Unmarshal(data, &prediction); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prediction: %w", err)
	}

	return &prediction, nil
}

// GetPredictionsByFixture retrieves all cached predictions for a fixture
func (c *RedisCache) GetPredictionsByFixture(ctx context.Context, fixtureID string) ([]*models.Prediction, error) {
	pattern := predictionKey(fixtureID, "*")

	// Scan for keys matching pattern
	var cursor uint64
	var keys []string

	for {
		var scanKeys []string
		var err error
		scanKeys, cursor, err = c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys: %w", err)
		}

		keys = append(keys, scanKeys...)

		if cursor == 0 {
			break
		}
	}

	predictions := make([]*models.Prediction, 0, len(keys))
	for _, key := range keys {
		data, err := c.client.Get(ctx, key).Bytes()
		if err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to get key")
			continue
		}

		var prediction models.Prediction
		if err := json.Unmarshal(data, &prediction); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to unmarshal prediction")
			continue
		}

		predictions = append(predictions, &prediction)
	}

	return predictions, nil
}

// SetTeamSnapshots caches upstream statistics for several teams
func (c *RedisCache) SetTeamSnapshots(ctx context.Context, snapshots []*models.TeamSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	// Use pipeline for batch operations
	pipe := c.client.Pipeline()

	for _, snapshot := range snapshots {
		data, err := json.Marshal(snapshot)
		if err != nil {
			c.logger.Error().Err(err).Str("team", snapshot.Team).Msg("failed to marshal team snapshot")
			continue
		}
		pipe.Set(ctx, teamKey(snapshot.Team), data, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute pipeline: %w", err)
	}

	c.logger.Debug().
		Int("count", len(snapshots)).
		Msg("cached team snapshots")

	return nil
}

// GetTeamSnapshot retrieves cached upstream statistics for a team
func (c *RedisCache) GetTeamSnapshot(ctx context.Context, team string) (*models.TeamSnapshot, error) {
	data, err := c.client.Get(ctx, teamKey(team)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("team %q: %w", team, ErrCacheMiss)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var snapshot models.TeamSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team snapshot: %w", err)
	}

	return &snapshot, nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
