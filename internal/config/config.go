package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
	"github.com/cypherlabdev/match-predictor-service/pkg/predictor"
	"github.com/cypherlabdev/match-predictor-service/pkg/pricing"
)

// Config holds all configuration for match-predictor-service
type Config struct {
	Server  ServerConfig
	Kafka   KafkaConfig
	Redis   RedisConfig
	Model   ModelConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers          []string
	Topic            string // Topic to consume from (match_stats)
	GroupID          string `mapstructure:"group_id"`
	PredictionsTopic string `mapstructure:"predictions_topic"` // Topic to publish predictions to
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// ModelConfig holds prediction model parameters
type ModelConfig struct {
	Formula       string    // home-weighted-v1, away-boost-v1
	MinRawLambda  float64   `mapstructure:"min_raw_lambda"` // Lower bound on unscaled expected goals
	MaxRawLambda  float64   `mapstructure:"max_raw_lambda"` // Upper bound on unscaled expected goals
	MinScale      float64   `mapstructure:"min_scale"`      // Lower bound on calibration scale factor
	MaxScale      float64   `mapstructure:"max_scale"`      // Upper bound on calibration scale factor
	Trials        int       // Monte Carlo trials per prediction
	TopScorelines int       `mapstructure:"top_scorelines"` // Scorelines kept in a simulation result
	TopScorers    int       `mapstructure:"top_scorers"`    // Players reported per team
	OverLines     []float64 `mapstructure:"over_lines"`     // Total-goals lines, e.g. 2.5
	Margin        float64   // Overround applied to published odds
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "match_stats")
	v.SetDefault("kafka.group_id", "match-predictor")
	v.SetDefault("kafka.predictions_topic", "match_predictions")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 10*time.Minute)

	v.SetDefault("model.formula", predictor.FormulaHomeWeighted)
	v.SetDefault("model.min_raw_lambda", 0.05)
	v.SetDefault("model.max_raw_lambda", 4.5)
	v.SetDefault("model.min_scale", 0.4)
	v.SetDefault("model.max_scale", 2.5)
	v.SetDefault("model.trials", predictor.DefaultTrials)
	v.SetDefault("model.top_scorelines", 7)
	v.SetDefault("model.top_scorers", predictor.DefaultTopScorers)
	v.SetDefault("model.over_lines", []float64{1.5, 2.5, 3.5})
	v.SetDefault("model.margin", pricing.DefaultMargin)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("MATCH_PREDICTOR")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model config: %w", err)
	}

	return &config, nil
}

// Validate checks that the model bounds are usable
func (c *ModelConfig) Validate() error {
	if _, err := predictor.ExpectedGoalsParamsFor(c.Formula); err != nil {
		return err
	}
	if c.MinRawLambda <= 0 || c.MinRawLambda > c.MaxRawLambda {
		return fmt.Errorf("raw lambda bounds [%v, %v] must be positive and ordered", c.MinRawLambda, c.MaxRawLambda)
	}
	if c.MinScale <= 0 || c.MinScale > c.MaxScale {
		return fmt.Errorf("scale bounds [%v, %v] must be positive and ordered", c.MinScale, c.MaxScale)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", c.Trials)
	}
	if c.Margin < 0 || c.Margin > pricing.MaxMargin {
		return fmt.Errorf("margin %v must be within [0, %v]", c.Margin, pricing.MaxMargin)
	}
	return nil
}

// ToPredictionParams converts config to prediction parameters
func (c *ModelConfig) ToPredictionParams() (models.PredictionParams, error) {
	expectedGoals, err := predictor.ExpectedGoalsParamsFor(c.Formula)
	if err != nil {
		return models.PredictionParams{}, err
	}

	expectedGoals.MinRawLambda = c.MinRawLambda
	expectedGoals.MaxRawLambda = c.MaxRawLambda
	expectedGoals.MinScale = c.MinScale
	expectedGoals.MaxScale = c.MaxScale

	return models.PredictionParams{
		ExpectedGoals: expectedGoals,
		Simulation: models.SimulationParams{
			Trials:        c.Trials,
			TopScorelines: c.TopScorelines,
			OverLines:     c.OverLines,
		},
		TopScorers: c.TopScorers,
		Pricing:    models.PricingParams{Margin: c.Margin},
	}, nil
}
