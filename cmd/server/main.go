package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cypherlabdev/match-predictor-service/internal/cache"
	"github.com/cypherlabdev/match-predictor-service/internal/config"
	httpHandler "github.com/cypherlabdev/match-predictor-service/internal/handler/http"
	"github.com/cypherlabdev/match-predictor-service/internal/messaging"
	"github.com/cypherlabdev/match-predictor-service/internal/metrics"
	"github.com/cypherlabdev/match-predictor-service/internal/service"
	"github.com/cypherlabdev/match-predictor-service/pkg/predictor"
)

func main() {
	configPath := os.Getenv("MATCH_PREDICTOR_CONFIG")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)
	logger.Info().Msg("starting match-predictor-service")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create Redis cache
	redisCache := cache.NewRedisCache(
		cache.RedisCacheConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		},
		logger,
	)
	defer redisCache.Close()

	// Test Redis connection
	if err := redisCache.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")

	// Create predictor
	params, err := cfg.Model.ToPredictionParams()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid model config")
	}
	matchPredictor := predictor.NewPredictor(params, logger)
	logger.Info().
		Str("formula", params.ExpectedGoals.Formula).
		Int("trials", params.Simulation.Trials).
		Msg("predictor initialized")

	// Create Kafka producer for predictions
	producer := messaging.NewKafkaProducer(
		messaging.KafkaProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.PredictionsTopic,
		},
		logger,
	)
	defer producer.Close()

	// Create predictor service layer
	serviceMetrics := metrics.New(prometheus.DefaultRegisterer)
	predictorService := service.NewPredictorService(matchPredictor, redisCache, producer, serviceMetrics, logger)
	logger.Info().Msg("predictor service initialized")

	// Create Kafka consumer
	consumer := messaging.NewKafkaConsumer(
		messaging.KafkaConsumerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		},
		predictorService,
		logger,
	)
	defer consumer.Close()

	// Start Kafka consumer in goroutine
	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error().Err(err).Msg("Kafka consumer failed")
		}
	}()

	// Initialize HTTP handler
	predictionHandler := httpHandler.NewPredictionHandler(predictorService, logger)
	logger.Info().Msg("HTTP handler initialized")

	// Setup HTTP server routes
	router := mux.NewRouter()

	// Health and monitoring endpoints
	router.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		readyHandler(w, r, redisCache)
	}).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler())

	// Register API routes
	predictionHandler.RegisterRoutes(router)
	logger.Info().Msg("API routes registered")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start HTTP server in goroutine
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully...")

	// Cancel context to stop consumer
	cancel()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logger.Info().Msg("shutdown complete")
}

// setupLogger configures the logger based on config
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set format
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return log.Logger.With().Str("service", "match-predictor").Logger()
}

// healthHandler returns 200 if service is running
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// readyHandler returns 200 if service is ready to accept traffic
func readyHandler(w http.ResponseWriter, r *http.Request, cache *cache.RedisCache) {
	// Check Redis connection
	if err := cache.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Redis unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
