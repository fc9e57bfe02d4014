package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prediction sources
const (
	SourceHTTP  = "http"
	SourceKafka = "kafka"
)

// Prediction outcomes
const (
	StatusSuccess      = "success"
	StatusTeamNotFound = "team_not_found"
	StatusError        = "error"
)

// Metrics holds the service's Prometheus collectors
type Metrics struct {
	PredictionsTotal   *prometheus.CounterVec
	PredictionDuration prometheus.Histogram
	CacheErrorsTotal   *prometheus.CounterVec
	ExpectedGoals      *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PredictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "match_predictor",
			Name:      "predictions_total",
			Help:      "Predictions served, by source and status.",
		}, []string{"source", "status"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "match_predictor",
			Name:      "prediction_duration_seconds",
			Help:      "Time spent estimating and simulating one fixture.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		CacheErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "match_predictor",
			Name:      "cache_errors_total",
			Help:      "Cache operations that failed, by operation.",
		}, []string{"operation"}),
		ExpectedGoals: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "match_predictor",
			Name:      "expected_goals",
			Help:      "Calibrated expected goals per side.",
			Buckets:   prometheus.LinearBuckets(0.25, 0.25, 16),
		}, []string{"side"}),
	}

	reg.MustRegister(m.PredictionsTotal, m.PredictionDuration, m.CacheErrorsTotal, m.ExpectedGoals)
	return m
}
