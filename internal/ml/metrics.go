package ml

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ModelPredictionsTotal tracks predictions served by source and cache state
	ModelPredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "matchcast",
			Subsystem: "ml",
			Name:      "predictions_total",
			Help:      "Total model predictions served",
		},
		[]string{"source", "cached"},
	)

	// ModelErrorsTotal tracks model service call failures
	ModelErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "matchcast",
			Subsystem: "ml",
			Name:      "errors_total",
			Help:      "Total model service errors",
		},
		[]string{"operation", "reason"},
	)

	// ModelPredictionLatency tracks model call latency
	ModelPredictionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "matchcast",
			Subsystem: "ml",
			Name:      "prediction_latency_seconds",
			Help:      "Model prediction latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"transport"},
	)

	// ModelCacheHitRatio tracks the prediction cache hit ratio
	ModelCacheHitRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "matchcast",
			Subsystem: "ml",
			Name:      "cache_hit_ratio",
			Help:      "Prediction cache hit ratio",
		},
	)
)
