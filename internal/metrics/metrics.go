// Package metrics provides the centralized Prometheus metrics registry
// for the prediction engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsComputedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchcast",
		Name:      "predictions_computed_total",
		Help:      "Total number of predictions computed by probability source",
	}, []string{"source"})
	ValueBetsFlaggedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchcast",
		Name:      "value_bets_flagged_total",
		Help:      "Total number of value bets flagged by league and outcome",
	}, []string{"league", "outcome"})
	DrawWarningsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchcast",
		Name:      "draw_warnings_total",
		Help:      "Total number of draw-risk warnings raised",
	})
	IngestionRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchcast",
		Name:      "ingestion_runs_total",
		Help:      "Total number of ingestion job runs by job and status",
	}, []string{"job", "status"})
	IngestionRecordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchcast",
		Name:      "ingestion_records_total",
		Help:      "Total number of records ingested by job",
	}, []string{"job"})
)

// Gauge metrics
var (
	UpcomingFixtures = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchcast",
		Name:      "upcoming_fixtures",
		Help:      "Number of upcoming fixtures tracked",
	})
	OddsFeedConnected = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchcast",
		Name:      "odds_feed_connected",
		Help:      "Whether the streaming odds feed connection is up",
	})
	LastIngestionTimestamp = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "matchcast",
		Name:      "last_ingestion_timestamp_seconds",
		Help:      "Unix time of the last successful run of each ingestion job",
	}, []string{"job"})
)

// Histogram metrics
var (
	PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "matchcast",
		Name:      "prediction_duration_seconds",
		Help:      "Duration of full prediction computation in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	APIRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "matchcast",
		Name:      "api_request_duration_seconds",
		Help:      "Latency of API endpoints in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "status"})
	IngestionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "matchcast",
		Name:      "ingestion_duration_seconds",
		Help:      "Duration of ingestion job runs in seconds",
		Buckets:   []float64{0.5, 1, 5, 10, 30, 60, 300},
	}, []string{"job"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(PredictionsComputedTotal)
		registry.MustRegister(ValueBetsFlaggedTotal)
		registry.MustRegister(DrawWarningsTotal)
		registry.MustRegister(IngestionRunsTotal)
		registry.MustRegister(IngestionRecordsTotal)

		// Register gauge metrics
		registry.MustRegister(UpcomingFixtures)
		registry.MustRegister(OddsFeedConnected)
		registry.MustRegister(LastIngestionTimestamp)

		// Register histogram metrics
		registry.MustRegister(PredictionDuration)
		registry.MustRegister(APIRequestDuration)
		registry.MustRegister(IngestionDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler. The model client
// registers its metrics on the default registry, so both are served.
func Handler() http.Handler {
	gatherers := prometheus.Gatherers{GetRegistry(), prometheus.DefaultGatherer}
	return promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})
}

// RecordPrediction records a computed prediction by probability source.
func RecordPrediction(source string, durationSeconds float64) {
	PredictionsComputedTotal.WithLabelValues(source).Inc()
	PredictionDuration.Observe(durationSeconds)
}

// RecordValueBet records a flagged value bet.
func RecordValueBet(league, outcome string) {
	ValueBetsFlaggedTotal.WithLabelValues(league, outcome).Inc()
}

// RecordDrawWarning records a draw-risk warning.
func RecordDrawWarning() {
	DrawWarningsTotal.Inc()
}

// RecordIngestionRun records an ingestion job run.
func RecordIngestionRun(job, status string, durationSeconds float64, records int) {
	IngestionRunsTotal.WithLabelValues(job, status).Inc()
	IngestionDuration.WithLabelValues(job).Observe(durationSeconds)
	if status == "success" {
		IngestionRecordsTotal.WithLabelValues(job).Add(float64(records))
	}
}

// UpdateUpcomingFixtures updates the tracked upcoming fixture count.
func UpdateUpcomingFixtures(count float64) {
	UpcomingFixtures.Set(count)
}

// UpdateOddsFeedConnected flips the odds feed connection gauge.
func UpdateOddsFeedConnected(connected bool) {
	if connected {
		OddsFeedConnected.Set(1)
	} else {
		OddsFeedConnected.Set(0)
	}
}

// RecordAPIRequest records an API endpoint request.
func RecordAPIRequest(endpoint, status string, durationSeconds float64) {
	APIRequestDuration.WithLabelValues(endpoint, status).Observe(durationSeconds)
}
