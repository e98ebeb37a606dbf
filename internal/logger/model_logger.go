// Package logger provides model-service-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// ModelLogger provides dedicated logging for model service operations.
type ModelLogger struct {
	*logrus.Entry
}

// NewModelLogger creates a new model service logger.
func NewModelLogger(baseLogger logrus.FieldLogger) *ModelLogger {
	return &ModelLogger{
		Entry: baseLogger.WithField("component", "model"),
	}
}

// LogPredictionRequest logs a model prediction request.
func (ml *ModelLogger) LogPredictionRequest(modelVersion string, featuresPresent int, cacheHit bool, latencyMs float64) {
	ml.WithFields(logrus.Fields{
		"model_version":    modelVersion,
		"features_present": featuresPresent,
		"cache_hit":        cacheHit,
		"latency_ms":       latencyMs,
	}).Info("Model prediction request completed")
}

// LogBatchPrediction logs a batch prediction round trip.
func (ml *ModelLogger) LogBatchPrediction(requested, served, cached int, latencyMs float64) {
	ml.WithFields(logrus.Fields{
		"requested":  requested,
		"served":     served,
		"cached":     cached,
		"latency_ms": latencyMs,
	}).Info("Batch prediction completed")
}

// LogPredictionError logs a model prediction failure.
func (ml *ModelLogger) LogPredictionError(modelVersion string, errorReason string) {
	ml.WithFields(logrus.Fields{
		"model_version": modelVersion,
		"error_reason":  errorReason,
	}).Error("Model prediction failed")
}
