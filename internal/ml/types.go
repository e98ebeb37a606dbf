package ml

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/matchcast/internal/models"
)

// PredictionResult represents one model-served outcome distribution.
// Probability components are percentages summing to 100.
type PredictionResult struct {
	FixtureID     uuid.UUID                `json:"fixture_id"`
	Probabilities models.ProbabilityTriple `json:"probabilities"`
	Confidence    float64                  `json:"confidence"`
	ModelVersion  string                   `json:"model_version"`
	PredictedAt   time.Time                `json:"predicted_at"`
}

// PredictionRequest represents one fixture submitted for prediction
type PredictionRequest struct {
	FixtureID uuid.UUID               `json:"fixture_id"`
	Features  *models.FeatureSnapshot `json:"features"`
}

// CacheKey uniquely identifies a cached prediction
type CacheKey struct {
	FixtureID    uuid.UUID
	ModelVersion string
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return k.FixtureID.String() + ":" + k.ModelVersion
}
