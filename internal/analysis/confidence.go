package analysis

import "github.com/yourusername/matchcast/internal/models"

// confidenceTier is one row of the grading step function. Thresholds are
// half-open on the lower bound: a probability exactly on a threshold
// belongs to the higher tier.
type confidenceTier struct {
	threshold   float64
	level       models.ConfidenceLevel
	stars       int
	accuracy    string
	description string
}

// Accuracy strings come from the historical backtest of graded picks.
var confidenceTiers = []confidenceTier{
	{70, models.ConfidenceHigh, 3, "77%", "high conviction pick"},
	{60, models.ConfidenceMedium, 2, "72%", "clear favourite"},
	{50, models.ConfidenceLow, 1, "65%", "tight match, judge carefully"},
}

var confidenceFloor = confidenceTier{0, models.ConfidenceUncertain, 0, "<60%", "hard to call"}

// GradeConfidence maps a winning probability to a discrete confidence
// tier. Accepts either a fraction (0-1) or a percentage (0-100); values
// at or below 1 are treated as fractions and scaled up.
func GradeConfidence(winProb float64) models.Confidence {
	pct := winProb
	if pct <= 1.0 {
		pct *= 100
	}

	tier := confidenceFloor
	for _, t := range confidenceTiers {
		if pct >= t.threshold {
			tier = t
			break
		}
	}

	return models.Confidence{
		Level:       tier.level,
		Stars:       tier.stars,
		Accuracy:    tier.accuracy,
		Description: tier.description,
	}
}
