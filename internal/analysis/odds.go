// Package analysis implements the prediction core: odds de-margining,
// pick selection, confidence grading, draw-likelihood estimation,
// value-bet detection, what-if adjustment and radar power ratings.
// Everything in this package is a pure function of its inputs and safe
// for concurrent use.
package analysis

import (
	"fmt"

	"github.com/yourusername/matchcast/internal/models"
)

// NormalizeOdds converts raw decimal odds into de-margined implied
// probabilities in percent. The raw implied probabilities 1/odds sum to
// more than 1 because of the bookmaker margin; dividing each by the sum
// removes the overround so the output sums to exactly 100.
func NormalizeOdds(home, draw, away float64) (models.ProbabilityTriple, error) {
	if home <= 0 || draw <= 0 || away <= 0 {
		return models.ProbabilityTriple{}, fmt.Errorf("%w: got (%.2f, %.2f, %.2f)",
			models.ErrInvalidOdds, home, draw, away)
	}

	rawHome := 1.0 / home
	rawDraw := 1.0 / draw
	rawAway := 1.0 / away
	total := rawHome + rawDraw + rawAway

	return models.ProbabilityTriple{
		Home: rawHome / total * 100,
		Draw: rawDraw / total * 100,
		Away: rawAway / total * 100,
	}, nil
}

// NormalizeTriple de-margins an odds triple record
func NormalizeTriple(odds models.OddsTriple) (models.ProbabilityTriple, error) {
	return NormalizeOdds(odds.Home, odds.Draw, odds.Away)
}

// Overround returns the bookmaker margin of an odds triple as a
// fraction: sum(1/odds) - 1. Used by ingestion sanity checks.
func Overround(odds models.OddsTriple) (float64, error) {
	if !odds.IsValid() {
		return 0, fmt.Errorf("%w: %+v", models.ErrInvalidOdds, odds)
	}
	return 1.0/odds.Home + 1.0/odds.Draw + 1.0/odds.Away - 1.0, nil
}
