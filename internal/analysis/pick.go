package analysis

import "github.com/yourusername/matchcast/internal/models"

// pickOrder is the canonical outcome priority for tie-breaking. When two
// or more components share the maximum, the earliest outcome in this
// order is selected. The legacy analysis modules disagreed on this order;
// home, draw, away is the documented canonical choice.
var pickOrder = []models.Outcome{models.OutcomeHome, models.OutcomeDraw, models.OutcomeAway}

// SelectPick returns the outcome with the maximum probability. Ties go
// to the earliest outcome in pickOrder. Always succeeds for a
// well-formed triple.
func SelectPick(p models.ProbabilityTriple) models.Pick {
	probs := map[models.Outcome]float64{
		models.OutcomeHome: p.Home,
		models.OutcomeDraw: p.Draw,
		models.OutcomeAway: p.Away,
	}

	best := pickOrder[0]
	for _, outcome := range pickOrder[1:] {
		if probs[outcome] > probs[best] {
			best = outcome
		}
	}

	return models.Pick{
		Outcome:     best,
		Probability: probs[best],
		Label:       best.Label(),
	}
}
