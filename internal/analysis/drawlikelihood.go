package analysis

import (
	"math"

	"github.com/yourusername/matchcast/internal/models"
)

// Neutral defaults substituted for absent feature fields. The home-side
// xG and goals-for defaults are slightly higher than away, reflecting
// the long-run home advantage baked into the training data.
const (
	defaultForm        = 1.0
	defaultHomeXG      = 1.2
	defaultAwayXG      = 1.0
	defaultHomeGoals   = 1.2
	defaultAwayGoals   = 1.0
	defaultH2HDrawPct  = 20.0
	neutralDrawScore   = 0.5
	drawWarnThreshold  = 0.7
	drawCloseThreshold = 0.6
)

// DrawLikelihood computes a closeness/parity score in [0,1] from the
// fixture's feature snapshot. Individual absent fields default to
// neutral constants; an entirely absent snapshot yields the fixed
// neutral value 0.5 — "no data" is not the same as "data showing
// parity", so the defaults path is not used in that case.
func DrawLikelihood(snapshot *models.FeatureSnapshot) float64 {
	if snapshot == nil {
		return neutralDrawScore
	}

	formDiff := math.Abs(models.FloatOr(snapshot.HomeFormLast5, defaultForm) -
		models.FloatOr(snapshot.AwayFormLast5, defaultForm))
	xgDiff := math.Abs(models.FloatOr(snapshot.HomeXGAvg, defaultHomeXG) -
		models.FloatOr(snapshot.AwayXGAvg, defaultAwayXG))
	goalsDiff := math.Abs(models.FloatOr(snapshot.HomeGoalsForAvg, defaultHomeGoals) -
		models.FloatOr(snapshot.AwayGoalsForAvg, defaultAwayGoals))

	h2hDraws := models.IntOr(snapshot.H2HDraws, 0)
	h2hTotal := models.IntOr(snapshot.H2HTotalMatches, 0)
	h2hDrawPct := defaultH2HDrawPct
	if h2hTotal > 0 {
		h2hDrawPct = float64(h2hDraws) / float64(h2hTotal) * 100
	}

	likelihood := 0.3*(1-math.Min(formDiff, 2)/2) +
		0.3*(1-math.Min(xgDiff, 1)/1) +
		0.2*(1-math.Min(goalsDiff, 1.5)/1.5) +
		0.2*(math.Min(h2hDrawPct, 50)/50)

	return math.Max(0, math.Min(1, likelihood))
}

// DrawWarningFor converts a likelihood score into the user-facing
// warning object. >= 0.7 is a hard draw-risk warning, >= 0.6 a soft
// evenly-matched note, below that no warning.
func DrawWarningFor(likelihood float64) models.DrawWarning {
	switch {
	case likelihood >= drawWarnThreshold:
		return models.DrawWarning{
			IsClose:    true,
			Likelihood: likelihood,
			Message:    "Close match - draw risk",
		}
	case likelihood >= drawCloseThreshold:
		return models.DrawWarning{
			IsClose:    true,
			Likelihood: likelihood,
			Message:    "Evenly matched sides",
		}
	default:
		return models.DrawWarning{IsClose: false, Likelihood: likelihood}
	}
}
