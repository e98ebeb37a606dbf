package analysis

import (
	"math"

	"github.com/yourusername/matchcast/internal/models"
)

// Toggles are the what-if scenario switches a caller can flip on a
// baseline probability set. Each active toggle contributes a fixed
// additive delta before clamping.
type Toggles struct {
	Rain        bool `json:"rain"`
	HomeFatigue bool `json:"homeFatigue"`
	HomeInjury  bool `json:"homeInjury"`
	AwayFatigue bool `json:"awayFatigue"`
	AwayInjury  bool `json:"awayInjury"`
}

// Any reports whether at least one toggle is active.
func (t Toggles) Any() bool {
	return t.Rain || t.HomeFatigue || t.HomeInjury || t.AwayFatigue || t.AwayInjury
}

// Clamp bands applied after the additive deltas. Home and away are
// clamped first; draw absorbs the residual so the triple sums to 100.
const (
	sideProbMin = 5
	sideProbMax = 80
	drawProbMin = 5
	drawProbMax = 60
)

// Rain splits its +8 draw shift across both sides: floor(8/2) off the
// home side, the remainder off the away side.
const (
	rainDrawBoost     = 8
	rainHomeReduction = rainDrawBoost / 2
	rainAwayReduction = rainDrawBoost - rainHomeReduction
)

// ApplyAdjustments applies the active toggles' deltas to a baseline
// probability triple (integer percentages summing to 100) and
// renormalizes. Home and away are clamped to [5,80] first, then draw is
// recomputed as the residual and clamped to [5,60]; whatever the clamps
// displaced is added back into draw so the output always sums to
// exactly 100. The ordering matters: once a side is pinned at its band
// it must not move again, so draw absorbs the correction even when that
// pushes it past its own band.
func ApplyAdjustments(base models.ProbabilityTriple, t Toggles) models.ProbabilityTriple {
	home := base.Home
	draw := base.Draw
	away := base.Away

	if t.Rain {
		home -= rainHomeReduction
		away -= rainAwayReduction
		draw += rainDrawBoost
	}
	if t.HomeFatigue {
		home -= 10
		draw += 5
		away += 5
	}
	if t.HomeInjury {
		home -= 15
		draw += 7
		away += 8
	}
	if t.AwayFatigue {
		away -= 10
		draw += 5
		home += 5
	}
	if t.AwayInjury {
		away -= 15
		draw += 7
		home += 8
	}

	h := clampInt(int(math.Round(home)), sideProbMin, sideProbMax)
	a := clampInt(int(math.Round(away)), sideProbMin, sideProbMax)
	d := clampInt(100-h-a, drawProbMin, drawProbMax)

	// The draw clamp can break the sum; the clamped sides stay put and
	// draw takes the whole correction.
	if rest := 100 - h - a - d; rest != 0 {
		d += rest
	}

	return models.ProbabilityTriple{Home: float64(h), Draw: float64(d), Away: float64(a)}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
