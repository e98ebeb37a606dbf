package analysis

import (
	"math"

	"github.com/yourusername/matchcast/internal/models"
)

// Radar axis ingredients, all on a 0-100 scale before blending:
//
//	formScore     = points from the last five results over the 15 available
//	rankScore     = 100 at the top of the table, -5 per rank below
//	goalScore     = 50 plus 5 per top-scorer goal, capped at 100
//	momentumBonus = +8 per consecutive win
const (
	formWindowMaxPoints = 15.0
	rankScoreStep       = 5.0
	goalScoreBase       = 50.0
	goalScoreStep       = 5.0
	momentumStep        = 8.0
	lossDefensePenalty  = 15.0
)

// BuildRadar derives the five presentation axes for one team from its
// snapshot. All axes are rounded to integers and capped at 100.
func BuildRadar(t *models.TeamSnapshot) models.RadarAxes {
	if t == nil {
		return models.RadarAxes{}
	}

	wins := t.Wins()
	draws := t.Draws()
	losses := t.Losses()

	formScore := float64(wins*3+draws) / formWindowMaxPoints * 100
	rankScore := math.Max(0, 100-float64(t.LeagueRank-1)*rankScoreStep)
	goalScore := math.Min(100, goalScoreBase+float64(t.TopScorer.Goals)*goalScoreStep)
	momentum := float64(t.Streak(models.ResultWin)) * momentumStep

	return models.RadarAxes{
		Attack:       axis(rankScore*0.4 + goalScore*0.4 + formScore*0.2),
		Defense:      axis(rankScore*0.5 + (100-float64(losses)*lossDefensePenalty)*0.5),
		Organization: axis(rankScore*0.6 + formScore*0.4),
		Form:         axis(formScore + momentum),
		Finishing:    axis(goalScore),
	}
}

// axis rounds a blended score and pins it to the 0-100 chart range.
func axis(v float64) float64 {
	r := math.Round(v)
	if r > 100 {
		return 100
	}
	if r < 0 {
		return 0
	}
	return r
}
