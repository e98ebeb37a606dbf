package analysis

import (
	"fmt"

	"github.com/yourusername/matchcast/internal/models"
)

// Factor is one detected situational influence on a fixture. Impact is
// an additive percentage-point delta applied to the affected outcome.
type Factor struct {
	Key     string         `json:"key"`
	Outcome models.Outcome `json:"outcome"`
	Impact  float64        `json:"impact"`
	Title   string         `json:"title"`
	Detail  string         `json:"detail"`
}

// Detection thresholds
const (
	fatigueRestDays  = 3
	strongWinRatePct = 60.0
	weakWinRatePct   = 30.0
	streakLength     = 3
	fatigueImpact    = -10.0
	strongFormImpact = 5.0
	weakFormImpact   = -8.0
	badWeatherImpact = 8.0
	winStreakImpact  = 3.0
	lossStreakImpact = -5.0
)

// DetectFactors scans both team snapshots and the weather for the
// situational signals the adjustment layer understands. Order is
// stable: home-side factors, away-side factors, then weather.
func DetectFactors(home, away *models.TeamSnapshot, weather *models.Weather) []Factor {
	var factors []Factor
	factors = append(factors, teamFactors(home, models.OutcomeHome, "home")...)
	factors = append(factors, teamFactors(away, models.OutcomeAway, "away")...)

	if weather != nil && weather.IsBad() {
		factors = append(factors, Factor{
			Key:     "bad_weather",
			Outcome: models.OutcomeDraw,
			Impact:  badWeatherImpact,
			Title:   "Difficult conditions",
			Detail:  fmt.Sprintf("%s forecast favours a cagey, low-scoring game", weather.Condition),
		})
	}
	return factors
}

func teamFactors(t *models.TeamSnapshot, outcome models.Outcome, side string) []Factor {
	if t == nil {
		return nil
	}
	var factors []Factor

	if t.LastMatchDaysAgo < fatigueRestDays {
		factors = append(factors, Factor{
			Key:     side + "_fatigue",
			Outcome: outcome,
			Impact:  fatigueImpact,
			Title:   t.Name + " short on rest",
			Detail:  fmt.Sprintf("Only %d days since their last match", t.LastMatchDaysAgo),
		})
	}

	if rate := t.WinRate(); rate >= strongWinRatePct {
		factors = append(factors, Factor{
			Key:     side + "_strong_form",
			Outcome: outcome,
			Impact:  strongFormImpact,
			Title:   t.Name + " in strong form",
			Detail:  fmt.Sprintf("Winning %.0f%% of their recent matches", rate),
		})
	} else if len(t.RecentResults) > 0 && rate < weakWinRatePct {
		factors = append(factors, Factor{
			Key:     side + "_weak_form",
			Outcome: outcome,
			Impact:  weakFormImpact,
			Title:   t.Name + " struggling",
			Detail:  fmt.Sprintf("Winning only %.0f%% of their recent matches", rate),
		})
	}

	if streak := t.Streak(models.ResultWin); streak >= streakLength {
		factors = append(factors, Factor{
			Key:     side + "_win_streak",
			Outcome: outcome,
			Impact:  winStreakImpact,
			Title:   t.Name + " riding momentum",
			Detail:  fmt.Sprintf("%d straight wins", streak),
		})
	} else if streak := t.Streak(models.ResultLoss); streak >= streakLength {
		factors = append(factors, Factor{
			Key:     side + "_loss_streak",
			Outcome: outcome,
			Impact:  lossStreakImpact,
			Title:   t.Name + " on a slide",
			Detail:  fmt.Sprintf("%d straight defeats", streak),
		})
	}

	return factors
}

// ApplyFactors shifts a probability triple by each factor's impact: the
// affected outcome moves by the full impact and the other two outcomes
// each absorb half of it in the opposite direction. The result is
// renormalized through the same clamp pipeline as the toggle engine.
func ApplyFactors(base models.ProbabilityTriple, factors []Factor) models.ProbabilityTriple {
	home := base.Home
	draw := base.Draw
	away := base.Away

	for _, f := range factors {
		half := f.Impact / 2
		switch f.Outcome {
		case models.OutcomeHome:
			home += f.Impact
			draw -= half
			away -= half
		case models.OutcomeAway:
			away += f.Impact
			draw -= half
			home -= half
		case models.OutcomeDraw:
			draw += f.Impact
			home -= half
			away -= half
		}
	}

	return ApplyAdjustments(models.ProbabilityTriple{Home: home, Draw: draw, Away: away}, Toggles{})
}
