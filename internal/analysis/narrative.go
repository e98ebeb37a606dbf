package analysis

import (
	"fmt"

	"github.com/yourusername/matchcast/internal/models"
)

// BuildReport composes the rule-based narrative for a fixture. Every
// line is derived from the same snapshots the numeric engines consume,
// so the text can never contradict the numbers.
func BuildReport(home, away *models.TeamSnapshot, weather *models.Weather, pick models.Pick, warning models.DrawWarning) *models.Report {
	report := &models.Report{
		HomeAnalysis: teamNarrative(home),
		AwayAnalysis: teamNarrative(away),
		Conclusion:   conclusion(home, away, pick, warning),
	}
	if weather != nil && weather.IsBad() {
		report.WeatherNote = fmt.Sprintf(
			"Forecast is %s: expect a slower pitch and a higher chance of a stalemate.",
			weather.Condition)
	}
	return report
}

func teamNarrative(t *models.TeamSnapshot) []string {
	if t == nil {
		return nil
	}
	var lines []string

	wins := t.Wins()
	draws := t.Draws()
	losses := t.Losses()
	if n := len(t.RecentResults); n > 0 {
		lines = append(lines, fmt.Sprintf("%s have taken %d wins, %d draws and %d defeats from their last %d.",
			t.Name, wins, draws, losses, n))
	}

	if streak := t.Streak(models.ResultWin); streak >= streakLength {
		lines = append(lines, fmt.Sprintf("They arrive on a %d-match winning run.", streak))
	} else if streak := t.Streak(models.ResultLoss); streak >= streakLength {
		lines = append(lines, fmt.Sprintf("They have lost %d in a row and confidence will be low.", streak))
	}

	if t.LeagueRank > 0 {
		switch {
		case t.LeagueRank <= 4:
			lines = append(lines, fmt.Sprintf("Sitting %s in the table, they are among the division's strongest sides.", ordinal(t.LeagueRank)))
		case t.LeagueRank >= 17:
			lines = append(lines, fmt.Sprintf("Languishing %s, they are firmly in the relegation scrap.", ordinal(t.LeagueRank)))
		}
	}

	if t.TopScorer.Name != "" {
		if t.TopScorer.IsInjured {
			lines = append(lines, fmt.Sprintf("Top scorer %s (%d goals) is an injury doubt, a real blow to their attack.",
				t.TopScorer.Name, t.TopScorer.Goals))
		} else if t.TopScorer.Goals >= 10 {
			lines = append(lines, fmt.Sprintf("%s carries the attack with %d goals this season.",
				t.TopScorer.Name, t.TopScorer.Goals))
		}
	}

	if t.LastMatchDaysAgo > 0 && t.LastMatchDaysAgo < fatigueRestDays {
		lines = append(lines, fmt.Sprintf("Only %d days of rest since their last outing could tell late on.", t.LastMatchDaysAgo))
	}

	return lines
}

func conclusion(home, away *models.TeamSnapshot, pick models.Pick, warning models.DrawWarning) string {
	homeName, awayName := "the home side", "the away side"
	if home != nil {
		homeName = home.Name
	}
	if away != nil {
		awayName = away.Name
	}

	if warning.IsClose {
		return fmt.Sprintf("Little separates %s and %s here; the draw is live and the lean towards %s is a tentative one.",
			homeName, awayName, pickName(pick, homeName, awayName))
	}

	switch pick.Outcome {
	case models.OutcomeDraw:
		return fmt.Sprintf("Neither %s nor %s holds a clear edge; a share of the points is the most likely result.",
			homeName, awayName)
	default:
		return fmt.Sprintf("%s look the stronger side and are favoured at %.1f%%.",
			pickName(pick, homeName, awayName), pick.Probability)
	}
}

func pickName(pick models.Pick, homeName, awayName string) string {
	switch pick.Outcome {
	case models.OutcomeHome:
		return homeName
	case models.OutcomeAway:
		return awayName
	default:
		return "the draw"
	}
}

func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
