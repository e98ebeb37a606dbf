package analysis

import (
	"testing"

	"github.com/yourusername/matchcast/internal/models"
)

func restedSnapshot(name string, days int, results ...models.Result) *models.TeamSnapshot {
	return &models.TeamSnapshot{
		Name:             name,
		LeagueRank:       8,
		RecentResults:    results,
		LastMatchDaysAgo: days,
	}
}

func factorKeys(factors []Factor) map[string]Factor {
	m := make(map[string]Factor, len(factors))
	for _, f := range factors {
		m[f.Key] = f
	}
	return m
}

func TestDetectFactorsFatigue(t *testing.T) {
	home := restedSnapshot("Tired FC", 2,
		models.ResultWin, models.ResultLoss, models.ResultWin, models.ResultLoss, models.ResultDraw)
	away := restedSnapshot("Fresh FC", 6,
		models.ResultWin, models.ResultLoss, models.ResultWin, models.ResultLoss, models.ResultDraw)

	byKey := factorKeys(DetectFactors(home, away, nil))
	f, ok := byKey["home_fatigue"]
	if !ok {
		t.Fatal("expected home fatigue factor for 2 days rest")
	}
	if f.Impact != -10 || f.Outcome != models.OutcomeHome {
		t.Fatalf("unexpected fatigue factor: %+v", f)
	}
	if _, ok := byKey["away_fatigue"]; ok {
		t.Fatal("6 days rest must not trigger fatigue")
	}
}

func TestDetectFactorsForm(t *testing.T) {
	// 3/5 wins = 60%, on the strong-form boundary.
	strong := restedSnapshot("Strong FC", 5,
		models.ResultWin, models.ResultLoss, models.ResultWin, models.ResultWin, models.ResultDraw)
	// 1/5 wins = 20%, below the weak threshold.
	weak := restedSnapshot("Weak FC", 5,
		models.ResultDraw, models.ResultWin, models.ResultLoss, models.ResultLoss, models.ResultDraw)

	byKey := factorKeys(DetectFactors(strong, weak, nil))
	if f := byKey["home_strong_form"]; f.Impact != 5 {
		t.Fatalf("expected +5 strong form factor, got %+v", f)
	}
	if f := byKey["away_weak_form"]; f.Impact != -8 || f.Outcome != models.OutcomeAway {
		t.Fatalf("expected -8 weak form factor, got %+v", f)
	}
}

func TestDetectFactorsStreaks(t *testing.T) {
	hot := restedSnapshot("Hot FC", 5,
		models.ResultWin, models.ResultWin, models.ResultWin, models.ResultLoss, models.ResultDraw)
	cold := restedSnapshot("Cold FC", 5,
		models.ResultLoss, models.ResultLoss, models.ResultLoss, models.ResultWin, models.ResultWin)

	byKey := factorKeys(DetectFactors(hot, cold, nil))
	if f := byKey["home_win_streak"]; f.Impact != 3 {
		t.Fatalf("expected +3 win streak factor, got %+v", f)
	}
	if f := byKey["away_loss_streak"]; f.Impact != -5 {
		t.Fatalf("expected -5 loss streak factor, got %+v", f)
	}
}

func TestDetectFactorsWeather(t *testing.T) {
	home := restedSnapshot("A", 5)
	away := restedSnapshot("B", 5)

	byKey := factorKeys(DetectFactors(home, away, &models.Weather{Condition: models.WeatherRainy}))
	f, ok := byKey["bad_weather"]
	if !ok {
		t.Fatal("rain must produce a draw factor")
	}
	if f.Outcome != models.OutcomeDraw || f.Impact != 8 {
		t.Fatalf("unexpected weather factor: %+v", f)
	}

	if byKey := factorKeys(DetectFactors(home, away, &models.Weather{Condition: models.WeatherSunny})); len(byKey) != 0 {
		t.Fatalf("sunny weather must not produce factors, got %+v", byKey)
	}
}

func TestApplyFactors(t *testing.T) {
	base := models.ProbabilityTriple{Home: 45, Draw: 25, Away: 30}
	factors := []Factor{{Key: "home_fatigue", Outcome: models.OutcomeHome, Impact: -10}}

	got := ApplyFactors(base, factors)
	// home 35, draw and away each gain 5, renormalized to integers
	want := models.ProbabilityTriple{Home: 35, Draw: 30, Away: 35}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got.Sum() != 100 {
		t.Fatalf("expected exact sum, got %v", got.Sum())
	}
}
