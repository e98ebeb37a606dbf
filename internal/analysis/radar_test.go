package analysis

import (
	"testing"

	"github.com/yourusername/matchcast/internal/models"
)

func snapshot(rank int, goals int, results ...models.Result) *models.TeamSnapshot {
	return &models.TeamSnapshot{
		Name:          "Test FC",
		LeagueRank:    rank,
		RecentResults: results,
		TopScorer:     models.TopScorer{Name: "Striker", Goals: goals},
	}
}

func TestBuildRadarSaturation(t *testing.T) {
	// A runaway leader maxes every axis despite the momentum bonus
	// pushing raw form past 100.
	top := snapshot(1, 12,
		models.ResultWin, models.ResultWin, models.ResultWin, models.ResultWin, models.ResultWin)
	r := BuildRadar(top)
	want := models.RadarAxes{Attack: 100, Defense: 100, Organization: 100, Form: 100, Finishing: 100}
	if r != want {
		t.Fatalf("expected all axes at 100, got %+v", r)
	}
}

func TestBuildRadarMidTable(t *testing.T) {
	mid := snapshot(10, 6,
		models.ResultWin, models.ResultDraw, models.ResultLoss, models.ResultWin, models.ResultLoss)
	r := BuildRadar(mid)

	// formScore 46.67, rankScore 55, goalScore 80, momentum 8
	want := models.RadarAxes{Attack: 63, Defense: 63, Organization: 52, Form: 55, Finishing: 80}
	if r != want {
		t.Fatalf("expected %+v, got %+v", want, r)
	}
}

func TestBuildRadarDeepRankFloor(t *testing.T) {
	// Ranks past 21 exhaust the rank score; axes must not go negative.
	bottom := snapshot(25, 0,
		models.ResultLoss, models.ResultLoss, models.ResultLoss, models.ResultLoss, models.ResultLoss)
	r := BuildRadar(bottom)
	if r.Attack < 0 || r.Defense < 0 || r.Organization < 0 || r.Form < 0 || r.Finishing < 0 {
		t.Fatalf("axes must stay non-negative, got %+v", r)
	}
	if r.Organization != 0 {
		t.Fatalf("winless bottom side should have zero organization, got %+v", r)
	}
}

func TestBuildRadarNil(t *testing.T) {
	if r := BuildRadar(nil); r != (models.RadarAxes{}) {
		t.Fatalf("nil snapshot should produce zero axes, got %+v", r)
	}
}
