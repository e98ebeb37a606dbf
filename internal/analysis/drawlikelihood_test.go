package analysis

import (
	"math"
	"testing"

	"github.com/yourusername/matchcast/internal/models"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func TestDrawLikelihoodNilSnapshot(t *testing.T) {
	if got := DrawLikelihood(nil); got != 0.5 {
		t.Fatalf("expected exactly 0.5 for absent snapshot, got %v", got)
	}
}

func TestDrawLikelihoodIdenticalSides(t *testing.T) {
	snap := &models.FeatureSnapshot{
		HomeFormLast5:   fp(1.8),
		AwayFormLast5:   fp(1.8),
		HomeXGAvg:       fp(1.4),
		AwayXGAvg:       fp(1.4),
		HomeGoalsForAvg: fp(1.2),
		AwayGoalsForAvg: fp(1.2),
		H2HDraws:        ip(5),
		H2HTotalMatches: ip(10),
	}
	if got := DrawLikelihood(snap); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("identical sides with draw-heavy h2h should max out, got %v", got)
	}
}

func TestDrawLikelihoodMismatchedSides(t *testing.T) {
	snap := &models.FeatureSnapshot{
		HomeFormLast5:   fp(3.0),
		AwayFormLast5:   fp(0.4),
		HomeXGAvg:       fp(2.4),
		AwayXGAvg:       fp(0.8),
		HomeGoalsForAvg: fp(2.6),
		AwayGoalsForAvg: fp(0.7),
		H2HDraws:        ip(0),
		H2HTotalMatches: ip(8),
	}
	got := DrawLikelihood(snap)
	if got >= drawCloseThreshold {
		t.Fatalf("lopsided fixture should score below %.1f, got %v", drawCloseThreshold, got)
	}
	if got < 0 {
		t.Fatalf("likelihood must not go negative, got %v", got)
	}
}

func TestDrawLikelihoodPartialDefaults(t *testing.T) {
	// Only h2h known; the rest falls back to neutral defaults with the
	// built-in home lean, so the score lands mid-range, not at 0.5.
	snap := &models.FeatureSnapshot{
		H2HDraws:        ip(2),
		H2HTotalMatches: ip(10),
	}
	got := DrawLikelihood(snap)
	if got <= 0 || got >= 1 {
		t.Fatalf("expected interior score, got %v", got)
	}
}

func TestDrawWarningFor(t *testing.T) {
	tests := []struct {
		likelihood float64
		isClose    bool
		message    string
	}{
		{0.75, true, "Close match - draw risk"},
		{0.70, true, "Close match - draw risk"},
		{0.65, true, "Evenly matched sides"},
		{0.60, true, "Evenly matched sides"},
		{0.59, false, ""},
		{0.10, false, ""},
	}
	for _, tt := range tests {
		w := DrawWarningFor(tt.likelihood)
		if w.IsClose != tt.isClose || w.Message != tt.message {
			t.Fatalf("likelihood %.2f: got %+v", tt.likelihood, w)
		}
		if w.Likelihood != tt.likelihood {
			t.Fatalf("warning must echo the likelihood, got %v", w.Likelihood)
		}
	}
}
