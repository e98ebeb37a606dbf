package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/yourusername/matchcast/internal/models"
)

func TestNormalizeOdds(t *testing.T) {
	p, err := NormalizeOdds(1.80, 3.50, 4.20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := p.Rounded()
	if r.Home != 51.5 || r.Draw != 26.5 || r.Away != 22.1 {
		t.Fatalf("expected 51.5/26.5/22.1, got %.1f/%.1f/%.1f", r.Home, r.Draw, r.Away)
	}
	if math.Abs(p.Sum()-100) > 1e-9 {
		t.Fatalf("expected exact sum 100, got %.6f", p.Sum())
	}
}

func TestNormalizeOddsEqualLine(t *testing.T) {
	p, err := NormalizeOdds(3.0, 3.0, 3.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	third := 100.0 / 3
	if math.Abs(p.Home-third) > 1e-9 || math.Abs(p.Draw-third) > 1e-9 || math.Abs(p.Away-third) > 1e-9 {
		t.Fatalf("expected uniform thirds, got %+v", p)
	}
}

func TestNormalizeOddsInvalid(t *testing.T) {
	cases := [][3]float64{
		{0, 3.5, 4.2},
		{1.8, -1, 4.2},
		{1.8, 3.5, 0},
	}
	for _, c := range cases {
		if _, err := NormalizeOdds(c[0], c[1], c[2]); !errors.Is(err, models.ErrInvalidOdds) {
			t.Fatalf("odds %v: expected ErrInvalidOdds, got %v", c, err)
		}
	}
}

func TestOverround(t *testing.T) {
	ov, err := Overround(models.OddsTriple{Home: 1.80, Draw: 3.50, Away: 4.20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ov <= 0 || ov > 0.1 {
		t.Fatalf("expected small positive margin, got %.4f", ov)
	}
}
