package analysis

import (
	"testing"

	"github.com/yourusername/matchcast/internal/models"
)

func TestSelectPick(t *testing.T) {
	tests := []struct {
		name string
		p    models.ProbabilityTriple
		want models.Outcome
	}{
		{"home favourite", models.ProbabilityTriple{Home: 51.5, Draw: 26.5, Away: 22.0}, models.OutcomeHome},
		{"away favourite", models.ProbabilityTriple{Home: 20, Draw: 25, Away: 55}, models.OutcomeAway},
		{"draw favourite", models.ProbabilityTriple{Home: 30, Draw: 40, Away: 30}, models.OutcomeDraw},
		{"three-way tie goes home", models.ProbabilityTriple{Home: 33.3, Draw: 33.3, Away: 33.3}, models.OutcomeHome},
		{"home-draw tie goes home", models.ProbabilityTriple{Home: 40, Draw: 40, Away: 20}, models.OutcomeHome},
		{"draw-away tie goes draw", models.ProbabilityTriple{Home: 20, Draw: 40, Away: 40}, models.OutcomeDraw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pick := SelectPick(tt.p)
			if pick.Outcome != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, pick.Outcome)
			}
			if pick.Label != tt.want.Label() {
				t.Fatalf("label mismatch: %s", pick.Label)
			}
		})
	}
}
