package analysis

import (
	"math"
	"time"

	"github.com/yourusername/matchcast/internal/models"
)

// Probability sources reported on an AnalysisResult
const (
	SourceOdds     = "odds"
	SourceBaseline = "baseline"
	SourceML       = "ml"
)

// Baseline clamp band and the draw share of the non-home mass when no
// market odds exist to imply a split.
const (
	baselineFloor     = 25.0
	baselineCeil      = 85.0
	baselineDrawShare = 0.45
)

// Input carries everything the analyzer needs for one fixture. Odds,
// weather, features and model probabilities are optional; team
// snapshots are not.
type Input struct {
	Fixture     *models.Fixture
	LeagueAPIID int
	Home        *models.TeamSnapshot
	Away        *models.TeamSnapshot
	Odds        *models.OddsRecord
	Weather     *models.Weather
	Features    *models.FeatureSnapshot

	// Model holds a served model distribution in percent. When present
	// and valid it takes precedence over odds and baseline.
	Model *models.ProbabilityTriple
}

// BaselineProbability estimates the home-win percentage from table
// position and recent form alone: 50, plus 2 per rank the home side
// sits above the away side, plus 3 per recent win, clamped to [25, 85].
func BaselineProbability(home, away *models.TeamSnapshot) float64 {
	rankDiff := away.LeagueRank - home.LeagueRank
	base := 50 + float64(rankDiff)*2 + float64(home.Wins())*3
	return math.Min(math.Max(base, baselineFloor), baselineCeil)
}

// baselineTriple splits the scalar baseline into a full triple, giving
// the draw a fixed share of whatever the home side does not claim.
func baselineTriple(home, away *models.TeamSnapshot) models.ProbabilityTriple {
	h := math.Round(BaselineProbability(home, away))
	d := math.Round((100 - h) * baselineDrawShare)
	return models.ProbabilityTriple{Home: h, Draw: d, Away: 100 - h - d}
}

// Analyze composes the full prediction for one fixture. A valid model
// distribution drives the base probabilities when supplied, market odds
// otherwise, and the rank/form baseline stands in when neither exists. The returned result is ephemeral and fully
// recomputable from its inputs.
func Analyze(in Input) (*models.AnalysisResult, error) {
	if err := in.Home.ValidateResults(); err != nil {
		return nil, err
	}
	if err := in.Away.ValidateResults(); err != nil {
		return nil, err
	}

	var (
		base     models.ProbabilityTriple
		bestLine *models.OddsTriple
		source   = SourceBaseline
	)
	if in.Odds != nil {
		if line := in.Odds.BestLine(); line.IsValid() {
			bestLine = &line
		}
	}
	switch {
	case in.Model != nil && in.Model.Validate() == nil:
		base = *in.Model
		source = SourceML
	case bestLine != nil:
		normalized, err := NormalizeTriple(*bestLine)
		if err != nil {
			return nil, err
		}
		base = normalized
		source = SourceOdds
	default:
		base = baselineTriple(in.Home, in.Away)
	}

	pick := SelectPick(base)
	warning := DrawWarningFor(DrawLikelihood(in.Features))

	valueBet, err := detectValueBet(base, pick, bestLine, in.LeagueAPIID)
	if err != nil {
		return nil, err
	}

	homeRadar := BuildRadar(in.Home)
	awayRadar := BuildRadar(in.Away)

	result := &models.AnalysisResult{
		BaseProbability: base.Rounded(),
		Pick:            pick,
		Confidence:      GradeConfidence(pick.Probability),
		DrawWarning:     warning,
		ValueBet:        valueBet,
		HomeRadar:       &homeRadar,
		AwayRadar:       &awayRadar,
		Report:          BuildReport(in.Home, in.Away, in.Weather, pick, warning),
		Source:          source,
		ComputedAt:      time.Now().UTC(),
	}
	if in.Fixture != nil {
		result.FixtureID = in.Fixture.ID
	}
	return result, nil
}

// detectValueBet runs both variants: the backtested edge table first,
// then the expected-value rule against market odds. A table hit wins;
// the EV verdict fills in otherwise.
func detectValueBet(base models.ProbabilityTriple, pick models.Pick, odds *models.OddsTriple, leagueID int) (models.ValueBet, error) {
	fractions := models.ProbabilityTriple{
		Home: base.Home / 100,
		Draw: base.Draw / 100,
		Away: base.Away / 100,
	}
	if edge := CheckEdgeTable(fractions, leagueID); edge != nil {
		vb := models.ValueBet{
			IsValue: true,
			Edge:    edge,
			Message: edge.Description,
		}
		if odds != nil {
			if ev, err := ExpectedValue(pick.Probability, odds.ForOutcome(pick.Outcome)); err == nil {
				vb.ExpectedValue = math.Round(ev*10) / 10
				vb.SuggestedStake = kellyFraction(pick.Probability/100, odds.ForOutcome(pick.Outcome))
			}
		}
		return vb, nil
	}

	return CheckExpectedValue(pick, odds)
}
