package analysis

import (
	"fmt"
	"math"

	"github.com/yourusername/matchcast/internal/models"
)

// leagueNames maps upstream API league IDs to the names used by the
// backtested edge table. Leagues outside the big five never match a
// league-specific rule.
var leagueNames = map[int]string{
	39:  "Premier League",
	140: "La Liga",
	135: "Serie A",
	78:  "Bundesliga",
	61:  "Ligue 1",
}

// LeagueName returns the display name for an upstream league ID, or
// "general" for leagues outside the tracked set.
func LeagueName(apiID int) string {
	if name, ok := leagueNames[apiID]; ok {
		return name
	}
	return "general"
}

// edgeRule pairs a predicate over (league, probability triple) with the
// edge returned on match. Rules are scanned in order and the FIRST match
// wins; ranges overlap by design, with specific league rules listed
// before the general ones.
type edgeRule struct {
	matches func(league string, p models.ProbabilityTriple) bool
	edge    models.ValueBetEdge
}

// inRange is a half-open [low, high) check on a probability fraction
func inRange(v, low, high float64) bool {
	return v >= low && v < high
}

// edgeRules is the historically verified value-bet table. ROI figures
// come from a walk-forward backtest: trained on 2020-2022, verified on
// 2023-2026 seasons. Entries are data, not branching code, so each row
// can be tested in isolation.
var edgeRules = []edgeRule{
	{
		matches: func(l string, p models.ProbabilityTriple) bool {
			return l == "La Liga" && inRange(p.Home, 0.67, 0.72)
		},
		edge: models.ValueBetEdge{
			Name:        "La Liga home favourite",
			Description: "Strong home side in La Liga, 67-72% band",
			VerifiedROI: 15.6,
			SampleSize:  51,
		},
	},
	{
		matches: func(l string, p models.ProbabilityTriple) bool {
			return l == "Premier League" && inRange(p.Away, 0.60, 0.65)
		},
		edge: models.ValueBetEdge{
			Name:        "EPL away favourite",
			Description: "Clear away favourite in the Premier League",
			VerifiedROI: 11.3,
			SampleSize:  36,
		},
	},
	{
		matches: func(l string, p models.ProbabilityTriple) bool {
			return l == "Serie A" && inRange(p.Draw, 0.26, 0.30)
		},
		edge: models.ValueBetEdge{
			Name:        "Serie A draw candidate",
			Description: "Elevated draw probability in Serie A",
			VerifiedROI: 10.9,
			SampleSize:  532,
		},
	},
	{
		matches: func(l string, p models.ProbabilityTriple) bool {
			return l == "Serie A" && inRange(p.Draw, 0.30, 0.32)
		},
		edge: models.ValueBetEdge{
			Name:        "Serie A draw candidate",
			Description: "Elevated draw probability in Serie A",
			VerifiedROI: 9.5,
			SampleSize:  708,
		},
	},
	{
		matches: func(l string, p models.ProbabilityTriple) bool {
			return l == "La Liga" && inRange(p.Home, 0.65, 0.67)
		},
		edge: models.ValueBetEdge{
			Name:        "La Liga home edge",
			Description: "Home side favoured in La Liga",
			VerifiedROI: 7.4,
			SampleSize:  55,
		},
	},
	{
		matches: func(l string, p models.ProbabilityTriple) bool {
			return l == "Serie A" && inRange(p.Draw, 0.32, 0.35)
		},
		edge: models.ValueBetEdge{
			Name:        "Serie A draw watch",
			Description: "High draw probability in Serie A",
			VerifiedROI: 5.7,
			SampleSize:  200,
		},
	},
	{
		matches: func(l string, p models.ProbabilityTriple) bool {
			return l != "La Liga" && inRange(p.Home, 0.65, 0.70)
		},
		edge: models.ValueBetEdge{
			Name:        "Home edge",
			Description: "Home side favoured, any league outside La Liga",
			VerifiedROI: 4.4,
			SampleSize:  310,
		},
	},
	{
		matches: func(l string, p models.ProbabilityTriple) bool {
			return l == "Serie A" && inRange(p.Away, 0.55, 0.60)
		},
		edge: models.ValueBetEdge{
			Name:        "Serie A away edge",
			Description: "Away side favoured in Serie A",
			VerifiedROI: 4.4,
			SampleSize:  61,
		},
	},
}

// CheckEdgeTable scans the backtested edge table against de-margined
// outcome probabilities (fractions, 0-1) for a league and returns the
// first matching edge, or nil when no rule fires.
func CheckEdgeTable(probs models.ProbabilityTriple, leagueAPIID int) *models.ValueBetEdge {
	league := leagueNames[leagueAPIID]
	for _, rule := range edgeRules {
		if rule.matches(league, probs) {
			edge := rule.edge
			return &edge
		}
	}
	return nil
}

// Expected-value variant thresholds
const (
	evMinPickProb = 55.0
	evKellyCap    = 0.5
)

// ExpectedValue computes the EV percentage of backing one outcome:
// (probability/100 * decimalOdds - 1) * 100.
func ExpectedValue(pickProbPct, decimalOdds float64) (float64, error) {
	if decimalOdds <= 0 {
		return 0, fmt.Errorf("%w: %.2f", models.ErrInvalidOdds, decimalOdds)
	}
	return (pickProbPct/100*decimalOdds - 1) * 100, nil
}

// CheckExpectedValue flags a value bet on the EV rule: the model must
// give the pick at least 55% AND the expected value against market odds
// must be positive. EV is reported rounded to one decimal either way.
func CheckExpectedValue(pick models.Pick, odds *models.OddsTriple) (models.ValueBet, error) {
	if odds == nil || pick.Probability < evMinPickProb {
		return models.ValueBet{}, nil
	}

	pickOdds := odds.ForOutcome(pick.Outcome)
	ev, err := ExpectedValue(pick.Probability, pickOdds)
	if err != nil {
		return models.ValueBet{}, err
	}

	rounded := math.Round(ev*10) / 10
	if ev <= 0 {
		return models.ValueBet{ExpectedValue: rounded}, nil
	}

	return models.ValueBet{
		IsValue:        true,
		ExpectedValue:  rounded,
		SuggestedStake: kellyFraction(pick.Probability/100, pickOdds),
		Message:        fmt.Sprintf("ROI+ (expected return %+.1f%%)", rounded),
	}, nil
}

// kellyFraction returns the half-Kelly bankroll fraction for a positive
// edge, rounded to three decimals. Zero when the edge is not positive.
func kellyFraction(prob, odds float64) float64 {
	if prob <= 0 || odds <= 1 {
		return 0
	}
	b := odds - 1
	kelly := (b*prob - (1 - prob)) / b
	if kelly <= 0 {
		return 0
	}
	return math.Round(kelly*evKellyCap*1000) / 1000
}
