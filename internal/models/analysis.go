package models

import (
	"time"

	"github.com/google/uuid"
)

// Outcome identifies one of the three match results
type Outcome string

// Outcome values. Order of declaration is also the canonical tie-break
// priority used by the pick selector.
const (
	OutcomeHome Outcome = "home"
	OutcomeDraw Outcome = "draw"
	OutcomeAway Outcome = "away"
)

// Label returns a human-readable pick name
func (o Outcome) Label() string {
	switch o {
	case OutcomeHome:
		return "Home Win"
	case OutcomeAway:
		return "Away Win"
	default:
		return "Draw"
	}
}

// ConfidenceLevel is a discrete confidence tier
type ConfidenceLevel string

// Confidence tiers
const (
	ConfidenceHigh      ConfidenceLevel = "HIGH"
	ConfidenceMedium    ConfidenceLevel = "MEDIUM"
	ConfidenceLow       ConfidenceLevel = "LOW"
	ConfidenceUncertain ConfidenceLevel = "UNCERTAIN"
)

// Pick is the selected outcome with its probability
type Pick struct {
	Outcome     Outcome `json:"outcome"`
	Probability float64 `json:"probability"`
	Label       string  `json:"label"`
}

// Confidence annotates a pick with a tier, star count and the
// historically backtested accuracy for that tier
type Confidence struct {
	Level       ConfidenceLevel `json:"level"`
	Stars       int             `json:"stars"`
	Accuracy    string          `json:"accuracy"`
	Description string          `json:"description"`
}

// DrawWarning flags a fixture whose closeness score suggests draw risk
type DrawWarning struct {
	IsClose    bool    `json:"is_close"`
	Likelihood float64 `json:"likelihood"`
	Message    string  `json:"message,omitempty"`
}

// ValueBetEdge is one entry of the hand-curated, historically backtested
// edge table. Immutable reference data.
type ValueBetEdge struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	VerifiedROI float64 `json:"verified_roi"`
	SampleSize  int     `json:"sample_size"`
}

// ValueBet is the value-bet verdict for a fixture. Edge is set by the
// table variant; ExpectedValue by the EV variant.
type ValueBet struct {
	IsValue        bool          `json:"is_value"`
	ExpectedValue  float64       `json:"expected_value"`
	Edge           *ValueBetEdge `json:"edge,omitempty"`
	SuggestedStake float64       `json:"suggested_stake,omitempty"`
	Message        string        `json:"message,omitempty"`
}

// RadarAxes holds the five normalized 0-100 team-strength scores
type RadarAxes struct {
	Attack       float64 `json:"attack"`
	Defense      float64 `json:"defense"`
	Organization float64 `json:"organization"`
	Form         float64 `json:"form"`
	Finishing    float64 `json:"finishing"`
}

// Report is the rule-based narrative explanation for a fixture
type Report struct {
	HomeAnalysis []string `json:"home_analysis"`
	AwayAnalysis []string `json:"away_analysis"`
	WeatherNote  string   `json:"weather_note,omitempty"`
	Conclusion   string   `json:"conclusion"`
}

// AnalysisResult is the composed prediction for one fixture. It is
// constructed fresh per request from the input snapshots and has no
// independent identity or persistence.
type AnalysisResult struct {
	FixtureID       uuid.UUID         `json:"fixture_id"`
	BaseProbability ProbabilityTriple `json:"base_probability"`
	Pick            Pick              `json:"pick"`
	Confidence      Confidence        `json:"confidence"`
	DrawWarning     DrawWarning       `json:"draw_warning"`
	ValueBet        ValueBet          `json:"value_bet"`
	HomeRadar       *RadarAxes        `json:"home_radar,omitempty"`
	AwayRadar       *RadarAxes        `json:"away_radar,omitempty"`
	Report          *Report           `json:"report,omitempty"`
	Source          string            `json:"source"`
	ComputedAt      time.Time         `json:"computed_at"`
}
