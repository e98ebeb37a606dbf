package models

import (
	"time"

	"github.com/google/uuid"
)

// FeatureSnapshot holds per-fixture rolling aggregates computed by the
// ingestion layer. Every field is optional: a nil field means no recorded
// history, and downstream consumers substitute neutral defaults rather
// than propagating the absence.
type FeatureSnapshot struct {
	FixtureID       uuid.UUID `db:"fixture_id" json:"fixture_id" validate:"required,uuid"`
	HomeFormLast5   *float64  `db:"home_form_last5" json:"home_form_last5,omitempty"`
	AwayFormLast5   *float64  `db:"away_form_last5" json:"away_form_last5,omitempty"`
	HomeXGAvg       *float64  `db:"home_xg_avg" json:"home_xg_avg,omitempty"`
	AwayXGAvg       *float64  `db:"away_xg_avg" json:"away_xg_avg,omitempty"`
	HomeGoalsForAvg *float64  `db:"home_goals_for_avg" json:"home_goals_for_avg,omitempty"`
	AwayGoalsForAvg *float64  `db:"away_goals_for_avg" json:"away_goals_for_avg,omitempty"`
	H2HDraws        *int      `db:"h2h_draws" json:"h2h_draws,omitempty"`
	H2HTotalMatches *int      `db:"h2h_total_matches" json:"h2h_total_matches,omitempty"`
	HomeDaysRest    *int      `db:"home_days_rest" json:"home_days_rest,omitempty"`
	AwayDaysRest    *int      `db:"away_days_rest" json:"away_days_rest,omitempty"`
	ComputedAt      time.Time `db:"computed_at" json:"computed_at"`
}

// FloatOr returns the pointed-to value or a fallback when absent
func FloatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// IntOr returns the pointed-to value or a fallback when absent
func IntOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
