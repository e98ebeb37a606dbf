package models

import (
	"time"

	"github.com/google/uuid"
)

// OddsTrend indicates the direction of movement between consecutive
// odds snapshots for one outcome
type OddsTrend string

// Odds trend values
const (
	TrendUp     OddsTrend = "up"
	TrendDown   OddsTrend = "down"
	TrendStable OddsTrend = "stable"
)

// OddsTriple carries decimal odds for the three match outcomes.
// Decimal odds are always >= 1.0 when present.
type OddsTriple struct {
	Home float64 `db:"home" json:"home"`
	Draw float64 `db:"draw" json:"draw"`
	Away float64 `db:"away" json:"away"`
}

// IsValid reports whether all three odds are usable decimal prices
func (o OddsTriple) IsValid() bool {
	return o.Home > 0 && o.Draw > 0 && o.Away > 0
}

// ForOutcome returns the odds for a single outcome
func (o OddsTriple) ForOutcome(outcome Outcome) float64 {
	switch outcome {
	case OutcomeHome:
		return o.Home
	case OutcomeAway:
		return o.Away
	default:
		return o.Draw
	}
}

// TrendTriple carries per-outcome movement direction
type TrendTriple struct {
	Home OddsTrend `db:"home" json:"home"`
	Draw OddsTrend `db:"draw" json:"draw"`
	Away OddsTrend `db:"away" json:"away"`
}

// OddsRecord is the composite odds view for one fixture: the overseas
// (exchange/bookmaker average) line, the domestic line where crawled,
// and the movement since the previous snapshot
type OddsRecord struct {
	FixtureID     uuid.UUID   `db:"fixture_id" json:"fixture_id" validate:"required,uuid"`
	Overseas      OddsTriple  `db:"overseas" json:"overseas"`
	Domestic      *OddsTriple `db:"domestic" json:"domestic,omitempty"`
	OverseasTrend TrendTriple `db:"overseas_trend" json:"overseas_trend"`
	DomesticTrend TrendTriple `db:"domestic_trend" json:"domestic_trend"`
	IsEstimated   bool        `db:"is_estimated" json:"is_estimated"`
	RecordedAt    time.Time   `db:"recorded_at" json:"recorded_at"`
}

// BestLine returns the preferred line for probability work: domestic
// when available, overseas otherwise
func (r *OddsRecord) BestLine() OddsTriple {
	if r.Domestic != nil && r.Domestic.IsValid() {
		return *r.Domestic
	}
	return r.Overseas
}

// OddsSnapshot is a single point-in-time odds tick, persisted so trends
// can be derived from consecutive rows
type OddsSnapshot struct {
	Time      time.Time  `db:"time" json:"time" validate:"required"`
	FixtureID uuid.UUID  `db:"fixture_id" json:"fixture_id" validate:"required,uuid"`
	Source    string     `db:"source" json:"source" validate:"required"`
	Odds      OddsTriple `db:"odds" json:"odds"`
}

// TrendAgainst derives per-outcome movement relative to an earlier snapshot
func (s *OddsSnapshot) TrendAgainst(prev *OddsSnapshot) TrendTriple {
	if prev == nil {
		return TrendTriple{Home: TrendStable, Draw: TrendStable, Away: TrendStable}
	}
	return TrendTriple{
		Home: trendOf(prev.Odds.Home, s.Odds.Home),
		Draw: trendOf(prev.Odds.Draw, s.Odds.Draw),
		Away: trendOf(prev.Odds.Away, s.Odds.Away),
	}
}

func trendOf(old, current float64) OddsTrend {
	const epsilon = 0.005
	switch {
	case current-old > epsilon:
		return TrendUp
	case old-current > epsilon:
		return TrendDown
	default:
		return TrendStable
	}
}
