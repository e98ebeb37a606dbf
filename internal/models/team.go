package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Result is a single match outcome from a team's perspective
type Result string

// Match result values
const (
	ResultWin  Result = "W"
	ResultDraw Result = "D"
	ResultLoss Result = "L"
)

// RecentResultsWindow is the fixed number of matches used for form and
// streak calculations. Win rates are only meaningful over this window.
const RecentResultsWindow = 5

// TopScorer represents a team's leading goal scorer
type TopScorer struct {
	Name      string `db:"name" json:"name"`
	Goals     int    `db:"goals" json:"goals" validate:"gte=0"`
	IsInjured bool   `db:"is_injured" json:"is_injured"`
}

// TeamSnapshot is a point-in-time view of a team used by the analysis core.
// It is produced by the ingestion layer and read-only thereafter.
type TeamSnapshot struct {
	ID               uuid.UUID `db:"id" json:"id" validate:"required,uuid"`
	Name             string    `db:"name" json:"name" validate:"required"`
	ShortName        string    `db:"short_name" json:"short_name"`
	LeagueRank       int       `db:"league_rank" json:"league_rank" validate:"gte=1"`
	RecentResults    []Result  `db:"recent_results" json:"recent_results"`
	TopScorer        TopScorer `db:"top_scorer" json:"top_scorer"`
	LastMatchDaysAgo int       `db:"last_match_days_ago" json:"last_match_days_ago" validate:"gte=0"`
}

// ValidateResults checks that the snapshot carries a recent-results sequence.
// An empty slice is valid (a team with no recorded history); a nil slice is a
// caller contract violation.
func (t *TeamSnapshot) ValidateResults() error {
	if t.RecentResults == nil {
		return fmt.Errorf("%w: %s has no recent results sequence", ErrMalformedSnapshot, t.Name)
	}
	return nil
}

// Wins returns the number of wins in the recent-results window
func (t *TeamSnapshot) Wins() int {
	return t.countResult(ResultWin)
}

// Draws returns the number of draws in the recent-results window
func (t *TeamSnapshot) Draws() int {
	return t.countResult(ResultDraw)
}

// Losses returns the number of losses in the recent-results window
func (t *TeamSnapshot) Losses() int {
	return t.countResult(ResultLoss)
}

func (t *TeamSnapshot) countResult(r Result) int {
	n := 0
	for _, res := range t.RecentResults {
		if res == r {
			n++
		}
	}
	return n
}

// WinRate returns the win percentage over the recent-results window.
// An empty sequence yields 0, not an error.
func (t *TeamSnapshot) WinRate() float64 {
	if len(t.RecentResults) == 0 {
		return 0
	}
	return float64(t.Wins()) / float64(len(t.RecentResults)) * 100
}

// Streak counts consecutive occurrences of target from the most recent
// match backward, stopping at the first non-matching result.
func (t *TeamSnapshot) Streak(target Result) int {
	n := 0
	for _, res := range t.RecentResults {
		if res != target {
			break
		}
		n++
	}
	return n
}
