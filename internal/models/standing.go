package models

import (
	"time"

	"github.com/google/uuid"
)

// Standing is one row of a league table
type Standing struct {
	LeagueID  uuid.UUID `db:"league_id" json:"league_id" validate:"required,uuid"`
	TeamID    uuid.UUID `db:"team_id" json:"team_id" validate:"required,uuid"`
	TeamName  string    `db:"team_name" json:"team_name"`
	Season    int       `db:"season" json:"season"`
	Rank      int       `db:"rank" json:"rank" validate:"gte=1"`
	Played    int       `db:"played" json:"played"`
	Won       int       `db:"won" json:"won"`
	Drawn     int       `db:"drawn" json:"drawn"`
	Lost      int       `db:"lost" json:"lost"`
	GoalsDiff int       `db:"goals_diff" json:"goals_diff"`
	Points    int       `db:"points" json:"points"`
	Form      string    `db:"form" json:"form"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RecentForm parses the form string ("WDLWW", most recent last in the
// upstream API) into the most-recent-first result sequence used by
// team snapshots.
func (s *Standing) RecentForm() []Result {
	runes := []rune(s.Form)
	out := make([]Result, 0, len(runes))
	for i := len(runes) - 1; i >= 0; i-- {
		switch runes[i] {
		case 'W':
			out = append(out, ResultWin)
		case 'D':
			out = append(out, ResultDraw)
		case 'L':
			out = append(out, ResultLoss)
		}
	}
	if len(out) > RecentResultsWindow {
		out = out[:RecentResultsWindow]
	}
	return out
}
