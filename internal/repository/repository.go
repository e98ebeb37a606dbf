// Package repository implements PostgreSQL persistence for fixtures,
// teams, odds ticks, feature snapshots and standings.
package repository

import (
	"fmt"

	"github.com/yourusername/matchcast/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	League   LeagueRepository
	Fixture  FixtureRepository
	Team     TeamRepository
	Odds     OddsRepository
	Feature  FeatureRepository
	Standing StandingRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		League:   NewPostgresLeagueRepository(db),
		Fixture:  NewPostgresFixtureRepository(db),
		Team:     NewPostgresTeamRepository(db),
		Odds:     NewPostgresOddsRepository(db),
		Feature:  NewPostgresFeatureRepository(db),
		Standing: NewPostgresStandingRepository(db),
	}, nil
}
