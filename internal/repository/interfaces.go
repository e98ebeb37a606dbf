package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/matchcast/internal/models"
)

// LeagueRepository defines the interface for league data access
type LeagueRepository interface {
	Upsert(ctx context.Context, league *models.League) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.League, error)
	GetByAPIID(ctx context.Context, apiID int) (*models.League, error)
	GetEnabled(ctx context.Context) ([]*models.League, error)
}

// FixtureRepository defines the interface for fixture data access
type FixtureRepository interface {
	Upsert(ctx context.Context, fixture *models.Fixture) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Fixture, error)
	GetByAPIID(ctx context.Context, apiID int64) (*models.Fixture, error)
	GetUpcoming(ctx context.Context, limit int) ([]*models.Fixture, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Fixture, error)
	GetByLeague(ctx context.Context, leagueID uuid.UUID, start, end time.Time) ([]*models.Fixture, error)
	UpdateResult(ctx context.Context, id uuid.UUID, homeGoals, awayGoals int, status models.FixtureStatus) error
}

// TeamRepository defines the interface for team snapshot data access
type TeamRepository interface {
	Upsert(ctx context.Context, team *models.TeamSnapshot) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.TeamSnapshot, error)
	GetByName(ctx context.Context, name string) (*models.TeamSnapshot, error)
}

// OddsRepository defines the interface for odds tick data access
type OddsRepository interface {
	Insert(ctx context.Context, snapshot *models.OddsSnapshot) error
	InsertBatch(ctx context.Context, snapshots []*models.OddsSnapshot) error
	GetLatest(ctx context.Context, fixtureID uuid.UUID, source string) (*models.OddsSnapshot, error)
	GetSeries(ctx context.Context, fixtureID uuid.UUID, start, end time.Time) ([]*models.OddsSnapshot, error)
	GetLatestRecord(ctx context.Context, fixtureID uuid.UUID) (*models.OddsRecord, error)
}

// FeatureRepository defines the interface for fixture feature snapshots
type FeatureRepository interface {
	Upsert(ctx context.Context, fixtureID uuid.UUID, snapshot *models.FeatureSnapshot) error
	GetByFixtureID(ctx context.Context, fixtureID uuid.UUID) (*models.FeatureSnapshot, error)
}

// StandingRepository defines the interface for league table rows
type StandingRepository interface {
	UpsertBatch(ctx context.Context, standings []*models.Standing) error
	GetByLeague(ctx context.Context, leagueID uuid.UUID, season int) ([]*models.Standing, error)
	GetByTeam(ctx context.Context, teamID uuid.UUID, season int) (*models.Standing, error)
}
