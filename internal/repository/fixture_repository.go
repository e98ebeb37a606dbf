package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yourusername/matchcast/internal/database"
	"github.com/yourusername/matchcast/internal/models"
)

const fixtureColumns = `
	id, api_id, league_id, home_team_id, away_team_id, kickoff_at,
	status, venue_name, venue_city, home_goals, away_goals, created_at, updated_at
`

// PostgresFixtureRepository implements FixtureRepository for PostgreSQL
type PostgresFixtureRepository struct {
	db *database.DB
}

// NewPostgresFixtureRepository creates a new fixture repository
func NewPostgresFixtureRepository(db *database.DB) FixtureRepository {
	return &PostgresFixtureRepository{db: db}
}

// Upsert inserts a fixture or refreshes it when the upstream API id is
// already known
func (r *PostgresFixtureRepository) Upsert(ctx context.Context, fixture *models.Fixture) error {
	query := `
		INSERT INTO fixtures (id, api_id, league_id, home_team_id, away_team_id, kickoff_at,
			status, venue_name, venue_city, home_goals, away_goals, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (api_id) DO UPDATE SET
			kickoff_at = EXCLUDED.kickoff_at,
			status = EXCLUDED.status,
			venue_name = EXCLUDED.venue_name,
			venue_city = EXCLUDED.venue_city,
			home_goals = EXCLUDED.home_goals,
			away_goals = EXCLUDED.away_goals,
			updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		fixture.ID, fixture.APIID, fixture.LeagueID, fixture.HomeTeamID, fixture.AwayTeamID,
		fixture.KickoffAt, fixture.Status, fixture.Venue.Name, fixture.Venue.City,
		fixture.HomeGoals, fixture.AwayGoals,
	)
	if err != nil {
		return mapPgError("upsert fixture", err)
	}

	return nil
}

// GetByID retrieves a fixture by its internal identifier
func (r *PostgresFixtureRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Fixture, error) {
	query := `SELECT ` + fixtureColumns + ` FROM fixtures WHERE id = $1`
	return r.scanOne(r.db.GetPool().QueryRow(ctx, query, id))
}

// GetByAPIID retrieves a fixture by the upstream API identifier
func (r *PostgresFixtureRepository) GetByAPIID(ctx context.Context, apiID int64) (*models.Fixture, error) {
	query := `SELECT ` + fixtureColumns + ` FROM fixtures WHERE api_id = $1`
	return r.scanOne(r.db.GetPool().QueryRow(ctx, query, apiID))
}

// GetUpcoming retrieves scheduled fixtures ordered by kickoff
func (r *PostgresFixtureRepository) GetUpcoming(ctx context.Context, limit int) ([]*models.Fixture, error) {
	query := `
		SELECT ` + fixtureColumns + `
		FROM fixtures
		WHERE status = $1 AND kickoff_at > NOW()
		ORDER BY kickoff_at ASC
		LIMIT $2
	`

	rows, err := r.db.GetPool().Query(ctx, query, models.StatusScheduled, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming fixtures: %w", err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

// GetByDateRange retrieves fixtures kicking off within a time range
func (r *PostgresFixtureRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Fixture, error) {
	query := `
		SELECT ` + fixtureColumns + `
		FROM fixtures
		WHERE kickoff_at >= $1 AND kickoff_at <= $2
		ORDER BY kickoff_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query fixtures by date range: %w", err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

// GetByLeague retrieves a league's fixtures within a time range
func (r *PostgresFixtureRepository) GetByLeague(ctx context.Context, leagueID uuid.UUID, start, end time.Time) ([]*models.Fixture, error) {
	query := `
		SELECT ` + fixtureColumns + `
		FROM fixtures
		WHERE league_id = $1 AND kickoff_at >= $2 AND kickoff_at <= $3
		ORDER BY kickoff_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, leagueID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query fixtures by league: %w", err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

// UpdateResult records the final score and status for a fixture
func (r *PostgresFixtureRepository) UpdateResult(ctx context.Context, id uuid.UUID, homeGoals, awayGoals int, status models.FixtureStatus) error {
	query := `
		UPDATE fixtures
		SET home_goals = $2, away_goals = $3, status = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.GetPool().Exec(ctx, query, id, homeGoals, awayGoals, status)
	if err != nil {
		return fmt.Errorf("failed to update fixture result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *PostgresFixtureRepository) scanOne(row pgx.Row) (*models.Fixture, error) {
	fixture := &models.Fixture{}
	err := row.Scan(
		&fixture.ID, &fixture.APIID, &fixture.LeagueID, &fixture.HomeTeamID, &fixture.AwayTeamID,
		&fixture.KickoffAt, &fixture.Status, &fixture.Venue.Name, &fixture.Venue.City,
		&fixture.HomeGoals, &fixture.AwayGoals, &fixture.CreatedAt, &fixture.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan fixture: %w", err)
	}
	return fixture, nil
}

func (r *PostgresFixtureRepository) scanMany(rows pgx.Rows) ([]*models.Fixture, error) {
	var fixtures []*models.Fixture
	for rows.Next() {
		fixture := &models.Fixture{}
		err := rows.Scan(
			&fixture.ID, &fixture.APIID, &fixture.LeagueID, &fixture.HomeTeamID, &fixture.AwayTeamID,
			&fixture.KickoffAt, &fixture.Status, &fixture.Venue.Name, &fixture.Venue.City,
			&fixture.HomeGoals, &fixture.AwayGoals, &fixture.CreatedAt, &fixture.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fixture: %w", err)
		}
		fixtures = append(fixtures, fixture)
	}
	return fixtures, rows.Err()
}

// mapPgError maps PostgreSQL errors onto the shared sentinels
func mapPgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%s: %w", op, models.ErrDuplicateKey)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
