package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/matchcast/internal/database"
	"github.com/yourusername/matchcast/internal/models"
)

// PostgresLeagueRepository implements LeagueRepository for PostgreSQL
type PostgresLeagueRepository struct {
	db *database.DB
}

// NewPostgresLeagueRepository creates a new league repository
func NewPostgresLeagueRepository(db *database.DB) LeagueRepository {
	return &PostgresLeagueRepository{db: db}
}

// Upsert inserts or refreshes a league keyed by the upstream API id
func (r *PostgresLeagueRepository) Upsert(ctx context.Context, league *models.League) error {
	query := `
		INSERT INTO leagues (id, api_id, name, country, season, logo_url, is_enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (api_id) DO UPDATE SET
			name = EXCLUDED.name,
			country = EXCLUDED.country,
			season = EXCLUDED.season,
			logo_url = EXCLUDED.logo_url,
			is_enabled = EXCLUDED.is_enabled
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		league.ID, league.APIID, league.Name, league.Country,
		league.Season, league.LogoURL, league.IsEnabled,
	)
	if err != nil {
		return mapPgError("upsert league", err)
	}

	return nil
}

// GetByID retrieves a league by its internal identifier
func (r *PostgresLeagueRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.League, error) {
	query := `
		SELECT id, api_id, name, country, season, logo_url, is_enabled
		FROM leagues
		WHERE id = $1
	`

	league := &models.League{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&league.ID, &league.APIID, &league.Name, &league.Country,
		&league.Season, &league.LogoURL, &league.IsEnabled,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan league: %w", err)
	}

	return league, nil
}

// GetByAPIID retrieves a league by the upstream API identifier
func (r *PostgresLeagueRepository) GetByAPIID(ctx context.Context, apiID int) (*models.League, error) {
	query := `
		SELECT id, api_id, name, country, season, logo_url, is_enabled
		FROM leagues
		WHERE api_id = $1
	`

	league := &models.League{}
	err := r.db.GetPool().QueryRow(ctx, query, apiID).Scan(
		&league.ID, &league.APIID, &league.Name, &league.Country,
		&league.Season, &league.LogoURL, &league.IsEnabled,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan league: %w", err)
	}

	return league, nil
}

// GetEnabled retrieves the leagues the ingestion pipeline syncs
func (r *PostgresLeagueRepository) GetEnabled(ctx context.Context) ([]*models.League, error) {
	query := `
		SELECT id, api_id, name, country, season, logo_url, is_enabled
		FROM leagues
		WHERE is_enabled = TRUE
		ORDER BY api_id ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query enabled leagues: %w", err)
	}
	defer rows.Close()

	var leagues []*models.League
	for rows.Next() {
		league := &models.League{}
		err := rows.Scan(
			&league.ID, &league.APIID, &league.Name, &league.Country,
			&league.Season, &league.LogoURL, &league.IsEnabled,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan league: %w", err)
		}
		leagues = append(leagues, league)
	}

	return leagues, rows.Err()
}
