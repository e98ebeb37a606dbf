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

// PostgresFeatureRepository implements FeatureRepository for PostgreSQL
type PostgresFeatureRepository struct {
	db *database.DB
}

// NewPostgresFeatureRepository creates a new feature repository
func NewPostgresFeatureRepository(db *database.DB) FeatureRepository {
	return &PostgresFeatureRepository{db: db}
}

// Upsert writes the feature snapshot for a fixture. Absent fields stay
// NULL so the analysis defaults apply on read.
func (r *PostgresFeatureRepository) Upsert(ctx context.Context, fixtureID uuid.UUID, snapshot *models.FeatureSnapshot) error {
	query := `
		INSERT INTO feature_snapshots (fixture_id, home_form_last5, away_form_last5,
			home_xg_avg, away_xg_avg, home_goals_for_avg, away_goals_for_avg,
			h2h_draws, h2h_total_matches, home_days_rest, away_days_rest, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (fixture_id) DO UPDATE SET
			home_form_last5 = EXCLUDED.home_form_last5,
			away_form_last5 = EXCLUDED.away_form_last5,
			home_xg_avg = EXCLUDED.home_xg_avg,
			away_xg_avg = EXCLUDED.away_xg_avg,
			home_goals_for_avg = EXCLUDED.home_goals_for_avg,
			away_goals_for_avg = EXCLUDED.away_goals_for_avg,
			h2h_draws = EXCLUDED.h2h_draws,
			h2h_total_matches = EXCLUDED.h2h_total_matches,
			home_days_rest = EXCLUDED.home_days_rest,
			away_days_rest = EXCLUDED.away_days_rest,
			updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		fixtureID, snapshot.HomeFormLast5, snapshot.AwayFormLast5,
		snapshot.HomeXGAvg, snapshot.AwayXGAvg, snapshot.HomeGoalsForAvg, snapshot.AwayGoalsForAvg,
		snapshot.H2HDraws, snapshot.H2HTotalMatches, snapshot.HomeDaysRest, snapshot.AwayDaysRest,
	)
	if err != nil {
		return mapPgError("upsert feature snapshot", err)
	}

	return nil
}

// GetByFixtureID retrieves the feature snapshot for a fixture
func (r *PostgresFeatureRepository) GetByFixtureID(ctx context.Context, fixtureID uuid.UUID) (*models.FeatureSnapshot, error) {
	query := `
		SELECT home_form_last5, away_form_last5, home_xg_avg, away_xg_avg,
			home_goals_for_avg, away_goals_for_avg, h2h_draws, h2h_total_matches,
			home_days_rest, away_days_rest
		FROM feature_snapshots
		WHERE fixture_id = $1
	`

	snapshot := &models.FeatureSnapshot{}
	err := r.db.GetPool().QueryRow(ctx, query, fixtureID).Scan(
		&snapshot.HomeFormLast5, &snapshot.AwayFormLast5,
		&snapshot.HomeXGAvg, &snapshot.AwayXGAvg,
		&snapshot.HomeGoalsForAvg, &snapshot.AwayGoalsForAvg,
		&snapshot.H2HDraws, &snapshot.H2HTotalMatches,
		&snapshot.HomeDaysRest, &snapshot.AwayDaysRest,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan feature snapshot: %w", err)
	}

	return snapshot, nil
}
