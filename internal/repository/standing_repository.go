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

// PostgresStandingRepository implements StandingRepository for PostgreSQL
type PostgresStandingRepository struct {
	db *database.DB
}

// NewPostgresStandingRepository creates a new standing repository
func NewPostgresStandingRepository(db *database.DB) StandingRepository {
	return &PostgresStandingRepository{db: db}
}

// UpsertBatch replaces a league table inside one transaction so readers
// never observe a half-synced table
func (r *PostgresStandingRepository) UpsertBatch(ctx context.Context, standings []*models.Standing) error {
	if len(standings) == 0 {
		return nil
	}

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO standings (league_id, team_id, team_name, season, rank,
				played, won, drawn, lost, goals_diff, points, form, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
			ON CONFLICT (league_id, team_id, season) DO UPDATE SET
				team_name = EXCLUDED.team_name,
				rank = EXCLUDED.rank,
				played = EXCLUDED.played,
				won = EXCLUDED.won,
				drawn = EXCLUDED.drawn,
				lost = EXCLUDED.lost,
				goals_diff = EXCLUDED.goals_diff,
				points = EXCLUDED.points,
				form = EXCLUDED.form,
				updated_at = NOW()
		`

		for _, s := range standings {
			_, err := tx.Exec(ctx, query,
				s.LeagueID, s.TeamID, s.TeamName, s.Season, s.Rank,
				s.Played, s.Won, s.Drawn, s.Lost, s.GoalsDiff, s.Points, s.Form,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert standing for %s: %w", s.TeamName, err)
			}
		}
		return nil
	})
}

// GetByLeague retrieves a league table ordered by rank
func (r *PostgresStandingRepository) GetByLeague(ctx context.Context, leagueID uuid.UUID, season int) ([]*models.Standing, error) {
	query := `
		SELECT league_id, team_id, team_name, season, rank,
			played, won, drawn, lost, goals_diff, points, form, updated_at
		FROM standings
		WHERE league_id = $1 AND season = $2
		ORDER BY rank ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %w", err)
	}
	defer rows.Close()

	var standings []*models.Standing
	for rows.Next() {
		s := &models.Standing{}
		err := rows.Scan(
			&s.LeagueID, &s.TeamID, &s.TeamName, &s.Season, &s.Rank,
			&s.Played, &s.Won, &s.Drawn, &s.Lost, &s.GoalsDiff, &s.Points, &s.Form, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan standing: %w", err)
		}
		standings = append(standings, s)
	}

	return standings, rows.Err()
}

// GetByTeam retrieves a single team's table row for a season
func (r *PostgresStandingRepository) GetByTeam(ctx context.Context, teamID uuid.UUID, season int) (*models.Standing, error) {
	query := `
		SELECT league_id, team_id, team_name, season, rank,
			played, won, drawn, lost, goals_diff, points, form, updated_at
		FROM standings
		WHERE team_id = $1 AND season = $2
	`

	s := &models.Standing{}
	err := r.db.GetPool().QueryRow(ctx, query, teamID, season).Scan(
		&s.LeagueID, &s.TeamID, &s.TeamName, &s.Season, &s.Rank,
		&s.Played, &s.Won, &s.Drawn, &s.Lost, &s.GoalsDiff, &s.Points, &s.Form, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan standing: %w", err)
	}

	return s, nil
}
