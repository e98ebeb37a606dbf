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

// PostgresTeamRepository implements TeamRepository for PostgreSQL
type PostgresTeamRepository struct {
	db *database.DB
}

// NewPostgresTeamRepository creates a new team repository
func NewPostgresTeamRepository(db *database.DB) TeamRepository {
	return &PostgresTeamRepository{db: db}
}

// Upsert writes a team snapshot, replacing the previous one. Recent
// results are stored as a compact letter string, most recent first.
func (r *PostgresTeamRepository) Upsert(ctx context.Context, team *models.TeamSnapshot) error {
	if err := team.ValidateResults(); err != nil {
		return err
	}

	query := `
		INSERT INTO team_snapshots (id, name, short_name, league_rank, recent_results,
			top_scorer_name, top_scorer_goals, top_scorer_injured, last_match_days_ago, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			short_name = EXCLUDED.short_name,
			league_rank = EXCLUDED.league_rank,
			recent_results = EXCLUDED.recent_results,
			top_scorer_name = EXCLUDED.top_scorer_name,
			top_scorer_goals = EXCLUDED.top_scorer_goals,
			top_scorer_injured = EXCLUDED.top_scorer_injured,
			last_match_days_ago = EXCLUDED.last_match_days_ago,
			updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		team.ID, team.Name, team.ShortName, team.LeagueRank, encodeResults(team.RecentResults),
		team.TopScorer.Name, team.TopScorer.Goals, team.TopScorer.IsInjured, team.LastMatchDaysAgo,
	)
	if err != nil {
		return mapPgError("upsert team snapshot", err)
	}

	return nil
}

// GetByID retrieves a team snapshot by identifier
func (r *PostgresTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TeamSnapshot, error) {
	query := `
		SELECT id, name, short_name, league_rank, recent_results,
			top_scorer_name, top_scorer_goals, top_scorer_injured, last_match_days_ago
		FROM team_snapshots
		WHERE id = $1
	`
	return r.scanOne(r.db.GetPool().QueryRow(ctx, query, id))
}

// GetByName retrieves a team snapshot by its full name
func (r *PostgresTeamRepository) GetByName(ctx context.Context, name string) (*models.TeamSnapshot, error) {
	query := `
		SELECT id, name, short_name, league_rank, recent_results,
			top_scorer_name, top_scorer_goals, top_scorer_injured, last_match_days_ago
		FROM team_snapshots
		WHERE name = $1
	`
	return r.scanOne(r.db.GetPool().QueryRow(ctx, query, name))
}

func (r *PostgresTeamRepository) scanOne(row pgx.Row) (*models.TeamSnapshot, error) {
	team := &models.TeamSnapshot{}
	var encoded string
	err := row.Scan(
		&team.ID, &team.Name, &team.ShortName, &team.LeagueRank, &encoded,
		&team.TopScorer.Name, &team.TopScorer.Goals, &team.TopScorer.IsInjured, &team.LastMatchDaysAgo,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan team snapshot: %w", err)
	}

	team.RecentResults, err = decodeResults(encoded)
	if err != nil {
		return nil, fmt.Errorf("team %s: %w", team.Name, err)
	}
	return team, nil
}

// encodeResults packs results into a letter string ("WDLWW")
func encodeResults(results []models.Result) string {
	encoded := make([]byte, len(results))
	for i, r := range results {
		encoded[i] = string(r)[0]
	}
	return string(encoded)
}

// decodeResults unpacks a letter string into results
func decodeResults(encoded string) ([]models.Result, error) {
	results := make([]models.Result, 0, len(encoded))
	for _, c := range encoded {
		switch c {
		case 'W':
			results = append(results, models.ResultWin)
		case 'D':
			results = append(results, models.ResultDraw)
		case 'L':
			results = append(results, models.ResultLoss)
		default:
			return nil, fmt.Errorf("%w: unknown result letter %q", models.ErrMalformedSnapshot, c)
		}
	}
	return results, nil
}
