package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/matchcast/internal/database"
	"github.com/yourusername/matchcast/internal/models"
)

// Tick sources written by the ingestion pipeline
const (
	SourceOverseas = "overseas"
	SourceDomestic = "domestic"
)

// PostgresOddsRepository implements OddsRepository for PostgreSQL
type PostgresOddsRepository struct {
	db *database.DB
}

// NewPostgresOddsRepository creates a new odds repository
func NewPostgresOddsRepository(db *database.DB) OddsRepository {
	return &PostgresOddsRepository{db: db}
}

// Insert inserts a single odds tick
func (o *PostgresOddsRepository) Insert(ctx context.Context, snapshot *models.OddsSnapshot) error {
	query := `
		INSERT INTO odds_snapshots (time, fixture_id, source, home, draw, away)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := o.db.GetPool().Exec(ctx, query,
		snapshot.Time, snapshot.FixtureID, snapshot.Source,
		snapshot.Odds.Home, snapshot.Odds.Draw, snapshot.Odds.Away,
	)
	if err != nil {
		return fmt.Errorf("failed to insert odds tick: %w", err)
	}

	return nil
}

// InsertBatch inserts multiple odds ticks using high-performance batch insert
func (o *PostgresOddsRepository) InsertBatch(ctx context.Context, snapshots []*models.OddsSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	// Use COPY for high-performance bulk insert
	columns := []string{"time", "fixture_id", "source", "home", "draw", "away"}

	copyFromSource := make([][]interface{}, len(snapshots))
	for i, s := range snapshots {
		copyFromSource[i] = []interface{}{
			s.Time, s.FixtureID, s.Source, s.Odds.Home, s.Odds.Draw, s.Odds.Away,
		}
	}

	count, err := o.db.GetPool().CopyFrom(ctx, pgx.Identifier{"odds_snapshots"}, columns, pgx.CopyFromRows(copyFromSource))
	if err != nil {
		return fmt.Errorf("failed to batch insert odds ticks: %w", err)
	}

	if count != int64(len(snapshots)) {
		return fmt.Errorf("inserted %d rows, expected %d", count, len(snapshots))
	}

	return nil
}

// GetLatest retrieves the most recent tick for a fixture from one source
func (o *PostgresOddsRepository) GetLatest(ctx context.Context, fixtureID uuid.UUID, source string) (*models.OddsSnapshot, error) {
	query := `
		SELECT time, fixture_id, source, home, draw, away
		FROM odds_snapshots
		WHERE fixture_id = $1 AND source = $2
		ORDER BY time DESC
		LIMIT 1
	`

	snapshot := &models.OddsSnapshot{}
	err := o.db.GetPool().QueryRow(ctx, query, fixtureID, source).Scan(
		&snapshot.Time, &snapshot.FixtureID, &snapshot.Source,
		&snapshot.Odds.Home, &snapshot.Odds.Draw, &snapshot.Odds.Away,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest odds tick: %w", err)
	}

	return snapshot, nil
}

// GetSeries retrieves a fixture's tick series within a time range
func (o *PostgresOddsRepository) GetSeries(ctx context.Context, fixtureID uuid.UUID, start, end time.Time) ([]*models.OddsSnapshot, error) {
	query := `
		SELECT time, fixture_id, source, home, draw, away
		FROM odds_snapshots
		WHERE fixture_id = $1 AND time >= $2 AND time <= $3
		ORDER BY time ASC
	`

	rows, err := o.db.GetPool().Query(ctx, query, fixtureID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query odds series: %w", err)
	}
	defer rows.Close()

	var snapshots []*models.OddsSnapshot
	for rows.Next() {
		snapshot := &models.OddsSnapshot{}
		err := rows.Scan(
			&snapshot.Time, &snapshot.FixtureID, &snapshot.Source,
			&snapshot.Odds.Home, &snapshot.Odds.Draw, &snapshot.Odds.Away,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan odds tick: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}

// GetLatestRecord composes the current odds view for a fixture: the
// freshest tick per source plus the movement against the tick before it
func (o *PostgresOddsRepository) GetLatestRecord(ctx context.Context, fixtureID uuid.UUID) (*models.OddsRecord, error) {
	overseas, overseasPrev, err := o.latestPair(ctx, fixtureID, SourceOverseas)
	if err != nil {
		return nil, err
	}
	if overseas == nil {
		return nil, models.ErrNotFound
	}

	record := &models.OddsRecord{
		FixtureID:     fixtureID,
		Overseas:      overseas.Odds,
		OverseasTrend: overseas.TrendAgainst(overseasPrev),
		RecordedAt:    overseas.Time,
	}

	domestic, domesticPrev, err := o.latestPair(ctx, fixtureID, SourceDomestic)
	if err != nil {
		return nil, err
	}
	if domestic != nil {
		odds := domestic.Odds
		record.Domestic = &odds
		record.DomesticTrend = domestic.TrendAgainst(domesticPrev)
		if domestic.Time.After(record.RecordedAt) {
			record.RecordedAt = domestic.Time
		}
	}

	return record, nil
}

// latestPair fetches the two freshest ticks for trend derivation.
// A missing source yields (nil, nil, nil), not an error.
func (o *PostgresOddsRepository) latestPair(ctx context.Context, fixtureID uuid.UUID, source string) (*models.OddsSnapshot, *models.OddsSnapshot, error) {
	query := `
		SELECT time, fixture_id, source, home, draw, away
		FROM odds_snapshots
		WHERE fixture_id = $1 AND source = $2
		ORDER BY time DESC
		LIMIT 2
	`

	rows, err := o.db.GetPool().Query(ctx, query, fixtureID, source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query latest ticks: %w", err)
	}
	defer rows.Close()

	var ticks []*models.OddsSnapshot
	for rows.Next() {
		tick := &models.OddsSnapshot{}
		err := rows.Scan(
			&tick.Time, &tick.FixtureID, &tick.Source,
			&tick.Odds.Home, &tick.Odds.Draw, &tick.Odds.Away,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan odds tick: %w", err)
		}
		ticks = append(ticks, tick)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	switch len(ticks) {
	case 0:
		return nil, nil, nil
	case 1:
		return ticks[0], nil, nil
	default:
		return ticks[0], ticks[1], nil
	}
}
