package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/matchcast/internal/database"
	"github.com/yourusername/matchcast/internal/models"
)

// Integration tests run only when MATCHCAST_TEST_DB_CONFIG points at a
// migrated database; SetupTestDB skips them otherwise.

func TestFixtureRepositoryUpsert(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	if err != nil {
		t.Fatalf("failed to create repositories: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fixture := &models.Fixture{
		ID:         uuid.New(),
		APIID:      time.Now().UnixNano(),
		LeagueID:   uuid.New(),
		HomeTeamID: uuid.New(),
		AwayTeamID: uuid.New(),
		KickoffAt:  time.Now().Add(24 * time.Hour),
		Status:     models.StatusScheduled,
		Venue:      models.Venue{Name: "Anfield", City: "Liverpool"},
	}

	if err := repos.Fixture.Upsert(ctx, fixture); err != nil {
		t.Fatalf("failed to upsert fixture: %v", err)
	}

	retrieved, err := repos.Fixture.GetByID(ctx, fixture.ID)
	if err != nil {
		t.Fatalf("failed to retrieve fixture: %v", err)
	}
	if retrieved.APIID != fixture.APIID {
		t.Errorf("expected api id %d, got %d", fixture.APIID, retrieved.APIID)
	}

	// Second upsert with the same api id must refresh, not duplicate
	fixture.Status = models.StatusPostponed
	if err := repos.Fixture.Upsert(ctx, fixture); err != nil {
		t.Fatalf("failed to re-upsert fixture: %v", err)
	}
}

func TestOddsRepositoryLatestRecord(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	if err != nil {
		t.Fatalf("failed to create repositories: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fixtureID := uuid.New()
	now := time.Now()

	// Two overseas ticks with home drifting in, so the trend is down
	ticks := []*models.OddsSnapshot{
		{Time: now.Add(-time.Hour), FixtureID: fixtureID, Source: SourceOverseas,
			Odds: models.OddsTriple{Home: 1.90, Draw: 3.50, Away: 4.20}},
		{Time: now, FixtureID: fixtureID, Source: SourceOverseas,
			Odds: models.OddsTriple{Home: 1.80, Draw: 3.55, Away: 4.40}},
	}
	if err := repos.Odds.InsertBatch(ctx, ticks); err != nil {
		t.Fatalf("failed to batch insert ticks: %v", err)
	}

	record, err := repos.Odds.GetLatestRecord(ctx, fixtureID)
	if err != nil {
		t.Fatalf("failed to get latest record: %v", err)
	}
	if record.Overseas.Home != 1.80 {
		t.Errorf("expected latest home odds 1.80, got %v", record.Overseas.Home)
	}
	if record.OverseasTrend.Home != models.TrendDown {
		t.Errorf("expected home trend down, got %s", record.OverseasTrend.Home)
	}
	if record.Domestic != nil {
		t.Errorf("no domestic ticks inserted, got %+v", record.Domestic)
	}
}

func TestOddsRepositoryNoTicks(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	if err != nil {
		t.Fatalf("failed to create repositories: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repos.Odds.GetLatestRecord(ctx, uuid.New()); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown fixture, got %v", err)
	}
}

// Result encoding is pure and needs no database.
func TestResultEncoding(t *testing.T) {
	in := []models.Result{models.ResultWin, models.ResultDraw, models.ResultLoss, models.ResultWin}
	encoded := encodeResults(in)
	if encoded != "WDLW" {
		t.Fatalf("expected WDLW, got %s", encoded)
	}

	out, err := decodeResults(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("round trip length mismatch: %d", len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("round trip mismatch at %d: %s", i, out[i])
		}
	}

	if _, err := decodeResults("WXD"); !errors.Is(err, models.ErrMalformedSnapshot) {
		t.Fatalf("expected ErrMalformedSnapshot for unknown letter, got %v", err)
	}
}
