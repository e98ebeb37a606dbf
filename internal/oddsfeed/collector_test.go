package oddsfeed

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchcast/internal/models"
	"github.com/yourusername/matchcast/internal/repository"
)

type fakeOddsRepo struct {
	mu      sync.Mutex
	batches [][]*models.OddsSnapshot
}

func (f *fakeOddsRepo) Insert(ctx context.Context, s *models.OddsSnapshot) error {
	return f.InsertBatch(ctx, []*models.OddsSnapshot{s})
}

func (f *fakeOddsRepo) InsertBatch(ctx context.Context, snapshots []*models.OddsSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, snapshots)
	return nil
}

func (f *fakeOddsRepo) GetLatest(ctx context.Context, fixtureID uuid.UUID, source string) (*models.OddsSnapshot, error) {
	return nil, models.ErrNotFound
}

func (f *fakeOddsRepo) GetSeries(ctx context.Context, fixtureID uuid.UUID, start, end time.Time) ([]*models.OddsSnapshot, error) {
	return nil, nil
}

func (f *fakeOddsRepo) GetLatestRecord(ctx context.Context, fixtureID uuid.UUID) (*models.OddsRecord, error) {
	return nil, models.ErrNotFound
}

func (f *fakeOddsRepo) stored() []*models.OddsSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*models.OddsSnapshot
	for _, b := range f.batches {
		all = append(all, b...)
	}
	return all
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func tickJSON(t *testing.T, tick TickMessage) json.RawMessage {
	t.Helper()
	tick.Op = "tick"
	raw, err := json.Marshal(tick)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestCollectorBuffersAndFlushes(t *testing.T) {
	repo := &fakeOddsRepo{}
	collector := NewTickCollector(nil, repo, 100, time.Hour, quietLogger())

	fixtureID := uuid.New()
	collector.SetFixtureMap(map[int64]uuid.UUID{1001: fixtureID})

	quoted := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	err := collector.onMessage(tickJSON(t, TickMessage{
		FixtureSourceID: 1001,
		Home:            1.85, Draw: 3.40, Away: 4.20,
		QuotedAtMs: quoted.UnixMilli(),
	}))
	if err != nil {
		t.Fatalf("onMessage() error = %v", err)
	}

	if got := repo.stored(); len(got) != 0 {
		t.Fatalf("stored %d ticks before flush, want 0", len(got))
	}

	if err := collector.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	stored := repo.stored()
	if len(stored) != 1 {
		t.Fatalf("stored %d ticks, want 1", len(stored))
	}
	snap := stored[0]
	if snap.FixtureID != fixtureID {
		t.Errorf("fixture id = %v", snap.FixtureID)
	}
	if snap.Source != repository.SourceOverseas {
		t.Errorf("source = %q", snap.Source)
	}
	if snap.Odds.Home != 1.85 || snap.Odds.Draw != 3.40 || snap.Odds.Away != 4.20 {
		t.Errorf("odds = %+v", snap.Odds)
	}
	if !snap.Time.Equal(quoted) {
		t.Errorf("time = %v, want %v", snap.Time, quoted)
	}

	stats := collector.Stats()
	if stats.MessagesProcessed != 1 || stats.SnapshotsStored != 1 || stats.BufferFlushes != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCollectorDropsUnmappedFixtures(t *testing.T) {
	repo := &fakeOddsRepo{}
	collector := NewTickCollector(nil, repo, 100, time.Hour, quietLogger())
	collector.SetFixtureMap(map[int64]uuid.UUID{1001: uuid.New()})

	err := collector.onMessage(tickJSON(t, TickMessage{
		FixtureSourceID: 9999,
		Home:            2.0, Draw: 3.0, Away: 4.0,
		QuotedAtMs: time.Now().UnixMilli(),
	}))
	if err != nil {
		t.Fatalf("onMessage() error = %v", err)
	}

	if err := collector.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := repo.stored(); len(got) != 0 {
		t.Errorf("stored %d ticks for unmapped fixture, want 0", len(got))
	}
}

func TestCollectorDropsInvalidOdds(t *testing.T) {
	repo := &fakeOddsRepo{}
	collector := NewTickCollector(nil, repo, 100, time.Hour, quietLogger())
	collector.SetFixtureMap(map[int64]uuid.UUID{1001: uuid.New()})

	err := collector.onMessage(tickJSON(t, TickMessage{
		FixtureSourceID: 1001,
		Home:            0.5, Draw: 3.0, Away: 4.0,
		QuotedAtMs: time.Now().UnixMilli(),
	}))
	if err != nil {
		t.Fatalf("onMessage() error = %v", err)
	}

	if err := collector.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := repo.stored(); len(got) != 0 {
		t.Errorf("stored %d invalid ticks, want 0", len(got))
	}
	if collector.Stats().Errors != 1 {
		t.Errorf("errors = %d, want 1", collector.Stats().Errors)
	}
}

func TestCollectorIgnoresNonTickMessages(t *testing.T) {
	repo := &fakeOddsRepo{}
	collector := NewTickCollector(nil, repo, 100, time.Hour, quietLogger())

	if err := collector.onMessage(json.RawMessage(`{"op":"status","status":0}`)); err != nil {
		t.Fatalf("onMessage() error = %v", err)
	}
	if collector.Stats().MessagesProcessed != 0 {
		t.Error("status message counted as tick")
	}
}
