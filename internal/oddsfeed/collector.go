package oddsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchcast/internal/models"
	"github.com/yourusername/matchcast/internal/repository"
)

// CollectorStats tracks collector throughput
type CollectorStats struct {
	MessagesProcessed int64
	BufferFlushes     int64
	SnapshotsStored   int64
	Errors            int64
	LastFlushTime     time.Time
}

// TickCollector buffers incoming odds ticks and flushes them to the
// odds repository in batches. Feed fixture IDs are resolved to internal
// fixture IDs through the mapping supplied by the ingestion layer.
type TickCollector struct {
	stream        *StreamClient
	oddsRepo      repository.OddsRepository
	bufferSize    int
	flushInterval time.Duration

	mu         sync.Mutex
	buffer     []*models.OddsSnapshot
	fixtureMap map[int64]uuid.UUID
	stats      CollectorStats
	done       chan struct{}

	logger logrus.FieldLogger
}

// NewTickCollector creates a new tick collector
func NewTickCollector(
	stream *StreamClient,
	oddsRepo repository.OddsRepository,
	bufferSize int,
	flushInterval time.Duration,
	logger logrus.FieldLogger,
) *TickCollector {
	if bufferSize <= 0 {
		bufferSize = 500
	}
	if flushInterval <= 0 {
		flushInterval = 5 * time.Second
	}

	return &TickCollector{
		stream:        stream,
		oddsRepo:      oddsRepo,
		bufferSize:    bufferSize,
		flushInterval: flushInterval,
		buffer:        make([]*models.OddsSnapshot, 0, bufferSize),
		fixtureMap:    make(map[int64]uuid.UUID),
		done:          make(chan struct{}),
		logger:        logger,
	}
}

// SetFixtureMap replaces the feed-ID to fixture-ID mapping. Ticks for
// unmapped fixtures are dropped.
func (c *TickCollector) SetFixtureMap(mapping map[int64]uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fixtureMap = make(map[int64]uuid.UUID, len(mapping))
	for k, v := range mapping {
		c.fixtureMap[k] = v
	}
}

// Start registers the collector on the stream and begins periodic
// flushing. Call before StreamClient.Run.
func (c *TickCollector) Start(ctx context.Context) {
	c.stream.AddHandler(c.onMessage)
	go c.flushLoop(ctx)
	c.logger.Info("Odds tick collector started")
}

// Stop flushes the remaining buffer and halts the collector
func (c *TickCollector) Stop(ctx context.Context) error {
	close(c.done)
	return c.Flush(ctx)
}

func (c *TickCollector) onMessage(msg json.RawMessage) error {
	var tick TickMessage
	if err := json.Unmarshal(msg, &tick); err != nil {
		c.mu.Lock()
		c.stats.Errors++
		c.mu.Unlock()
		return fmt.Errorf("failed to unmarshal tick: %w", err)
	}
	if tick.Op != "tick" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.MessagesProcessed++

	fixtureID, ok := c.fixtureMap[tick.FixtureSourceID]
	if !ok {
		c.logger.WithField("feed_fixture", tick.FixtureSourceID).
			Debug("Dropping tick for unmapped fixture")
		return nil
	}

	snapshot := &models.OddsSnapshot{
		Time:      time.UnixMilli(tick.QuotedAtMs).UTC(),
		FixtureID: fixtureID,
		Source:    repository.SourceOverseas,
		Odds: models.OddsTriple{
			Home: tick.Home,
			Draw: tick.Draw,
			Away: tick.Away,
		},
	}
	if !snapshot.Odds.IsValid() {
		c.stats.Errors++
		c.logger.WithField("feed_fixture", tick.FixtureSourceID).
			Warn("Dropping tick with invalid odds")
		return nil
	}

	c.buffer = append(c.buffer, snapshot)
	if len(c.buffer) >= c.bufferSize {
		go c.flushAsync()
	}
	return nil
}

func (c *TickCollector) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(c.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.Flush(ctx); err != nil {
				c.logger.WithError(err).Error("Periodic tick flush failed")
			}
		}
	}
}

func (c *TickCollector) flushAsync() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.Flush(ctx); err != nil {
		c.logger.WithError(err).Error("Buffer-full tick flush failed")
	}
}

// Flush writes the buffered ticks to storage
func (c *TickCollector) Flush(ctx context.Context) error {
	c.mu.Lock()
	if len(c.buffer) == 0 {
		c.mu.Unlock()
		return nil
	}
	batch := c.buffer
	c.buffer = make([]*models.OddsSnapshot, 0, c.bufferSize)
	c.mu.Unlock()

	if err := c.oddsRepo.InsertBatch(ctx, batch); err != nil {
		c.mu.Lock()
		c.stats.Errors++
		c.mu.Unlock()
		return fmt.Errorf("failed to store %d ticks: %w", len(batch), err)
	}

	c.mu.Lock()
	c.stats.BufferFlushes++
	c.stats.SnapshotsStored += int64(len(batch))
	c.stats.LastFlushTime = time.Now()
	c.mu.Unlock()

	c.logger.WithField("count", len(batch)).Debug("Flushed odds ticks")
	return nil
}

// Stats returns a copy of the collector counters
func (c *TickCollector) Stats() CollectorStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
