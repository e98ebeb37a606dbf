package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics about one ingestion run
type IngestionMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	TotalFixtures    int
	StoredFixtures   int
	StoredStandings  int
	StoredSnapshots  int
	StoredOddsLines  int
	Duplicates       int
	ValidationErrors int
	Errors           int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{
		StartTime: time.Now(),
	}
}

// Reset resets all metrics
func (m *IngestionMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.TotalFixtures = 0
	m.StoredFixtures = 0
	m.StoredStandings = 0
	m.StoredSnapshots = 0
	m.StoredOddsLines = 0
	m.Duplicates = 0
	m.ValidationErrors = 0
	m.Errors = 0
}

// RecordFixture increments the stored fixture count
func (m *IngestionMetrics) RecordFixture() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoredFixtures++
}

// RecordStanding increments the stored standing count
func (m *IngestionMetrics) RecordStanding() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoredStandings++
}

// RecordSnapshot increments the stored team snapshot count
func (m *IngestionMetrics) RecordSnapshot() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoredSnapshots++
}

// RecordOddsLines adds to the stored odds line count
func (m *IngestionMetrics) RecordOddsLines(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoredOddsLines += n
}

// RecordValidationError increments the validation error count
func (m *IngestionMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors++
}

// RecordError increments the error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// String returns a formatted representation of the run
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf(
		"IngestionMetrics{Fixtures=%d/%d, Standings=%d, Snapshots=%d, OddsLines=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.StoredFixtures,
		m.TotalFixtures,
		m.StoredStandings,
		m.StoredSnapshots,
		m.StoredOddsLines,
		m.ValidationErrors,
		m.Errors,
		m.Duration,
	)
}
