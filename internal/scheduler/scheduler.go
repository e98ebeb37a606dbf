// Package scheduler runs the recurring ingestion jobs on cron
// schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchcast/internal/config"
	"github.com/yourusername/matchcast/internal/service"
)

// Per-job timeouts. Fixture and standing syncs walk every enabled
// league; odds and weather only touch the upcoming window.
const (
	fullSyncTimeout  = 30 * time.Minute
	quickSyncTimeout = 5 * time.Minute
)

// Scheduler manages the recurring ingestion jobs
type Scheduler struct {
	cron         *cron.Cron
	ingestionSvc *service.IngestionService
	logger       logrus.FieldLogger

	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a new scheduler. Schedules run in UTC.
func NewScheduler(ingestionSvc *service.IngestionService, logger logrus.FieldLogger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithLocation(time.UTC)),
		ingestionSvc: ingestionSvc,
		logger:       logger,
		jobIDs:       make([]cron.EntryID, 0),
	}
}

// ScheduleAll registers the four ingestion jobs from configuration
func (s *Scheduler) ScheduleAll(cfg *config.IngestionConfig) error {
	jobs := []struct {
		name    string
		spec    string
		timeout time.Duration
		run     func(context.Context) error
	}{
		{"fixtures", cfg.FixtureSyncCron, fullSyncTimeout, s.ingestionSvc.SyncFixtures},
		{"standings", cfg.StandingSyncCron, fullSyncTimeout, s.ingestionSvc.SyncStandings},
		{"odds", cfg.OddsSyncCron, quickSyncTimeout, s.ingestionSvc.SyncDomesticOdds},
		{"weather", cfg.WeatherSyncCron, quickSyncTimeout, s.ingestionSvc.SyncWeather},
	}

	for _, job := range jobs {
		if err := s.schedule(job.name, job.spec, job.timeout, job.run); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) schedule(name, spec string, timeout time.Duration, run func(context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		s.logger.WithField("job", name).Info("Starting scheduled sync")
		if err := run(ctx); err != nil {
			s.logger.WithError(err).WithField("job", name).Error("Scheduled sync failed")
			return
		}
		s.logger.WithField("job", name).Info("Scheduled sync complete")
	}

	entryID, err := s.cron.AddFunc(spec, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to schedule %s job: %w", name, err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{"job": name, "cron": spec}).Info("Job scheduled")
	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the earliest next run across all scheduled jobs
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() && (nextRun.IsZero() || entry.Next.Before(nextRun)) {
			nextRun = entry.Next
		}
	}
	return nextRun
}

// Entries returns the scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}
	return entries
}
