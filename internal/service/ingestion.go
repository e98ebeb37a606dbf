package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchcast/internal/analysis"
	"github.com/yourusername/matchcast/internal/datasource"
	"github.com/yourusername/matchcast/internal/metrics"
	"github.com/yourusername/matchcast/internal/models"
	"github.com/yourusername/matchcast/internal/repository"
)

// Fixture sync window: yesterday's results through two weeks ahead
const (
	fixtureSyncLookback = 24 * time.Hour
	fixtureSyncHorizon  = 14 * 24 * time.Hour
	weatherCacheTTL     = 2 * time.Hour
)

var leagueNamespace = uuid.MustParse("c3a9f9d0-1b7e-43c6-8a52-7f0d4b6e9c21")

// LeagueID derives the stable internal identifier for an upstream league
func LeagueID(leagueAPIID int) uuid.UUID {
	return uuid.NewSHA1(leagueNamespace, []byte(fmt.Sprintf("%d", leagueAPIID)))
}

// IngestionService runs the scheduled data ingestion workflows
type IngestionService struct {
	sports       *datasource.SportsAPIClient
	domesticOdds *datasource.DomesticOddsClient
	weather      *datasource.WeatherClient

	repos      *repository.Repositories
	normalizer *DataNormalizer
	validator  *DataValidator

	weatherCache *cache.Cache
	metrics      *IngestionMetrics
	logger       logrus.FieldLogger

	leagues   []int
	season    int
	batchSize int
}

// NewIngestionService creates a new ingestion service. The domestic
// odds and weather clients may be nil when those feeds are disabled.
func NewIngestionService(
	sports *datasource.SportsAPIClient,
	domesticOdds *datasource.DomesticOddsClient,
	weather *datasource.WeatherClient,
	repos *repository.Repositories,
	normalizer *DataNormalizer,
	validator *DataValidator,
	logger logrus.FieldLogger,
	leagues []int,
	season int,
	batchSize int,
) *IngestionService {
	if batchSize <= 0 {
		batchSize = 100
	}

	return &IngestionService{
		sports:       sports,
		domesticOdds: domesticOdds,
		weather:      weather,
		repos:        repos,
		normalizer:   normalizer,
		validator:    validator,
		weatherCache: cache.New(weatherCacheTTL, weatherCacheTTL*2),
		metrics:      NewIngestionMetrics(),
		logger:       logger,
		leagues:      leagues,
		season:       season,
		batchSize:    batchSize,
	}
}

// EnsureLeagues upserts the configured league set so fixtures and
// standings have rows to hang off
func (s *IngestionService) EnsureLeagues(ctx context.Context) error {
	for _, apiID := range s.leagues {
		league := &models.League{
			ID:        LeagueID(apiID),
			APIID:     apiID,
			Name:      analysis.LeagueName(apiID),
			Season:    s.season,
			IsEnabled: true,
		}
		if err := s.repos.League.Upsert(ctx, league); err != nil {
			return fmt.Errorf("failed to upsert league %d: %w", apiID, err)
		}
	}
	s.logger.WithField("count", len(s.leagues)).Info("Leagues ensured")
	return nil
}

// SyncFixtures pulls the fixture window for every enabled league
func (s *IngestionService) SyncFixtures(ctx context.Context) error {
	start := time.Now()
	s.metrics.Reset()

	from := start.Add(-fixtureSyncLookback)
	to := start.Add(fixtureSyncHorizon)

	var firstErr error
	for _, apiID := range s.leagues {
		if err := s.syncLeagueFixtures(ctx, apiID, from, to); err != nil {
			s.metrics.RecordError()
			s.logger.WithError(err).WithField("league", apiID).Error("Fixture sync failed for league")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	s.metrics.mu.Lock()
	s.metrics.Duration = time.Since(start)
	stored := s.metrics.StoredFixtures
	s.metrics.mu.Unlock()

	status := "success"
	if firstErr != nil {
		status = "failure"
	}
	metrics.RecordIngestionRun("fixtures", status, time.Since(start).Seconds(), stored)

	s.logger.WithField("metrics", s.metrics.String()).Info("Fixture sync complete")
	return firstErr
}

func (s *IngestionService) syncLeagueFixtures(ctx context.Context, leagueAPIID int, from, to time.Time) error {
	fixtures, err := s.sports.FetchFixtures(ctx, leagueAPIID, s.season, from, to)
	if err != nil {
		return fmt.Errorf("failed to fetch fixtures: %w", err)
	}

	s.metrics.mu.Lock()
	s.metrics.TotalFixtures += len(fixtures)
	s.metrics.mu.Unlock()

	leagueID := LeagueID(leagueAPIID)
	for i := range fixtures {
		fixture, err := s.normalizer.NormalizeFixture(&fixtures[i], leagueID)
		if err != nil {
			s.metrics.RecordError()
			continue
		}

		if errs := s.validator.ValidateFixture(fixture); len(errs) > 0 {
			s.metrics.RecordValidationError()
			s.logger.WithField("fixture", fixture.APIID).
				Warnf("Fixture failed validation: %v", errs)
			continue
		}

		if err := s.repos.Fixture.Upsert(ctx, fixture); err != nil {
			s.metrics.RecordError()
			s.logger.WithError(err).WithField("fixture", fixture.APIID).Error("Fixture upsert failed")
			continue
		}
		s.metrics.RecordFixture()
	}

	return nil
}

// SyncStandings refreshes league tables, top scorers and the derived
// team snapshots for every enabled league
func (s *IngestionService) SyncStandings(ctx context.Context) error {
	start := time.Now()
	stored := 0

	var firstErr error
	for _, apiID := range s.leagues {
		n, err := s.syncLeagueStandings(ctx, apiID)
		stored += n
		if err != nil {
			s.logger.WithError(err).WithField("league", apiID).Error("Standing sync failed for league")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	status := "success"
	if firstErr != nil {
		status = "failure"
	}
	metrics.RecordIngestionRun("standings", status, time.Since(start).Seconds(), stored)
	return firstErr
}

func (s *IngestionService) syncLeagueStandings(ctx context.Context, leagueAPIID int) (int, error) {
	rows, err := s.sports.FetchStandings(ctx, leagueAPIID, s.season)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch standings: %w", err)
	}

	scorers, err := s.sports.FetchTopScorers(ctx, leagueAPIID, s.season)
	if err != nil {
		// Standings are still worth storing without scorer detail
		s.logger.WithError(err).WithField("league", leagueAPIID).Warn("Top scorer fetch failed")
		scorers = nil
	}
	scorerByTeam := make(map[int64]*datasource.TopScorerData, len(scorers))
	for i := range scorers {
		if _, seen := scorerByTeam[scorers[i].TeamAPIID]; !seen {
			scorerByTeam[scorers[i].TeamAPIID] = &scorers[i]
		}
	}

	leagueID := LeagueID(leagueAPIID)
	restDays := s.restDaysByTeam(ctx, leagueID)

	standings := make([]*models.Standing, 0, len(rows))
	for i := range rows {
		standing, err := s.normalizer.NormalizeStanding(&rows[i], leagueID)
		if err != nil {
			s.metrics.RecordError()
			continue
		}
		if errs := s.validator.ValidateStanding(standing); len(errs) > 0 {
			s.metrics.RecordValidationError()
			s.logger.WithField("team", standing.TeamName).
				Warnf("Standing failed validation: %v", errs)
			continue
		}
		standings = append(standings, standing)

		snapshot := s.normalizer.SnapshotFromStanding(standing, scorerByTeam[rows[i].TeamAPIID], restDays[standing.TeamID])
		if errs := s.validator.ValidateSnapshot(snapshot); len(errs) > 0 {
			s.metrics.RecordValidationError()
			continue
		}
		if err := s.repos.Team.Upsert(ctx, snapshot); err != nil {
			s.metrics.RecordError()
			s.logger.WithError(err).WithField("team", snapshot.Name).Error("Snapshot upsert failed")
			continue
		}
		s.metrics.RecordSnapshot()
	}

	if len(standings) == 0 {
		return 0, nil
	}
	if err := s.repos.Standing.UpsertBatch(ctx, standings); err != nil {
		return 0, fmt.Errorf("failed to store standings: %w", err)
	}
	for range standings {
		s.metrics.RecordStanding()
	}
	return len(standings), nil
}

// restDaysByTeam derives days since each team's last finished fixture
// from the recent fixture window
func (s *IngestionService) restDaysByTeam(ctx context.Context, leagueID uuid.UUID) map[uuid.UUID]int {
	now := time.Now()
	fixtures, err := s.repos.Fixture.GetByLeague(ctx, leagueID, now.Add(-14*24*time.Hour), now)
	if err != nil {
		s.logger.WithError(err).Debug("No recent fixtures for rest-day derivation")
		return nil
	}

	lastPlayed := make(map[uuid.UUID]time.Time)
	for _, f := range fixtures {
		if !f.IsFinished() {
			continue
		}
		for _, teamID := range []uuid.UUID{f.HomeTeamID, f.AwayTeamID} {
			if f.KickoffAt.After(lastPlayed[teamID]) {
				lastPlayed[teamID] = f.KickoffAt
			}
		}
	}

	restDays := make(map[uuid.UUID]int, len(lastPlayed))
	for teamID, kickoff := range lastPlayed {
		restDays[teamID] = int(now.Sub(kickoff).Hours() / 24)
	}
	return restDays
}

// SyncDomesticOdds pulls current 1X2 lines for upcoming fixtures from
// the domestic bookmaker feed
func (s *IngestionService) SyncDomesticOdds(ctx context.Context) error {
	if s.domesticOdds == nil {
		return nil
	}
	start := time.Now()

	fixtures, err := s.repos.Fixture.GetUpcoming(ctx, s.batchSize)
	if err != nil {
		metrics.RecordIngestionRun("odds", "failure", time.Since(start).Seconds(), 0)
		return fmt.Errorf("failed to load upcoming fixtures: %w", err)
	}
	if len(fixtures) == 0 {
		metrics.RecordIngestionRun("odds", "success", time.Since(start).Seconds(), 0)
		return nil
	}

	sourceIDs := make([]int64, 0, len(fixtures))
	bySourceID := make(map[int64]uuid.UUID, len(fixtures))
	for _, f := range fixtures {
		sourceIDs = append(sourceIDs, f.APIID)
		bySourceID[f.APIID] = f.ID
	}

	lines, err := s.domesticOdds.FetchLines(ctx, sourceIDs)
	if err != nil {
		metrics.RecordIngestionRun("odds", "failure", time.Since(start).Seconds(), 0)
		return fmt.Errorf("failed to fetch domestic lines: %w", err)
	}

	snapshots := make([]*models.OddsSnapshot, 0, len(lines))
	for i := range lines {
		fixtureID, ok := bySourceID[lines[i].FixtureSourceID]
		if !ok {
			continue
		}
		snapshot, err := s.normalizer.NormalizeOddsLine(&lines[i], fixtureID)
		if err != nil {
			s.metrics.RecordValidationError()
			continue
		}
		if errs := s.validator.ValidateOddsSnapshot(snapshot); len(errs) > 0 {
			s.metrics.RecordValidationError()
			continue
		}
		snapshots = append(snapshots, snapshot)
	}

	if len(snapshots) > 0 {
		if err := s.repos.Odds.InsertBatch(ctx, snapshots); err != nil {
			metrics.RecordIngestionRun("odds", "failure", time.Since(start).Seconds(), 0)
			return fmt.Errorf("failed to store domestic lines: %w", err)
		}
	}
	s.metrics.RecordOddsLines(len(snapshots))

	metrics.RecordIngestionRun("odds", "success", time.Since(start).Seconds(), len(snapshots))
	s.logger.WithField("count", len(snapshots)).Info("Domestic odds sync complete")
	return nil
}

// SyncWeather refreshes kickoff forecasts for upcoming fixtures. The
// forecast is inherently transient so it lives in a TTL cache rather
// than the database.
func (s *IngestionService) SyncWeather(ctx context.Context) error {
	if s.weather == nil {
		return nil
	}
	start := time.Now()

	fixtures, err := s.repos.Fixture.GetUpcoming(ctx, s.batchSize)
	if err != nil {
		metrics.RecordIngestionRun("weather", "failure", time.Since(start).Seconds(), 0)
		return fmt.Errorf("failed to load upcoming fixtures: %w", err)
	}

	forecastByCity := make(map[string]*models.Weather)
	stored := 0
	for _, f := range fixtures {
		city := f.Venue.City
		if city == "" {
			continue
		}

		forecast, seen := forecastByCity[city]
		if !seen {
			raw, err := s.weather.FetchForecast(ctx, city)
			if err != nil {
				s.logger.WithError(err).WithField("city", city).Warn("Forecast fetch failed")
				forecastByCity[city] = nil
				continue
			}
			forecast = s.normalizer.NormalizeWeather(raw)
			forecastByCity[city] = forecast
		}
		if forecast == nil {
			continue
		}

		s.weatherCache.Set(f.ID.String(), forecast, weatherCacheTTL)
		stored++
	}

	metrics.RecordIngestionRun("weather", "success", time.Since(start).Seconds(), stored)
	s.logger.WithField("count", stored).Info("Weather sync complete")
	return nil
}

// WeatherFor returns the cached kickoff forecast for a fixture, or nil
// when none is fresh
func (s *IngestionService) WeatherFor(fixtureID uuid.UUID) *models.Weather {
	if cached, found := s.weatherCache.Get(fixtureID.String()); found {
		if forecast, ok := cached.(*models.Weather); ok {
			return forecast
		}
	}
	return nil
}

// FixtureFeedMap builds the feed-ID to fixture-ID mapping consumed by
// the streaming tick collector
func (s *IngestionService) FixtureFeedMap(ctx context.Context) (map[int64]uuid.UUID, error) {
	fixtures, err := s.repos.Fixture.GetUpcoming(ctx, s.batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming fixtures: %w", err)
	}

	mapping := make(map[int64]uuid.UUID, len(fixtures))
	for _, f := range fixtures {
		mapping[f.APIID] = f.ID
	}
	metrics.UpdateUpcomingFixtures(float64(len(fixtures)))
	return mapping, nil
}

// Metrics returns the tracker for the most recent run
func (s *IngestionService) Metrics() *IngestionMetrics {
	return s.metrics
}
