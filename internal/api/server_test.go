package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchcast/internal/config"
	"github.com/yourusername/matchcast/internal/models"
	"github.com/yourusername/matchcast/internal/repository"
	"github.com/yourusername/matchcast/internal/service"
)

// Minimal in-memory repositories backing the handler tests.

type memLeagues struct{ byID map[uuid.UUID]*models.League }

func (r *memLeagues) Upsert(_ context.Context, l *models.League) error {
	r.byID[l.ID] = l
	return nil
}

func (r *memLeagues) GetByID(_ context.Context, id uuid.UUID) (*models.League, error) {
	if l, ok := r.byID[id]; ok {
		return l, nil
	}
	return nil, models.ErrNotFound
}

func (r *memLeagues) GetByAPIID(_ context.Context, apiID int) (*models.League, error) {
	for _, l := range r.byID {
		if l.APIID == apiID {
			return l, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memLeagues) GetEnabled(_ context.Context) ([]*models.League, error) { return nil, nil }

type memFixtures struct{ byID map[uuid.UUID]*models.Fixture }

func (r *memFixtures) Upsert(_ context.Context, f *models.Fixture) error {
	r.byID[f.ID] = f
	return nil
}

func (r *memFixtures) GetByID(_ context.Context, id uuid.UUID) (*models.Fixture, error) {
	if f, ok := r.byID[id]; ok {
		return f, nil
	}
	return nil, models.ErrNotFound
}

func (r *memFixtures) GetByAPIID(_ context.Context, apiID int64) (*models.Fixture, error) {
	return nil, models.ErrNotFound
}

func (r *memFixtures) GetUpcoming(_ context.Context, limit int) ([]*models.Fixture, error) {
	var out []*models.Fixture
	for _, f := range r.byID {
		if len(out) < limit {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFixtures) GetByDateRange(_ context.Context, _, _ time.Time) ([]*models.Fixture, error) {
	return nil, nil
}

func (r *memFixtures) GetByLeague(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]*models.Fixture, error) {
	return nil, nil
}

func (r *memFixtures) UpdateResult(_ context.Context, _ uuid.UUID, _, _ int, _ models.FixtureStatus) error {
	return nil
}

type memTeams struct {
	byID map[uuid.UUID]*models.TeamSnapshot
}

func (r *memTeams) Upsert(_ context.Context, t *models.TeamSnapshot) error {
	r.byID[t.ID] = t
	return nil
}

func (r *memTeams) GetByID(_ context.Context, id uuid.UUID) (*models.TeamSnapshot, error) {
	if t, ok := r.byID[id]; ok {
		return t, nil
	}
	return nil, models.ErrNotFound
}

func (r *memTeams) GetByName(_ context.Context, _ string) (*models.TeamSnapshot, error) {
	return nil, models.ErrNotFound
}

type memOdds struct {
	byFixture map[uuid.UUID]*models.OddsRecord
}

func (r *memOdds) Insert(_ context.Context, _ *models.OddsSnapshot) error        { return nil }
func (r *memOdds) InsertBatch(_ context.Context, _ []*models.OddsSnapshot) error { return nil }

func (r *memOdds) GetLatest(_ context.Context, _ uuid.UUID, _ string) (*models.OddsSnapshot, error) {
	return nil, models.ErrNotFound
}

func (r *memOdds) GetSeries(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]*models.OddsSnapshot, error) {
	return nil, nil
}

func (r *memOdds) GetLatestRecord(_ context.Context, fixtureID uuid.UUID) (*models.OddsRecord, error) {
	if rec, ok := r.byFixture[fixtureID]; ok {
		return rec, nil
	}
	return nil, models.ErrNotFound
}

type memFeatures struct{}

func (memFeatures) Upsert(_ context.Context, _ uuid.UUID, _ *models.FeatureSnapshot) error {
	return nil
}

func (memFeatures) GetByFixtureID(_ context.Context, _ uuid.UUID) (*models.FeatureSnapshot, error) {
	return nil, models.ErrNotFound
}

type memStandings struct{ rows []*models.Standing }

func (r *memStandings) UpsertBatch(_ context.Context, rows []*models.Standing) error {
	r.rows = rows
	return nil
}

func (r *memStandings) GetByLeague(_ context.Context, _ uuid.UUID, _ int) ([]*models.Standing, error) {
	return r.rows, nil
}

func (r *memStandings) GetByTeam(_ context.Context, _ uuid.UUID, _ int) (*models.Standing, error) {
	return nil, models.ErrNotFound
}

type world struct {
	server  *Server
	fixture *models.Fixture
	odds    *memOdds
	league  *models.League
}

func newWorld(t *testing.T) *world {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	home := &models.TeamSnapshot{
		ID: uuid.New(), Name: "Arsenal", LeagueRank: 2,
		RecentResults: []models.Result{models.ResultWin, models.ResultWin}, LastMatchDaysAgo: 6,
	}
	away := &models.TeamSnapshot{
		ID: uuid.New(), Name: "Everton", LeagueRank: 14,
		RecentResults: []models.Result{models.ResultLoss}, LastMatchDaysAgo: 6,
	}
	league := &models.League{ID: uuid.New(), APIID: 39, Name: "Premier League", Season: 2026, IsEnabled: true}
	fixture := &models.Fixture{
		ID: uuid.New(), APIID: 1001, LeagueID: league.ID,
		HomeTeamID: home.ID, AwayTeamID: away.ID,
		KickoffAt: time.Now().Add(24 * time.Hour), Status: models.StatusScheduled,
	}

	odds := &memOdds{byFixture: map[uuid.UUID]*models.OddsRecord{}}
	repos := &repository.Repositories{
		League:   &memLeagues{byID: map[uuid.UUID]*models.League{league.ID: league}},
		Fixture:  &memFixtures{byID: map[uuid.UUID]*models.Fixture{fixture.ID: fixture}},
		Team:     &memTeams{byID: map[uuid.UUID]*models.TeamSnapshot{home.ID: home, away.ID: away}},
		Odds:     odds,
		Feature:  memFeatures{},
		Standing: &memStandings{rows: []*models.Standing{{LeagueID: league.ID, TeamID: home.ID, TeamName: "Arsenal", Rank: 2}}},
	}

	predictions := service.NewPredictionService(repos, nil, nil, log)
	server := NewServer(&config.APIConfig{Port: 0, ReadTimeoutSeconds: 5, WriteTimeoutSeconds: 5}, repos, predictions, log)

	return &world{server: server, fixture: fixture, odds: odds, league: league}
}

func (w *world) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	w.server.server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestMatchesListing(t *testing.T) {
	w := newWorld(t)
	w.odds.byFixture[w.fixture.ID] = &models.OddsRecord{
		FixtureID: w.fixture.ID,
		Overseas:  models.OddsTriple{Home: 1.80, Draw: 3.60, Away: 4.50},
	}

	rec := w.get(t, "/api/matches")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Matches []struct {
			Fixture models.Fixture     `json:"fixture"`
			Odds    *models.OddsRecord `json:"odds"`
		} `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Matches, 1)
	assert.Equal(t, w.fixture.ID, body.Matches[0].Fixture.ID)
	require.NotNil(t, body.Matches[0].Odds)
	assert.InDelta(t, 1.80, body.Matches[0].Odds.Overseas.Home, 1e-9)
}

func TestMatchesRejectsBadLimit(t *testing.T) {
	w := newWorld(t)
	assert.Equal(t, http.StatusBadRequest, w.get(t, "/api/matches?limit=0").Code)
	assert.Equal(t, http.StatusBadRequest, w.get(t, "/api/matches?limit=abc").Code)
}

func TestAnalysisEndpoint(t *testing.T) {
	w := newWorld(t)
	rec := w.get(t, "/api/matches/"+w.fixture.ID.String()+"/analysis")
	require.Equal(t, http.StatusOK, rec.Code)

	var prediction service.Prediction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prediction))
	require.NotNil(t, prediction.Result)
	assert.Equal(t, w.fixture.ID, prediction.Result.FixtureID)
	assert.InDelta(t, 100, prediction.Adjusted.Sum(), 0.01)
}

func TestAnalysisWhatIfToggles(t *testing.T) {
	w := newWorld(t)
	plain := w.get(t, "/api/matches/"+w.fixture.ID.String()+"/analysis")
	whatIf := w.get(t, "/api/matches/"+w.fixture.ID.String()+"/analysis?home_fatigue=true&rain=true")
	require.Equal(t, http.StatusOK, whatIf.Code)

	var base, adjusted service.Prediction
	require.NoError(t, json.Unmarshal(plain.Body.Bytes(), &base))
	require.NoError(t, json.Unmarshal(whatIf.Body.Bytes(), &adjusted))
	assert.Less(t, adjusted.Adjusted.Home, base.Adjusted.Home)
}

func TestAnalysisRejectsBadToggle(t *testing.T) {
	w := newWorld(t)
	rec := w.get(t, "/api/matches/"+w.fixture.ID.String()+"/analysis?rain=maybe")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysisUnknownFixture(t *testing.T) {
	w := newWorld(t)
	assert.Equal(t, http.StatusNotFound, w.get(t, "/api/matches/"+uuid.NewString()+"/analysis").Code)
	assert.Equal(t, http.StatusBadRequest, w.get(t, "/api/matches/not-a-uuid/analysis").Code)
}

func TestStandingsEndpoint(t *testing.T) {
	w := newWorld(t)
	rec := w.get(t, "/api/standings?league=39")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		League    models.League      `json:"league"`
		Standings []*models.Standing `json:"standings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Premier League", body.League.Name)
	require.Len(t, body.Standings, 1)
	assert.Equal(t, "Arsenal", body.Standings[0].TeamName)
}

func TestStandingsUnknownLeague(t *testing.T) {
	w := newWorld(t)
	assert.Equal(t, http.StatusNotFound, w.get(t, "/api/standings?league=999").Code)
	assert.Equal(t, http.StatusBadRequest, w.get(t, "/api/standings").Code)
}
