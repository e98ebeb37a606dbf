package service

import (
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchcast/internal/datasource"
	"github.com/yourusername/matchcast/internal/models"
)

func quietLog() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDeterministicIdentifiers(t *testing.T) {
	assert.Equal(t, TeamID(42), TeamID(42))
	assert.NotEqual(t, TeamID(42), TeamID(43))
	assert.NotEqual(t, TeamID(42), FixtureID(42))
	assert.Equal(t, FixtureID(1001), FixtureID(1001))
}

func TestNormalizeFixture(t *testing.T) {
	n := NewDataNormalizer(quietLog())
	leagueID := uuid.New()
	kickoff := time.Date(2026, 9, 12, 15, 0, 0, 0, time.UTC)
	goals := 2

	fixture, err := n.NormalizeFixture(&datasource.FixtureData{
		SourceID:   1001,
		HomeTeamID: 40,
		AwayTeamID: 50,
		KickoffAt:  kickoff,
		Status:     "FT",
		VenueName:  " Anfield ",
		VenueCity:  "Liverpool",
		HomeGoals:  &goals,
		AwayGoals:  &goals,
	}, leagueID)
	require.NoError(t, err)

	assert.Equal(t, FixtureID(1001), fixture.ID)
	assert.Equal(t, int64(1001), fixture.APIID)
	assert.Equal(t, leagueID, fixture.LeagueID)
	assert.Equal(t, TeamID(40), fixture.HomeTeamID)
	assert.Equal(t, TeamID(50), fixture.AwayTeamID)
	assert.Equal(t, models.StatusFinished, fixture.Status)
	assert.Equal(t, "Anfield", fixture.Venue.Name)
	require.NotNil(t, fixture.HomeGoals)
	assert.Equal(t, 2, *fixture.HomeGoals)
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want models.FixtureStatus
	}{
		{"NS", models.StatusScheduled},
		{"tbd", models.StatusScheduled},
		{"1H", models.StatusLive},
		{"HT", models.StatusLive},
		{"AET", models.StatusFinished},
		{"PST", models.StatusPostponed},
		{"CANC", models.StatusPostponed},
		{"garbage", models.StatusScheduled},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeStatus(tt.raw), "status %q", tt.raw)
	}
}

func TestSnapshotFromStanding(t *testing.T) {
	n := NewDataNormalizer(quietLog())
	standing := &models.Standing{
		LeagueID: uuid.New(),
		TeamID:   TeamID(40),
		TeamName: "Newcastle United",
		Rank:     4,
		Form:     "LWWDW",
	}

	snapshot := n.SnapshotFromStanding(standing, &datasource.TopScorerData{
		Name: "A. Isak", Goals: 14,
	}, 5)

	assert.Equal(t, standing.TeamID, snapshot.ID)
	assert.Equal(t, "Newcastle", snapshot.ShortName)
	assert.Equal(t, 4, snapshot.LeagueRank)
	assert.Equal(t, 5, snapshot.LastMatchDaysAgo)
	assert.Equal(t, "A. Isak", snapshot.TopScorer.Name)
	// Form string is most recent last; snapshot wants most recent first
	require.Len(t, snapshot.RecentResults, 5)
	assert.Equal(t, models.ResultWin, snapshot.RecentResults[0])
	assert.Equal(t, models.ResultLoss, snapshot.RecentResults[4])
}

func TestSnapshotFromStandingNoForm(t *testing.T) {
	n := NewDataNormalizer(quietLog())
	snapshot := n.SnapshotFromStanding(&models.Standing{
		TeamID: TeamID(41), TeamName: "Burnley", Rank: 18,
	}, nil, 0)

	assert.NotNil(t, snapshot.RecentResults)
	assert.Empty(t, snapshot.RecentResults)
	assert.Empty(t, snapshot.TopScorer.Name)
}

func TestNormalizeOddsLine(t *testing.T) {
	n := NewDataNormalizer(quietLog())
	fixtureID := uuid.New()

	snapshot, err := n.NormalizeOddsLine(&datasource.OddsLineData{
		FixtureSourceID: 1001,
		Source:          "domestic",
		Home:            decimal.RequireFromString("1.95"),
		Draw:            decimal.RequireFromString("3.40"),
		Away:            decimal.RequireFromString("4.20"),
		RecordedAt:      time.Now(),
	}, fixtureID)
	require.NoError(t, err)

	assert.Equal(t, fixtureID, snapshot.FixtureID)
	assert.InDelta(t, 1.95, snapshot.Odds.Home, 1e-9)
	assert.InDelta(t, 3.40, snapshot.Odds.Draw, 1e-9)
}

func TestNormalizeOddsLineRejectsInvalidTriple(t *testing.T) {
	n := NewDataNormalizer(quietLog())

	_, err := n.NormalizeOddsLine(&datasource.OddsLineData{
		Home: decimal.RequireFromString("0.95"),
		Draw: decimal.RequireFromString("3.40"),
		Away: decimal.RequireFromString("4.20"),
	}, uuid.New())
	assert.Error(t, err)
}

func TestNormalizeWeatherConditions(t *testing.T) {
	n := NewDataNormalizer(quietLog())
	tests := []struct {
		raw  string
		want models.WeatherCondition
	}{
		{"Rain", models.WeatherRainy},
		{"Thunderstorm", models.WeatherRainy},
		{"Snow", models.WeatherSnowy},
		{"Clear", models.WeatherSunny},
		{"Clouds", models.WeatherCloudy},
		{"Mist", models.WeatherCloudy},
	}
	for _, tt := range tests {
		got := n.NormalizeWeather(&datasource.WeatherData{Condition: tt.raw, Temperature: 12})
		assert.Equal(t, tt.want, got.Condition, "condition %q", tt.raw)
	}
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "Arsenal", shortName("Arsenal"))
	assert.Equal(t, "Villa", shortName("Aston Villa"))
	assert.Equal(t, "Manchester", shortName("Manchester City"))
	assert.Equal(t, "Leeds", shortName("Leeds United"))
}
