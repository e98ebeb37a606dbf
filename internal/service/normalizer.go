// Package service wires the data sources, repositories and the
// analysis core into the ingestion and prediction workflows.
package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchcast/internal/datasource"
	"github.com/yourusername/matchcast/internal/models"
)

// Deterministic namespaces so re-ingesting the same upstream entity
// always lands on the same row
var (
	teamNamespace    = uuid.MustParse("6b1d1c2e-4f3a-4a8e-9b7c-2d5e8f1a0c3b")
	fixtureNamespace = uuid.MustParse("94e0c7aa-8c31-4d2f-b7a4-f05c6d9e2a18")
)

// TeamID derives the stable internal identifier for an upstream team
func TeamID(teamAPIID int64) uuid.UUID {
	return uuid.NewSHA1(teamNamespace, []byte(strconv.FormatInt(teamAPIID, 10)))
}

// FixtureID derives the stable internal identifier for an upstream fixture
func FixtureID(fixtureSourceID int64) uuid.UUID {
	return uuid.NewSHA1(fixtureNamespace, []byte(strconv.FormatInt(fixtureSourceID, 10)))
}

// DataNormalizer converts provider payloads into internal models
type DataNormalizer struct {
	logger logrus.FieldLogger
}

// NewDataNormalizer creates a new data normalizer
func NewDataNormalizer(logger logrus.FieldLogger) *DataNormalizer {
	return &DataNormalizer{logger: logger}
}

// NormalizeFixture converts provider fixture data to the internal model
func (n *DataNormalizer) NormalizeFixture(src *datasource.FixtureData, leagueID uuid.UUID) (*models.Fixture, error) {
	if src == nil {
		return nil, fmt.Errorf("source fixture is nil")
	}

	now := time.Now().UTC()
	return &models.Fixture{
		ID:         FixtureID(src.SourceID),
		APIID:      src.SourceID,
		LeagueID:   leagueID,
		HomeTeamID: TeamID(src.HomeTeamID),
		AwayTeamID: TeamID(src.AwayTeamID),
		KickoffAt:  src.KickoffAt,
		Status:     normalizeStatus(src.Status),
		Venue: models.Venue{
			Name: strings.TrimSpace(src.VenueName),
			City: strings.TrimSpace(src.VenueCity),
		},
		HomeGoals: src.HomeGoals,
		AwayGoals: src.AwayGoals,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NormalizeStanding converts one provider table row to the internal model
func (n *DataNormalizer) NormalizeStanding(src *datasource.StandingData, leagueID uuid.UUID) (*models.Standing, error) {
	if src == nil {
		return nil, fmt.Errorf("source standing is nil")
	}

	return &models.Standing{
		LeagueID:  leagueID,
		TeamID:    TeamID(src.TeamAPIID),
		TeamName:  strings.TrimSpace(src.TeamName),
		Season:    src.Season,
		Rank:      src.Rank,
		Played:    src.Played,
		Won:       src.Won,
		Drawn:     src.Drawn,
		Lost:      src.Lost,
		GoalsDiff: src.GoalsDiff,
		Points:    src.Points,
		Form:      src.Form,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// SnapshotFromStanding builds a team snapshot from a normalized table
// row plus the matching top scorer and rest information.
func (n *DataNormalizer) SnapshotFromStanding(standing *models.Standing, scorer *datasource.TopScorerData, lastMatchDaysAgo int) *models.TeamSnapshot {
	snapshot := &models.TeamSnapshot{
		ID:               standing.TeamID,
		Name:             standing.TeamName,
		ShortName:        shortName(standing.TeamName),
		LeagueRank:       standing.Rank,
		RecentResults:    standing.RecentForm(),
		LastMatchDaysAgo: lastMatchDaysAgo,
	}
	if snapshot.RecentResults == nil {
		snapshot.RecentResults = []models.Result{}
	}
	if scorer != nil {
		snapshot.TopScorer = models.TopScorer{
			Name:      scorer.Name,
			Goals:     scorer.Goals,
			IsInjured: scorer.IsInjured,
		}
	}
	return snapshot
}

// NormalizeOddsLine converts a bookmaker line to an odds snapshot tick
func (n *DataNormalizer) NormalizeOddsLine(src *datasource.OddsLineData, fixtureID uuid.UUID) (*models.OddsSnapshot, error) {
	if src == nil {
		return nil, fmt.Errorf("source odds line is nil")
	}

	snapshot := &models.OddsSnapshot{
		Time:      src.RecordedAt,
		FixtureID: fixtureID,
		Source:    src.Source,
		Odds: models.OddsTriple{
			Home: src.Home.InexactFloat64(),
			Draw: src.Draw.InexactFloat64(),
			Away: src.Away.InexactFloat64(),
		},
	}
	if !snapshot.Odds.IsValid() {
		return nil, fmt.Errorf("odds line for fixture %s is not a valid 1X2 triple", fixtureID)
	}
	return snapshot, nil
}

// NormalizeWeather buckets a provider forecast into the coarse
// conditions the analysis core understands
func (n *DataNormalizer) NormalizeWeather(src *datasource.WeatherData) *models.Weather {
	if src == nil {
		return nil
	}

	condition := models.WeatherCloudy
	switch strings.ToLower(src.Condition) {
	case "rain", "drizzle", "thunderstorm":
		condition = models.WeatherRainy
	case "snow", "sleet":
		condition = models.WeatherSnowy
	case "clear":
		condition = models.WeatherSunny
	}

	return &models.Weather{
		Condition:   condition,
		Temperature: src.Temperature,
		Icon:        src.Icon,
	}
}

func normalizeStatus(raw string) models.FixtureStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "NS", "TBD":
		return models.StatusScheduled
	case "1H", "2H", "HT", "ET", "P", "LIVE", "BT":
		return models.StatusLive
	case "FT", "AET", "PEN":
		return models.StatusFinished
	case "PST", "CANC", "ABD", "SUSP":
		return models.StatusPostponed
	default:
		return models.StatusScheduled
	}
}

// shortName derives a compact display name: last word for multi-word
// names unless it is a generic suffix, first word otherwise
func shortName(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return name
	}
	last := words[len(words)-1]
	switch strings.ToLower(last) {
	case "fc", "cf", "afc", "united", "city", "town":
		return words[0]
	}
	return last
}
