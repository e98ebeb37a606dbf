package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const sportsAPISourceName = "sports_api"

// SportsAPIClient fetches fixtures, standings and scorers from the
// API-Football-shaped upstream
type SportsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     logrus.FieldLogger
}

// apiFixtureResponse mirrors the upstream /fixtures envelope
type apiFixtureResponse struct {
	Response []struct {
		Fixture struct {
			ID     int64  `json:"id"`
			Date   string `json:"date"`
			Status struct {
				Short string `json:"short"`
			} `json:"status"`
			Venue struct {
				Name string `json:"name"`
				City string `json:"city"`
			} `json:"venue"`
		} `json:"fixture"`
		League struct {
			ID     int `json:"id"`
			Season int `json:"season"`
		} `json:"league"`
		Teams struct {
			Home struct {
				ID   int64  `json:"id"`
				Name string `json:"name"`
			} `json:"home"`
			Away struct {
				ID   int64  `json:"id"`
				Name string `json:"name"`
			} `json:"away"`
		} `json:"teams"`
		Goals struct {
			Home *int `json:"home"`
			Away *int `json:"away"`
		} `json:"goals"`
	} `json:"response"`
}

// apiStandingsResponse mirrors the upstream /standings envelope
type apiStandingsResponse struct {
	Response []struct {
		League struct {
			ID        int `json:"id"`
			Season    int `json:"season"`
			Standings [][]struct {
				Rank int `json:"rank"`
				Team struct {
					ID   int64  `json:"id"`
					Name string `json:"name"`
				} `json:"team"`
				Points    int    `json:"points"`
				GoalsDiff int    `json:"goalsDiff"`
				Form      string `json:"form"`
				All       struct {
					Played int `json:"played"`
					Win    int `json:"win"`
					Draw   int `json:"draw"`
					Lose   int `json:"lose"`
				} `json:"all"`
			} `json:"standings"`
		} `json:"league"`
	} `json:"response"`
}

// apiTopScorersResponse mirrors the upstream /players/topscorers envelope
type apiTopScorersResponse struct {
	Response []struct {
		Player struct {
			Name    string `json:"name"`
			Injured bool   `json:"injured"`
		} `json:"player"`
		Statistics []struct {
			Team struct {
				ID int64 `json:"id"`
			} `json:"team"`
			Goals struct {
				Total int `json:"total"`
			} `json:"goals"`
		} `json:"statistics"`
	} `json:"response"`
}

// NewSportsAPIClient creates a new sports API client
func NewSportsAPIClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, logger logrus.FieldLogger) *SportsAPIClient {
	return &SportsAPIClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// FetchFixtures retrieves a league's fixtures within a date range
func (c *SportsAPIClient) FetchFixtures(ctx context.Context, leagueAPIID, season int, from, to time.Time) ([]FixtureData, error) {
	url := fmt.Sprintf("%s/fixtures?league=%d&season=%d&from=%s&to=%s",
		c.baseURL, leagueAPIID, season, from.Format("2006-01-02"), to.Format("2006-01-02"))

	var payload apiFixtureResponse
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	fixtures := make([]FixtureData, 0, len(payload.Response))
	for _, entry := range payload.Response {
		kickoff, err := time.Parse(time.RFC3339, entry.Fixture.Date)
		if err != nil {
			c.logger.WithField("fixture", entry.Fixture.ID).
				Warnf("skipping fixture with bad kickoff time: %v", err)
			continue
		}

		fixtures = append(fixtures, FixtureData{
			SourceID:    entry.Fixture.ID,
			LeagueAPIID: entry.League.ID,
			Season:      entry.League.Season,
			HomeTeam:    entry.Teams.Home.Name,
			AwayTeam:    entry.Teams.Away.Name,
			HomeTeamID:  entry.Teams.Home.ID,
			AwayTeamID:  entry.Teams.Away.ID,
			KickoffAt:   kickoff.UTC(),
			Status:      entry.Fixture.Status.Short,
			VenueName:   entry.Fixture.Venue.Name,
			VenueCity:   entry.Fixture.Venue.City,
			HomeGoals:   entry.Goals.Home,
			AwayGoals:   entry.Goals.Away,
			FetchedAt:   time.Now().UTC(),
		})
	}

	return fixtures, nil
}

// FetchStandings retrieves a league table for a season
func (c *SportsAPIClient) FetchStandings(ctx context.Context, leagueAPIID, season int) ([]StandingData, error) {
	url := fmt.Sprintf("%s/standings?league=%d&season=%d", c.baseURL, leagueAPIID, season)

	var payload apiStandingsResponse
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	var standings []StandingData
	for _, entry := range payload.Response {
		for _, group := range entry.League.Standings {
			for _, row := range group {
				standings = append(standings, StandingData{
					LeagueAPIID: entry.League.ID,
					Season:      entry.League.Season,
					TeamAPIID:   row.Team.ID,
					TeamName:    row.Team.Name,
					Rank:        row.Rank,
					Played:      row.All.Played,
					Won:         row.All.Win,
					Drawn:       row.All.Draw,
					Lost:        row.All.Lose,
					GoalsDiff:   row.GoalsDiff,
					Points:      row.Points,
					Form:        row.Form,
				})
			}
		}
	}

	return standings, nil
}

// FetchTopScorers retrieves a league's leading scorers for a season
func (c *SportsAPIClient) FetchTopScorers(ctx context.Context, leagueAPIID, season int) ([]TopScorerData, error) {
	url := fmt.Sprintf("%s/players/topscorers?league=%d&season=%d", c.baseURL, leagueAPIID, season)

	var payload apiTopScorersResponse
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	scorers := make([]TopScorerData, 0, len(payload.Response))
	for _, entry := range payload.Response {
		if len(entry.Statistics) == 0 {
			continue
		}
		scorers = append(scorers, TopScorerData{
			TeamAPIID: entry.Statistics[0].Team.ID,
			Name:      entry.Player.Name,
			Goals:     entry.Statistics[0].Goals.Total,
			IsInjured: entry.Player.Injured,
		})
	}

	return scorers, nil
}

// getJSON executes an authenticated GET and decodes the JSON body
func (c *SportsAPIClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return NewDataSourceError(sportsAPISourceName, ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("x-apisports-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return NewDataSourceError(sportsAPISourceName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return NewDataSourceError(sportsAPISourceName, ErrCodeAuthenticationFailed, "invalid API key", ErrAuthenticationFailed)
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewDataSourceError(sportsAPISourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return NewDataSourceError(sportsAPISourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewDataSourceError(sportsAPISourceName, ErrCodeInvalidData, "failed to parse response", err)
	}

	return nil
}
