// Package datasource fetches fixtures, standings, odds and weather from
// the upstream providers and normalizes their payloads. All clients
// share one rate-limited, retrying HTTP client.
package datasource

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// FixtureData represents a normalized fixture from the sports API
type FixtureData struct {
	SourceID    int64     `json:"source_id"`
	LeagueAPIID int       `json:"league_api_id"`
	Season      int       `json:"season"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	HomeTeamID  int64     `json:"home_team_id"`
	AwayTeamID  int64     `json:"away_team_id"`
	KickoffAt   time.Time `json:"kickoff_at"`
	Status      string    `json:"status"`
	VenueName   string    `json:"venue_name"`
	VenueCity   string    `json:"venue_city"`
	HomeGoals   *int      `json:"home_goals"`
	AwayGoals   *int      `json:"away_goals"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// StandingData represents one normalized league table row
type StandingData struct {
	LeagueAPIID int    `json:"league_api_id"`
	Season      int    `json:"season"`
	TeamAPIID   int64  `json:"team_api_id"`
	TeamName    string `json:"team_name"`
	Rank        int    `json:"rank"`
	Played      int    `json:"played"`
	Won         int    `json:"won"`
	Drawn       int    `json:"drawn"`
	Lost        int    `json:"lost"`
	GoalsDiff   int    `json:"goals_diff"`
	Points      int    `json:"points"`
	Form        string `json:"form"`
}

// TopScorerData represents a team's normalized leading scorer
type TopScorerData struct {
	TeamAPIID int64  `json:"team_api_id"`
	Name      string `json:"name"`
	Goals     int    `json:"goals"`
	IsInjured bool   `json:"is_injured"`
}

// OddsLineData represents one normalized 1X2 line. Decimal odds arrive
// as strings from the bookmakers and parse through shopspring/decimal
// so no precision is lost before rounding.
type OddsLineData struct {
	FixtureSourceID int64           `json:"fixture_source_id"`
	Source          string          `json:"source"`
	Home            decimal.Decimal `json:"home"`
	Draw            decimal.Decimal `json:"draw"`
	Away            decimal.Decimal `json:"away"`
	RecordedAt      time.Time       `json:"recorded_at"`
}

// WeatherData represents a normalized kickoff-window forecast
type WeatherData struct {
	City        string    `json:"city"`
	Condition   string    `json:"condition"`
	Temperature float64   `json:"temperature"`
	Icon        string    `json:"icon"`
	At          time.Time `json:"at"`
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

// Sentinel errors surfaced to callers
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
