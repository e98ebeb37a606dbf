package models

import (
	"time"

	"github.com/google/uuid"
)

// FixtureStatus represents the lifecycle state of a fixture
type FixtureStatus string

// Fixture status values, mirroring the upstream sports API
const (
	StatusScheduled FixtureStatus = "NS"
	StatusLive      FixtureStatus = "LIVE"
	StatusFinished  FixtureStatus = "FT"
	StatusPostponed FixtureStatus = "PST"
)

// League identifies a competition known to the upstream sports API
type League struct {
	ID        uuid.UUID `db:"id" json:"id" validate:"required,uuid"`
	APIID     int       `db:"api_id" json:"api_id" validate:"required,gt=0"`
	Name      string    `db:"name" json:"name" validate:"required"`
	Country   string    `db:"country" json:"country"`
	Season    int       `db:"season" json:"season"`
	LogoURL   string    `db:"logo_url" json:"logo_url"`
	IsEnabled bool      `db:"is_enabled" json:"is_enabled"`
}

// Venue describes where a fixture is played
type Venue struct {
	Name string `db:"venue_name" json:"name"`
	City string `db:"venue_city" json:"city"`
}

// Fixture represents a scheduled or completed match
type Fixture struct {
	ID         uuid.UUID     `db:"id" json:"id" validate:"required,uuid"`
	APIID      int64         `db:"api_id" json:"api_id" validate:"required,gt=0"`
	LeagueID   uuid.UUID     `db:"league_id" json:"league_id" validate:"required,uuid"`
	HomeTeamID uuid.UUID     `db:"home_team_id" json:"home_team_id" validate:"required,uuid"`
	AwayTeamID uuid.UUID     `db:"away_team_id" json:"away_team_id" validate:"required,uuid"`
	KickoffAt  time.Time     `db:"kickoff_at" json:"kickoff_at" validate:"required"`
	Status     FixtureStatus `db:"status" json:"status"`
	Venue      Venue         `db:"venue" json:"venue"`
	HomeGoals  *int          `db:"home_goals" json:"home_goals,omitempty"`
	AwayGoals  *int          `db:"away_goals" json:"away_goals,omitempty"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at" json:"updated_at"`
}

// IsFinished reports whether the fixture has a final result
func (f *Fixture) IsFinished() bool {
	return f.Status == StatusFinished && f.HomeGoals != nil && f.AwayGoals != nil
}

// WeatherCondition is a coarse forecast bucket
type WeatherCondition string

// Weather condition values
const (
	WeatherSunny  WeatherCondition = "sunny"
	WeatherCloudy WeatherCondition = "cloudy"
	WeatherRainy  WeatherCondition = "rainy"
	WeatherSnowy  WeatherCondition = "snowy"
)

// Weather is the forecast for a fixture's kickoff window
type Weather struct {
	Condition   WeatherCondition `db:"condition" json:"condition"`
	Temperature float64          `db:"temperature" json:"temperature"`
	Icon        string           `db:"icon" json:"icon"`
}

// IsBad reports whether the forecast depresses scoring (rain or snow)
func (w *Weather) IsBad() bool {
	return w.Condition == WeatherRainy || w.Condition == WeatherSnowy
}
