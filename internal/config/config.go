// Package config provides configuration management for the Matchcast application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	SportsAPI SportsAPIConfig `mapstructure:"sports_api" validate:"required"`
	OddsFeed  OddsFeedConfig  `mapstructure:"odds_feed" validate:"required"`
	MLService MLServiceConfig `mapstructure:"ml_service" validate:"required"`
	Analysis  AnalysisConfig  `mapstructure:"analysis" validate:"required"`
	Ingestion IngestionConfig `mapstructure:"ingestion" validate:"required"`
	API       APIConfig       `mapstructure:"api" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
	Features  FeaturesConfig  `mapstructure:"features" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// SportsAPIConfig represents the upstream fixtures/standings API configuration
type SportsAPIConfig struct {
	BaseURL           string `mapstructure:"base_url" validate:"required,url"`
	APIKey            string `mapstructure:"api_key" validate:"required"`
	Season            int    `mapstructure:"season" validate:"required,gt=2000"`
	Leagues           []int  `mapstructure:"leagues" validate:"required,min=1,leagues"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" validate:"required,gt=0"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts     int    `mapstructure:"retry_attempts" validate:"required,gte=0"`
	WeatherURL        string `mapstructure:"weather_url" validate:"omitempty,url"`
	DomesticOddsURL   string `mapstructure:"domestic_odds_url" validate:"omitempty,url"`
}

// OddsFeedConfig represents the streaming odds tick feed configuration
type OddsFeedConfig struct {
	StreamURL            string `mapstructure:"stream_url" validate:"required"`
	APIKey               string `mapstructure:"api_key"`
	ReconnectBaseSeconds int    `mapstructure:"reconnect_base_seconds" validate:"required,gt=0"`
	ReconnectMaxSeconds  int    `mapstructure:"reconnect_max_seconds" validate:"required,gt=0"`
	PingIntervalSeconds  int    `mapstructure:"ping_interval_seconds" validate:"required,gt=0"`
}

// MLServiceConfig represents the upstream probability model server configuration
type MLServiceConfig struct {
	URL             string `mapstructure:"url" validate:"required,url"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts   int    `mapstructure:"retry_attempts" validate:"required,gte=0"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	Enabled         bool   `mapstructure:"enabled"`
}

// AnalysisConfig tunes the prediction core
type AnalysisConfig struct {
	MinValueBetProbability float64 `mapstructure:"min_value_bet_probability" validate:"required,gte=0,lte=100"`
	KellyFraction          float64 `mapstructure:"kelly_fraction" validate:"required,gt=0,lte=1"`
	OverroundSanityLimit   float64 `mapstructure:"overround_sanity_limit" validate:"required,gt=0"`
}

// IngestionConfig represents data ingestion scheduling configuration
type IngestionConfig struct {
	FixtureSyncCron  string `mapstructure:"fixture_sync_cron" validate:"required"`
	OddsSyncCron     string `mapstructure:"odds_sync_cron" validate:"required"`
	WeatherSyncCron  string `mapstructure:"weather_sync_cron" validate:"required"`
	StandingSyncCron string `mapstructure:"standing_sync_cron" validate:"required"`
	BatchSize        int    `mapstructure:"batch_size" validate:"required,gt=0"`
}

// APIConfig represents the HTTP API server configuration
type APIConfig struct {
	Port                int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	MLPredictionsEnabled bool `mapstructure:"ml_predictions_enabled"`
	DomesticOddsEnabled  bool `mapstructure:"domestic_odds_enabled"`
	WeatherEnabled       bool `mapstructure:"weather_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SportsAPITimeout returns the sports API request timeout as a duration
func (c *Config) SportsAPITimeout() time.Duration {
	return time.Duration(c.SportsAPI.TimeoutSeconds) * time.Second
}

// MLServiceTimeout returns the model server request timeout as a duration
func (c *Config) MLServiceTimeout() time.Duration {
	return time.Duration(c.MLService.TimeoutSeconds) * time.Second
}
