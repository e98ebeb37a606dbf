// Package main provides a one-shot backfill runner for the ingestion
// jobs, for first deploys and gap repair.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/matchcast/internal/config"
	"github.com/yourusername/matchcast/internal/database"
	"github.com/yourusername/matchcast/internal/datasource"
	"github.com/yourusername/matchcast/internal/logger"
	"github.com/yourusername/matchcast/internal/repository"
	"github.com/yourusername/matchcast/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		jobs       = flag.String("jobs", "fixtures,standings", "Comma-separated jobs to run: fixtures, standings, odds, weather")
		timeout    = flag.Duration("timeout", 30*time.Minute, "Overall run timeout")
	)
	flag.Parse()

	cfg := loadConfig(*configPath)
	appLog := logger.NewLogger(&cfg.App)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create repositories")
	}

	svc := buildIngestionService(cfg, repos, appLog)

	if err := svc.EnsureLeagues(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to ensure leagues")
	}

	runners := map[string]func(context.Context) error{
		"fixtures":  svc.SyncFixtures,
		"standings": svc.SyncStandings,
		"odds":      svc.SyncDomesticOdds,
		"weather":   svc.SyncWeather,
	}

	failed := false
	for _, job := range strings.Split(*jobs, ",") {
		job = strings.TrimSpace(job)
		run, ok := runners[job]
		if !ok {
			appLog.WithField("job", job).Fatal("Unknown job")
		}

		appLog.WithField("job", job).Info("Running backfill job")
		if err := run(ctx); err != nil {
			appLog.WithError(err).WithField("job", job).Error("Backfill job failed")
			failed = true
			continue
		}
		appLog.WithField("job", job).Info("Backfill job complete")
	}

	appLog.WithField("metrics", svc.Metrics().String()).Info("Backfill finished")
	if failed {
		os.Exit(1)
	}
}

func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(context.Background(), cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildIngestionService(cfg *config.Config, repos *repository.Repositories, appLog *logrus.Logger) *service.IngestionService {
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfig{
		Timeout:           time.Duration(cfg.SportsAPI.TimeoutSeconds) * time.Second,
		MaxRetries:        cfg.SportsAPI.RetryAttempts,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      10 * time.Second,
		RateLimit:         float64(cfg.SportsAPI.RequestsPerMinute) / 60,
		CircuitBreakerMax: 5,
	}, appLog)

	sports := datasource.NewSportsAPIClient(httpClient, cfg.SportsAPI.BaseURL, cfg.SportsAPI.APIKey, appLog)

	var domesticOdds *datasource.DomesticOddsClient
	if cfg.Features.DomesticOddsEnabled && cfg.SportsAPI.DomesticOddsURL != "" {
		domesticOdds = datasource.NewDomesticOddsClient(httpClient, cfg.SportsAPI.DomesticOddsURL, appLog)
	}

	var weather *datasource.WeatherClient
	if cfg.Features.WeatherEnabled && cfg.SportsAPI.WeatherURL != "" {
		weather = datasource.NewWeatherClient(httpClient, cfg.SportsAPI.WeatherURL, cfg.SportsAPI.APIKey, appLog)
	}

	return service.NewIngestionService(
		sports, domesticOdds, weather, repos,
		service.NewDataNormalizer(appLog), service.NewDataValidator(appLog),
		appLog, cfg.SportsAPI.Leagues, cfg.SportsAPI.Season, cfg.Ingestion.BatchSize,
	)
}
