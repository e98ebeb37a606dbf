// Package main provides the entry point for the prediction API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/matchcast/internal/api"
	"github.com/yourusername/matchcast/internal/config"
	"github.com/yourusername/matchcast/internal/database"
	"github.com/yourusername/matchcast/internal/datasource"
	"github.com/yourusername/matchcast/internal/health"
	"github.com/yourusername/matchcast/internal/logger"
	"github.com/yourusername/matchcast/internal/metrics"
	"github.com/yourusername/matchcast/internal/ml"
	"github.com/yourusername/matchcast/internal/repository"
	"github.com/yourusername/matchcast/internal/service"
)

const weatherRefreshInterval = time.Hour

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to config file")
	flag.Parse()

	cfg := loadConfig(*configPath)
	appLog := logger.NewLogger(&cfg.App)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("Matchcast API starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()
	appLog.Info("Database connection established")

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create repositories")
	}

	var modelClient ml.Client
	if cfg.Features.MLPredictionsEnabled && cfg.MLService.Enabled {
		cached := ml.NewCachedClient(&cfg.MLService, appLog)
		defer cached.Close()
		modelClient = cached
		appLog.WithField("ml_service_url", cfg.MLService.URL).Info("Model client initialized")
	} else {
		appLog.Info("Model predictions disabled; serving from odds and baseline")
	}

	// The forecast cache is process-local, so the API keeps its own
	// weather sync running instead of sharing the ingest process's.
	var weatherProvider service.WeatherProvider
	if cfg.Features.WeatherEnabled && cfg.SportsAPI.WeatherURL != "" {
		weatherSync := buildWeatherSync(cfg, repos, appLog)
		go runWeatherRefresh(ctx, weatherSync, appLog)
		weatherProvider = weatherSync
	}

	predictions := service.NewPredictionService(repos, modelClient, weatherProvider, appLog)
	apiServer := api.NewServer(&cfg.API, repos, predictions, appLog)

	healthServer := buildHealthServer(cfg, db, modelClient, appLog)
	go func() {
		if err := healthServer.Start(ctx); err != nil {
			appLog.WithError(err).Error("Health server stopped")
		}
	}()
	defer healthServer.Shutdown()

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg, appLog)
	}

	go func() {
		if err := apiServer.Start(); err != nil {
			appLog.WithError(err).Fatal("API server failed")
		}
	}()
	healthServer.SetReady(true)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	healthServer.SetReady(false)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("Error during API server shutdown")
	}

	appLog.Info("Matchcast API shut down")
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

func buildWeatherSync(cfg *config.Config, repos *repository.Repositories, appLog *logrus.Logger) *service.IngestionService {
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfig{
		Timeout:           time.Duration(cfg.SportsAPI.TimeoutSeconds) * time.Second,
		MaxRetries:        cfg.SportsAPI.RetryAttempts,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      10 * time.Second,
		RateLimit:         float64(cfg.SportsAPI.RequestsPerMinute) / 60,
		CircuitBreakerMax: 5,
	}, appLog)
	weatherClient := datasource.NewWeatherClient(httpClient, cfg.SportsAPI.WeatherURL, cfg.SportsAPI.APIKey, appLog)

	return service.NewIngestionService(
		nil, nil, weatherClient, repos,
		service.NewDataNormalizer(appLog), service.NewDataValidator(appLog),
		appLog, cfg.SportsAPI.Leagues, cfg.SportsAPI.Season, cfg.Ingestion.BatchSize,
	)
}

func runWeatherRefresh(ctx context.Context, sync *service.IngestionService, appLog *logrus.Logger) {
	if err := sync.SyncWeather(ctx); err != nil {
		appLog.WithError(err).Warn("Initial weather sync failed")
	}

	ticker := time.NewTicker(weatherRefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sync.SyncWeather(ctx); err != nil {
				appLog.WithError(err).Warn("Weather sync failed")
			}
		}
	}
}

func buildHealthServer(cfg *config.Config, db *database.DB, modelClient ml.Client, appLog *logrus.Logger) *health.Server {
	srv := health.NewServer(health.Config{
		ServiceName: "matchcast-api",
		Logger:      appLog,
	})
	srv.AddCheck("database", db.Ping)
	if modelClient != nil {
		srv.AddCheck("model", modelClient.HealthCheck)
	}
	return srv
}

func serveMetrics(cfg *config.Config, appLog *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())
	addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
	appLog.WithField("addr", addr).Info("Metrics server listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		appLog.WithError(err).Error("Metrics server stopped")
	}
}
