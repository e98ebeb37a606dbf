// Package main provides the entry point for the ingestion service: the
// scheduled sync jobs plus the streaming odds collector.
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
	"github.com/yourusername/matchcast/internal/config"
	"github.com/yourusername/matchcast/internal/database"
	"github.com/yourusername/matchcast/internal/datasource"
	"github.com/yourusername/matchcast/internal/health"
	"github.com/yourusername/matchcast/internal/logger"
	"github.com/yourusername/matchcast/internal/metrics"
	"github.com/yourusername/matchcast/internal/oddsfeed"
	"github.com/yourusername/matchcast/internal/repository"
	"github.com/yourusername/matchcast/internal/scheduler"
	"github.com/yourusername/matchcast/internal/service"
)

// How often the streaming collector relearns which fixtures are
// upcoming
const feedMapRefreshInterval = 15 * time.Minute

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to config file")
	flag.Parse()

	cfg := loadConfig(*configPath)
	appLog := logger.NewLogger(&cfg.App)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("Matchcast ingestion service starting")

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

	ingestionSvc := buildIngestionService(cfg, repos, appLog)

	if err := ingestionSvc.EnsureLeagues(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to ensure leagues")
	}

	sched := scheduler.NewScheduler(ingestionSvc, appLog)
	if err := sched.ScheduleAll(&cfg.Ingestion); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule ingestion jobs")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}
	defer sched.Stop()
	appLog.WithField("next_run", sched.GetNextRun()).Info("Scheduler started")

	stream, collector := startOddsFeed(ctx, cfg, repos, ingestionSvc, appLog)

	healthServer := health.NewServer(health.Config{
		ServiceName: "matchcast-ingest",
		Logger:      appLog,
	})
	healthServer.AddCheck("database", db.Ping)
	if stream != nil {
		healthServer.AddCheck("odds_feed", func(context.Context) error {
			if !stream.IsConnected() {
				return fmt.Errorf("odds feed disconnected since %s", stream.LastMessageTime().Format(time.RFC3339))
			}
			return nil
		})
	}
	go func() {
		if err := healthServer.Start(ctx); err != nil {
			appLog.WithError(err).Error("Health server stopped")
		}
	}()
	defer healthServer.Shutdown()
	healthServer.SetReady(true)

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg, appLog)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	healthServer.SetReady(false)
	cancel()

	if collector != nil {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer flushCancel()
		if err := collector.Stop(flushCtx); err != nil {
			appLog.WithError(err).Error("Error flushing tick collector")
		}
	}

	appLog.Info("Matchcast ingestion service shut down")
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

// startOddsFeed wires the websocket stream into the tick collector and
// keeps the fixture mapping fresh. Returns nils when the feed is not
// configured.
func startOddsFeed(ctx context.Context, cfg *config.Config, repos *repository.Repositories, ingestionSvc *service.IngestionService, appLog *logrus.Logger) (*oddsfeed.StreamClient, *oddsfeed.TickCollector) {
	if cfg.OddsFeed.StreamURL == "" {
		appLog.Info("Odds feed not configured; skipping stream collector")
		return nil, nil
	}

	stream := oddsfeed.NewStreamClient(&cfg.OddsFeed, appLog)
	collector := oddsfeed.NewTickCollector(stream, repos.Odds, 0, 0, appLog)

	mapping, err := ingestionSvc.FixtureFeedMap(ctx)
	if err != nil {
		appLog.WithError(err).Warn("Starting odds feed with empty fixture map")
		mapping = nil
	}
	collector.SetFixtureMap(mapping)
	collector.Start(ctx)

	sourceIDs := make([]int64, 0, len(mapping))
	for id := range mapping {
		sourceIDs = append(sourceIDs, id)
	}

	go func() {
		if err := stream.Run(ctx, sourceIDs); err != nil && ctx.Err() == nil {
			appLog.WithError(err).Error("Odds feed stream stopped")
		}
	}()

	go func() {
		ticker := time.NewTicker(feedMapRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				mapping, err := ingestionSvc.FixtureFeedMap(ctx)
				if err != nil {
					appLog.WithError(err).Warn("Failed to refresh fixture map")
					continue
				}
				collector.SetFixtureMap(mapping)

				ids := make([]int64, 0, len(mapping))
				for id := range mapping {
					ids = append(ids, id)
				}
				if err := stream.Subscribe(ids); err != nil {
					appLog.WithError(err).Debug("Subscribe deferred until reconnect")
				}
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.UpdateOddsFeedConnected(stream.IsConnected())
			}
		}
	}()

	return stream, collector
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
