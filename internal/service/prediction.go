package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchcast/internal/analysis"
	"github.com/yourusername/matchcast/internal/logger"
	"github.com/yourusername/matchcast/internal/metrics"
	"github.com/yourusername/matchcast/internal/ml"
	"github.com/yourusername/matchcast/internal/models"
	"github.com/yourusername/matchcast/internal/repository"
)

// WeatherProvider supplies the cached kickoff forecast for a fixture
type WeatherProvider interface {
	WeatherFor(fixtureID uuid.UUID) *models.Weather
}

// Prediction is the full served response for one fixture: the composed
// analysis, the situational factors behind it, and the factor-adjusted
// distribution (further shifted by any what-if toggles).
type Prediction struct {
	Result   *models.AnalysisResult   `json:"result"`
	Factors  []analysis.Factor        `json:"factors"`
	Adjusted models.ProbabilityTriple `json:"adjusted"`
}

// PredictionService assembles fixture snapshots, model output and
// market odds into served predictions
type PredictionService struct {
	repos   *repository.Repositories
	model   ml.Client
	weather WeatherProvider
	audit   *logger.AuditLogger
	logger  logrus.FieldLogger
}

// NewPredictionService creates a prediction service. The model client
// and weather provider may be nil when those features are disabled.
func NewPredictionService(
	repos *repository.Repositories,
	model ml.Client,
	weather WeatherProvider,
	log logrus.FieldLogger,
) *PredictionService {
	return &PredictionService{
		repos:   repos,
		model:   model,
		weather: weather,
		audit:   logger.NewAuditLogger(log),
		logger:  log,
	}
}

// PredictFixture computes the prediction for one fixture, applying any
// what-if toggles on top of the factor-adjusted distribution
func (s *PredictionService) PredictFixture(ctx context.Context, fixtureID uuid.UUID, toggles analysis.Toggles) (*Prediction, error) {
	start := time.Now()

	fixture, err := s.repos.Fixture.GetByID(ctx, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture: %w", err)
	}

	home, err := s.repos.Team.GetByID(ctx, fixture.HomeTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load home snapshot: %w", err)
	}
	away, err := s.repos.Team.GetByID(ctx, fixture.AwayTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load away snapshot: %w", err)
	}

	in := analysis.Input{
		Fixture: fixture,
		Home:    home,
		Away:    away,
	}

	if league, err := s.repos.League.GetByID(ctx, fixture.LeagueID); err == nil {
		in.LeagueAPIID = league.APIID
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to load league: %w", err)
	}

	odds, err := s.repos.Odds.GetLatestRecord(ctx, fixtureID)
	switch {
	case err == nil:
		in.Odds = odds
	case errors.Is(err, models.ErrNotFound):
		// No priced market yet; the baseline path covers it
	default:
		return nil, fmt.Errorf("failed to load odds: %w", err)
	}

	features, err := s.repos.Feature.GetByFixtureID(ctx, fixtureID)
	switch {
	case err == nil:
		in.Features = features
	case errors.Is(err, models.ErrNotFound):
	default:
		return nil, fmt.Errorf("failed to load features: %w", err)
	}

	if s.weather != nil {
		in.Weather = s.weather.WeatherFor(fixtureID)
	}

	in.Model = s.modelDistribution(ctx, fixtureID, in.Features)

	result, err := analysis.Analyze(in)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	factors := analysis.DetectFactors(home, away, in.Weather)
	adjusted := analysis.ApplyFactors(result.BaseProbability, factors)
	if toggles.Any() {
		adjusted = analysis.ApplyAdjustments(adjusted, toggles)
	}

	s.record(fixture, in, result, time.Since(start))

	return &Prediction{
		Result:   result,
		Factors:  factors,
		Adjusted: adjusted,
	}, nil
}

// PredictUpcoming computes predictions for the next upcoming fixtures.
// Fixtures that fail individually are skipped, not fatal.
func (s *PredictionService) PredictUpcoming(ctx context.Context, limit int, toggles analysis.Toggles) ([]*Prediction, error) {
	fixtures, err := s.repos.Fixture.GetUpcoming(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming fixtures: %w", err)
	}

	predictions := make([]*Prediction, 0, len(fixtures))
	for _, fixture := range fixtures {
		prediction, err := s.PredictFixture(ctx, fixture.ID, toggles)
		if err != nil {
			s.logger.WithError(err).WithField("fixture_id", fixture.ID).Warn("Skipping fixture")
			continue
		}
		predictions = append(predictions, prediction)
	}
	return predictions, nil
}

// modelDistribution asks the model service for a distribution, falling
// through to nil (odds or baseline take over) on any failure
func (s *PredictionService) modelDistribution(ctx context.Context, fixtureID uuid.UUID, features *models.FeatureSnapshot) *models.ProbabilityTriple {
	if s.model == nil {
		return nil
	}

	result, err := s.model.Predict(ctx, ml.PredictionRequest{
		FixtureID: fixtureID,
		Features:  features,
	})
	if err != nil {
		s.audit.LogModelFallback(fixtureID, analysis.SourceOdds, err.Error())
		return nil
	}
	if err := result.Probabilities.Validate(); err != nil {
		s.audit.LogModelFallback(fixtureID, analysis.SourceOdds, fmt.Sprintf("invalid distribution: %v", err))
		return nil
	}
	return &result.Probabilities
}

// record emits the audit trail and instrumentation for one served
// prediction
func (s *PredictionService) record(fixture *models.Fixture, in analysis.Input, result *models.AnalysisResult, elapsed time.Duration) {
	metrics.RecordPrediction(result.Source, elapsed.Seconds())

	s.audit.LogPredictionServed(
		fixture.ID,
		result.Source,
		string(result.Pick.Outcome),
		result.BaseProbability.Home,
		result.BaseProbability.Draw,
		result.BaseProbability.Away,
		string(result.Confidence.Level),
		result.ComputedAt,
	)

	if result.DrawWarning.IsClose {
		metrics.RecordDrawWarning()
	}

	if result.ValueBet.IsValue {
		league := analysis.LeagueName(in.LeagueAPIID)
		metrics.RecordValueBet(league, string(result.Pick.Outcome))

		var pickOdds float64
		if in.Odds != nil {
			pickOdds = in.Odds.BestLine().ForOutcome(result.Pick.Outcome)
		}
		s.audit.LogValueBetFlag(
			fixture.ID,
			league,
			string(result.Pick.Outcome),
			result.Pick.Probability,
			pickOdds,
			result.ValueBet.ExpectedValue,
			result.ValueBet.SuggestedStake,
		)
	}
}

// SettleFixture records a final result and audits whether the last
// served pick called it
func (s *PredictionService) SettleFixture(ctx context.Context, fixtureID uuid.UUID, homeGoals, awayGoals int) error {
	if err := s.repos.Fixture.UpdateResult(ctx, fixtureID, homeGoals, awayGoals, models.StatusFinished); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}

	actual := models.OutcomeDraw
	switch {
	case homeGoals > awayGoals:
		actual = models.OutcomeHome
	case awayGoals > homeGoals:
		actual = models.OutcomeAway
	}

	prediction, err := s.PredictFixture(ctx, fixtureID, analysis.Toggles{})
	if err != nil {
		s.logger.WithError(err).WithField("fixture_id", fixtureID).Warn("No prediction to settle against")
		return nil
	}

	pick := prediction.Result.Pick.Outcome
	s.audit.LogResultSettled(fixtureID, string(pick), string(actual), pick == actual, homeGoals, awayGoals)
	return nil
}
