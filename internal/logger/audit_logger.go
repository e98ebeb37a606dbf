// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging for served
// predictions and flagged value bets.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger logrus.FieldLogger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogPredictionServed logs a prediction delivered to a caller.
func (al *AuditLogger) LogPredictionServed(fixtureID uuid.UUID, source, pick string, homeProb, drawProb, awayProb float64, confidenceTier string, servedAt time.Time) {
	al.WithFields(logrus.Fields{
		"fixture_id":      fixtureID,
		"source":          source,
		"pick":            pick,
		"home_prob":       homeProb,
		"draw_prob":       drawProb,
		"away_prob":       awayProb,
		"confidence_tier": confidenceTier,
		"served_at":       servedAt.Unix(),
	}).Info("Prediction served")
}

// LogValueBetFlag logs a flagged value bet.
func (al *AuditLogger) LogValueBetFlag(fixtureID uuid.UUID, league, outcome string, probability, odds, expectedValue, suggestedStake float64) {
	al.WithFields(logrus.Fields{
		"fixture_id":      fixtureID,
		"league":          league,
		"outcome":         outcome,
		"probability":     probability,
		"odds":            odds,
		"expected_value":  expectedValue,
		"suggested_stake": suggestedStake,
	}).Info("Value bet flagged")
}

// LogModelFallback logs a fall-through from the model to odds or baseline.
func (al *AuditLogger) LogModelFallback(fixtureID uuid.UUID, fallbackSource, reason string) {
	al.WithFields(logrus.Fields{
		"fixture_id":      fixtureID,
		"fallback_source": fallbackSource,
		"reason":          reason,
	}).Warn("Model prediction fell back")
}

// LogResultSettled logs a fixture result landing against an earlier pick.
func (al *AuditLogger) LogResultSettled(fixtureID uuid.UUID, pick, actual string, correct bool, homeGoals, awayGoals int) {
	al.WithFields(logrus.Fields{
		"fixture_id": fixtureID,
		"pick":       pick,
		"actual":     actual,
		"correct":    correct,
		"home_goals": homeGoals,
		"away_goals": awayGoals,
	}).Info("Prediction settled")
}
