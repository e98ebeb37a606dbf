package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchcast/internal/config"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func appConfig(env, level string) *config.AppConfig {
	return &config.AppConfig{Name: "matchcast", Environment: env, LogLevel: level}
}

func TestNewLoggerLevels(t *testing.T) {
	log := NewLogger(appConfig("development", "debug"))
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLogger(appConfig("development", "nonsense"))
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerStampsServiceIdentity(t *testing.T) {
	log := NewLogger(appConfig("production", "info"))
	buf := &bytes.Buffer{}
	log.SetOutput(buf)

	log.Info("ready")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "matchcast", logEntry["service"])
	assert.Equal(t, "production", logEntry["environment"])
}

func TestNewLoggerHookKeepsExplicitFields(t *testing.T) {
	// A caller-supplied field with the same key wins over the stamp.
	log := NewLogger(appConfig("production", "info"))
	buf := &bytes.Buffer{}
	log.SetOutput(buf)

	log.WithField("service", "matchcast-ingest").Info("ready")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "matchcast-ingest", logEntry["service"])
}

func TestAuditLoggerPredictionServed(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	fixtureID := uuid.New()
	auditLogger.LogPredictionServed(fixtureID, "odds", "home", 51.5, 26.5, 22.1, "MEDIUM", time.Now())

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, fixtureID.String(), logEntry["fixture_id"])
	assert.Equal(t, "audit", logEntry["component"])
	assert.Equal(t, "home", logEntry["pick"])
	assert.Equal(t, "MEDIUM", logEntry["confidence_tier"])
}

func TestAuditLoggerValueBetFlag(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogValueBetFlag(uuid.New(), "Serie A", "draw", 28.0, 3.6, 10.9, 0.034)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "Serie A", logEntry["league"])
	assert.Equal(t, "draw", logEntry["outcome"])
}

func TestAuditLoggerModelFallback(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogModelFallback(uuid.New(), "odds", "model service unavailable")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "odds", logEntry["fallback_source"])
	assert.Equal(t, "warning", logEntry["level"])
}

func TestModelLoggerPredictionRequest(t *testing.T) {
	log, buf := setupTestLogger()
	modelLogger := NewModelLogger(log)

	modelLogger.LogPredictionRequest("v3", 10, true, 12.5)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "model", logEntry["component"])
	assert.Equal(t, "v3", logEntry["model_version"])
	assert.Equal(t, true, logEntry["cache_hit"])
}
