package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchcast/internal/config"
)

// Client serves outcome probabilities for fixtures
type Client interface {
	Predict(ctx context.Context, req PredictionRequest) (*PredictionResult, error)
	BatchPredict(ctx context.Context, requests []PredictionRequest) ([]*PredictionResult, error)
	HealthCheck(ctx context.Context) error
	Close() error
}

// HTTPClient talks to the model server over HTTP
type HTTPClient struct {
	client  *http.Client
	baseURL string
	retries int
	logger  *logrus.Logger
}

// NewHTTPClient creates a new model service client
func NewHTTPClient(cfg *config.MLServiceConfig, logger *logrus.Logger) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		baseURL: cfg.URL,
		retries: cfg.RetryAttempts,
		logger:  logger,
	}
}

// predictResponse mirrors the model server payload
type predictResponse struct {
	FixtureID    string  `json:"fixture_id"`
	HomeProb     float64 `json:"home_prob"`
	DrawProb     float64 `json:"draw_prob"`
	AwayProb     float64 `json:"away_prob"`
	Confidence   float64 `json:"confidence"`
	ModelVersion string  `json:"model_version"`
}

// Predict requests an outcome distribution for one fixture
func (c *HTTPClient) Predict(ctx context.Context, req PredictionRequest) (*PredictionResult, error) {
	start := time.Now()
	defer func() {
		ModelPredictionLatency.WithLabelValues("http").Observe(time.Since(start).Seconds())
	}()

	var resp predictResponse
	if err := c.postJSON(ctx, "/api/v1/predict", req, &resp); err != nil {
		ModelErrorsTotal.WithLabelValues("predict", "request_failed").Inc()
		return nil, err
	}

	result, err := c.toResult(req, resp)
	if err != nil {
		ModelErrorsTotal.WithLabelValues("predict", "invalid_response").Inc()
		return nil, err
	}

	ModelPredictionsTotal.WithLabelValues("model", "false").Inc()
	return result, nil
}

// BatchPredict requests outcome distributions for many fixtures at once
func (c *HTTPClient) BatchPredict(ctx context.Context, requests []PredictionRequest) ([]*PredictionResult, error) {
	start := time.Now()
	defer func() {
		ModelPredictionLatency.WithLabelValues("http").Observe(time.Since(start).Seconds())
	}()

	payload := struct {
		Predictions []PredictionRequest `json:"predictions"`
	}{Predictions: requests}

	var resp struct {
		Predictions []predictResponse `json:"predictions"`
	}
	if err := c.postJSON(ctx, "/api/v1/predict/batch", payload, &resp); err != nil {
		ModelErrorsTotal.WithLabelValues("batch_predict", "request_failed").Inc()
		return nil, err
	}
	if len(resp.Predictions) != len(requests) {
		ModelErrorsTotal.WithLabelValues("batch_predict", "invalid_response").Inc()
		return nil, fmt.Errorf("%w: got %d predictions for %d fixtures",
			ErrInvalidPrediction, len(resp.Predictions), len(requests))
	}

	results := make([]*PredictionResult, len(resp.Predictions))
	for i, entry := range resp.Predictions {
		result, err := c.toResult(requests[i], entry)
		if err != nil {
			ModelErrorsTotal.WithLabelValues("batch_predict", "invalid_response").Inc()
			return nil, err
		}
		results[i] = result
	}

	ModelPredictionsTotal.WithLabelValues("model", "false").Add(float64(len(results)))
	c.logger.WithField("count", len(results)).Debug("Batch predictions completed")
	return results, nil
}

// HealthCheck checks model service health
func (c *HTTPClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrModelServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrModelServiceUnavailable, resp.StatusCode)
	}
	return nil
}

// Close releases client resources
func (c *HTTPClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) toResult(req PredictionRequest, resp predictResponse) (*PredictionResult, error) {
	result := &PredictionResult{
		FixtureID:    req.FixtureID,
		Confidence:   resp.Confidence,
		ModelVersion: resp.ModelVersion,
		PredictedAt:  time.Now(),
	}
	result.Probabilities.Home = resp.HomeProb
	result.Probabilities.Draw = resp.DrawProb
	result.Probabilities.Away = resp.AwayProb

	// The model quotes fractions; the rest of the system works in percent
	if result.Probabilities.Sum() <= 1.5 {
		result.Probabilities.Home *= 100
		result.Probabilities.Draw *= 100
		result.Probabilities.Away *= 100
	}

	if err := result.Probabilities.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrediction, err)
	}
	return result, nil
}

// postJSON posts a payload and decodes the response, retrying on
// transport errors and 5xx responses
func (c *HTTPClient) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", ErrModelServiceUnavailable, err)
			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("%w: status %d", ErrModelServiceUnavailable, resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("%w: status %d: %s", ErrInvalidPrediction, resp.StatusCode, string(body))
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPrediction, err)
		}
		return nil
	}

	c.logger.WithError(lastErr).Error("Model service request exhausted retries")
	return lastErr
}
