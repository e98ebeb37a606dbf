package ml

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchcast/internal/config"
)

func testClient(t *testing.T, serverURL string, retries int) *HTTPClient {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewHTTPClient(&config.MLServiceConfig{
		URL:             serverURL,
		TimeoutSeconds:  5,
		RetryAttempts:   retries,
		CacheTTLSeconds: 60,
		Enabled:         true,
	}, logger)
}

func TestPredictScalesFractions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/predict" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"home_prob":0.52,"draw_prob":0.26,"away_prob":0.22,"confidence":0.81,"model_version":"v3"}`))
	}))
	defer srv.Close()

	fixtureID := uuid.New()
	result, err := testClient(t, srv.URL, 0).Predict(context.Background(), PredictionRequest{FixtureID: fixtureID})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	if result.FixtureID != fixtureID {
		t.Errorf("fixture id = %v", result.FixtureID)
	}
	if result.Probabilities.Home != 52 || result.Probabilities.Draw != 26 || result.Probabilities.Away != 22 {
		t.Errorf("probabilities = %+v, want 52/26/22", result.Probabilities)
	}
	if result.ModelVersion != "v3" || result.Confidence != 0.81 {
		t.Errorf("version/confidence = %s/%v", result.ModelVersion, result.Confidence)
	}
}

func TestPredictAcceptsPercentages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"home_prob":45,"draw_prob":30,"away_prob":25,"model_version":"v3"}`))
	}))
	defer srv.Close()

	result, err := testClient(t, srv.URL, 0).Predict(context.Background(), PredictionRequest{FixtureID: uuid.New()})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if result.Probabilities.Home != 45 {
		t.Errorf("home = %v, percent input must not be rescaled", result.Probabilities.Home)
	}
}

func TestPredictRejectsBadDistribution(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"home_prob":80,"draw_prob":30,"away_prob":25,"model_version":"v3"}`))
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL, 0).Predict(context.Background(), PredictionRequest{FixtureID: uuid.New()})
	if !errors.Is(err, ErrInvalidPrediction) {
		t.Errorf("error = %v, want ErrInvalidPrediction", err)
	}
}

func TestPredictRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"home_prob":0.5,"draw_prob":0.3,"away_prob":0.2,"model_version":"v3"}`))
	}))
	defer srv.Close()

	result, err := testClient(t, srv.URL, 3).Predict(context.Background(), PredictionRequest{FixtureID: uuid.New()})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if result.Probabilities.Home != 50 {
		t.Errorf("home = %v", result.Probabilities.Home)
	}
}

func TestPredictExhaustedRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL, 1).Predict(context.Background(), PredictionRequest{FixtureID: uuid.New()})
	if !errors.Is(err, ErrModelServiceUnavailable) {
		t.Errorf("error = %v, want ErrModelServiceUnavailable", err)
	}
}

func TestBatchPredictCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"predictions":[{"home_prob":0.5,"draw_prob":0.3,"away_prob":0.2,"model_version":"v3"}]}`))
	}))
	defer srv.Close()

	requests := []PredictionRequest{
		{FixtureID: uuid.New()},
		{FixtureID: uuid.New()},
	}
	_, err := testClient(t, srv.URL, 0).BatchPredict(context.Background(), requests)
	if !errors.Is(err, ErrInvalidPrediction) {
		t.Errorf("error = %v, want ErrInvalidPrediction", err)
	}
}

func TestHealthCheck(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 0)
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	healthy = false
	if err := client.HealthCheck(context.Background()); !errors.Is(err, ErrModelServiceUnavailable) {
		t.Errorf("error = %v, want ErrModelServiceUnavailable", err)
	}
}
