package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const weatherSourceName = "weather"

// WeatherClient fetches kickoff-window forecasts for fixture venues
type WeatherClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     logrus.FieldLogger
}

// weatherResponse mirrors the forecast API payload
type weatherResponse struct {
	Weather []struct {
		Main string `json:"main"`
		Icon string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Name string `json:"name"`
}

// NewWeatherClient creates a new weather client
func NewWeatherClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, logger logrus.FieldLogger) *WeatherClient {
	return &WeatherClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// FetchForecast retrieves the current conditions for a venue city
func (c *WeatherClient) FetchForecast(ctx context.Context, city string) (*WeatherData, error) {
	if city == "" {
		return nil, NewDataSourceError(weatherSourceName, ErrCodeInvalidData, "empty city", ErrInvalidData)
	}

	endpoint := fmt.Sprintf("%s?q=%s&units=metric&appid=%s", c.baseURL, url.QueryEscape(city), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewDataSourceError(weatherSourceName, ErrCodeNetworkError, "failed to create request", err)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(weatherSourceName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, NewDataSourceError(weatherSourceName, ErrCodeAuthenticationFailed, "invalid API key", ErrAuthenticationFailed)
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewDataSourceError(weatherSourceName, ErrCodeNotFound, "city not found: "+city, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, NewDataSourceError(weatherSourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var payload weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, NewDataSourceError(weatherSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}
	if len(payload.Weather) == 0 {
		return nil, NewDataSourceError(weatherSourceName, ErrCodeInvalidData, "response missing conditions", ErrInvalidData)
	}

	return &WeatherData{
		City:        payload.Name,
		Condition:   payload.Weather[0].Main,
		Temperature: payload.Main.Temp,
		Icon:        payload.Weather[0].Icon,
		At:          time.Now().UTC(),
	}, nil
}
