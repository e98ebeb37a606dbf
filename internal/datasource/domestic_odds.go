package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const domesticOddsSourceName = "domestic_odds"

// DomesticOddsClient fetches 1X2 lines from the domestic bookmaker feed.
// The feed quotes decimal odds as strings ("1.85"), which are parsed
// exactly before any arithmetic.
type DomesticOddsClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	logger     logrus.FieldLogger
}

// domesticOddsResponse mirrors the bookmaker feed payload
type domesticOddsResponse struct {
	Lines []struct {
		FixtureID  int64  `json:"fixture_id"`
		HomeOdds   string `json:"home_odds"`
		DrawOdds   string `json:"draw_odds"`
		AwayOdds   string `json:"away_odds"`
		QuotedAtMs int64  `json:"quoted_at_ms"`
	} `json:"lines"`
}

// NewDomesticOddsClient creates a new domestic odds client
func NewDomesticOddsClient(httpClient *RateLimitedHTTPClient, baseURL string, logger logrus.FieldLogger) *DomesticOddsClient {
	return &DomesticOddsClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// FetchLines retrieves the current 1X2 lines for a set of fixtures.
// Fixtures the bookmaker has no market for are silently absent from
// the result.
func (c *DomesticOddsClient) FetchLines(ctx context.Context, fixtureSourceIDs []int64) ([]OddsLineData, error) {
	if len(fixtureSourceIDs) == 0 {
		return nil, nil
	}

	url := fmt.Sprintf("%s/v1/lines?fixtures=%s", c.baseURL, joinIDs(fixtureSourceIDs))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewDataSourceError(domesticOddsSourceName, ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(domesticOddsSourceName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewDataSourceError(domesticOddsSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewDataSourceError(domesticOddsSourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var payload domesticOddsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, NewDataSourceError(domesticOddsSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}

	lines := make([]OddsLineData, 0, len(payload.Lines))
	for _, raw := range payload.Lines {
		line, err := c.parseLine(raw.FixtureID, raw.HomeOdds, raw.DrawOdds, raw.AwayOdds, raw.QuotedAtMs)
		if err != nil {
			c.logger.WithField("fixture", raw.FixtureID).
				Warnf("skipping malformed odds line: %v", err)
			continue
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// parseLine converts bookmaker string odds into a normalized line.
// Every outcome must quote above 1.0 or the line is rejected whole.
func (c *DomesticOddsClient) parseLine(fixtureID int64, home, draw, away string, quotedAtMs int64) (OddsLineData, error) {
	one := decimal.NewFromInt(1)

	parse := func(outcome, raw string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%s odds %q: %w", outcome, raw, ErrInvalidData)
		}
		if !d.GreaterThan(one) {
			return decimal.Decimal{}, fmt.Errorf("%s odds %s not above 1.0: %w", outcome, d, ErrInvalidData)
		}
		return d, nil
	}

	h, err := parse("home", home)
	if err != nil {
		return OddsLineData{}, err
	}
	d, err := parse("draw", draw)
	if err != nil {
		return OddsLineData{}, err
	}
	a, err := parse("away", away)
	if err != nil {
		return OddsLineData{}, err
	}

	return OddsLineData{
		FixtureSourceID: fixtureID,
		Source:          "domestic",
		Home:            h,
		Draw:            d,
		Away:            a,
		RecordedAt:      time.UnixMilli(quotedAtMs).UTC(),
	}, nil
}

func joinIDs(ids []int64) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%d", id)
	}
	return out
}
