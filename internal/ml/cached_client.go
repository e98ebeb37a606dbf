package ml

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchcast/internal/config"
)

// Default bound on cached predictions when config carries no limit
const defaultCacheMaxSize = 10000

// CachedClient wraps a Client with prediction caching
type CachedClient struct {
	client Client
	cache  *PredictionCache
	logger *logrus.Logger
}

// NewCachedClient creates a caching client over the model service
func NewCachedClient(cfg *config.MLServiceConfig, logger *logrus.Logger) *CachedClient {
	return &CachedClient{
		client: NewHTTPClient(cfg, logger),
		cache:  NewPredictionCache(time.Duration(cfg.CacheTTLSeconds)*time.Second, defaultCacheMaxSize),
		logger: logger,
	}
}

// NewCachedClientWith wraps an existing client; used by tests
func NewCachedClientWith(client Client, ttl time.Duration, logger *logrus.Logger) *CachedClient {
	return &CachedClient{
		client: client,
		cache:  NewPredictionCache(ttl, defaultCacheMaxSize),
		logger: logger,
	}
}

// Predict retrieves a prediction, serving from cache when fresh
func (c *CachedClient) Predict(ctx context.Context, req PredictionRequest) (*PredictionResult, error) {
	key := CacheKey{FixtureID: req.FixtureID, ModelVersion: "latest"}

	if cached := c.cache.Get(key); cached != nil {
		c.logger.WithField("fixture_id", req.FixtureID).Debug("Cache hit for prediction")
		ModelPredictionsTotal.WithLabelValues("model", "true").Inc()
		return cached, nil
	}

	result, err := c.client.Predict(ctx, req)
	if err != nil {
		return nil, err
	}

	c.cache.Set(CacheKey{FixtureID: req.FixtureID, ModelVersion: "latest"}, result)
	return result, nil
}

// BatchPredict predicts many fixtures with partial cache serving
func (c *CachedClient) BatchPredict(ctx context.Context, requests []PredictionRequest) ([]*PredictionResult, error) {
	results := make([]*PredictionResult, len(requests))
	uncached := make([]PredictionRequest, 0)
	uncachedIdx := make([]int, 0)

	for i, req := range requests {
		key := CacheKey{FixtureID: req.FixtureID, ModelVersion: "latest"}
		if hit := c.cache.Get(key); hit != nil {
			results[i] = hit
			ModelPredictionsTotal.WithLabelValues("model", "true").Inc()
		} else {
			uncached = append(uncached, req)
			uncachedIdx = append(uncachedIdx, i)
		}
	}

	if len(uncached) > 0 {
		c.logger.WithFields(logrus.Fields{
			"total_requests": len(requests),
			"cached":         len(requests) - len(uncached),
			"uncached":       len(uncached),
		}).Debug("Batch prediction with partial cache")

		fresh, err := c.client.BatchPredict(ctx, uncached)
		if err != nil {
			return nil, err
		}

		for i, result := range fresh {
			key := CacheKey{FixtureID: uncached[i].FixtureID, ModelVersion: "latest"}
			c.cache.Set(key, result)
			results[uncachedIdx[i]] = result
		}
	}

	return results, nil
}

// InvalidateFixture drops cached predictions for a fixture after its
// odds or features change
func (c *CachedClient) InvalidateFixture(fixtureID uuid.UUID) {
	c.cache.Invalidate(fixtureID)
	c.logger.WithField("fixture_id", fixtureID).Debug("Invalidated prediction cache for fixture")
}

// ClearCache clears all cached predictions
func (c *CachedClient) ClearCache() {
	c.cache.Clear()
}

// CacheStats returns cache statistics
func (c *CachedClient) CacheStats() (hits, misses uint64, hitRatio float64) {
	return c.cache.Stats()
}

// HealthCheck checks model service health
func (c *CachedClient) HealthCheck(ctx context.Context) error {
	return c.client.HealthCheck(ctx)
}

// Close closes the underlying client
func (c *CachedClient) Close() error {
	return c.client.Close()
}
