package ml

import (
	"sync"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
)

// PredictionCache provides in-memory caching for model predictions
type PredictionCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(ttl time.Duration, maxSize int) *PredictionCache {
	return &PredictionCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached prediction
func (pc *PredictionCache) Get(key CacheKey) *PredictionResult {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if result, found := pc.cache.Get(key.String()); found {
		if pred, ok := result.(*PredictionResult); ok {
			pc.hitCount++
			pc.updateMetrics()
			return pred
		}
	}

	pc.missCount++
	pc.updateMetrics()
	return nil
}

// Set stores a prediction in cache
func (pc *PredictionCache) Set(key CacheKey, prediction *PredictionResult) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.cache.ItemCount() >= pc.maxSize {
		pc.cache.DeleteExpired()
	}

	pc.cache.Set(key.String(), prediction, pc.ttl)
}

// Invalidate removes all cache entries for a fixture, across model
// versions. Called when fresh odds or features land for the fixture.
func (pc *PredictionCache) Invalidate(fixtureID uuid.UUID) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	prefix := fixtureID.String() + ":"
	for k := range pc.cache.Items() {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			pc.cache.Delete(k)
		}
	}
}

// Clear removes all cached predictions
func (pc *PredictionCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache.Flush()
	pc.hitCount = 0
	pc.missCount = 0
}

// Stats returns cache hit statistics
func (pc *PredictionCache) Stats() (hits, misses uint64, hitRatio float64) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	hits = pc.hitCount
	misses = pc.missCount
	if total := hits + misses; total > 0 {
		hitRatio = float64(hits) / float64(total)
	}
	return hits, misses, hitRatio
}

// Size returns the number of cached predictions
func (pc *PredictionCache) Size() int {
	return pc.cache.ItemCount()
}

func (pc *PredictionCache) updateMetrics() {
	if total := pc.hitCount + pc.missCount; total > 0 {
		ModelCacheHitRatio.Set(float64(pc.hitCount) / float64(total))
	}
}
