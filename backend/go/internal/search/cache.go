package search

import (
	"Sceptre/backend/go/internal/config"
	"Sceptre/backend/go/internal/models"
	"Sceptre/backend/go/pkg/util"
	"context"
	"fmt"
	"time"
)

// EvidenceCache memoizes provider results keyed by (query, result count) so
// repeated verifications of the same claims do not hit the provider again
// within the TTL window.
type EvidenceCache struct {
	cache    *util.InsertionCache[string, []models.RawResult]
	provider Provider
}

// NewEvidenceCache creates a cache in front of the given provider.
func NewEvidenceCache(cfg config.SearchConfig, provider Provider) (*EvidenceCache, error) {
	cache, err := util.NewInsertionCache[string, []models.RawResult](util.CacheConfig{
		Capacity: cfg.CacheCapacity,
		TTL:      time.Duration(cfg.CacheTTLSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return &EvidenceCache{cache: cache, provider: provider}, nil
}

// GetOrFetch returns the cached hits for (query, count), or calls the
// provider on a miss and stores the outcome. Provider failures propagate to
// the caller and are never cached, so a transient outage does not poison
// the cache for the TTL window.
func (c *EvidenceCache) GetOrFetch(ctx context.Context, query string, count int) ([]models.RawResult, error) {
	key := cacheKey(query, count)

	if hits, ok := c.cache.Get(key); ok {
		return hits, nil
	}

	hits, err := c.provider.Search(ctx, query, count)
	if err != nil {
		return nil, err
	}

	c.cache.Put(key, hits)
	return hits, nil
}

// Len reports the number of live cache entries.
func (c *EvidenceCache) Len() int {
	return c.cache.Len()
}

func cacheKey(query string, count int) string {
	return fmt.Sprintf("search:%s:%d", query, count)
}
