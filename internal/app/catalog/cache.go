package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"learnloop/internal/pkg/logx"
)

const (
	// cacheKey is the Redis key holding the serialized catalog.
	cacheKey = "catalog:skills"

	// DefaultCacheTTL bounds how stale a cached catalog may get. The catalog
	// is a versionless reference table, so minutes-level staleness is fine.
	DefaultCacheTTL = 15 * time.Minute
)

// CachedSource decorates a Source with a Redis cache so the catalog is fetched
// from its origin at most once per TTL window rather than once per page load.
// Cache failures degrade to a direct origin fetch; they never fail the caller
// on their own.
type CachedSource struct {
	origin Source
	rdb    *redis.Client
	ttl    time.Duration
}

// NewCachedSource wraps origin with the Redis-backed cache.
func NewCachedSource(origin Source, rdb *redis.Client, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSource{
		origin: origin,
		rdb:    rdb,
		ttl:    ttl,
	}
}

// Fetch returns the cached catalog when present, otherwise fetches from the
// origin and populates the cache.
func (s *CachedSource) Fetch(ctx context.Context) (Catalog, error) {
	data, err := s.rdb.Get(ctx, cacheKey).Bytes()
	if err == nil {
		var c Catalog
		if jsonErr := json.Unmarshal(data, &c); jsonErr == nil {
			return c, nil
		}
		// A corrupt cache entry is dropped and refetched.
		logx.Warn("Cached skill catalog is corrupt, refetching", "key", cacheKey)
		s.rdb.Del(ctx, cacheKey)
	} else if err != redis.Nil {
		logx.Error(err, "Skill catalog cache read failed, falling back to origin")
	}

	c, err := s.origin.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(c); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, data, s.ttl).Err(); err != nil {
			logx.Error(err, "Failed to cache skill catalog")
		}
	}

	return c, nil
}
