package nws

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/couchcryptid/sun-table-etl/internal/domain"
	"github.com/couchcryptid/sun-table-etl/internal/observability"
)

var _ domain.CoordinateResolver = (*CachedResolver)(nil)

// CachedResolver wraps a CoordinateResolver with an in-memory LRU cache and
// an optional persistent FileStore. Lookups go memory → store → inner.
type CachedResolver struct {
	inner   domain.CoordinateResolver
	cache   *lru.Cache[string, domain.Coordinates]
	store   *FileStore
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewCachedResolver creates a cache decorator around a resolver. store may be nil.
func NewCachedResolver(inner domain.CoordinateResolver, maxEntries int, store *FileStore, metrics *observability.Metrics, logger *slog.Logger) (*CachedResolver, error) {
	cache, err := lru.New[string, domain.Coordinates](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("create coordinate cache: %w", err)
	}
	return &CachedResolver{
		inner:   inner,
		cache:   cache,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Resolve returns coordinates for zip, filling the memory cache and the
// store from the inner resolver on a miss.
func (c *CachedResolver) Resolve(ctx context.Context, zip string) (domain.Coordinates, error) {
	if err := domain.ValidateZipCode(zip); err != nil {
		return domain.Coordinates{}, err
	}
	if coords, ok := c.cache.Get(zip); ok {
		c.metrics.CoordinateLookups.WithLabelValues("hit").Inc()
		return coords, nil
	}

	if c.store != nil {
		coords, ok, err := c.store.Load(zip)
		if err != nil {
			c.logger.Warn("coordinate store read failed", "zip", zip, "error", err)
		} else if ok {
			c.metrics.CoordinateLookups.WithLabelValues("hit").Inc()
			c.cache.Add(zip, coords)
			return coords, nil
		}
	}

	coords, err := c.inner.Resolve(ctx, zip)
	if err != nil {
		c.metrics.CoordinateLookups.WithLabelValues("error").Inc()
		return domain.Coordinates{}, err
	}
	c.metrics.CoordinateLookups.WithLabelValues("miss").Inc()
	c.cache.Add(zip, coords)

	if c.store != nil {
		if err := c.store.Save(zip, coords); err != nil {
			c.logger.Warn("coordinate store write failed", "zip", zip, "error", err)
		}
	}
	return coords, nil
}
