package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Facets are the filter options shown next to the listing.
type Facets struct {
	Categories []Category `json:"categories"`
	Brands     []Brand    `json:"brands"`
}

type FacetSource interface {
	ActiveCategories(ctx context.Context) ([]Category, error)
	ActiveBrands(ctx context.Context) ([]Brand, error)
}

// CachedFacets keeps the active categories and brands in Redis. Concurrent
// misses are collapsed into one database read.
type CachedFacets struct {
	src     FacetSource
	client  *redis.Client
	baseTTL time.Duration
	group   singleflight.Group
	logger  *zap.SugaredLogger
}

const facetsCacheKey = "catalog:facets"

func NewCachedFacets(src FacetSource, client *redis.Client, logger *zap.SugaredLogger) *CachedFacets {
	return &CachedFacets{
		src:     src,
		client:  client,
		baseTTL: 10 * time.Minute,
		logger:  logger,
	}
}

func (c *CachedFacets) Get(ctx context.Context) (Facets, error) {
	if f, ok := c.cached(ctx); ok {
		return f, nil
	}

	v, err, _ := c.group.Do(facetsCacheKey, func() (any, error) {
		f, err := c.load(ctx)
		if err != nil {
			return Facets{}, err
		}
		c.store(ctx, f)
		return f, nil
	})
	if err != nil {
		return Facets{}, err
	}
	return v.(Facets), nil
}

// Invalidate drops the cached facets, e.g. after a catalog import.
func (c *CachedFacets) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, facetsCacheKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (c *CachedFacets) load(ctx context.Context) (Facets, error) {
	cats, err := c.src.ActiveCategories(ctx)
	if err != nil {
		return Facets{}, err
	}
	brands, err := c.src.ActiveBrands(ctx)
	if err != nil {
		return Facets{}, err
	}
	return Facets{Categories: cats, Brands: brands}, nil
}

func (c *CachedFacets) cached(ctx context.Context) (Facets, bool) {
	data, err := c.client.Get(ctx, facetsCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnw("facets cache read failed", "error", err)
		}
		return Facets{}, false
	}

	var f Facets
	if err := json.Unmarshal(data, &f); err != nil {
		c.logger.Warnw("facets cache entry corrupt", "error", err)
		return Facets{}, false
	}
	return f, true
}

func (c *CachedFacets) store(ctx context.Context, f Facets) {
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	jitter := time.Duration(rand.IntN(3)) * time.Minute
	if err := c.client.Set(ctx, facetsCacheKey, data, c.baseTTL+jitter).Err(); err != nil {
		c.logger.Warnw("facets cache write failed", "error", err)
	}
}
