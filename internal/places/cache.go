package places

import (
	"context"
	"errors"
	"time"

	"campfire/internal/shared/metrics"
	"campfire/internal/shared/storage/kv"
	"campfire/internal/shared/telemetry"
	"campfire/internal/shared/util"
)

const detailsTTLFactor = 24

// Cached serves autocomplete and details from the kv store when possible.
// Autocomplete keys ignore the session token; details live longer than
// autocomplete results.
type Cached struct {
	next  Provider
	store *kv.Store
	ttl   time.Duration
}

func NewCached(next Provider, store *kv.Store, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cached{next: next, store: store, ttl: ttl}
}

func (c *Cached) Name() string { return c.next.Name() }

func (c *Cached) Autocomplete(ctx context.Context, query, city, sessionToken string) ([]Suggestion, error) {
	key := "places:ac:" + util.CacheKey(c.next.Name(), city, query)
	var cached []Suggestion
	if c.lookup(ctx, "autocomplete", key, &cached) {
		return cached, nil
	}
	out, err := c.next.Autocomplete(ctx, query, city, sessionToken)
	if err != nil {
		return nil, err
	}
	if len(out) > 0 {
		c.save(ctx, key, out, c.ttl)
	}
	return out, nil
}

func (c *Cached) Details(ctx context.Context, placeID, sessionToken string) (Details, error) {
	key := "places:details:" + util.CacheKey(c.next.Name(), placeID)
	var cached Details
	if c.lookup(ctx, "details", key, &cached) {
		return cached, nil
	}
	d, err := c.next.Details(ctx, placeID, sessionToken)
	if err != nil {
		return Details{}, err
	}
	c.save(ctx, key, d, c.ttl*detailsTTLFactor)
	return d, nil
}

func (c *Cached) SearchNearby(ctx context.Context, q NearbyQuery) ([]Details, error) {
	return c.next.SearchNearby(ctx, q)
}

func (c *Cached) lookup(ctx context.Context, cache, key string, dst any) bool {
	err := c.store.Get(ctx, key, dst)
	hit := err == nil
	metrics.IncCacheLookup(cache, hit)
	switch {
	case err == nil, errors.Is(err, kv.ErrNotFound):
	case errors.Is(err, kv.ErrCorrupt):
		telemetry.Warn("places.cache.evict", map[string]any{"cache": cache, "error": err.Error()})
		if err := c.store.Delete(ctx, key); err != nil {
			telemetry.Warn("places.cache.delete_failed", map[string]any{"cache": cache, "error": err.Error()})
		}
	default:
		telemetry.Warn("places.cache.get_failed", map[string]any{"cache": cache, "error": err.Error()})
	}
	return hit
}

func (c *Cached) save(ctx context.Context, key string, value any, ttl time.Duration) {
	if err := c.store.Set(ctx, key, value, ttl); err != nil {
		telemetry.Warn("places.cache.set_failed", map[string]any{"error": err.Error()})
	}
}
