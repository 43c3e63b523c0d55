// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/wneessen/weathermap/internal/cache"
	"github.com/wneessen/weathermap/internal/logger"
)

type CachedGeocoder struct {
	coder   Geocoder
	store   cache.Store
	log     *logger.Logger
	ttlHit  time.Duration
	ttlMiss time.Duration
}

func NewCachedGeocoder(coder Geocoder, store cache.Store, log *logger.Logger, ttlHit, ttlMiss time.Duration) *CachedGeocoder {
	return &CachedGeocoder{
		coder:   coder,
		store:   store,
		log:     log,
		ttlHit:  ttlHit,
		ttlMiss: ttlMiss,
	}
}

func (c *CachedGeocoder) Name() string {
	return "geocoder cache using " + c.coder.Name()
}

// Search answers from the cache if possible. Lookup errors are never cached and a broken
// cache backend only costs an extra upstream request.
func (c *CachedGeocoder) Search(ctx context.Context, query string) (Place, error) {
	key := cacheKey(c.coder.Name(), query)

	data, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var place Place
		if err = json.Unmarshal(data, &place); err == nil {
			place.CacheHit = true
			return place, nil
		}
		c.log.Warn("failed to decode cached place", logger.Err(err))
	case !errors.Is(err, cache.ErrMiss):
		c.log.Warn("failed to read from geocode cache", logger.Err(err))
	}

	place, err := c.coder.Search(ctx, query)
	if err != nil {
		return place, err
	}

	ttl := c.ttlHit
	if !place.Found {
		ttl = c.ttlMiss
	}
	data, err = json.Marshal(place)
	if err != nil {
		c.log.Warn("failed to encode place for geocode cache", logger.Err(err))
		return place, nil
	}
	if err = c.store.Set(ctx, key, data, ttl); err != nil {
		c.log.Warn("failed to write to geocode cache", logger.Err(err))
	}

	return place, nil
}

func cacheKey(provider, query string) string {
	return "geocode:" + provider + ":" + NormalizeQuery(query)
}
