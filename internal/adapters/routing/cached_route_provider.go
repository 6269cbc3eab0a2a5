package routing

import (
	"context"
	"fmt"
	"log"
	"trip-logbook-service/internal/domain"
	"trip-logbook-service/internal/ports"
)

// CachedRouteProvider consults a persistent RouteCache before delegating to the
// wrapped provider. Cache failures never fail the lookup; they are logged.
type CachedRouteProvider struct {
	next      ports.RouteProvider
	cache     ports.RouteCache
	namespace string
}

// NewCachedRouteProvider wraps next. namespace keeps results from different
// providers or profiles apart in a shared cache table.
func NewCachedRouteProvider(next ports.RouteProvider, cache ports.RouteCache, namespace string) *CachedRouteProvider {
	return &CachedRouteProvider{next: next, cache: cache, namespace: namespace}
}

// RouteCacheKey rounds to 5 decimal places (about a metre) so equivalent
// coordinate strings share an entry.
func RouteCacheKey(namespace string, from, to domain.Coordinates) string {
	return fmt.Sprintf("%s|%.5f,%.5f|%.5f,%.5f", namespace, from.Lon, from.Lat, to.Lon, to.Lat)
}

func (c *CachedRouteProvider) GetRoute(ctx context.Context, from, to domain.Coordinates) (ports.RouteResult, error) {
	key := RouteCacheKey(c.namespace, from, to)

	if c.cache != nil {
		r, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			log.Printf("route cache read failed: key=%s err=%v", key, err)
		} else if ok {
			return r, nil
		}
	}

	r, err := c.next.GetRoute(ctx, from, to)
	if err != nil {
		return ports.RouteResult{}, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, r); err != nil {
			log.Printf("route cache write failed: key=%s err=%v", key, err)
		}
	}

	return r, nil
}
