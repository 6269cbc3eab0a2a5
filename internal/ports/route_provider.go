package ports

import (
	"context"
	"trip-logbook-service/internal/domain"
)

const metersToMiles = 0.000621371

// Driving distance, duration and drawable geometry for one route leg.
type RouteResult struct {
	DistanceMeters  float64
	DurationSeconds float64
	// Provider-encoded polyline, passed through to the map client untouched.
	Geometry string
}

func (r RouteResult) Miles() float64 { return r.DistanceMeters * metersToMiles }

func (r RouteResult) Hours() float64 { return r.DurationSeconds / 3600 }

// Contract for retrieving a truck route between two points.
type RouteProvider interface {
	GetRoute(ctx context.Context, from, to domain.Coordinates) (RouteResult, error)
}

// Persistent cache of route legs keyed by a caller-normalized string.
type RouteCache interface {
	Get(ctx context.Context, key string) (RouteResult, bool, error)
	Put(ctx context.Context, key string, r RouteResult) error
}
