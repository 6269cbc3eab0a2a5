package routing

import (
	"context"
	"fmt"
	"sync"
	"trip-logbook-service/internal/domain"
	"trip-logbook-service/internal/ports"
)

type MockLeg struct {
	From, To domain.Coordinates
	Meters   float64
	Seconds  float64
	Geometry string
}

// MockRouteProvider serves fixed legs and counts lookups.
type MockRouteProvider struct {
	mu    sync.Mutex
	m     map[string]ports.RouteResult
	calls int
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[string]ports.RouteResult, len(legs))
	for _, l := range legs {
		m[l.From.String()+"|"+l.To.String()] = ports.RouteResult{
			DistanceMeters:  l.Meters,
			DurationSeconds: l.Seconds,
			Geometry:        l.Geometry,
		}
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, from, to domain.Coordinates) (ports.RouteResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	r, ok := p.m[from.String()+"|"+to.String()]
	if !ok {
		return ports.RouteResult{}, fmt.Errorf("%w: missing leg %s -> %s", ErrNoRoute, from, to)
	}
	return r, nil
}

func (p *MockRouteProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
