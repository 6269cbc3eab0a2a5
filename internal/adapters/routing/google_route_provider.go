package routing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"trip-logbook-service/internal/domain"
	"trip-logbook-service/internal/platform/obs"
	"trip-logbook-service/internal/ports"

	"googlemaps.github.io/maps"
)

// GoogleRouteProvider implements RouteProvider with the Google Maps Directions API.
// It is an alternative to ORS for regions where the HGV profile is unavailable.
type GoogleRouteProvider struct {
	client *maps.Client
}

func NewGoogleRouteProvider(apiKey string, opts ...maps.ClientOption) (*GoogleRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &GoogleRouteProvider{client: client}, nil
}

// latLng formats coordinates the way the Directions API expects ("lat,lng").
func latLng(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

func (g *GoogleRouteProvider) GetRoute(
	ctx context.Context,
	from, to domain.Coordinates,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "google.GetRoute")(&err)

	routes, _, err := g.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      latLng(from),
		Destination: latLng(to),
		Mode:        maps.TravelModeDriving,
		Units:       maps.UnitsImperial,
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("maps directions %s -> %s: %w", from, to, err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return ports.RouteResult{}, fmt.Errorf("%w: %s -> %s", ErrNoRoute, from, to)
	}

	var out ports.RouteResult
	for _, leg := range routes[0].Legs {
		out.DistanceMeters += float64(leg.Distance.Meters)
		out.DurationSeconds += leg.Duration.Seconds()
	}
	out.Geometry = routes[0].OverviewPolyline.Points

	return out, nil
}
