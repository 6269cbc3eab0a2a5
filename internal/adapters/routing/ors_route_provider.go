package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"trip-logbook-service/internal/domain"
	"trip-logbook-service/internal/platform/obs"
	"trip-logbook-service/internal/ports"
)

const (
	defaultORSBaseURL = "https://api.openrouteservice.org"
	heavyGoodsProfile = "driving-hgv"
)

// ORSRouteProvider implements RouteProvider and Geocoder using OpenRouteService.
// Routes are requested for heavy goods vehicles with the shortest-distance
// preference. The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	backoff      time.Duration
	geocodeCache ports.GeocodeCache
}

type ORSOption func(*ORSRouteProvider)

// WithBaseURL points the provider at a self-hosted ORS or a test server.
func WithBaseURL(u string) ORSOption {
	return func(o *ORSRouteProvider) { o.baseURL = strings.TrimRight(u, "/") }
}

func WithGeocodeCache(c ports.GeocodeCache) ORSOption {
	return func(o *ORSRouteProvider) { o.geocodeCache = c }
}

func WithRetryBackoff(d time.Duration) ORSOption {
	return func(o *ORSRouteProvider) { o.backoff = d }
}

func WithHTTPClient(c *http.Client) ORSOption {
	return func(o *ORSRouteProvider) { o.session = c }
}

func NewORSRouteProvider(apiKey string, opts ...ORSOption) (*ORSRouteProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSRouteProvider{
		session: &http.Client{Timeout: 20 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultORSBaseURL,
		profile: heavyGoodsProfile,
		backoff: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(provider)
	}

	return provider, nil
}

type directionsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Preference   string      `json:"preference"`
	Instructions bool        `json:"instructions"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// GetRoute fetches the shortest truck route between two points.
func (o *ORSRouteProvider) GetRoute(
	ctx context.Context,
	from, to domain.Coordinates,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	endpoint := fmt.Sprintf("%s/v2/directions/%s/json", o.baseURL, o.profile)

	payload, err := json.Marshal(directionsRequest{
		Coordinates:  [][]float64{from.CoordsToList(), to.CoordsToList()},
		Preference:   "shortest",
		Instructions: false,
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("directions request %s -> %s: %w", from, to, err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Routes) == 0 {
		return ports.RouteResult{}, fmt.Errorf("%w: %s -> %s", ErrNoRoute, from, to)
	}

	route := dr.Routes[0]
	return ports.RouteResult{
		DistanceMeters:  route.Summary.Distance,
		DurationSeconds: route.Summary.Duration,
		Geometry:        route.Geometry,
	}, nil
}
