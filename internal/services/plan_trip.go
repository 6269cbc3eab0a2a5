package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"trip-logbook-service/internal/domain"
	"trip-logbook-service/internal/platform/obs"
	"trip-logbook-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

const (
	// Pre-trip inspection and paperwork at pickup.
	inspectionDutyHours = 2.0
	fuelStopHours       = 0.5
)

var (
	ErrInvalidLocation  = errors.New("invalid location")
	ErrRouteUnavailable = errors.New("route unavailable")
	ErrLogbookStorage   = errors.New("logbook storage failed")
)

type PlanTripRequest struct {
	CurrentLocation string
	PickupLocation  string
	DropoffLocation string
	CycleHoursUsed  float64
	Owner           ports.Owner
}

type PlanTripDeps struct {
	Routes ports.RouteProvider
	// Optional. Without it, locations must be "lon,lat" pairs.
	Geocoder ports.Geocoder
	Store    ports.LogbookStore
	Rules    domain.RuleSet
}

// TripPlan is the outcome of one trip calculation.
type TripPlan struct {
	Deadhead          ports.RouteResult
	Transport         ports.RouteResult
	TotalMiles        float64
	TotalDrivingHours float64
	Stops             []domain.Stop
	// Days produced by this trip alone, before renumbering.
	NewDays int
	// Stored history followed by this trip's days.
	Logbook                 domain.Logbook
	FullyScheduled          bool
	UnscheduledDrivingHours float64
}

// PlanTrip routes the deadhead and loaded legs, simulates the driver's logbook
// for the combined driving time, and appends the result to the owner's history.
func PlanTrip(ctx context.Context, req PlanTripRequest, deps PlanTripDeps) (_ *TripPlan, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	if deps.Routes == nil || deps.Store == nil {
		return nil, errors.New("plan trip: route provider and logbook store are required")
	}

	current, err := resolveLocation(ctx, "currentLocation", req.CurrentLocation, deps.Geocoder)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}
	pickup, err := resolveLocation(ctx, "pickupLocation", req.PickupLocation, deps.Geocoder)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}
	dropoff, err := resolveLocation(ctx, "dropoffLocation", req.DropoffLocation, deps.Geocoder)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	var deadhead, transport ports.RouteResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := deps.Routes.GetRoute(gctx, current, pickup)
		if err != nil {
			return fmt.Errorf("deadhead route: %w", err)
		}
		deadhead = r
		return nil
	})
	g.Go(func() error {
		r, err := deps.Routes.GetRoute(gctx, pickup, dropoff)
		if err != nil {
			return fmt.Errorf("transport route: %w", err)
		}
		transport = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan trip: %w: %w", ErrRouteUnavailable, err)
	}

	totalDriving := deadhead.Hours() + transport.Hours()

	var stops []domain.Stop
	if totalDriving > deps.Rules.MaxDrivingBeforeBreak {
		stops = append(stops, domain.Stop{
			Lat:           pickup.Lat,
			Lon:           pickup.Lon,
			Type:          domain.StopRest,
			Description:   "Mandatory 30-Min Rest Break (Approximate Location at Pickup)",
			DurationHours: deps.Rules.MinMandatoryBreak,
		})
	}
	mid := pickup.Midpoint(dropoff)
	stops = append(stops, domain.Stop{
		Lat:           mid.Lat,
		Lon:           mid.Lon,
		Type:          domain.StopFuel,
		Description:   "Mid-Route Refueling Stop (Approximate Location)",
		DurationHours: fuelStopHours,
	})

	sim := SimulateLogbook(deps.Rules, domain.TripDemand{
		TotalDrivingHours: totalDriving,
		CycleHoursUsed:    req.CycleHoursUsed,
		InitialDutyHours:  inspectionDutyHours + fuelStopHours,
		PickupLabel:       strings.TrimSpace(req.PickupLocation),
	})
	if !sim.FullyScheduled {
		log.Printf(
			"req_id=%s trip truncated: requested=%.2fh scheduled=%.2fh cycle_used=%.2fh",
			obs.RequestID(ctx), totalDriving, sim.ScheduledDrivingHours, req.CycleHoursUsed,
		)
	}

	history, err := deps.Store.Read(ctx, req.Owner)
	if err != nil {
		return nil, fmt.Errorf("plan trip: read history: %w: %w", ErrLogbookStorage, err)
	}

	combined := ContinueLogbook(history, sim.Logbook)

	if err := deps.Store.Write(ctx, req.Owner, combined); err != nil {
		return nil, fmt.Errorf("plan trip: save logbook: %w: %w", ErrLogbookStorage, err)
	}

	return &TripPlan{
		Deadhead:                deadhead,
		Transport:               transport,
		TotalMiles:              deadhead.Miles() + transport.Miles(),
		TotalDrivingHours:       totalDriving,
		Stops:                   stops,
		NewDays:                 len(sim.Logbook),
		Logbook:                 combined,
		FullyScheduled:          sim.FullyScheduled,
		UnscheduledDrivingHours: sim.UnscheduledDrivingHours,
	}, nil
}

// resolveLocation accepts a "lon,lat" pair, falling back to the geocoder for
// free-text addresses when one is configured.
func resolveLocation(ctx context.Context, field, raw string, geocoder ports.Geocoder) (domain.Coordinates, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Coordinates{}, fmt.Errorf("%w: %s is required", ErrInvalidLocation, field)
	}

	c, err := domain.ParseCoordinates(raw)
	if err == nil {
		return c, nil
	}
	if geocoder == nil {
		return domain.Coordinates{}, fmt.Errorf("%w: %s: %w", ErrInvalidLocation, field, err)
	}

	c, gerr := geocoder.Geocode(ctx, raw)
	if gerr != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: %s: geocode %q: %w", ErrInvalidLocation, field, raw, gerr)
	}
	return c, nil
}
