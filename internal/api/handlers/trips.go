package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"trip-logbook-service/internal/api/dto"
	"trip-logbook-service/internal/api/identity"
	"trip-logbook-service/internal/domain"
	"trip-logbook-service/internal/platform/obs"
	"trip-logbook-service/internal/ports"
	"trip-logbook-service/internal/services"
)

const maxBodyBytes = 1 << 16

type TripHandler struct {
	Routes   ports.RouteProvider
	Geocoder ports.Geocoder
	Store    ports.LogbookStore
	Rules    domain.RuleSet
}

// Calculate routes a trip, simulates the driver's logbook and appends it to the
// caller's history.
func (h *TripHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	owner, ok := identity.Owner(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "no logbook owner for request")
		return
	}

	var req dto.CalculateTripRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	fields := []struct {
		name  string
		value string
	}{
		{"currentLocation", req.CurrentLocation},
		{"pickupLocation", req.PickupLocation},
		{"dropoffLocation", req.DropoffLocation},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf(
				"Missing or invalid location input: '%s' must be a coordinate string (Lon,Lat).", f.name,
			))
			return
		}
	}

	cycle := float64(req.CurrentCycleUsed)
	if math.IsNaN(cycle) || math.IsInf(cycle, 0) || cycle < 0 {
		writeError(w, r, http.StatusBadRequest, "currentCycleUsed must be a non-negative number of hours")
		return
	}

	plan, err := services.PlanTrip(r.Context(), services.PlanTripRequest{
		CurrentLocation: req.CurrentLocation,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		CycleHoursUsed:  cycle,
		Owner:           owner,
	}, services.PlanTripDeps{
		Routes:   h.Routes,
		Geocoder: h.Geocoder,
		Store:    h.Store,
		Rules:    h.Rules,
	})
	if err != nil {
		reqID := obs.RequestID(r.Context())
		switch {
		case errors.Is(err, services.ErrInvalidLocation):
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("Coordinate parsing error: %v", err))
		case errors.Is(err, services.ErrRouteUnavailable):
			log.Printf("req_id=%s calculate trip route failed: %v", reqID, err)
			writeError(w, r, http.StatusBadGateway, fmt.Sprintf("Error calculating route: %v", err))
		default:
			log.Printf("req_id=%s calculate trip failed: %v", reqID, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	stops := make([]dto.StopResponse, 0, len(plan.Stops))
	for _, s := range plan.Stops {
		stops = append(stops, dto.StopResponse{
			Lat:           s.Lat,
			Lon:           s.Lon,
			Type:          string(s.Type),
			Description:   s.Description,
			DurationHours: s.DurationHours,
		})
	}

	res := dto.CalculateTripResponse{
		RouteData: dto.RouteDataResponse{
			DeadheadMiles:           round1(plan.Deadhead.Miles()),
			TransportMiles:          round1(plan.Transport.Miles()),
			TotalMiles:              round1(plan.TotalMiles),
			TotalDrivingHours:       round1(plan.TotalDrivingHours),
			RequiredDays:            plan.NewDays,
			RouteGeometry:           []string{plan.Deadhead.Geometry, plan.Transport.Geometry},
			Stops:                   stops,
			FullyScheduled:          plan.FullyScheduled,
			UnscheduledDrivingHours: round1(plan.UnscheduledDrivingHours),
		},
		LogbookEvents: dto.FromLogbook(plan.Logbook),
	}

	writeJSON(w, r, http.StatusOK, res)
}
