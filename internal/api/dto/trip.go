package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexFloat accepts a JSON number, a numeric string, or null (as zero). Browser
// forms commonly post numbers as strings.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}

	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
	} else {
		s = string(b)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", s)
	}
	*f = FlexFloat(v)
	return nil
}

type CalculateTripRequest struct {
	CurrentLocation  string    `json:"currentLocation"`
	PickupLocation   string    `json:"pickupLocation"`
	DropoffLocation  string    `json:"dropoffLocation"`
	CurrentCycleUsed FlexFloat `json:"currentCycleUsed"`
}

type StopResponse struct {
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	DurationHours float64 `json:"duration_hours"`
}

type RouteDataResponse struct {
	DeadheadMiles           float64        `json:"deadhead_miles"`
	TransportMiles          float64        `json:"transport_miles"`
	TotalMiles              float64        `json:"total_miles"`
	TotalDrivingHours       float64        `json:"total_driving_hours"`
	RequiredDays            int            `json:"required_days"`
	RouteGeometry           []string       `json:"route_geometry"`
	Stops                   []StopResponse `json:"stops"`
	FullyScheduled          bool           `json:"fully_scheduled"`
	UnscheduledDrivingHours float64        `json:"unscheduled_driving_hours"`
}

type CalculateTripResponse struct {
	RouteData     RouteDataResponse  `json:"routeData"`
	LogbookEvents []DailyLogResponse `json:"logbookEvents"`
}
