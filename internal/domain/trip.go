package domain

// What a single trip asks of the driver.
// CycleHoursUsed is clamped to the rule set's cycle cap before use.
type TripDemand struct {
	TotalDrivingHours float64
	CycleHoursUsed    float64
	InitialDutyHours  float64
	PickupLabel       string
}

type StopType string

const (
	StopRest StopType = "REST"
	StopFuel StopType = "FUEL"
)

// A planned intermediate stop shown on the trip map.
type Stop struct {
	Lat           float64
	Lon           float64
	Type          StopType
	Description   string
	DurationHours float64
}
