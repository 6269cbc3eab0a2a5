package domain

import (
	"errors"
	"fmt"
	"math"
)

// RuleSet bounds how much a driver may drive and stay on duty.
// Values are hours on a naive 24-hour wheel.
type RuleSet struct {
	MaxCycleHours         float64
	MaxDrivingHours       float64
	MaxDrivingBeforeBreak float64
	MinMandatoryBreak     float64
	DailyShiftLimit       float64
	DailyRestBreak        float64
	// Clock offset of the first reset on day one.
	TripStartHour float64
}

// Property70Hour8Day is the property-carrying 70-hour/8-day rule set.
func Property70Hour8Day() RuleSet {
	return RuleSet{
		MaxCycleHours:         70,
		MaxDrivingHours:       11,
		MaxDrivingBeforeBreak: 8,
		MinMandatoryBreak:     0.5,
		DailyShiftLimit:       14,
		DailyRestBreak:        10,
		TripStartHour:         7,
	}
}

// Validate rejects rule sets the simulator cannot lay out: non-finite or
// non-positive limits, a break threshold above the driving cap, a rest that
// fills the day, or a start hour off the 24-hour wheel.
func (r RuleSet) Validate() error {
	limits := []struct {
		name string
		v    float64
	}{
		{"max cycle hours", r.MaxCycleHours},
		{"max driving hours", r.MaxDrivingHours},
		{"max driving before break", r.MaxDrivingBeforeBreak},
		{"min mandatory break", r.MinMandatoryBreak},
		{"daily shift limit", r.DailyShiftLimit},
		{"daily rest break", r.DailyRestBreak},
	}
	for _, l := range limits {
		if math.IsNaN(l.v) || math.IsInf(l.v, 0) {
			return fmt.Errorf("validate rule set: %s must be finite, got %v", l.name, l.v)
		}
		if l.v <= 0 {
			return fmt.Errorf("validate rule set: %s must be positive, got %v", l.name, l.v)
		}
	}

	if r.MaxDrivingBeforeBreak > r.MaxDrivingHours {
		return errors.New("validate rule set: break threshold exceeds daily driving cap")
	}
	if r.DailyRestBreak >= 24 {
		return errors.New("validate rule set: daily rest break must fit in a day")
	}
	if math.IsNaN(r.TripStartHour) || r.TripStartHour < 0 || r.TripStartHour >= 24 {
		return fmt.Errorf("validate rule set: trip start hour %v outside [0, 24)", r.TripStartHour)
	}

	return nil
}
