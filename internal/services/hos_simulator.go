package services

import (
	"fmt"
	"math"
	"trip-logbook-service/internal/domain"
)

const (
	noteReset         = "Mandatory 10-Hour Reset Break"
	noteDriving1      = "Driving Segment 1"
	noteBreak         = "Mandatory 30-Minute Break"
	noteDriving2      = "Driving Segment 2 (Final for the day)"
	noteSleeperBerth  = "End of Shift / Remaining time in Sleeper Berth"
	initialDutyFormat = "Initial Duty: Inspection and Paperwork (%s)"
)

// SimulationResult is the logbook produced for one trip plus how much of the
// requested driving it managed to place.
type SimulationResult struct {
	Logbook domain.Logbook
	// False when a day's driving ceiling collapsed to zero before all
	// requested driving was scheduled. The logbook then simply stops.
	FullyScheduled          bool
	ScheduledDrivingHours   float64
	UnscheduledDrivingHours float64
}

// SimulateLogbook lays out a trip's driving across as many days as the rule set
// requires. Each day opens with the rest reset, applies the day-one duty, drives
// up to the pre-break cap, takes the break if more driving is due, drives the
// rest of the day's allowance and closes the day in the sleeper berth.
//
// Day numbers start at 1; continuing after stored history is the caller's job
// (see ContinueLogbook). The function is pure and safe for concurrent use.
func SimulateLogbook(rules domain.RuleSet, demand domain.TripDemand) SimulationResult {
	remaining := nonNegative(demand.TotalDrivingHours)
	cycleUsed := math.Min(nonNegative(demand.CycleHoursUsed), rules.MaxCycleHours)
	initialDuty := nonNegative(demand.InitialDutyHours)

	logbook := domain.Logbook{}
	scheduled := 0.0
	clock := rules.TripStartHour

	for day := 1; remaining > 0; day++ {
		var s shift
		s.clock = clock

		s.emit(domain.OffDuty, rules.DailyRestBreak, noteReset)

		dutyToday := 0.0
		if day == 1 {
			dutyToday = initialDuty
		}

		// Driving cap, shift window and cycle balance each bound the day; the tightest wins.
		maxDrivingToday := math.Min(
			rules.MaxDrivingHours,
			math.Min(rules.DailyShiftLimit-dutyToday, rules.MaxCycleHours-cycleUsed),
		)
		drivingToday := math.Min(maxDrivingToday, remaining)
		// Written as !(x > 0) so a NaN limit ends the trip instead of looping.
		if !(drivingToday > 0) {
			break
		}

		if dutyToday > 0 {
			s.emit(domain.OnDuty, dutyToday, fmt.Sprintf(initialDutyFormat, demand.PickupLabel))
		}

		driven := 0.0
		segment1 := math.Min(drivingToday, rules.MaxDrivingBeforeBreak)
		if segment1 > 0 {
			s.emit(domain.Driving, segment1, noteDriving1)
			driven += segment1
			remaining -= segment1
			cycleUsed += segment1 + dutyToday
		}

		if driven >= rules.MaxDrivingBeforeBreak && remaining > 0 {
			s.emit(domain.OffDuty, rules.MinMandatoryBreak, noteBreak)
		}

		segment2 := math.Min(drivingToday-driven, remaining)
		if segment2 > 0 {
			s.emit(domain.Driving, segment2, noteDriving2)
			driven += segment2
			remaining -= segment2
			cycleUsed += segment2
		}

		if s.clock < 24 {
			s.emit(domain.SleeperBerth, 24-s.clock, noteSleeperBerth)
		}

		scheduled += driven
		logbook = append(logbook, domain.DailyLog{Day: day, Events: s.events})
		clock = 0
	}

	return SimulationResult{
		Logbook:                 logbook,
		FullyScheduled:          remaining <= 0,
		ScheduledDrivingHours:   scheduled,
		UnscheduledDrivingHours: math.Max(remaining, 0),
	}
}

// shift accumulates one day's events against a running clock offset.
type shift struct {
	clock  float64
	events []domain.DutyEvent
}

func (s *shift) emit(status domain.DutyStatus, hours float64, note string) {
	s.events = append(s.events, domain.DutyEvent{
		Status:        status,
		DurationHours: hours,
		StartTime:     FormatClock(s.clock),
		Notes:         note,
	})
	s.clock += hours
}

// nonNegative maps NaN and negative inputs to zero.
func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
