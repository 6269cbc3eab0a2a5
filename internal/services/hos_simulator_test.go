package services

import (
	"math"
	"reflect"
	"testing"
	"time"
	"trip-logbook-service/internal/domain"
)

const tolerance = 1e-6

type wantEvent struct {
	status domain.DutyStatus
	hours  float64
	start  string
}

func assertEvents(t *testing.T, day domain.DailyLog, want []wantEvent) {
	t.Helper()

	if len(day.Events) != len(want) {
		t.Fatalf("day %d: got %d events, want %d: %+v", day.Day, len(day.Events), len(want), day.Events)
	}
	for i, w := range want {
		got := day.Events[i]
		if got.Status != w.status {
			t.Errorf("day %d event %d status = %s, want %s", day.Day, i, got.Status, w.status)
		}
		if math.Abs(got.DurationHours-w.hours) > tolerance {
			t.Errorf("day %d event %d duration = %v, want %v", day.Day, i, got.DurationHours, w.hours)
		}
		if got.StartTime != w.start {
			t.Errorf("day %d event %d start = %q, want %q", day.Day, i, got.StartTime, w.start)
		}
	}
}

func TestSimulateLogbookTwoDayTrip(t *testing.T) {
	res := SimulateLogbook(domain.Property70Hour8Day(), domain.TripDemand{
		TotalDrivingHours: 20,
		CycleHoursUsed:    0,
		InitialDutyHours:  2,
		PickupLabel:       "Depot A",
	})

	if len(res.Logbook) != 2 {
		t.Fatalf("days = %d, want 2", len(res.Logbook))
	}
	if !res.FullyScheduled {
		t.Fatalf("expected trip to be fully scheduled")
	}

	assertEvents(t, res.Logbook[0], []wantEvent{
		{domain.OffDuty, 10, "07:00"},
		{domain.OnDuty, 2, "17:00"},
		{domain.Driving, 8, "19:00"},
		{domain.OffDuty, 0.5, "03:00"},
		{domain.Driving, 3, "03:30"},
	})
	assertEvents(t, res.Logbook[1], []wantEvent{
		{domain.OffDuty, 10, "00:00"},
		{domain.Driving, 8, "10:00"},
		{domain.OffDuty, 0.5, "18:00"},
		{domain.Driving, 1, "18:30"},
		{domain.SleeperBerth, 4.5, "19:30"},
	})

	if got := res.Logbook[0].Events[1].Notes; got != "Initial Duty: Inspection and Paperwork (Depot A)" {
		t.Errorf("duty note = %q", got)
	}
	if res.Logbook[0].Day != 1 || res.Logbook[1].Day != 2 {
		t.Errorf("day numbers = %d,%d, want 1,2", res.Logbook[0].Day, res.Logbook[1].Day)
	}
}

func TestSimulateLogbookShortTripFillsSleeperBerth(t *testing.T) {
	res := SimulateLogbook(domain.Property70Hour8Day(), domain.TripDemand{
		TotalDrivingHours: 4,
		PickupLabel:       "X",
	})

	if len(res.Logbook) != 1 {
		t.Fatalf("days = %d, want 1", len(res.Logbook))
	}
	assertEvents(t, res.Logbook[0], []wantEvent{
		{domain.OffDuty, 10, "07:00"},
		{domain.Driving, 4, "17:00"},
		{domain.SleeperBerth, 3, "21:00"},
	})
}

func TestSimulateLogbookExactlyEightHoursSkipsBreak(t *testing.T) {
	res := SimulateLogbook(domain.Property70Hour8Day(), domain.TripDemand{TotalDrivingHours: 8})

	if len(res.Logbook) != 1 {
		t.Fatalf("days = %d, want 1", len(res.Logbook))
	}
	for _, e := range res.Logbook[0].Events[1:] {
		if e.Status == domain.OffDuty {
			t.Fatalf("unexpected break in %+v", res.Logbook[0].Events)
		}
	}
}

func TestSimulateLogbookTruncatesAtCycleLimit(t *testing.T) {
	res := SimulateLogbook(domain.Property70Hour8Day(), domain.TripDemand{
		TotalDrivingHours: 200,
		CycleHoursUsed:    65,
		PickupLabel:       "X",
	})

	if res.FullyScheduled {
		t.Fatalf("expected truncated schedule")
	}
	if len(res.Logbook) != 1 {
		t.Fatalf("days = %d, want 1", len(res.Logbook))
	}

	driven := res.Logbook.DrivingHours()
	if math.Abs(driven-5) > tolerance {
		t.Errorf("driving = %v, want 5", driven)
	}
	if math.Abs(res.ScheduledDrivingHours-5) > tolerance {
		t.Errorf("scheduled = %v, want 5", res.ScheduledDrivingHours)
	}
	if math.Abs(res.UnscheduledDrivingHours-195) > tolerance {
		t.Errorf("unscheduled = %v, want 195", res.UnscheduledDrivingHours)
	}
}

func TestSimulateLogbookClampsCycleHours(t *testing.T) {
	rules := domain.Property70Hour8Day()

	over := SimulateLogbook(rules, domain.TripDemand{TotalDrivingHours: 30, CycleHoursUsed: 100, InitialDutyHours: 1, PickupLabel: "Z"})
	atCap := SimulateLogbook(rules, domain.TripDemand{TotalDrivingHours: 30, CycleHoursUsed: 70, InitialDutyHours: 1, PickupLabel: "Z"})

	if !reflect.DeepEqual(over, atCap) {
		t.Fatalf("clamped result differs:\n%+v\n%+v", over, atCap)
	}
	if len(over.Logbook) != 0 {
		t.Errorf("days = %d, want 0 with exhausted cycle", len(over.Logbook))
	}
}

func TestSimulateLogbookDutyExhaustsShift(t *testing.T) {
	res := SimulateLogbook(domain.Property70Hour8Day(), domain.TripDemand{
		TotalDrivingHours: 5,
		InitialDutyHours:  14,
	})

	if len(res.Logbook) != 0 || res.FullyScheduled {
		t.Fatalf("expected nothing scheduled, got %+v", res)
	}
}

func TestSimulateLogbookZeroDriving(t *testing.T) {
	for _, total := range []float64{0, -3, math.NaN()} {
		res := SimulateLogbook(domain.Property70Hour8Day(), domain.TripDemand{TotalDrivingHours: total, InitialDutyHours: 2})
		if len(res.Logbook) != 0 {
			t.Errorf("total=%v: days = %d, want 0", total, len(res.Logbook))
		}
		if !res.FullyScheduled {
			t.Errorf("total=%v: nothing requested should count as fully scheduled", total)
		}
	}
}

func TestSimulateLogbookUsesCustomRuleSet(t *testing.T) {
	rules := domain.Property70Hour8Day()
	rules.MaxDrivingHours = 10
	rules.MaxDrivingBeforeBreak = 5

	res := SimulateLogbook(rules, domain.TripDemand{TotalDrivingHours: 10})

	if len(res.Logbook) != 1 {
		t.Fatalf("days = %d, want 1", len(res.Logbook))
	}
	assertEvents(t, res.Logbook[0], []wantEvent{
		{domain.OffDuty, 10, "07:00"},
		{domain.Driving, 5, "17:00"},
		{domain.OffDuty, 0.5, "22:00"},
		{domain.Driving, 5, "22:30"},
	})
}

func TestSimulateLogbookProperties(t *testing.T) {
	rules := domain.Property70Hour8Day()

	var demands []domain.TripDemand
	for _, total := range []float64{0.25, 3, 8, 8.5, 11, 19.75, 20, 33.3, 61, 75, 200} {
		for _, cycle := range []float64{0, 12.5, 40, 64, 69.5} {
			for _, duty := range []float64{0, 0.5, 2.5, 6} {
				demands = append(demands, domain.TripDemand{
					TotalDrivingHours: total,
					CycleHoursUsed:    cycle,
					InitialDutyHours:  duty,
					PickupLabel:       "Yard",
				})
			}
		}
	}

	for _, d := range demands {
		res := SimulateLogbook(rules, d)

		if again := SimulateLogbook(rules, d); !reflect.DeepEqual(res, again) {
			t.Fatalf("%+v: non-deterministic output", d)
		}

		for i, day := range res.Logbook {
			if day.Day != i+1 {
				t.Errorf("%+v: day %d numbered %d", d, i+1, day.Day)
			}

			first := day.Events[0]
			if first.Status != domain.OffDuty || first.DurationHours != rules.DailyRestBreak {
				t.Errorf("%+v: day %d opens with %+v", d, day.Day, first)
			}

			lastDriving := -1
			for j, e := range day.Events {
				if e.DurationHours <= 0 {
					t.Errorf("%+v: day %d event %d has non-positive duration", d, day.Day, j)
				}
				if e.Status != domain.Driving {
					continue
				}
				if e.DurationHours > rules.MaxDrivingBeforeBreak+tolerance {
					t.Errorf("%+v: day %d driving %v exceeds pre-break cap", d, day.Day, e.DurationHours)
				}
				if lastDriving >= 0 {
					between := day.Events[lastDriving+1 : j]
					if len(between) != 1 || between[0].Status != domain.OffDuty || between[0].DurationHours != rules.MinMandatoryBreak {
						t.Errorf("%+v: day %d missing break between driving events", d, day.Day)
					}
				}
				lastDriving = j
			}

			// Day one is anchored at the trip start hour; later days start at midnight.
			if day.Day > 1 && math.Abs(day.TotalHours()-24) > tolerance {
				t.Errorf("%+v: day %d totals %v hours, want 24", d, day.Day, day.TotalHours())
			}
			if day.Day == 1 && rules.TripStartHour+day.TotalHours() < 24-tolerance {
				t.Errorf("%+v: day 1 ends before midnight", d)
			}
		}

		driven := res.Logbook.DrivingHours()
		if driven > d.TotalDrivingHours+tolerance {
			t.Errorf("%+v: drove %v, more than requested", d, driven)
		}
		if d.CycleHoursUsed+driven > rules.MaxCycleHours+tolerance {
			t.Errorf("%+v: driving pushes cycle to %v", d, d.CycleHoursUsed+driven)
		}
		if res.FullyScheduled && math.Abs(driven-d.TotalDrivingHours) > tolerance {
			t.Errorf("%+v: fully scheduled but drove %v", d, driven)
		}
		if !res.FullyScheduled && driven >= d.TotalDrivingHours {
			t.Errorf("%+v: truncated but drove everything", d)
		}
	}
}

func TestSimulateLogbookStopsOnNonFiniteRules(t *testing.T) {
	cases := map[string]func(*domain.RuleSet){
		"nan cycle":   func(r *domain.RuleSet) { r.MaxCycleHours = math.NaN() },
		"nan driving": func(r *domain.RuleSet) { r.MaxDrivingHours = math.NaN() },
		"nan shift":   func(r *domain.RuleSet) { r.DailyShiftLimit = math.NaN() },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			rules := domain.Property70Hour8Day()
			mutate(&rules)

			done := make(chan SimulationResult, 1)
			go func() { done <- SimulateLogbook(rules, domain.TripDemand{TotalDrivingHours: 5}) }()

			select {
			case res := <-done:
				if res.FullyScheduled || len(res.Logbook) != 0 {
					t.Errorf("expected nothing scheduled, got %d days", len(res.Logbook))
				}
			case <-time.After(2 * time.Second):
				t.Fatal("simulation did not finish")
			}
		})
	}
}
