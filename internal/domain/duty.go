package domain

import "fmt"

// DutyStatus is one of the four logbook duty statuses.
// The zero value is deliberately invalid so an unset status never reaches the wire.
type DutyStatus uint8

const (
	OffDuty DutyStatus = iota + 1
	OnDuty
	Driving
	SleeperBerth
)

var dutyStatusTokens = map[DutyStatus]string{
	OffDuty:      "OFF_DUTY",
	OnDuty:       "ON_DUTY",
	Driving:      "DRIVING",
	SleeperBerth: "SLEEPER_BERTH",
}

// String returns the wire token, or DutyStatus(n) for an unknown value.
func (s DutyStatus) String() string {
	if tok, ok := dutyStatusTokens[s]; ok {
		return tok
	}
	return fmt.Sprintf("DutyStatus(%d)", uint8(s))
}

// Valid reports whether s is one of the four duty statuses.
func (s DutyStatus) Valid() bool {
	_, ok := dutyStatusTokens[s]
	return ok
}

// MarshalText encodes s as its wire token and fails for invalid values.
func (s DutyStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("marshal duty status: invalid value %d", uint8(s))
	}
	return []byte(dutyStatusTokens[s]), nil
}

// UnmarshalText accepts exactly the tokens ParseDutyStatus accepts.
func (s *DutyStatus) UnmarshalText(b []byte) error {
	parsed, err := ParseDutyStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseDutyStatus maps an uppercase wire token to its DutyStatus.
func ParseDutyStatus(token string) (DutyStatus, error) {
	for s, tok := range dutyStatusTokens {
		if tok == token {
			return s, nil
		}
	}
	return 0, fmt.Errorf("parse duty status: unknown token %q", token)
}

// A single timestamped entry in a driver's daily log.
type DutyEvent struct {
	Status        DutyStatus `json:"status"`
	DurationHours float64    `json:"duration_hours"`
	StartTime     string     `json:"start_time"`
	Notes         string     `json:"notes"`
}

// All duty events for one simulated day, in chronological order.
type DailyLog struct {
	Day    int         `json:"day"`
	Events []DutyEvent `json:"events"`
}

// TotalHours sums the durations of every event in the day.
func (d DailyLog) TotalHours() float64 {
	total := 0.0
	for _, e := range d.Events {
		total += e.DurationHours
	}
	return total
}

// HoursIn sums the durations of events with the given status.
func (d DailyLog) HoursIn(status DutyStatus) float64 {
	total := 0.0
	for _, e := range d.Events {
		if e.Status == status {
			total += e.DurationHours
		}
	}
	return total
}

// Ordered sequence of daily logs.
type Logbook []DailyLog

// LastDay returns the highest day number recorded, or 0 for an empty logbook.
func (l Logbook) LastDay() int {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1].Day
}

// DrivingHours sums every DRIVING event across all days.
func (l Logbook) DrivingHours() float64 {
	total := 0.0
	for _, d := range l {
		total += d.HoursIn(Driving)
	}
	return total
}

// Clone returns a deep copy so callers can renumber without aliasing.
func (l Logbook) Clone() Logbook {
	if l == nil {
		return nil
	}
	out := make(Logbook, len(l))
	for i, d := range l {
		events := make([]DutyEvent, len(d.Events))
		copy(events, d.Events)
		out[i] = DailyLog{Day: d.Day, Events: events}
	}
	return out
}
