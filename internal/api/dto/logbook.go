package dto

import "trip-logbook-service/internal/domain"

type DutyEventResponse struct {
	Status        string  `json:"status"`
	DurationHours float64 `json:"duration_hours"`
	StartTime     string  `json:"start_time"`
	Notes         string  `json:"notes"`
}

type DailyLogResponse struct {
	Day    int                 `json:"day"`
	Events []DutyEventResponse `json:"events"`
}

type LogbookResponse struct {
	LogbookEvents []DailyLogResponse `json:"logbookEvents"`
}

func FromLogbook(l domain.Logbook) []DailyLogResponse {
	out := make([]DailyLogResponse, 0, len(l))
	for _, d := range l {
		events := make([]DutyEventResponse, 0, len(d.Events))
		for _, e := range d.Events {
			events = append(events, DutyEventResponse{
				Status:        e.Status.String(),
				DurationHours: e.DurationHours,
				StartTime:     e.StartTime,
				Notes:         e.Notes,
			})
		}
		out = append(out, DailyLogResponse{Day: d.Day, Events: events})
	}
	return out
}
