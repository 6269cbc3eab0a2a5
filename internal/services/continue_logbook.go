package services

import "trip-logbook-service/internal/domain"

// ContinueLogbook appends fresh simulator output to stored history, shifting the
// fresh day numbers so they continue after the last historical day.
// Neither input is modified.
func ContinueLogbook(history, fresh domain.Logbook) domain.Logbook {
	offset := history.LastDay()

	combined := make(domain.Logbook, 0, len(history)+len(fresh))
	combined = append(combined, history.Clone()...)
	for _, d := range fresh.Clone() {
		d.Day += offset
		combined = append(combined, d)
	}

	return combined
}
