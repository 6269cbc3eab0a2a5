package repositories

import (
	"context"
	"fmt"
	"os"
	"trip-logbook-service/internal/domain"
	"trip-logbook-service/internal/ports"
)

// SeedFromJSON loads an exported logbook file into the store for one owner,
// replacing whatever history the owner had.
func SeedFromJSON(ctx context.Context, store ports.LogbookStore, owner ports.Owner, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed logbook: read %q: %w", jsonPath, err)
	}

	logbook, err := domain.DecodeLogbook(bytes)
	if err != nil {
		return 0, fmt.Errorf("seed logbook: parse json: %w", err)
	}

	for i, d := range logbook {
		if d.Day < 1 {
			return 0, fmt.Errorf("seed logbook: invalid day at index %d: %d", i, d.Day)
		}
		if i > 0 && d.Day <= logbook[i-1].Day {
			return 0, fmt.Errorf("seed logbook: day %d at index %d is not increasing", d.Day, i)
		}
		for j, e := range d.Events {
			if !e.Status.Valid() {
				return 0, fmt.Errorf("seed logbook: day %d event %d has no status", d.Day, j)
			}
		}
	}

	if err := store.Write(ctx, owner, logbook); err != nil {
		return 0, fmt.Errorf("seed logbook: %w", err)
	}

	return len(logbook), nil
}
