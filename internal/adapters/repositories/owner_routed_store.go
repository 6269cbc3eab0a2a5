package repositories

import (
	"context"
	"trip-logbook-service/internal/domain"
	"trip-logbook-service/internal/ports"
)

// OwnerRoutedStore sends authenticated owners to the durable user store and
// anonymous sessions to the (usually expiring) session store.
type OwnerRoutedStore struct {
	Users    ports.LogbookStore
	Sessions ports.LogbookStore
}

func (s *OwnerRoutedStore) pick(owner ports.Owner) ports.LogbookStore {
	if owner.Authenticated() || s.Sessions == nil {
		return s.Users
	}
	return s.Sessions
}

func (s *OwnerRoutedStore) Read(ctx context.Context, owner ports.Owner) (domain.Logbook, error) {
	return s.pick(owner).Read(ctx, owner)
}

func (s *OwnerRoutedStore) Write(ctx context.Context, owner ports.Owner, logbook domain.Logbook) error {
	return s.pick(owner).Write(ctx, owner, logbook)
}
