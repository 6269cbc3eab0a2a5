package ports

import (
	"context"
	"errors"
	"trip-logbook-service/internal/domain"
)

var ErrNoOwner = errors.New("logbook owner has neither user nor session")

// Identifies whose history a logbook belongs to: an authenticated user or,
// failing that, an anonymous browser session.
type Owner struct {
	UserID    string
	SessionID string
}

func (o Owner) Authenticated() bool { return o.UserID != "" }

// Key is the storage key for the owner, preferring the user identity.
func (o Owner) Key() (string, error) {
	switch {
	case o.UserID != "":
		return "user:" + o.UserID, nil
	case o.SessionID != "":
		return "session:" + o.SessionID, nil
	default:
		return "", ErrNoOwner
	}
}

// Port: historical logbooks per owner. Read returns an empty logbook when
// nothing has been stored yet.
type LogbookStore interface {
	Read(ctx context.Context, owner Owner) (domain.Logbook, error)
	Write(ctx context.Context, owner Owner, logbook domain.Logbook) error
}
