// Package identity carries the caller's logbook owner through request contexts.
package identity

import (
	"context"
	"trip-logbook-service/internal/ports"
)

type ctxKey struct{}

func WithOwner(ctx context.Context, owner ports.Owner) context.Context {
	return context.WithValue(ctx, ctxKey{}, owner)
}

// Owner returns the owner set by the auth/session middleware, if any.
func Owner(ctx context.Context) (ports.Owner, bool) {
	o, ok := ctx.Value(ctxKey{}).(ports.Owner)
	return o, ok
}
