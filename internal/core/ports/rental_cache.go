package ports

import "context"

// RentalCache holds the projected rental list for the read-heavy listing
// endpoint. A miss is not an error: Get returns ok=false and the caller
// falls through to the repository.
type RentalCache interface {
	Get(ctx context.Context) (views []RentalView, ok bool, err error)
	Set(ctx context.Context, views []RentalView) error
	Invalidate(ctx context.Context) error
}
