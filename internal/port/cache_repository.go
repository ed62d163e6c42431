package port

import "context"

type AvailabilityCache interface {
	// GetAvailability returns the cached total available quantity for a
	// product. The bool reports whether the value was present.
	GetAvailability(ctx context.Context, productID string) (int, bool, error)

	SetAvailability(ctx context.Context, productID string, quantity int) error

	// InvalidateAvailability drops the cached value after a deduction.
	InvalidateAvailability(ctx context.Context, productID string) error
}
