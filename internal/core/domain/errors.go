package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
)

// InsufficientInventoryError is returned when a deduction cannot be satisfied
// from the available batches.
type InsufficientInventoryError struct {
	Requested int
	Available int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory: requested %d, available %d", e.Requested, e.Available)
}

// InvalidStateError signals an illegal order status transition.
type InvalidStateError struct {
	OrderID string
	Status  OrderStatus
}

func (e *InvalidStateError) Error() string {
	if e.Status == OrderStatusCancelled {
		return fmt.Sprintf("order %s is already cancelled", e.OrderID)
	}
	return fmt.Sprintf("cannot cancel order %s in status %s", e.OrderID, e.Status)
}

// InventoryUnavailableError wraps a network, timeout or unexpected remote
// error from the inventory service.
type InventoryUnavailableError struct {
	Err error
}

func (e *InventoryUnavailableError) Error() string {
	return fmt.Sprintf("inventory service unavailable: %v", e.Err)
}

func (e *InventoryUnavailableError) Unwrap() error { return e.Err }

// IsInventoryFailure reports whether err belongs to the inventory error
// taxonomy, as opposed to a storage or programming error.
func IsInventoryFailure(err error) bool {
	var insufficient *InsufficientInventoryError
	var unavailable *InventoryUnavailableError
	return errors.Is(err, ErrProductNotFound) ||
		errors.As(err, &insufficient) ||
		errors.As(err, &unavailable)
}
