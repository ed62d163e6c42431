package port

import (
	"context"

	"github.com/rl1809/order-inventory/internal/core/domain"
)

type InventoryClient interface {
	// UpdateInventory asks the inventory service to deduct quantity units of
	// a product. Remote failures are mapped onto the domain error taxonomy:
	// ErrProductNotFound, InsufficientInventoryError or
	// InventoryUnavailableError.
	UpdateInventory(ctx context.Context, productID string, quantity int) (*domain.DeductionResult, error)
}
