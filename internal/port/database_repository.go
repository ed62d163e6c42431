package port

import (
	"context"

	"github.com/rl1809/order-inventory/internal/core/domain"
)

type BatchStore interface {
	// ProductExists reports whether a product with the given ID is known.
	ProductExists(ctx context.Context, productID string) (bool, error)

	// GetProduct returns nil when no product with the given ID exists.
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)

	// ListBatches returns every batch for a product, earliest expiry first.
	ListBatches(ctx context.Context, productID string) ([]*domain.Batch, error)

	// ListAvailableBatches returns batches with quantity > 0 and an expiry
	// date strictly in the future, earliest expiry first.
	ListAvailableBatches(ctx context.Context, productID string) ([]*domain.Batch, error)

	// SaveBatches persists updated batch quantities as a single transactional
	// write.
	SaveBatches(ctx context.Context, batches []*domain.Batch) error
}

type OrderStore interface {
	CreateOrder(ctx context.Context, order *domain.Order) error

	// UpdateOrder persists the order's status, failure reason and updated-at.
	UpdateOrder(ctx context.Context, order *domain.Order) error

	// GetOrder returns nil when no order with the given ID exists.
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
}
