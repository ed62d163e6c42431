package port

import (
	"context"

	"github.com/rl1809/order-inventory/internal/core/domain"
)

type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}
