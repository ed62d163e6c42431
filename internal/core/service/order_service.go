package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rl1809/order-inventory/internal/core/domain"
	"github.com/rl1809/order-inventory/internal/port"
)

// OrderService drives the order placement saga: insert PENDING, call the
// remote inventory deduction, mark CONFIRMED or FAILED. Exactly two
// persistence writes happen per placement attempt on every path.
type OrderService struct {
	store     port.OrderStore
	inventory port.InventoryClient
	events    port.OrderEventPublisher
	logger    *zap.Logger
}

func NewOrderService(store port.OrderStore, inventory port.InventoryClient, events port.OrderEventPublisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		store:     store,
		inventory: inventory,
		events:    events,
		logger:    logger,
	}
}

type PlaceOrderInput struct {
	ProductID     string
	Quantity      int
	CustomerName  string
	CustomerEmail string
}

func newOrderID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(raw[:8])
}

func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	now := time.Now()
	order := &domain.Order{
		OrderID:       newOrderID(),
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		Status:        domain.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// The PENDING insert must land before the remote call; if it fails there
	// is no order and no inventory side effect.
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.logger.Info("order created",
		zap.String("order_id", order.OrderID),
		zap.String("product_id", order.ProductID),
		zap.Int("quantity", order.Quantity))

	if _, err := s.inventory.UpdateInventory(ctx, in.ProductID, in.Quantity); err != nil {
		reason := err.Error()
		out := err
		if !domain.IsInventoryFailure(err) {
			reason = "unexpected error: " + err.Error()
			out = fmt.Errorf("failed to process order %s: %w", order.OrderID, err)
		}

		s.logger.Error("inventory update failed",
			zap.String("order_id", order.OrderID), zap.Error(err))

		// The FAILED write is kept as a durable audit trail of the attempt.
		if terr := s.transition(ctx, order, domain.OrderStatusFailed, reason); terr != nil {
			s.logger.Error("failed to record order failure",
				zap.String("order_id", order.OrderID), zap.Error(terr))
		}
		return nil, out
	}

	if err := s.transition(ctx, order, domain.OrderStatusConfirmed, ""); err != nil {
		return nil, fmt.Errorf("confirm order %s: %w", order.OrderID, err)
	}

	s.logger.Info("order confirmed", zap.String("order_id", order.OrderID))
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrOrderNotFound)
	}
	return order, nil
}

// CancelOrder moves a PENDING or FAILED order to CANCELLED. Confirmed and
// already-cancelled orders cannot be cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case domain.OrderStatusConfirmed, domain.OrderStatusCancelled:
		return nil, &domain.InvalidStateError{OrderID: orderID, Status: order.Status}
	}

	if err := s.transition(ctx, order, domain.OrderStatusCancelled, order.FailureReason); err != nil {
		return nil, fmt.Errorf("cancel order %s: %w", orderID, err)
	}

	s.logger.Info("order cancelled", zap.String("order_id", orderID))
	return order, nil
}

func (s *OrderService) transition(ctx context.Context, order *domain.Order, status domain.OrderStatus, reason string) error {
	order.Status = status
	order.FailureReason = reason
	order.UpdatedAt = time.Now()

	if err := s.store.UpdateOrder(ctx, order); err != nil {
		return err
	}

	s.publish(ctx, order)
	return nil
}

func (s *OrderService) publish(ctx context.Context, order *domain.Order) {
	event := domain.OrderEvent{
		OrderID:       order.OrderID,
		ProductID:     order.ProductID,
		Quantity:      order.Quantity,
		Status:        order.Status,
		FailureReason: order.FailureReason,
		OccurredAt:    time.Now(),
	}

	if err := s.events.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish order event",
			zap.String("order_id", order.OrderID), zap.Error(err))
	}
}
