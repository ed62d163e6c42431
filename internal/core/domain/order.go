package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusFailed    OrderStatus = "FAILED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	OrderID       string
	ProductID     string
	Quantity      int
	CustomerName  string
	CustomerEmail string
	Status        OrderStatus
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderEvent is emitted after an order reaches a terminal status.
type OrderEvent struct {
	OrderID       string      `json:"orderId"`
	ProductID     string      `json:"productId"`
	Quantity      int         `json:"quantity"`
	Status        OrderStatus `json:"status"`
	FailureReason string      `json:"failureReason,omitempty"`
	OccurredAt    time.Time   `json:"occurredAt"`
}
