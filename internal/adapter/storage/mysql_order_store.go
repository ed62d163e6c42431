package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/order-inventory/internal/core/domain"
)

type MySQLOrderStore struct {
	db *sql.DB
}

func NewMySQLOrderStore(db *sql.DB) *MySQLOrderStore {
	return &MySQLOrderStore{db: db}
}

func (m *MySQLOrderStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO orders (order_id, product_id, quantity, customer_name, customer_email, status, failure_reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.OrderID, order.ProductID, order.Quantity, order.CustomerName,
		order.CustomerEmail, order.Status, nullable(order.FailureReason),
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (m *MySQLOrderStore) UpdateOrder(ctx context.Context, order *domain.Order) error {
	result, err := m.db.ExecContext(ctx, `
		UPDATE orders SET status = ?, failure_reason = ?, updated_at = ?
		WHERE order_id = ?`,
		order.Status, nullable(order.FailureReason), order.UpdatedAt, order.OrderID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("order %s: %w", order.OrderID, domain.ErrOrderNotFound)
	}
	return nil
}

func (m *MySQLOrderStore) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var o domain.Order
	var failureReason sql.NullString
	err := m.db.QueryRowContext(ctx, `
		SELECT order_id, product_id, quantity, customer_name, customer_email, status, failure_reason, created_at, updated_at
		FROM orders WHERE order_id = ?`, orderID,
	).Scan(&o.OrderID, &o.ProductID, &o.Quantity, &o.CustomerName,
		&o.CustomerEmail, &o.Status, &failureReason, &o.CreatedAt, &o.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	o.FailureReason = failureReason.String
	return &o, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
