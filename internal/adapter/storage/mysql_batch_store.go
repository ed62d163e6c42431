package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/order-inventory/internal/core/domain"
)

type MySQLBatchStore struct {
	db *sql.DB
}

func NewMySQLBatchStore(db *sql.DB) *MySQLBatchStore {
	return &MySQLBatchStore{db: db}
}

func (m *MySQLBatchStore) ProductExists(ctx context.Context, productID string) (bool, error) {
	var one int
	err := m.db.QueryRowContext(ctx,
		`SELECT 1 FROM products WHERE product_id = ?`, productID,
	).Scan(&one)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query product: %w", err)
	}
	return true, nil
}

func (m *MySQLBatchStore) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var p domain.Product
	var description sql.NullString
	err := m.db.QueryRowContext(ctx, `
		SELECT product_id, name, description
		FROM products WHERE product_id = ?`, productID,
	).Scan(&p.ProductID, &p.Name, &description)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}

	p.Description = description.String
	return &p, nil
}

func (m *MySQLBatchStore) ListBatches(ctx context.Context, productID string) ([]*domain.Batch, error) {
	return m.queryBatches(ctx, `
		SELECT id, batch_number, product_id, quantity, expiry_date, manufacturing_date
		FROM inventory_batches
		WHERE product_id = ?
		ORDER BY expiry_date`, productID)
}

func (m *MySQLBatchStore) ListAvailableBatches(ctx context.Context, productID string) ([]*domain.Batch, error) {
	return m.queryBatches(ctx, `
		SELECT id, batch_number, product_id, quantity, expiry_date, manufacturing_date
		FROM inventory_batches
		WHERE product_id = ? AND quantity > 0 AND expiry_date > CURDATE()
		ORDER BY expiry_date`, productID)
}

func (m *MySQLBatchStore) queryBatches(ctx context.Context, query string, productID string) ([]*domain.Batch, error) {
	rows, err := m.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var batches []*domain.Batch
	for rows.Next() {
		var b domain.Batch
		if err := rows.Scan(&b.ID, &b.BatchNumber, &b.ProductID, &b.Quantity,
			&b.ExpiryDate, &b.ManufacturingDate); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return batches, nil
}

// SaveBatches writes the updated quantities of all batches touched by a
// deduction inside one transaction.
func (m *MySQLBatchStore) SaveBatches(ctx context.Context, batches []*domain.Batch) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, b := range batches {
		if _, err := tx.ExecContext(ctx, `
			UPDATE inventory_batches SET quantity = ? WHERE batch_number = ?`,
			b.Quantity, b.BatchNumber,
		); err != nil {
			return fmt.Errorf("update batch %s: %w", b.BatchNumber, err)
		}
	}

	return tx.Commit()
}
