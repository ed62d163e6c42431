package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

func getInventoryDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/inventory?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	return db
}

func seedTestProduct(t *testing.T, db *sql.DB, productID string) {
	t.Helper()
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `
		INSERT INTO products (product_id, name, description) VALUES (?, 'Test Product', 'test')
		ON DUPLICATE KEY UPDATE name = 'Test Product'`, productID)
	if err != nil {
		t.Fatalf("setup product failed: %v", err)
	}
}

func seedTestBatch(t *testing.T, db *sql.DB, batchNumber, productID string, quantity, expiryDays int) {
	t.Helper()
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `
		INSERT INTO inventory_batches (batch_number, product_id, quantity, expiry_date, manufacturing_date)
		VALUES (?, ?, ?, DATE_ADD(CURDATE(), INTERVAL ? DAY), DATE_SUB(CURDATE(), INTERVAL 30 DAY))
		ON DUPLICATE KEY UPDATE quantity = VALUES(quantity), expiry_date = VALUES(expiry_date)`,
		batchNumber, productID, quantity, expiryDays)
	if err != nil {
		t.Fatalf("setup batch failed: %v", err)
	}
}

func TestProductExists(t *testing.T) {
	db := getInventoryDB(t)
	defer db.Close()

	ctx := context.Background()
	store := NewMySQLBatchStore(db)

	seedTestProduct(t, db, "test-exists-product")

	exists, err := store.ProductExists(ctx, "test-exists-product")
	if err != nil {
		t.Fatalf("ProductExists failed: %v", err)
	}
	if !exists {
		t.Error("expected product to exist")
	}

	exists, err = store.ProductExists(ctx, "nonexistent-product")
	if err != nil {
		t.Fatalf("ProductExists failed: %v", err)
	}
	if exists {
		t.Error("expected product not to exist")
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	db := getInventoryDB(t)
	defer db.Close()

	store := NewMySQLBatchStore(db)

	product, err := store.GetProduct(context.Background(), "nonexistent-product")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product != nil {
		t.Error("expected nil for nonexistent product")
	}
}

func TestListAvailableBatches_FiltersAndOrders(t *testing.T) {
	db := getInventoryDB(t)
	defer db.Close()

	ctx := context.Background()
	store := NewMySQLBatchStore(db)

	seedTestProduct(t, db, "test-avail-product")
	db.ExecContext(ctx, `DELETE FROM inventory_batches WHERE product_id = 'test-avail-product'`)

	seedTestBatch(t, db, "avail-late", "test-avail-product", 30, 365)
	seedTestBatch(t, db, "avail-early", "test-avail-product", 50, 180)
	seedTestBatch(t, db, "avail-empty", "test-avail-product", 0, 180)
	seedTestBatch(t, db, "avail-expired", "test-avail-product", 10, -5)
	seedTestBatch(t, db, "avail-today", "test-avail-product", 10, 0)

	batches, err := store.ListAvailableBatches(ctx, "test-avail-product")
	if err != nil {
		t.Fatalf("ListAvailableBatches failed: %v", err)
	}

	if len(batches) != 2 {
		t.Fatalf("expected 2 available batches, got %d", len(batches))
	}
	if batches[0].BatchNumber != "avail-early" {
		t.Errorf("expected earliest expiry first, got %s", batches[0].BatchNumber)
	}
	if batches[1].BatchNumber != "avail-late" {
		t.Errorf("expected latest expiry last, got %s", batches[1].BatchNumber)
	}

	// Cleanup
	db.ExecContext(ctx, `DELETE FROM inventory_batches WHERE product_id = 'test-avail-product'`)
}

func TestSaveBatches(t *testing.T) {
	db := getInventoryDB(t)
	defer db.Close()

	ctx := context.Background()
	store := NewMySQLBatchStore(db)

	seedTestProduct(t, db, "test-save-product")
	db.ExecContext(ctx, `DELETE FROM inventory_batches WHERE product_id = 'test-save-product'`)
	seedTestBatch(t, db, "save-b1", "test-save-product", 50, 180)
	seedTestBatch(t, db, "save-b2", "test-save-product", 30, 365)

	batches, err := store.ListAvailableBatches(ctx, "test-save-product")
	if err != nil {
		t.Fatalf("ListAvailableBatches failed: %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(batches))
	}

	batches[0].Quantity = 10
	batches[1].Quantity = 0

	if err := store.SaveBatches(ctx, batches); err != nil {
		t.Fatalf("SaveBatches failed: %v", err)
	}

	var q1, q2 int
	db.QueryRowContext(ctx, `SELECT quantity FROM inventory_batches WHERE batch_number = 'save-b1'`).Scan(&q1)
	db.QueryRowContext(ctx, `SELECT quantity FROM inventory_batches WHERE batch_number = 'save-b2'`).Scan(&q2)
	if q1 != 10 || q2 != 0 {
		t.Errorf("expected quantities 10/0, got %d/%d", q1, q2)
	}

	// Cleanup
	db.ExecContext(ctx, `DELETE FROM inventory_batches WHERE product_id = 'test-save-product'`)
}
