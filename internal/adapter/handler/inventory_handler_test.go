package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/order-inventory/internal/core/domain"
	"github.com/rl1809/order-inventory/internal/core/service"
	"github.com/rl1809/order-inventory/internal/core/strategy"
)

type fakeBatchStore struct {
	products map[string]*domain.Product
	batches  map[string][]*domain.Batch
}

func (f *fakeBatchStore) ProductExists(ctx context.Context, productID string) (bool, error) {
	_, ok := f.products[productID]
	return ok, nil
}

func (f *fakeBatchStore) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	return f.products[productID], nil
}

func (f *fakeBatchStore) ListBatches(ctx context.Context, productID string) ([]*domain.Batch, error) {
	return f.batches[productID], nil
}

func (f *fakeBatchStore) ListAvailableBatches(ctx context.Context, productID string) ([]*domain.Batch, error) {
	now := time.Now()
	var available []*domain.Batch
	for _, b := range f.batches[productID] {
		if b.Quantity > 0 && b.ExpiryDate.After(now) {
			available = append(available, b)
		}
	}
	return available, nil
}

func (f *fakeBatchStore) SaveBatches(ctx context.Context, batches []*domain.Batch) error {
	return nil
}

type fakeCache struct{}

func (fakeCache) GetAvailability(ctx context.Context, productID string) (int, bool, error) {
	return 0, false, nil
}
func (fakeCache) SetAvailability(ctx context.Context, productID string, quantity int) error {
	return nil
}
func (fakeCache) InvalidateAvailability(ctx context.Context, productID string) error {
	return nil
}

func newInventoryMux() *http.ServeMux {
	now := time.Now()
	store := &fakeBatchStore{
		products: map[string]*domain.Product{
			"PROD-001": {ProductID: "PROD-001", Name: "Paracetamol 500mg"},
		},
		batches: map[string][]*domain.Batch{
			"PROD-001": {
				{BatchNumber: "B1", ProductID: "PROD-001", Quantity: 50,
					ExpiryDate: now.AddDate(0, 6, 0), ManufacturingDate: now.AddDate(0, -1, 0)},
				{BatchNumber: "B2", ProductID: "PROD-001", Quantity: 30,
					ExpiryDate: now.AddDate(0, 12, 0), ManufacturingDate: now.AddDate(0, -1, 0)},
			},
		},
	}

	registry := strategy.NewDefaultRegistry(zap.NewNop())
	svc := service.NewInventoryService(store, fakeCache{}, registry, zap.NewNop())

	mux := http.NewServeMux()
	NewInventoryHandler(svc).Register(mux)
	return mux
}

func TestGetBatches_OK(t *testing.T) {
	mux := newInventoryMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inventory/PROD-001", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var out []batchResponse
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(out))
	}
	if out[0].BatchNumber != "B1" || out[0].ProductName != "Paracetamol 500mg" {
		t.Errorf("unexpected first batch: %+v", out[0])
	}
	if out[0].Expired {
		t.Error("batch expiring in 6 months should not be expired")
	}
}

func TestGetBatches_ProductNotFound(t *testing.T) {
	mux := newInventoryMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inventory/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateInventoryEndpoint_OK(t *testing.T) {
	mux := newInventoryMux()

	body, _ := json.Marshal(updateInventoryRequest{ProductID: "PROD-001", Quantity: 40})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/inventory/update", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out updateInventoryResponse
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.TotalQuantityDeducted != 40 {
		t.Errorf("expected total 40, got %d", out.TotalQuantityDeducted)
	}
	if len(out.BatchDeductions) != 1 || out.BatchDeductions[0].BatchNumber != "B1" {
		t.Errorf("unexpected ledger: %+v", out.BatchDeductions)
	}
	if !strings.Contains(out.Message, "FIFO") {
		t.Errorf("expected FIFO in message, got %q", out.Message)
	}
}

func TestUpdateInventoryEndpoint_LIFOQueryParam(t *testing.T) {
	mux := newInventoryMux()

	body, _ := json.Marshal(updateInventoryRequest{ProductID: "PROD-001", Quantity: 40})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/inventory/update?strategy=lifo", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var out updateInventoryResponse
	json.NewDecoder(rec.Body).Decode(&out)
	if len(out.BatchDeductions) != 2 || out.BatchDeductions[0].BatchNumber != "B2" {
		t.Errorf("expected LIFO ledger starting at B2, got %+v", out.BatchDeductions)
	}
}

func TestUpdateInventoryEndpoint_Insufficient(t *testing.T) {
	mux := newInventoryMux()

	body, _ := json.Marshal(updateInventoryRequest{ProductID: "PROD-001", Quantity: 500})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/inventory/update", bytes.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var out apiError
	json.NewDecoder(rec.Body).Decode(&out)
	if out.Requested != 500 || out.Available != 80 {
		t.Errorf("expected requested/available 500/80, got %d/%d", out.Requested, out.Available)
	}
}

func TestUpdateInventoryEndpoint_ProductNotFound(t *testing.T) {
	mux := newInventoryMux()

	body, _ := json.Marshal(updateInventoryRequest{ProductID: "missing", Quantity: 1})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/inventory/update", bytes.NewReader(body)))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateInventoryEndpoint_InvalidBody(t *testing.T) {
	mux := newInventoryMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/inventory/update", strings.NewReader("not json")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateInventoryEndpoint_NonPositiveQuantity(t *testing.T) {
	mux := newInventoryMux()

	body, _ := json.Marshal(updateInventoryRequest{ProductID: "PROD-001", Quantity: 0})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/inventory/update", bytes.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGetAvailabilityEndpoint(t *testing.T) {
	mux := newInventoryMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inventory/PROD-001/availability", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var out availabilityResponse
	json.NewDecoder(rec.Body).Decode(&out)
	if out.Available != 80 {
		t.Errorf("expected availability 80, got %d", out.Available)
	}
}

func TestInventoryHealthCheck(t *testing.T) {
	mux := newInventoryMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inventory/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "Inventory Service is running" {
		t.Errorf("unexpected health body: %q", got)
	}
}
