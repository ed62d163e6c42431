package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/rl1809/order-inventory/internal/core/domain"
	"github.com/rl1809/order-inventory/internal/core/strategy"
	"github.com/rl1809/order-inventory/internal/port"
)

// InventoryService coordinates batch deduction for one product:
// fetch available batches, pick a strategy, deduct, persist.
type InventoryService struct {
	store    port.BatchStore
	cache    port.AvailabilityCache
	registry *strategy.Registry
	logger   *zap.Logger
	group    singleflight.Group
}

func NewInventoryService(store port.BatchStore, cache port.AvailabilityCache, registry *strategy.Registry, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		store:    store,
		cache:    cache,
		registry: registry,
		logger:   logger,
	}
}

// GetBatches returns the product and all of its batches, earliest expiry
// first.
func (s *InventoryService) GetBatches(ctx context.Context, productID string) (*domain.Product, []*domain.Batch, error) {
	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, nil, fmt.Errorf("product %s: %w", productID, domain.ErrProductNotFound)
	}

	batches, err := s.store.ListBatches(ctx, productID)
	if err != nil {
		return nil, nil, fmt.Errorf("list batches: %w", err)
	}

	return product, batches, nil
}

// UpdateInventory deducts quantity units of a product using the named
// strategy. Mutated batches are persisted only when the whole deduction
// succeeds; a failed attempt leaves the store untouched.
func (s *InventoryService) UpdateInventory(ctx context.Context, productID string, quantity int, strategyName string) (*domain.DeductionResult, error) {
	s.logger.Info("updating inventory",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.String("strategy", strategyName))

	exists, err := s.store.ProductExists(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("product %s: %w", productID, domain.ErrProductNotFound)
	}

	batches, err := s.store.ListAvailableBatches(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list available batches: %w", err)
	}
	if len(batches) == 0 {
		return nil, fmt.Errorf("no available batches for product %s: %w", productID, domain.ErrProductNotFound)
	}

	st := s.registry.Resolve(strategyName)

	deductions, err := st.Deduct(batches, quantity)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveBatches(ctx, batches); err != nil {
		return nil, fmt.Errorf("save batches: %w", err)
	}

	if err := s.cache.InvalidateAvailability(ctx, productID); err != nil {
		s.logger.Warn("failed to invalidate availability cache",
			zap.String("product_id", productID), zap.Error(err))
	}

	s.logger.Info("inventory updated",
		zap.String("product_id", productID),
		zap.Int("total_deducted", quantity),
		zap.Int("batches_touched", len(deductions)))

	return &domain.DeductionResult{
		ProductID:     productID,
		TotalDeducted: quantity,
		Strategy:      st.Name(),
		Deductions:    deductions,
	}, nil
}

// GetAvailability returns the total quantity deductible right now for a
// product, cache-aside through the availability cache. Concurrent misses for
// the same product are collapsed into one store read.
func (s *InventoryService) GetAvailability(ctx context.Context, productID string) (int, error) {
	cached, ok, err := s.cache.GetAvailability(ctx, productID)
	if err != nil {
		s.logger.Warn("availability cache read failed",
			zap.String("product_id", productID), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	v, err, _ := s.group.Do(productID, func() (any, error) {
		exists, err := s.store.ProductExists(ctx, productID)
		if err != nil {
			return 0, fmt.Errorf("check product: %w", err)
		}
		if !exists {
			return 0, fmt.Errorf("product %s: %w", productID, domain.ErrProductNotFound)
		}

		batches, err := s.store.ListAvailableBatches(ctx, productID)
		if err != nil {
			return 0, fmt.Errorf("list available batches: %w", err)
		}

		total := 0
		for _, b := range batches {
			total += b.Quantity
		}

		if err := s.cache.SetAvailability(ctx, productID, total); err != nil {
			s.logger.Warn("failed to cache availability",
				zap.String("product_id", productID), zap.Error(err))
		}

		return total, nil
	})
	if err != nil {
		return 0, err
	}

	return v.(int), nil
}
