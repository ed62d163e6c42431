package strategy

import (
	"github.com/rl1809/order-inventory/internal/core/domain"
)

// DeductionStrategy decides which batches an order quantity is taken from.
// Callers pass batches with quantity > 0, not expired, sorted ascending by
// expiry date. Deduct mutates batch quantities in place and returns one
// ledger entry per batch visited, in visit order.
type DeductionStrategy interface {
	Deduct(batches []*domain.Batch, quantity int) ([]domain.BatchDeduction, error)
	Name() string
}

// FIFO deducts from the earliest-expiring batch first. Default strategy.
type FIFO struct{}

func (FIFO) Name() string { return "FIFO" }

func (FIFO) Deduct(batches []*domain.Batch, quantity int) ([]domain.BatchDeduction, error) {
	return drain(batches, quantity)
}

// LIFO deducts from the latest-expiring batch first. It is FIFO over the
// reversed batch sequence.
type LIFO struct{}

func (LIFO) Name() string { return "LIFO" }

func (LIFO) Deduct(batches []*domain.Batch, quantity int) ([]domain.BatchDeduction, error) {
	reversed := make([]*domain.Batch, len(batches))
	for i, b := range batches {
		reversed[len(batches)-1-i] = b
	}
	return drain(reversed, quantity)
}

func drain(batches []*domain.Batch, quantity int) ([]domain.BatchDeduction, error) {
	remaining := quantity
	deductions := make([]domain.BatchDeduction, 0, len(batches))

	for _, b := range batches {
		if remaining <= 0 {
			break
		}

		take := min(remaining, b.Quantity)
		b.Quantity -= take
		remaining -= take

		deductions = append(deductions, domain.BatchDeduction{
			BatchNumber:      b.BatchNumber,
			QuantityDeducted: take,
		})
	}

	if remaining > 0 {
		return deductions, &domain.InsufficientInventoryError{
			Requested: quantity,
			Available: quantity - remaining,
		}
	}

	return deductions, nil
}
