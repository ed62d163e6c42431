package domain

import "time"

type Product struct {
	ProductID   string
	Name        string
	Description string
}

type Batch struct {
	ID                int64
	BatchNumber       string
	ProductID         string
	Quantity          int
	ExpiryDate        time.Time
	ManufacturingDate time.Time
}

// Expired reports whether the batch's expiry date lies strictly before the
// calendar day of now. A batch expiring today is not yet expired.
func (b *Batch) Expired(now time.Time) bool {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return b.ExpiryDate.Before(today)
}

// BatchDeduction is one ledger entry: how much was taken from which batch.
type BatchDeduction struct {
	BatchNumber      string
	QuantityDeducted int
}

// DeductionResult is the outcome of a single inventory deduction. Deductions
// are ordered by the sequence in which batches were visited.
type DeductionResult struct {
	ProductID     string
	TotalDeducted int
	Strategy      string
	Deductions    []BatchDeduction
}
