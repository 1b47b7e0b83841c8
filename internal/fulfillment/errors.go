package fulfillment

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound is returned when the idempotency read finds no order row.
	ErrOrderNotFound = errors.New("order not found")

	// ErrAlreadyProcessed is reported by the commit when another writer flipped
	// the processed flag between our idempotency read and the commit. Callers
	// treat it as a successful no-op.
	ErrAlreadyProcessed = errors.New("order already processed")

	ErrEmptyOrder = errors.New("order has no line items")
)

// InsufficientStockError names the first product that cannot be covered.
// No stock was mutated.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	name := e.Name
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", name, e.Requested, e.Available)
}

// NotFoundError marks a line item whose product is absent from the ledger.
type NotFoundError struct {
	ProductID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// CommitError wraps a rejected atomic write. No partial state was left behind;
// the whole fulfillment may be retried.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return "fulfillment commit rejected: " + e.Err.Error()
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
