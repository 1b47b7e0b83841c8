package fulfillment

import (
	"context"

	"github.com/hardstock/inventory-service/internal/fulfillment/dto"
)

// UseCase is the sole authority for converting submitted orders into stock
// decrements.
type UseCase interface {
	// FulfillOrder applies an order's line items with exactly-once semantics
	// per order id: a processed order is a successful no-op.
	FulfillOrder(ctx context.Context, orderID string, items []dto.LineItemInput) (*dto.FulfillmentResult, error)

	// FulfillAdHoc applies bare line items with no idempotency guard; the
	// caller accepts at-least-once risk.
	FulfillAdHoc(ctx context.Context, items []dto.LineItemInput) (*dto.FulfillmentResult, error)
}
