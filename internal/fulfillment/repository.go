package fulfillment

import (
	"context"

	"github.com/hardstock/inventory-service/internal/fulfillment/dto"
)

type Repository interface {
	// OrderProcessed reports the order's processed flag, or ErrOrderNotFound.
	OrderProcessed(ctx context.Context, orderID string) (bool, error)

	// CommitFulfillment applies every line item's stock decrement and, when
	// orderID is non-nil, marks the order processed — all in one transaction.
	// Either every effect lands or none do. A stock guard failure surfaces as
	// *InsufficientStockError or *NotFoundError with fresh availability.
	CommitFulfillment(ctx context.Context, orderID *string, items []dto.LineItemInput) ([]dto.ItemResult, error)
}
