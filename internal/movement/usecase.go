package movement

import (
	"context"

	"github.com/hardstock/inventory-service/internal/model"
	"github.com/hardstock/inventory-service/internal/movement/dto"
)

type UseCase interface {
	// Record appends one immutable movement row. Store errors propagate to the
	// caller; whether they are fatal is the caller's policy.
	Record(ctx context.Context, input *dto.RecordMovementInput) error

	// ReservedQuantity sums the product's quantity across pending, unprocessed
	// orders — a point-in-time snapshot, recomputed per call.
	ReservedQuantity(ctx context.Context, productID string) (int, error)

	// History returns a product's movements, most recent first.
	History(ctx context.Context, productID string, limit int) ([]model.StockMovement, error)

	// Search queries the movement audit index; falls back to recent movements
	// from the store when the index is unavailable.
	Search(ctx context.Context, query string, limit int) ([]model.StockMovement, error)
}
