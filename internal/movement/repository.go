package movement

import (
	"context"

	"github.com/hardstock/inventory-service/internal/model"
)

type Repository interface {
	Insert(ctx context.Context, m *model.StockMovement) error
	ListByProduct(ctx context.Context, productID string, limit int) ([]model.StockMovement, error)
	ListRecent(ctx context.Context, limit int) ([]model.StockMovement, error)

	// ListPendingOrders returns orders with status pending and processed =
	// false, line items attached.
	ListPendingOrders(ctx context.Context) ([]model.Order, error)
}
