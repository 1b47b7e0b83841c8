package ledger

import (
	"context"

	"github.com/hardstock/inventory-service/internal/model"
)

// UseCase maintains a continuously refreshed in-memory view of product stock.
// The cached view is an optimization for validation and display; the
// non-negative-stock guarantee is enforced by the store's conditional writes,
// never by this cache.
type UseCase interface {
	// Start performs the initial load and begins watching for changes.
	Start(ctx context.Context) error

	// Subscribe registers fn for snapshot delivery. fn is invoked with the
	// current snapshot immediately and again after every reload. The returned
	// func cancels the subscription.
	Subscribe(fn func(products []model.Product)) (cancel func())

	Snapshot() []model.Product
	Get(productID string) (model.Product, bool)

	// LowStock applies the configured threshold to the current snapshot.
	LowStock() []model.Product
	Threshold() int
}
