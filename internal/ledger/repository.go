package ledger

import (
	"context"

	"github.com/hardstock/inventory-service/internal/model"
)

type Repository interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
}
