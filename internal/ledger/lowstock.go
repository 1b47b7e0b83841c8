package ledger

import "github.com/hardstock/inventory-service/internal/model"

// LowStockItems filters to products with 0 < current stock <= threshold.
// Zero-stock products are excluded: they are out of stock, not low.
func LowStockItems(products []model.Product, threshold int) []model.Product {
	var items []model.Product
	for _, p := range products {
		if p.CurrentStock > 0 && p.CurrentStock <= threshold {
			items = append(items, p)
		}
	}
	return items
}
