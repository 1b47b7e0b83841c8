package model

import "time"

const (
	MovementTypeSale       = "sale"
	MovementTypeRestock    = "restock"
	MovementTypeAdjustment = "adjustment"
)

// StockMovement is an immutable audit row; one per stock-affecting event.
type StockMovement struct {
	ID             string    `db:"id" json:"id"`
	ProductID      string    `db:"product_id" json:"product_id"`
	OrderID        *string   `db:"order_id" json:"order_id"`
	QuantityChange int       `db:"quantity_change" json:"quantity_change"`
	MovementType   string    `db:"movement_type" json:"movement_type"`
	RemainingStock int       `db:"remaining_stock" json:"remaining_stock"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
