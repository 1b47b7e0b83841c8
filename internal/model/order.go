package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const OrderStatusPending = "pending"

type Order struct {
	ID          string          `db:"id" json:"id"`
	Status      string          `db:"status" json:"status"`
	Processed   bool            `db:"processed" json:"processed"`
	Total       decimal.Decimal `db:"total" json:"total"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	ProcessedAt *time.Time      `db:"processed_at" json:"processed_at"`
	Items       []OrderItem     `db:"-" json:"items"`
}

type OrderItem struct {
	OrderID   string `db:"order_id" json:"-"`
	Position  int    `db:"position" json:"-"`
	ProductID string `db:"product_id" json:"product_id"`
	Name      string `db:"name" json:"name"`
	Quantity  int    `db:"quantity" json:"quantity"`
}
