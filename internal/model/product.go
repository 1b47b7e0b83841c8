package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categories is the fixed set of product categories carried by the store.
var Categories = []string{"cement", "lumber", "tools", "paint", "electrical", "plumbing"}

type Product struct {
	ID           string          `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Category     string          `db:"category" json:"category"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Cost         decimal.Decimal `db:"cost" json:"cost"`
	CurrentStock int             `db:"current_stock" json:"current_stock"`
	LastUpdated  time.Time       `db:"last_updated" json:"last_updated"`
}
