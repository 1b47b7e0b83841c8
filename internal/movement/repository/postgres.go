package repository

import (
	"context"
	"fmt"

	"github.com/hardstock/inventory-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Insert(ctx context.Context, m *model.StockMovement) error {
	query := `
        INSERT INTO stock_movements (
            id, product_id, order_id, quantity_change, movement_type,
            remaining_stock, notes, created_at
        )
        VALUES (
            :id, :product_id, :order_id, :quantity_change, :movement_type,
            :remaining_stock, :notes, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, m)
	return err
}

func (r *PGRepository) ListByProduct(ctx context.Context, productID string, limit int) ([]model.StockMovement, error) {
	query := `SELECT * FROM stock_movements WHERE product_id = $1 ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	var movements []model.StockMovement
	err := r.DB.SelectContext(ctx, &movements, query, productID)
	return movements, err
}

func (r *PGRepository) ListRecent(ctx context.Context, limit int) ([]model.StockMovement, error) {
	query := `SELECT * FROM stock_movements ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	var movements []model.StockMovement
	err := r.DB.SelectContext(ctx, &movements, query)
	return movements, err
}

func (r *PGRepository) ListPendingOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.DB.SelectContext(ctx, &orders, `
        SELECT * FROM orders WHERE status = $1 AND processed = false
    `, model.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	query, args, err := sqlx.In(`
        SELECT * FROM order_items WHERE order_id IN (?) ORDER BY order_id, position
    `, ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var items []model.OrderItem
	if err := r.DB.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}

	for _, item := range items {
		i := index[item.OrderID]
		orders[i].Items = append(orders[i].Items, item)
	}
	return orders, nil
}
