package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hardstock/inventory-service/internal/fulfillment"
	"github.com/hardstock/inventory-service/internal/fulfillment/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) OrderProcessed(ctx context.Context, orderID string) (bool, error) {
	var processed bool
	err := r.DB.GetContext(ctx, &processed,
		`SELECT processed FROM orders WHERE id = $1`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fulfillment.ErrOrderNotFound
	}
	if err != nil {
		return false, err
	}
	return processed, nil
}

func (r *PGRepository) CommitFulfillment(ctx context.Context, orderID *string, items []dto.LineItemInput) ([]dto.ItemResult, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	results := make([]dto.ItemResult, 0, len(items))
	for _, item := range items {
		// The guard on current_stock is the authoritative no-oversell check;
		// a concurrent decrement that drains stock makes this row vanish.
		var remaining int
		err := tx.QueryRowxContext(ctx, `
            UPDATE products
            SET current_stock = current_stock - $1, last_updated = now()
            WHERE id = $2 AND current_stock >= $1
            RETURNING current_stock
        `, item.Quantity, item.ProductID).Scan(&remaining)

		if errors.Is(err, sql.ErrNoRows) {
			var available int
			err := tx.GetContext(ctx, &available,
				`SELECT current_stock FROM products WHERE id = $1`, item.ProductID)
			if errors.Is(err, sql.ErrNoRows) {
				return nil, &fulfillment.NotFoundError{ProductID: item.ProductID}
			}
			if err != nil {
				return nil, err
			}
			return nil, &fulfillment.InsufficientStockError{
				ProductID: item.ProductID,
				Name:      item.Name,
				Requested: item.Quantity,
				Available: available,
			}
		}
		if err != nil {
			return nil, fmt.Errorf("decrement stock for %s: %w", item.ProductID, err)
		}

		results = append(results, dto.ItemResult{
			ProductID:      item.ProductID,
			Name:           item.Name,
			Quantity:       item.Quantity,
			RemainingStock: remaining,
		})
	}

	if orderID != nil {
		res, err := tx.ExecContext(ctx, `
            UPDATE orders
            SET processed = true, processed_at = now()
            WHERE id = $1 AND processed = false
        `, *orderID)
		if err != nil {
			return nil, fmt.Errorf("mark order processed: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fulfillment.ErrAlreadyProcessed
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return results, nil
}
