package repository

import (
	"context"

	"github.com/hardstock/inventory-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.DB.SelectContext(ctx, &products, `SELECT * FROM products ORDER BY name`)
	return products, err
}
