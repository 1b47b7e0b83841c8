package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hardstock/inventory-service/internal/model"
	"github.com/hardstock/inventory-service/internal/movement"
	"github.com/hardstock/inventory-service/internal/movement/dto"
	"github.com/hardstock/inventory-service/pkg/logger"
	"github.com/hardstock/inventory-service/pkg/search"
	"go.uber.org/zap"
)

const movementIndex = "stock_movements"

type movementUseCase struct {
	repo   movement.Repository
	es     *search.Client
	logger logger.ZapLogger
}

func NewMovementUseCase(repo movement.Repository, es *search.Client, log logger.ZapLogger) movement.UseCase {
	return &movementUseCase{
		repo:   repo,
		es:     es,
		logger: log,
	}
}

func (uc *movementUseCase) Record(ctx context.Context, input *dto.RecordMovementInput) error {
	m := &model.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      input.ProductID,
		OrderID:        input.OrderID,
		QuantityChange: input.QuantityChange,
		MovementType:   input.MovementType,
		RemainingStock: input.RemainingStock,
		Notes:          input.Notes,
		CreatedAt:      time.Now(),
	}

	if err := uc.repo.Insert(ctx, m); err != nil {
		return err
	}

	// Mirror into the audit index off the critical path.
	go uc.syncToElastic(context.Background(), m)

	return nil
}

func (uc *movementUseCase) syncToElastic(ctx context.Context, m *model.StockMovement) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"product_id": { "type": "keyword" },
				"order_id": { "type": "keyword" },
				"movement_type": { "type": "keyword" },
				"quantity_change": { "type": "integer" },
				"remaining_stock": { "type": "integer" },
				"notes": { "type": "text" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, movementIndex, mapping)

	if err := uc.es.Index(ctx, movementIndex, m.ID, m); err != nil {
		uc.logger.Error("failed to index stock movement", zap.String("movement_id", m.ID), zap.Error(err))
	}
}

func (uc *movementUseCase) ReservedQuantity(ctx context.Context, productID string) (int, error) {
	orders, err := uc.repo.ListPendingOrders(ctx)
	if err != nil {
		return 0, err
	}

	reserved := 0
	for _, order := range orders {
		for _, item := range order.Items {
			if item.ProductID == productID {
				reserved += item.Quantity
			}
		}
	}
	return reserved, nil
}

func (uc *movementUseCase) History(ctx context.Context, productID string, limit int) ([]model.StockMovement, error) {
	return uc.repo.ListByProduct(ctx, productID, limit)
}

func (uc *movementUseCase) Search(ctx context.Context, query string, limit int) ([]model.StockMovement, error) {
	if uc.es == nil {
		return uc.repo.ListRecent(ctx, limit)
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"query_string": map[string]interface{}{
				"query":  query,
				"fields": []string{"notes^2", "product_id", "order_id", "movement_type"},
			},
		},
		"sort": []map[string]interface{}{
			{"created_at": map[string]interface{}{"order": "desc"}},
		},
	}
	if limit > 0 {
		q["size"] = limit
	}

	res, err := uc.es.Search(ctx, movementIndex, q)
	if err != nil {
		uc.logger.Error("movement search failed, falling back to store", zap.Error(err))
		return uc.repo.ListRecent(ctx, limit)
	}

	movements := make([]model.StockMovement, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var m model.StockMovement
		if err := json.Unmarshal(hit.Source, &m); err == nil {
			movements = append(movements, m)
		}
	}
	return movements, nil
}
