package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/hardstock/inventory-service/internal/alert"
	"github.com/hardstock/inventory-service/internal/fulfillment"
	"github.com/hardstock/inventory-service/internal/fulfillment/dto"
	"github.com/hardstock/inventory-service/internal/ledger"
	"github.com/hardstock/inventory-service/internal/model"
	"github.com/hardstock/inventory-service/internal/movement"
	movementdto "github.com/hardstock/inventory-service/internal/movement/dto"
	"github.com/hardstock/inventory-service/pkg/logger"
	"go.uber.org/zap"
)

type fulfillmentUseCase struct {
	repo      fulfillment.Repository
	ledger    ledger.UseCase
	movements movement.UseCase
	alerts    alert.UseCase
	logger    logger.ZapLogger
}

func NewFulfillmentUseCase(repo fulfillment.Repository, stockLedger ledger.UseCase, movements movement.UseCase, alerts alert.UseCase, log logger.ZapLogger) fulfillment.UseCase {
	return &fulfillmentUseCase{
		repo:      repo,
		ledger:    stockLedger,
		movements: movements,
		alerts:    alerts,
		logger:    log,
	}
}

func (uc *fulfillmentUseCase) FulfillOrder(ctx context.Context, orderID string, items []dto.LineItemInput) (*dto.FulfillmentResult, error) {
	if orderID == "" {
		return nil, errors.New("order id is required")
	}

	// Idempotency read happens-before any mutation.
	processed, err := uc.repo.OrderProcessed(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if processed {
		return &dto.FulfillmentResult{OrderID: &orderID, AlreadyProcessed: true}, nil
	}

	return uc.fulfill(ctx, &orderID, items)
}

func (uc *fulfillmentUseCase) FulfillAdHoc(ctx context.Context, items []dto.LineItemInput) (*dto.FulfillmentResult, error) {
	return uc.fulfill(ctx, nil, items)
}

func (uc *fulfillmentUseCase) fulfill(ctx context.Context, orderID *string, items []dto.LineItemInput) (*dto.FulfillmentResult, error) {
	if err := uc.validate(items); err != nil {
		return nil, err
	}

	results, err := uc.repo.CommitFulfillment(ctx, orderID, items)
	if err != nil {
		if errors.Is(err, fulfillment.ErrAlreadyProcessed) {
			// Lost the race to another fulfillment of the same order; the
			// stock effects landed exactly once, just not here.
			return &dto.FulfillmentResult{OrderID: orderID, AlreadyProcessed: true}, nil
		}
		var insufficient *fulfillment.InsufficientStockError
		var notFound *fulfillment.NotFoundError
		if errors.As(err, &insufficient) || errors.As(err, &notFound) {
			return nil, err
		}
		return nil, &fulfillment.CommitError{Err: err}
	}

	uc.recordSideEffects(ctx, orderID, results)

	return &dto.FulfillmentResult{OrderID: orderID, Items: results}, nil
}

// validate rejects the whole submission before any write is attempted. The
// ledger's cached view may lag the store; the commit's conditional updates
// are the authoritative guard.
func (uc *fulfillmentUseCase) validate(items []dto.LineItemInput) error {
	if len(items) == 0 {
		return fulfillment.ErrEmptyOrder
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("invalid quantity %d for product %s", item.Quantity, item.ProductID)
		}
		p, ok := uc.ledger.Get(item.ProductID)
		if !ok {
			return &fulfillment.NotFoundError{ProductID: item.ProductID}
		}
		if p.CurrentStock < item.Quantity {
			return &fulfillment.InsufficientStockError{
				ProductID: item.ProductID,
				Name:      p.Name,
				Requested: item.Quantity,
				Available: p.CurrentStock,
			}
		}
	}
	return nil
}

// recordSideEffects runs after a successful commit. Movement and alert writes
// are advisory: failures are logged and never unwind the committed decrement.
func (uc *fulfillmentUseCase) recordSideEffects(ctx context.Context, orderID *string, results []dto.ItemResult) {
	threshold := uc.ledger.Threshold()

	for _, r := range results {
		err := uc.movements.Record(ctx, &movementdto.RecordMovementInput{
			ProductID:      r.ProductID,
			OrderID:        orderID,
			QuantityChange: -r.Quantity,
			MovementType:   model.MovementTypeSale,
			RemainingStock: r.RemainingStock,
			Notes:          fmt.Sprintf("sold %d x %s", r.Quantity, r.Name),
		})
		if err != nil {
			uc.logger.Error("failed to record stock movement",
				zap.String("product_id", r.ProductID), zap.Error(err))
		}

		if r.RemainingStock <= threshold {
			if err := uc.alerts.LowStock(ctx, r.ProductID, r.Name, r.RemainingStock); err != nil {
				uc.logger.Error("failed to emit low-stock alert",
					zap.String("product_id", r.ProductID), zap.Error(err))
			}
		}
	}
}
