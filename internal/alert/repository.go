package alert

import (
	"context"
	"time"

	"github.com/hardstock/inventory-service/internal/alert/dto"
	"github.com/hardstock/inventory-service/internal/model"
)

type Repository interface {
	Insert(ctx context.Context, a *model.Alert) error
	MarkRead(ctx context.Context, id string, at time.Time) error
	Acknowledge(ctx context.Context, id, userID, notes string, at time.Time) error
	FindAll(ctx context.Context, filters *dto.AlertFilters) ([]model.Alert, error)
	ListRules(ctx context.Context) ([]model.AlertRule, error)
	ArchiveAcknowledgedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
