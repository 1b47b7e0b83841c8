package alert

import (
	"context"
	"time"

	"github.com/hardstock/inventory-service/internal/alert/dto"
	"github.com/hardstock/inventory-service/internal/model"
)

type UseCase interface {
	Create(ctx context.Context, input *dto.CreateAlertInput) (*model.Alert, error)

	// LowStock emits a low-stock alert for a product unless one was already
	// emitted inside the de-duplication window.
	LowStock(ctx context.Context, productID, name string, remaining int) error

	MarkRead(ctx context.Context, id string) error
	Acknowledge(ctx context.Context, id, userID, notes string) error
	List(ctx context.Context, filters *dto.AlertFilters) ([]model.Alert, error)

	// EvaluateRules checks data against the configured alert rules and creates
	// an alert for every rule whose threshold is crossed.
	EvaluateRules(ctx context.Context, data *dto.RuleData) ([]model.Alert, error)

	// Sweep archives acknowledged alerts older than the retention period.
	Sweep(ctx context.Context) (int64, error)
	// RunRetentionSweep calls Sweep every interval until ctx is cancelled.
	RunRetentionSweep(ctx context.Context, interval time.Duration)
}
