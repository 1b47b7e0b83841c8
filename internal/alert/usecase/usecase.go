package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hardstock/inventory-service/internal/alert"
	"github.com/hardstock/inventory-service/internal/alert/dto"
	"github.com/hardstock/inventory-service/internal/model"
	"github.com/hardstock/inventory-service/pkg/cache"
	"github.com/hardstock/inventory-service/pkg/logger"
	"go.uber.org/zap"
)

type alertUseCase struct {
	repo      alert.Repository
	cache     *cache.RedisClient
	logger    logger.ZapLogger
	dedupTTL  time.Duration
	retention time.Duration

	// fallback de-dup state when no Redis client is configured
	mu       sync.Mutex
	lastSent map[string]time.Time
}

func NewAlertUseCase(repo alert.Repository, cacheClient *cache.RedisClient, log logger.ZapLogger, dedupTTL, retention time.Duration) alert.UseCase {
	return &alertUseCase{
		repo:      repo,
		cache:     cacheClient,
		logger:    log,
		dedupTTL:  dedupTTL,
		retention: retention,
		lastSent:  make(map[string]time.Time),
	}
}

func (uc *alertUseCase) Create(ctx context.Context, input *dto.CreateAlertInput) (*model.Alert, error) {
	if input.Type == "" {
		return nil, errors.New("alert type is required")
	}
	priority := input.Priority
	if priority == "" {
		priority = model.AlertPriorityMedium
	}

	now := time.Now()
	a := &model.Alert{
		ID:        uuid.New().String(),
		AlertType: input.Type,
		Priority:  priority,
		Title:     input.Title,
		Message:   input.Message,
		ProductID: input.ProductID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.repo.Insert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *alertUseCase) LowStock(ctx context.Context, productID, name string, remaining int) error {
	if !uc.claimDedup(ctx, productID) {
		return nil
	}

	_, err := uc.Create(ctx, &dto.CreateAlertInput{
		Type:      model.AlertTypeLowStock,
		Priority:  model.AlertPriorityHigh,
		Title:     "Low Stock Alert",
		Message:   fmt.Sprintf("%s is running low (%d remaining)", name, remaining),
		ProductID: &productID,
	})
	return err
}

// claimDedup reports whether this product's low-stock alert may be emitted
// now. The claim lasts for the de-dup TTL. A Redis error degrades to emitting
// the alert rather than suppressing it.
func (uc *alertUseCase) claimDedup(ctx context.Context, productID string) bool {
	key := "alerts:lowstock:" + productID

	if uc.cache != nil {
		ok, err := uc.cache.SetNX(ctx, key, "1", uc.dedupTTL)
		if err != nil {
			uc.logger.Error("low-stock dedup check failed", zap.String("product_id", productID), zap.Error(err))
			return true
		}
		return ok
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if last, ok := uc.lastSent[productID]; ok && time.Since(last) < uc.dedupTTL {
		return false
	}
	uc.lastSent[productID] = time.Now()
	return true
}

func (uc *alertUseCase) MarkRead(ctx context.Context, id string) error {
	return uc.repo.MarkRead(ctx, id, time.Now())
}

func (uc *alertUseCase) Acknowledge(ctx context.Context, id, userID, notes string) error {
	if userID == "" {
		return errors.New("acknowledging user is required")
	}
	return uc.repo.Acknowledge(ctx, id, userID, notes, time.Now())
}

func (uc *alertUseCase) List(ctx context.Context, filters *dto.AlertFilters) ([]model.Alert, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *alertUseCase) EvaluateRules(ctx context.Context, data *dto.RuleData) ([]model.Alert, error) {
	rules, err := uc.repo.ListRules(ctx)
	if err != nil {
		return nil, err
	}

	var created []model.Alert
	for _, rule := range rules {
		var triggered bool
		switch rule.AlertType {
		case model.AlertTypeLowStock:
			triggered = data.CurrentStock <= rule.Threshold
		case model.AlertTypeExpiry:
			triggered = data.DaysUntilExpiry <= rule.Threshold
		case model.AlertTypeOverdueOrder:
			triggered = data.DaysOverdue >= rule.Threshold
		}
		if !triggered {
			continue
		}

		a, err := uc.Create(ctx, &dto.CreateAlertInput{
			Type:      rule.AlertType,
			Priority:  rule.Priority,
			Title:     rule.Title,
			Message:   rule.Message,
			ProductID: data.ProductID,
		})
		if err != nil {
			return created, err
		}
		created = append(created, *a)
	}
	return created, nil
}

func (uc *alertUseCase) Sweep(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-uc.retention)
	return uc.repo.ArchiveAcknowledgedBefore(ctx, cutoff)
}

func (uc *alertUseCase) RunRetentionSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := uc.Sweep(ctx)
			if err != nil {
				uc.logger.Error("alert retention sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				uc.logger.Info("archived old alerts", zap.Int64("count", n))
			}
		}
	}
}
