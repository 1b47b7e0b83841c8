package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/hardstock/inventory-service/internal/alert"
	"github.com/hardstock/inventory-service/internal/ledger"
	"github.com/hardstock/inventory-service/internal/model"
	"github.com/hardstock/inventory-service/pkg/logger"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type stockLedger struct {
	repo      ledger.Repository
	alerts    alert.UseCase
	notify    <-chan *pq.Notification
	logger    logger.ZapLogger
	threshold int
	refresh   time.Duration

	mu       sync.RWMutex
	products []model.Product
	byID     map[string]model.Product
	subs     map[int]func([]model.Product)
	nextSub  int
}

// NewStockLedger builds the ledger. notify carries change notifications from
// the store (nil is allowed; the periodic refresh then drives reloads alone).
func NewStockLedger(repo ledger.Repository, alerts alert.UseCase, notify <-chan *pq.Notification, log logger.ZapLogger, threshold int, refresh time.Duration) ledger.UseCase {
	return &stockLedger{
		repo:      repo,
		alerts:    alerts,
		notify:    notify,
		logger:    log,
		threshold: threshold,
		refresh:   refresh,
		byID:      make(map[string]model.Product),
		subs:      make(map[int]func([]model.Product)),
	}
}

func (uc *stockLedger) Start(ctx context.Context) error {
	if err := uc.Reload(ctx); err != nil {
		return err
	}
	go uc.watch(ctx)
	return nil
}

func (uc *stockLedger) watch(ctx context.Context) {
	ticker := time.NewTicker(uc.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-uc.notify:
			uc.drain()
			if err := uc.Reload(ctx); err != nil && ctx.Err() == nil {
				uc.logger.Error("ledger reload after change notification failed", zap.Error(err))
			}
		case <-ticker.C:
			if err := uc.Reload(ctx); err != nil && ctx.Err() == nil {
				uc.logger.Error("periodic ledger reload failed", zap.Error(err))
			}
		}
	}
}

// drain collapses a burst of notifications into a single reload. Subscribers
// are promised the latest snapshot on every change, not every intermediate
// state.
func (uc *stockLedger) drain() {
	for {
		select {
		case <-uc.notify:
		default:
			return
		}
	}
}

// Reload replaces the cached snapshot with the store's current product set,
// delivers it to subscribers, and reports low-stock products to the alert
// service (which de-duplicates emission per product).
func (uc *stockLedger) Reload(ctx context.Context) error {
	products, err := uc.repo.ListProducts(ctx)
	if err != nil {
		return err
	}

	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	uc.mu.Lock()
	uc.products = products
	uc.byID = byID
	subs := make([]func([]model.Product), 0, len(uc.subs))
	for _, fn := range uc.subs {
		subs = append(subs, fn)
	}
	uc.mu.Unlock()

	for _, fn := range subs {
		fn(products)
	}

	if uc.alerts != nil {
		for _, p := range ledger.LowStockItems(products, uc.threshold) {
			if err := uc.alerts.LowStock(ctx, p.ID, p.Name, p.CurrentStock); err != nil {
				uc.logger.Error("failed to emit low-stock alert",
					zap.String("product_id", p.ID), zap.Error(err))
			}
		}
	}
	return nil
}

func (uc *stockLedger) Subscribe(fn func([]model.Product)) func() {
	uc.mu.Lock()
	id := uc.nextSub
	uc.nextSub++
	uc.subs[id] = fn
	snapshot := uc.products
	uc.mu.Unlock()

	fn(snapshot)

	return func() {
		uc.mu.Lock()
		delete(uc.subs, id)
		uc.mu.Unlock()
	}
}

func (uc *stockLedger) Snapshot() []model.Product {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return append([]model.Product(nil), uc.products...)
}

func (uc *stockLedger) Get(productID string) (model.Product, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	p, ok := uc.byID[productID]
	return p, ok
}

func (uc *stockLedger) LowStock() []model.Product {
	return ledger.LowStockItems(uc.Snapshot(), uc.threshold)
}

func (uc *stockLedger) Threshold() int {
	return uc.threshold
}
