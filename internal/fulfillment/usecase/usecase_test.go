package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	alertdto "github.com/hardstock/inventory-service/internal/alert/dto"
	"github.com/hardstock/inventory-service/internal/fulfillment"
	"github.com/hardstock/inventory-service/internal/fulfillment/dto"
	"github.com/hardstock/inventory-service/internal/model"
	movementdto "github.com/hardstock/inventory-service/internal/movement/dto"
	"github.com/hardstock/inventory-service/pkg/logger"
)

type fakeRepo struct {
	processed    bool
	processedErr error

	commitResults []dto.ItemResult
	commitErr     error
	commitCalls   int
	lastOrderID   *string
	lastItems     []dto.LineItemInput
}

func (f *fakeRepo) OrderProcessed(ctx context.Context, orderID string) (bool, error) {
	return f.processed, f.processedErr
}

func (f *fakeRepo) CommitFulfillment(ctx context.Context, orderID *string, items []dto.LineItemInput) ([]dto.ItemResult, error) {
	f.commitCalls++
	f.lastOrderID = orderID
	f.lastItems = items
	if f.commitErr != nil {
		return nil, f.commitErr
	}
	return f.commitResults, nil
}

type fakeLedger struct {
	products  map[string]model.Product
	threshold int
}

func (f *fakeLedger) Start(ctx context.Context) error { return nil }
func (f *fakeLedger) Subscribe(fn func([]model.Product)) func() {
	return func() {}
}
func (f *fakeLedger) Snapshot() []model.Product { return nil }
func (f *fakeLedger) Get(productID string) (model.Product, bool) {
	p, ok := f.products[productID]
	return p, ok
}
func (f *fakeLedger) LowStock() []model.Product { return nil }
func (f *fakeLedger) Threshold() int            { return f.threshold }

type fakeMovements struct {
	recorded  []*movementdto.RecordMovementInput
	recordErr error
}

func (f *fakeMovements) Record(ctx context.Context, input *movementdto.RecordMovementInput) error {
	f.recorded = append(f.recorded, input)
	return f.recordErr
}

func (f *fakeMovements) ReservedQuantity(ctx context.Context, productID string) (int, error) {
	return 0, nil
}

func (f *fakeMovements) History(ctx context.Context, productID string, limit int) ([]model.StockMovement, error) {
	return nil, nil
}

func (f *fakeMovements) Search(ctx context.Context, query string, limit int) ([]model.StockMovement, error) {
	return nil, nil
}

type fakeAlerts struct {
	lowStock []string
}

func (f *fakeAlerts) Create(ctx context.Context, input *alertdto.CreateAlertInput) (*model.Alert, error) {
	return nil, nil
}

func (f *fakeAlerts) LowStock(ctx context.Context, productID, name string, remaining int) error {
	f.lowStock = append(f.lowStock, productID)
	return nil
}

func (f *fakeAlerts) MarkRead(ctx context.Context, id string) error                 { return nil }
func (f *fakeAlerts) Acknowledge(ctx context.Context, id, userID, notes string) error { return nil }
func (f *fakeAlerts) List(ctx context.Context, filters *alertdto.AlertFilters) ([]model.Alert, error) {
	return nil, nil
}
func (f *fakeAlerts) EvaluateRules(ctx context.Context, data *alertdto.RuleData) ([]model.Alert, error) {
	return nil, nil
}
func (f *fakeAlerts) Sweep(ctx context.Context) (int64, error)               { return 0, nil }
func (f *fakeAlerts) RunRetentionSweep(ctx context.Context, d time.Duration) {}

type fixture struct {
	repo      *fakeRepo
	ledger    *fakeLedger
	movements *fakeMovements
	alerts    *fakeAlerts
	uc        fulfillment.UseCase
}

func newFixture() *fixture {
	f := &fixture{
		repo: &fakeRepo{},
		ledger: &fakeLedger{
			threshold: 10,
			products: map[string]model.Product{
				"p1": {ID: "p1", Name: "Cement 50kg", CurrentStock: 40},
				"p2": {ID: "p2", Name: "Claw Hammer", CurrentStock: 3},
			},
		},
		movements: &fakeMovements{},
		alerts:    &fakeAlerts{},
	}
	f.uc = NewFulfillmentUseCase(f.repo, f.ledger, f.movements, f.alerts, logger.NewNop())
	return f
}

func TestFulfillOrder_Success(t *testing.T) {
	f := newFixture()
	f.repo.commitResults = []dto.ItemResult{
		{ProductID: "p1", Name: "Cement 50kg", Quantity: 33, RemainingStock: 7},
	}

	result, err := f.uc.FulfillOrder(context.Background(), "order-1", []dto.LineItemInput{
		{ProductID: "p1", Name: "Cement 50kg", Quantity: 33},
	})
	if err != nil {
		t.Fatalf("fulfill: %v", err)
	}
	if result.AlreadyProcessed {
		t.Error("fresh order reported as already processed")
	}
	if result.OrderID == nil || *result.OrderID != "order-1" {
		t.Errorf("unexpected order id in result: %v", result.OrderID)
	}
	if len(result.Items) != 1 || result.Items[0].RemainingStock != 7 {
		t.Errorf("unexpected item results: %v", result.Items)
	}

	if len(f.movements.recorded) != 1 {
		t.Fatalf("expected 1 movement, got %d", len(f.movements.recorded))
	}
	m := f.movements.recorded[0]
	if m.QuantityChange != -33 {
		t.Errorf("expected quantity change -33, got %d", m.QuantityChange)
	}
	if m.MovementType != model.MovementTypeSale {
		t.Errorf("expected sale movement, got %s", m.MovementType)
	}
	if m.OrderID == nil || *m.OrderID != "order-1" {
		t.Errorf("movement not tied to order: %v", m.OrderID)
	}

	// Remaining stock 7 is at or below threshold 10.
	if len(f.alerts.lowStock) != 1 || f.alerts.lowStock[0] != "p1" {
		t.Errorf("expected low-stock alert for p1, got %v", f.alerts.lowStock)
	}
}

func TestFulfillOrder_NoAlertAboveThreshold(t *testing.T) {
	f := newFixture()
	f.repo.commitResults = []dto.ItemResult{
		{ProductID: "p1", Name: "Cement 50kg", Quantity: 5, RemainingStock: 35},
	}

	_, err := f.uc.FulfillOrder(context.Background(), "order-1", []dto.LineItemInput{
		{ProductID: "p1", Name: "Cement 50kg", Quantity: 5},
	})
	if err != nil {
		t.Fatalf("fulfill: %v", err)
	}
	if len(f.alerts.lowStock) != 0 {
		t.Errorf("unexpected low-stock alert: %v", f.alerts.lowStock)
	}
}

func TestFulfillOrder_AlreadyProcessedIsNoOp(t *testing.T) {
	f := newFixture()
	f.repo.processed = true

	result, err := f.uc.FulfillOrder(context.Background(), "order-1", []dto.LineItemInput{
		{ProductID: "p1", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("fulfill: %v", err)
	}
	if !result.AlreadyProcessed {
		t.Error("expected AlreadyProcessed result")
	}
	if f.repo.commitCalls != 0 {
		t.Errorf("commit attempted for processed order (%d calls)", f.repo.commitCalls)
	}
	if len(f.movements.recorded) != 0 {
		t.Errorf("movements recorded for processed order: %v", f.movements.recorded)
	}
}

func TestFulfillOrder_CommitRaceIsNoOp(t *testing.T) {
	f := newFixture()
	f.repo.commitErr = fulfillment.ErrAlreadyProcessed

	result, err := f.uc.FulfillOrder(context.Background(), "order-1", []dto.LineItemInput{
		{ProductID: "p1", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("expected no-op success on commit race, got %v", err)
	}
	if !result.AlreadyProcessed {
		t.Error("expected AlreadyProcessed result after commit race")
	}
	if len(f.movements.recorded) != 0 {
		t.Errorf("movements recorded despite losing the race: %v", f.movements.recorded)
	}
}

func TestFulfillOrder_MissingOrderID(t *testing.T) {
	f := newFixture()
	if _, err := f.uc.FulfillOrder(context.Background(), "", nil); err == nil {
		t.Fatal("expected error for empty order id")
	}
}

func TestFulfillOrder_OrderNotFound(t *testing.T) {
	f := newFixture()
	f.repo.processedErr = fulfillment.ErrOrderNotFound

	_, err := f.uc.FulfillOrder(context.Background(), "missing", []dto.LineItemInput{
		{ProductID: "p1", Quantity: 1},
	})
	if !errors.Is(err, fulfillment.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestFulfillOrder_EmptyItems(t *testing.T) {
	f := newFixture()
	_, err := f.uc.FulfillOrder(context.Background(), "order-1", nil)
	if !errors.Is(err, fulfillment.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
	if f.repo.commitCalls != 0 {
		t.Error("commit attempted for empty order")
	}
}

func TestFulfillOrder_InvalidQuantity(t *testing.T) {
	f := newFixture()
	for _, qty := range []int{0, -4} {
		_, err := f.uc.FulfillOrder(context.Background(), "order-1", []dto.LineItemInput{
			{ProductID: "p1", Quantity: qty},
		})
		if err == nil {
			t.Errorf("quantity %d accepted", qty)
		}
	}
	if f.repo.commitCalls != 0 {
		t.Error("commit attempted for invalid quantity")
	}
}

func TestFulfillOrder_InsufficientStock(t *testing.T) {
	f := newFixture()

	_, err := f.uc.FulfillOrder(context.Background(), "order-1", []dto.LineItemInput{
		{ProductID: "p2", Name: "Claw Hammer", Quantity: 5},
	})

	var insufficient *fulfillment.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if insufficient.ProductID != "p2" || insufficient.Requested != 5 || insufficient.Available != 3 {
		t.Errorf("unexpected error detail: %+v", insufficient)
	}
	if insufficient.Name != "Claw Hammer" {
		t.Errorf("error does not name the product: %q", insufficient.Name)
	}
	if f.repo.commitCalls != 0 {
		t.Error("commit attempted despite validation failure")
	}
}

func TestFulfillOrder_UnknownProduct(t *testing.T) {
	f := newFixture()

	_, err := f.uc.FulfillOrder(context.Background(), "order-1", []dto.LineItemInput{
		{ProductID: "ghost", Quantity: 1},
	})

	var notFound *fulfillment.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.ProductID != "ghost" {
		t.Errorf("unexpected product id: %s", notFound.ProductID)
	}
}

func TestFulfillOrder_CommitGuardFailurePassesThrough(t *testing.T) {
	// The ledger cache may be stale; the commit's own guard can still reject
	// with fresh availability and that error must reach the caller unwrapped.
	f := newFixture()
	f.repo.commitErr = &fulfillment.InsufficientStockError{
		ProductID: "p1", Name: "Cement 50kg", Requested: 33, Available: 30,
	}

	_, err := f.uc.FulfillOrder(context.Background(), "order-1", []dto.LineItemInput{
		{ProductID: "p1", Name: "Cement 50kg", Quantity: 33},
	})

	var insufficient *fulfillment.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if insufficient.Available != 30 {
		t.Errorf("expected fresh availability 30, got %d", insufficient.Available)
	}
}

func TestFulfillOrder_CommitErrorWrapped(t *testing.T) {
	f := newFixture()
	cause := errors.New("deadlock detected")
	f.repo.commitErr = cause

	_, err := f.uc.FulfillOrder(context.Background(), "order-1", []dto.LineItemInput{
		{ProductID: "p1", Quantity: 1},
	})

	var commit *fulfillment.CommitError
	if !errors.As(err, &commit) {
		t.Fatalf("expected CommitError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("CommitError does not unwrap to the cause")
	}
}

func TestFulfillOrder_AuditFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	f.repo.commitResults = []dto.ItemResult{
		{ProductID: "p1", Name: "Cement 50kg", Quantity: 1, RemainingStock: 39},
	}
	f.movements.recordErr = errors.New("audit store down")

	result, err := f.uc.FulfillOrder(context.Background(), "order-1", []dto.LineItemInput{
		{ProductID: "p1", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("committed fulfillment failed on side effect: %v", err)
	}
	if len(result.Items) != 1 {
		t.Errorf("unexpected result items: %v", result.Items)
	}
}

func TestFulfillAdHoc_SkipsIdempotencyAndOrderID(t *testing.T) {
	f := newFixture()
	f.repo.processedErr = errors.New("OrderProcessed must not be called")
	f.repo.commitResults = []dto.ItemResult{
		{ProductID: "p1", Name: "Cement 50kg", Quantity: 2, RemainingStock: 38},
	}

	result, err := f.uc.FulfillAdHoc(context.Background(), []dto.LineItemInput{
		{ProductID: "p1", Name: "Cement 50kg", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("ad hoc fulfill: %v", err)
	}
	if result.OrderID != nil {
		t.Errorf("ad hoc result carries an order id: %v", *result.OrderID)
	}
	if f.repo.lastOrderID != nil {
		t.Error("ad hoc commit received an order id")
	}
	if len(f.movements.recorded) != 1 || f.movements.recorded[0].OrderID != nil {
		t.Errorf("ad hoc movement tied to an order: %+v", f.movements.recorded)
	}
}

func TestFulfillOrder_MultipleItems(t *testing.T) {
	f := newFixture()
	f.repo.commitResults = []dto.ItemResult{
		{ProductID: "p1", Name: "Cement 50kg", Quantity: 10, RemainingStock: 30},
		{ProductID: "p2", Name: "Claw Hammer", Quantity: 2, RemainingStock: 1},
	}

	result, err := f.uc.FulfillOrder(context.Background(), "order-1", []dto.LineItemInput{
		{ProductID: "p1", Name: "Cement 50kg", Quantity: 10},
		{ProductID: "p2", Name: "Claw Hammer", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("fulfill: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 item results, got %d", len(result.Items))
	}
	if len(f.movements.recorded) != 2 {
		t.Errorf("expected 2 movements, got %d", len(f.movements.recorded))
	}
	// Only p2 dropped to or below the threshold.
	if len(f.alerts.lowStock) != 1 || f.alerts.lowStock[0] != "p2" {
		t.Errorf("expected low-stock alert for p2 only, got %v", f.alerts.lowStock)
	}
}
