package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/hardstock/inventory-service/internal/model"
	"github.com/hardstock/inventory-service/internal/movement/dto"
	"github.com/hardstock/inventory-service/pkg/logger"
)

type fakeRepo struct {
	inserted  []*model.StockMovement
	insertErr error

	byProduct []model.StockMovement
	recent    []model.StockMovement
	pending   []model.Order
	listErr   error
}

func (f *fakeRepo) Insert(ctx context.Context, m *model.StockMovement) error {
	f.inserted = append(f.inserted, m)
	return f.insertErr
}

func (f *fakeRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]model.StockMovement, error) {
	return f.byProduct, f.listErr
}

func (f *fakeRepo) ListRecent(ctx context.Context, limit int) ([]model.StockMovement, error) {
	return f.recent, f.listErr
}

func (f *fakeRepo) ListPendingOrders(ctx context.Context) ([]model.Order, error) {
	return f.pending, f.listErr
}

func strptr(s string) *string { return &s }

func TestRecord_BuildsMovement(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewMovementUseCase(repo, nil, logger.NewNop())

	err := uc.Record(context.Background(), &dto.RecordMovementInput{
		ProductID:      "p1",
		OrderID:        strptr("order-1"),
		QuantityChange: -5,
		MovementType:   model.MovementTypeSale,
		RemainingStock: 35,
		Notes:          "sold 5 x Cement 50kg",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(repo.inserted))
	}
	m := repo.inserted[0]
	if m.ID == "" {
		t.Error("movement id not assigned")
	}
	if m.CreatedAt.IsZero() {
		t.Error("movement timestamp not assigned")
	}
	if m.ProductID != "p1" || m.QuantityChange != -5 || m.RemainingStock != 35 {
		t.Errorf("movement fields not carried over: %+v", m)
	}
	if m.OrderID == nil || *m.OrderID != "order-1" {
		t.Errorf("order id not carried over: %v", m.OrderID)
	}
	if m.MovementType != model.MovementTypeSale {
		t.Errorf("unexpected movement type %s", m.MovementType)
	}
}

func TestRecord_PropagatesInsertError(t *testing.T) {
	repo := &fakeRepo{insertErr: errors.New("disk full")}
	uc := NewMovementUseCase(repo, nil, logger.NewNop())

	err := uc.Record(context.Background(), &dto.RecordMovementInput{
		ProductID:      "p1",
		QuantityChange: 10,
		MovementType:   model.MovementTypeRestock,
	})
	if err == nil {
		t.Fatal("expected insert error, got nil")
	}
}

func TestReservedQuantity(t *testing.T) {
	repo := &fakeRepo{pending: []model.Order{
		{ID: "o1", Items: []model.OrderItem{
			{ProductID: "p1", Quantity: 5},
			{ProductID: "p2", Quantity: 2},
		}},
		{ID: "o2", Items: []model.OrderItem{
			{ProductID: "p1", Quantity: 3},
		}},
	}}
	uc := NewMovementUseCase(repo, nil, logger.NewNop())

	tests := []struct {
		productID string
		want      int
	}{
		{"p1", 8},
		{"p2", 2},
		{"p3", 0},
	}
	for _, tt := range tests {
		got, err := uc.ReservedQuantity(context.Background(), tt.productID)
		if err != nil {
			t.Fatalf("reserved(%s): %v", tt.productID, err)
		}
		if got != tt.want {
			t.Errorf("reserved(%s) = %d, want %d", tt.productID, got, tt.want)
		}
	}
}

func TestReservedQuantity_PropagatesError(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("connection reset")}
	uc := NewMovementUseCase(repo, nil, logger.NewNop())

	if _, err := uc.ReservedQuantity(context.Background(), "p1"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestHistory_Delegates(t *testing.T) {
	repo := &fakeRepo{byProduct: []model.StockMovement{
		{ID: "m1", ProductID: "p1"},
		{ID: "m2", ProductID: "p1"},
	}}
	uc := NewMovementUseCase(repo, nil, logger.NewNop())

	got, err := uc.History(context.Background(), "p1", 50)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 movements, got %d", len(got))
	}
}

func TestSearch_FallsBackWithoutIndex(t *testing.T) {
	repo := &fakeRepo{recent: []model.StockMovement{
		{ID: "m1", Notes: "sold 5 x Cement 50kg"},
	}}
	uc := NewMovementUseCase(repo, nil, logger.NewNop())

	got, err := uc.Search(context.Background(), "cement", 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].ID != "m1" {
		t.Errorf("expected store fallback results, got %v", got)
	}
}
