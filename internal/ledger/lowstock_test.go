package ledger

import (
	"testing"

	"github.com/hardstock/inventory-service/internal/model"
)

func TestLowStockItems(t *testing.T) {
	products := []model.Product{
		{ID: "p1", Name: "Cement 50kg", CurrentStock: 0},
		{ID: "p2", Name: "2x4 Lumber", CurrentStock: 1},
		{ID: "p3", Name: "Claw Hammer", CurrentStock: 10},
		{ID: "p4", Name: "White Paint 5L", CurrentStock: 11},
		{ID: "p5", Name: "Wire Spool", CurrentStock: 250},
	}

	items := LowStockItems(products, 10)

	want := map[string]bool{"p2": true, "p3": true}
	if len(items) != len(want) {
		t.Fatalf("expected %d low-stock items, got %d", len(want), len(items))
	}
	for _, p := range items {
		if !want[p.ID] {
			t.Errorf("unexpected low-stock item %s (stock %d)", p.ID, p.CurrentStock)
		}
	}
}

func TestLowStockItems_ExcludesZeroStock(t *testing.T) {
	products := []model.Product{
		{ID: "p1", CurrentStock: 0},
	}
	if items := LowStockItems(products, 10); len(items) != 0 {
		t.Errorf("zero-stock product flagged as low stock: %v", items)
	}
}

func TestLowStockItems_OrderIndependent(t *testing.T) {
	forward := []model.Product{
		{ID: "a", CurrentStock: 5},
		{ID: "b", CurrentStock: 50},
		{ID: "c", CurrentStock: 9},
	}
	reversed := []model.Product{forward[2], forward[1], forward[0]}

	got1 := LowStockItems(forward, 10)
	got2 := LowStockItems(reversed, 10)

	if len(got1) != 2 || len(got2) != 2 {
		t.Fatalf("expected 2 items from both orderings, got %d and %d", len(got1), len(got2))
	}
}

func TestLowStockItems_Empty(t *testing.T) {
	if items := LowStockItems(nil, 10); len(items) != 0 {
		t.Errorf("expected no items from nil input, got %v", items)
	}
}
