package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/caixinha/caixinha/internal/common"
	"github.com/caixinha/caixinha/internal/model"
)

func TestBudgets_Set(t *testing.T) {
	store := newTestStore(t)
	seedBasics(t, store)
	ctx := context.Background()
	budgets := NewBudgets(store)

	created, err := budgets.Set(ctx, "cat-expense", 500, "BRL", "2024-03")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if created.ID == "" || created.Amount != 500 {
		t.Errorf("Set() = %+v", created)
	}

	// Setting the same pair again updates in place.
	updated, err := budgets.Set(ctx, "cat-expense", 650, "BRL", "2024-03")
	if err != nil {
		t.Fatalf("Set() update error = %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("upsert changed id: %s -> %s", created.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("upsert changed createdAt")
	}
	if updated.Amount != 650 {
		t.Errorf("Amount = %v, want 650", updated.Amount)
	}

	all, err := budgets.ByMonth(ctx, "2024-03")
	if err != nil {
		t.Fatalf("ByMonth() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("len = %d, want 1 (no duplicate row)", len(all))
	}
}

func TestBudgets_Set_Validation(t *testing.T) {
	store := newTestStore(t)
	seedBasics(t, store)
	ctx := context.Background()
	budgets := NewBudgets(store)

	tests := []struct {
		name     string
		category string
		currency string
		month    string
		amount   float64
	}{
		{name: "negative amount", category: "cat-expense", amount: -1, currency: "BRL", month: "2024-03"},
		{name: "missing currency", category: "cat-expense", amount: 100, currency: "", month: "2024-03"},
		{name: "malformed month", category: "cat-expense", amount: 100, currency: "BRL", month: "March"},
		{name: "unknown category", category: "ghost", amount: 100, currency: "BRL", month: "2024-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := budgets.Set(ctx, tt.category, tt.amount, tt.currency, model.MonthKey(tt.month))
			if !errors.Is(err, common.ErrValidation) {
				t.Errorf("Set() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestBudgets_CopyToMonth(t *testing.T) {
	store := newTestStore(t)
	seedBasics(t, store)
	ctx := context.Background()
	budgets := NewBudgets(store)

	if _, err := budgets.Set(ctx, "cat-expense", 500, "BRL", "2024-03"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := budgets.Set(ctx, "cat-income", 2000, "BRL", "2024-03"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	// The target month already budgets one of the categories.
	if _, err := budgets.Set(ctx, "cat-expense", 100, "BRL", "2024-04"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	copied, err := budgets.CopyToMonth(ctx, "2024-03", "2024-04")
	if err != nil {
		t.Fatalf("CopyToMonth() error = %v", err)
	}
	if copied != 2 {
		t.Errorf("copied = %d, want 2", copied)
	}

	april, err := budgets.ByMonth(ctx, "2024-04")
	if err != nil {
		t.Fatalf("ByMonth() error = %v", err)
	}
	if len(april) != 2 {
		t.Fatalf("april has %d budgets, want 2", len(april))
	}
	for _, b := range april {
		if b.CategoryID == "cat-expense" && b.Amount != 500 {
			t.Errorf("copy did not overwrite: amount = %v, want 500", b.Amount)
		}
	}
}

func TestBudgets_CopyToMonth_SameMonth(t *testing.T) {
	store := newTestStore(t)
	seedBasics(t, store)

	_, err := NewBudgets(store).CopyToMonth(context.Background(), "2024-03", "2024-03")
	if !errors.Is(err, common.ErrValidation) {
		t.Errorf("CopyToMonth() error = %v, want ErrValidation", err)
	}
}

func TestBudgets_Delete(t *testing.T) {
	store := newTestStore(t)
	seedBasics(t, store)
	ctx := context.Background()
	budgets := NewBudgets(store)

	created, err := budgets.Set(ctx, "cat-expense", 500, "BRL", "2024-03")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	deleted, err := budgets.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !deleted {
		t.Error("Delete() = false, want true")
	}

	deleted, err = budgets.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete() rerun error = %v", err)
	}
	if deleted {
		t.Error("Delete() on missing id = true, want false")
	}
}
