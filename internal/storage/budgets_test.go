package storage

import (
	"context"
	"testing"
	"time"

	"github.com/caixinha/caixinha/internal/model"
)

func testBudget(id, categoryID string, amount float64, month model.MonthKey) model.CategoryBudget {
	now := time.Now().UTC()
	return model.CategoryBudget{
		ID:         id,
		CategoryID: categoryID,
		Amount:     amount,
		Currency:   "BRL",
		Month:      month,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestSQLiteStorage_SaveAndGetBudget(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	budget := testBudget("bud-1", "cat-food", 500, "2024-03")
	if err := store.SaveBudget(ctx, &budget); err != nil {
		t.Fatalf("SaveBudget() error = %v", err)
	}

	got, err := store.GetBudget(ctx, "bud-1")
	if err != nil {
		t.Fatalf("GetBudget() error = %v", err)
	}
	if got == nil || got.Amount != 500 || got.Month != "2024-03" {
		t.Errorf("GetBudget() = %+v", got)
	}

	missing, err := store.GetBudget(ctx, "nope")
	if err != nil {
		t.Fatalf("GetBudget() error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetBudget(missing) = %+v, want nil", missing)
	}
}

func TestSQLiteStorage_GetBudgetByCategoryMonth(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	budgets := []model.CategoryBudget{
		testBudget("bud-1", "cat-food", 500, "2024-03"),
		testBudget("bud-2", "cat-food", 600, "2024-04"),
		testBudget("bud-3", "cat-transport", 150, "2024-03"),
	}
	for i := range budgets {
		if err := store.SaveBudget(ctx, &budgets[i]); err != nil {
			t.Fatalf("SaveBudget() error = %v", err)
		}
	}

	got, err := store.GetBudgetByCategoryMonth(ctx, "cat-food", "2024-03")
	if err != nil {
		t.Fatalf("GetBudgetByCategoryMonth() error = %v", err)
	}
	if got == nil || got.ID != "bud-1" {
		t.Errorf("GetBudgetByCategoryMonth() = %+v, want bud-1", got)
	}

	none, err := store.GetBudgetByCategoryMonth(ctx, "cat-food", "2024-05")
	if err != nil {
		t.Fatalf("GetBudgetByCategoryMonth() error = %v", err)
	}
	if none != nil {
		t.Errorf("expected nil for unbudgeted month, got %+v", none)
	}

	march, err := store.ListBudgetsByMonth(ctx, "2024-03")
	if err != nil {
		t.Fatalf("ListBudgetsByMonth() error = %v", err)
	}
	if len(march) != 2 {
		t.Errorf("len(march) = %d, want 2", len(march))
	}
}

func TestSQLiteStorage_DeleteBudget(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	budget := testBudget("bud-1", "cat-food", 500, "2024-03")
	if err := store.SaveBudget(ctx, &budget); err != nil {
		t.Fatalf("SaveBudget() error = %v", err)
	}
	if err := store.DeleteBudget(ctx, "bud-1"); err != nil {
		t.Fatalf("DeleteBudget() error = %v", err)
	}
	if got, _ := store.GetBudget(ctx, "bud-1"); got != nil {
		t.Error("budget still exists after delete")
	}
}

func TestSQLiteStorage_Settings(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	got, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got != nil {
		t.Errorf("fresh database has settings: %+v", got)
	}

	now := time.Now().UTC()
	settings := model.Settings{
		Locale:    "pt-BR",
		Theme:     "dark",
		Currency:  "BRL",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.SaveSettings(ctx, &settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	got, err = store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetSettings() = nil after save")
	}
	if got.ID != model.SettingsID || got.Theme != "dark" || got.Currency != "BRL" {
		t.Errorf("GetSettings() = %+v", got)
	}

	// The settings row is a singleton: saving again overwrites it.
	settings.Theme = "light"
	if err := store.SaveSettings(ctx, &settings); err != nil {
		t.Fatalf("SaveSettings() overwrite error = %v", err)
	}
	got, err = store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got.Theme != "light" {
		t.Errorf("Theme = %s, want light", got.Theme)
	}
}
