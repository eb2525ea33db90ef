package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/caixinha/caixinha/internal/model"
	"github.com/caixinha/caixinha/internal/storage"
)

// newTestStore opens a migrated throwaway database.
func newTestStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return store
}

func seedCategory(t *testing.T, store *storage.SQLiteStorage, id string, ctype model.TransactionType) {
	t.Helper()
	now := time.Now().UTC()
	cat := model.Category{ID: id, Type: ctype, Name: id, CreatedAt: now, UpdatedAt: now}
	if err := store.SaveCategory(context.Background(), &cat); err != nil {
		t.Fatalf("Failed to seed category %s: %v", id, err)
	}
}

func seedAccount(t *testing.T, store *storage.SQLiteStorage, id string) {
	t.Helper()
	now := time.Now().UTC()
	acc := model.Account{ID: id, Name: id, CreatedAt: now, UpdatedAt: now}
	if err := store.SaveAccount(context.Background(), &acc); err != nil {
		t.Fatalf("Failed to seed account %s: %v", id, err)
	}
}

// validDraft builds a draft referencing the conventionally seeded entities.
func validDraft(date model.Date) model.Transaction {
	return model.Transaction{
		Type:        model.TypeExpense,
		Value:       50,
		Currency:    "BRL",
		Description: "test expense",
		CategoryID:  "cat-expense",
		AccountID:   "acc-main",
		Date:        date,
	}
}

// seedBasics creates the category and account validDraft points at.
func seedBasics(t *testing.T, store *storage.SQLiteStorage) {
	t.Helper()
	seedCategory(t, store, "cat-expense", model.TypeExpense)
	seedCategory(t, store, "cat-income", model.TypeIncome)
	seedAccount(t, store, "acc-main")
}
