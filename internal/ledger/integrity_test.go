package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/caixinha/caixinha/internal/common"
	"github.com/caixinha/caixinha/internal/model"
)

func TestIntegrity_DeleteCategory(t *testing.T) {
	store := newTestStore(t)
	seedBasics(t, store)
	ctx := context.Background()
	txns := NewTransactions(store)

	seedCategory(t, store, "cat-doomed", model.TypeExpense)
	draft := validDraft("2024-03-01")
	draft.CategoryID = "cat-doomed"
	saved, err := txns.Add(ctx, draft)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	moved, err := NewIntegrity(store).DeleteCategory(ctx, "cat-doomed", "cat-expense")
	if err != nil {
		t.Fatalf("DeleteCategory() error = %v", err)
	}
	if moved != 1 {
		t.Errorf("moved = %d, want 1", moved)
	}

	got, err := store.GetTransaction(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetTransaction() error = %v", err)
	}
	if got.CategoryID != "cat-expense" {
		t.Errorf("transaction still references %s", got.CategoryID)
	}
	if cat, _ := store.GetCategory(ctx, "cat-doomed"); cat != nil {
		t.Error("category survived deletion")
	}
}

func TestIntegrity_DeleteCategory_Errors(t *testing.T) {
	store := newTestStore(t)
	seedBasics(t, store)
	ctx := context.Background()
	integrity := NewIntegrity(store)

	now := time.Now().UTC()
	def := model.Category{
		ID: "cat-default", Type: model.TypeExpense, Name: "None",
		IsDefault: true, IsSystem: true, CreatedAt: now, UpdatedAt: now,
	}
	if err := store.SaveCategory(ctx, &def); err != nil {
		t.Fatalf("SaveCategory() error = %v", err)
	}

	tests := []struct {
		wantErr error
		name    string
		id      string
		moveTo  string
	}{
		{name: "same id", id: "cat-expense", moveTo: "cat-expense", wantErr: common.ErrValidation},
		{name: "missing source", id: "ghost", moveTo: "cat-expense", wantErr: common.ErrNotFound},
		{name: "missing substitute", id: "cat-expense", moveTo: "ghost", wantErr: common.ErrNotFound},
		{name: "default protected", id: "cat-default", moveTo: "cat-expense", wantErr: common.ErrDefaultEntity},
		{name: "type mismatch", id: "cat-expense", moveTo: "cat-income", wantErr: common.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := integrity.DeleteCategory(ctx, tt.id, tt.moveTo)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DeleteCategory() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIntegrity_DeleteAccount(t *testing.T) {
	store := newTestStore(t)
	seedBasics(t, store)
	ctx := context.Background()

	seedAccount(t, store, "acc-doomed")
	draft := validDraft("2024-03-01")
	draft.AccountID = "acc-doomed"
	saved, err := NewTransactions(store).Add(ctx, draft)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	moved, err := NewIntegrity(store).DeleteAccount(ctx, "acc-doomed", "acc-main")
	if err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}
	if moved != 1 {
		t.Errorf("moved = %d, want 1", moved)
	}

	got, _ := store.GetTransaction(ctx, saved.ID)
	if got.AccountID != "acc-main" {
		t.Errorf("transaction still references %s", got.AccountID)
	}
	if acc, _ := store.GetAccount(ctx, "acc-doomed"); acc != nil {
		t.Error("account survived deletion")
	}
}

func TestIntegrity_DeleteAccount_DefaultProtected(t *testing.T) {
	store := newTestStore(t)
	seedBasics(t, store)
	ctx := context.Background()

	now := time.Now().UTC()
	def := model.Account{ID: "acc-default", Name: "Wallet", IsDefault: true, CreatedAt: now, UpdatedAt: now}
	if err := store.SaveAccount(ctx, &def); err != nil {
		t.Fatalf("SaveAccount() error = %v", err)
	}

	_, err := NewIntegrity(store).DeleteAccount(ctx, "acc-default", "acc-main")
	if !errors.Is(err, common.ErrDefaultEntity) {
		t.Errorf("DeleteAccount() error = %v, want ErrDefaultEntity", err)
	}
}
