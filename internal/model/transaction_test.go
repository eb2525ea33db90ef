package model

import (
	"testing"
	"time"
)

func TestTransactionSignedValue(t *testing.T) {
	income := Transaction{Type: TypeIncome, Value: 100}
	if got := income.SignedValue(); got != 100 {
		t.Errorf("income SignedValue() = %v, want 100", got)
	}
	expense := Transaction{Type: TypeExpense, Value: 42.5}
	if got := expense.SignedValue(); got != -42.5 {
		t.Errorf("expense SignedValue() = %v, want -42.5", got)
	}
}

func TestTransactionPatchApply(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	t.Run("only non-nil fields applied", func(t *testing.T) {
		txn := Transaction{Description: "rent", Value: 1200, Currency: "BRL"}
		newValue := 1300.0
		TransactionPatch{Value: &newValue}.Apply(&txn, now)

		if txn.Value != 1300 {
			t.Errorf("Value = %v, want 1300", txn.Value)
		}
		if txn.Description != "rent" || txn.Currency != "BRL" {
			t.Errorf("untouched fields changed: %+v", txn)
		}
		if !txn.UpdatedAt.Equal(now) {
			t.Errorf("UpdatedAt = %v, want %v", txn.UpdatedAt, now)
		}
	})

	t.Run("completing stamps completedAt", func(t *testing.T) {
		txn := Transaction{}
		completed := true
		TransactionPatch{IsCompleted: &completed}.Apply(&txn, now)

		if !txn.IsCompleted {
			t.Fatal("expected IsCompleted")
		}
		if txn.CompletedAt == nil || !txn.CompletedAt.Equal(now) {
			t.Errorf("CompletedAt = %v, want %v", txn.CompletedAt, now)
		}
	})

	t.Run("reopening clears completedAt", func(t *testing.T) {
		stamp := now.Add(-time.Hour)
		txn := Transaction{IsCompleted: true, CompletedAt: &stamp}
		pending := false
		TransactionPatch{IsCompleted: &pending}.Apply(&txn, now)

		if txn.IsCompleted {
			t.Fatal("expected pending")
		}
		if txn.CompletedAt != nil {
			t.Errorf("CompletedAt = %v, want nil", txn.CompletedAt)
		}
	})

	t.Run("same completion state keeps stamp", func(t *testing.T) {
		stamp := now.Add(-time.Hour)
		txn := Transaction{IsCompleted: true, CompletedAt: &stamp}
		completed := true
		TransactionPatch{IsCompleted: &completed}.Apply(&txn, now)

		if txn.CompletedAt == nil || !txn.CompletedAt.Equal(stamp) {
			t.Errorf("CompletedAt = %v, want original %v", txn.CompletedAt, stamp)
		}
	})
}
