// Package ledger implements the domain services in front of the storage
// layer: transaction lifecycle, fixed-month generation, referential
// integrity, aggregation, and budgets. Referential checks live here, not in
// storage — the persistence layer is deliberately dumb.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/caixinha/caixinha/internal/common"
	"github.com/caixinha/caixinha/internal/model"
	"github.com/caixinha/caixinha/internal/service"
)

// Transactions manages the transaction lifecycle: single creates, installment
// fan-out, patch updates, and deletes.
type Transactions struct {
	store service.Storage
	newID func() string
	now   func() time.Time
}

// NewTransactions creates a transaction lifecycle manager.
func NewTransactions(store service.Storage) *Transactions {
	return &Transactions{
		store: store,
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Add validates the draft, assigns an id and timestamps, and writes one
// record. The draft's id and timestamps are ignored.
func (t *Transactions) Add(ctx context.Context, draft model.Transaction) (*model.Transaction, error) {
	if err := t.validateDraft(ctx, &draft); err != nil {
		return nil, err
	}

	now := t.now()
	draft.ID = t.newID()
	draft.CreatedAt = now
	draft.UpdatedAt = now
	if draft.IsCompleted && draft.CompletedAt == nil {
		completed := now
		draft.CompletedAt = &completed
	}

	if err := t.store.SaveTransaction(ctx, &draft); err != nil {
		return nil, fmt.Errorf("failed to add transaction: %w", err)
	}

	slog.Debug("added transaction", "id", draft.ID, "type", draft.Type, "value", draft.Value)
	return &draft, nil
}

// AddRecurring creates an installment series. A draft without repeat
// configuration behaves exactly like Add wrapped in a one-element slice.
// Otherwise exactly RepeatConfig.Times installments are created atomically,
// sharing one freshly generated parent id: installment i (0-indexed) is
// dated base date advanced by i periods, with RepeatIndex i+1 and
// RepeatTotal set on every one. Monthly advances use plain calendar
// arithmetic without day clamping; fixed-month regeneration is the clamped
// counterpart (see FixedGenerator).
func (t *Transactions) AddRecurring(ctx context.Context, draft model.Transaction) ([]model.Transaction, error) {
	if !draft.IsRepeating || draft.RepeatConfig == nil {
		draft.IsRepeating = false
		draft.RepeatConfig = nil
		single, err := t.Add(ctx, draft)
		if err != nil {
			return nil, err
		}
		return []model.Transaction{*single}, nil
	}

	cfg := *draft.RepeatConfig
	if cfg.Times < 1 {
		return nil, fmt.Errorf("%w: repeat times must be at least 1", common.ErrValidation)
	}
	if !cfg.Period.Valid() {
		return nil, fmt.Errorf("%w: unknown repeat period %q", common.ErrValidation, cfg.Period)
	}
	if cfg.Period == model.RepeatCustom && cfg.CustomDays < 1 {
		return nil, fmt.Errorf("%w: custom period requires customDays", common.ErrValidation)
	}
	if err := t.validateDraft(ctx, &draft); err != nil {
		return nil, err
	}

	now := t.now()
	parentID := t.newID()
	installments := make([]model.Transaction, 0, cfg.Times)
	for i := 0; i < cfg.Times; i++ {
		txn := draft
		txn.ID = t.newID()
		txn.Date = draft.Date.AddPeriods(cfg.Period, i, cfg.CustomDays)
		txn.IsRepeating = true
		txn.RepeatConfig = &cfg
		txn.RepeatIndex = i + 1
		txn.RepeatTotal = cfg.Times
		txn.ParentRepeatID = parentID
		txn.CreatedAt = now
		txn.UpdatedAt = now
		if txn.IsCompleted && txn.CompletedAt == nil {
			completed := now
			txn.CompletedAt = &completed
		}
		installments = append(installments, txn)
	}

	if err := t.store.SaveTransactions(ctx, installments); err != nil {
		return nil, fmt.Errorf("failed to add installment series: %w", err)
	}

	slog.Info("added installment series",
		"parent", parentID, "times", cfg.Times, "period", cfg.Period)
	return installments, nil
}

// Update applies an explicit patch to a transaction, refreshing updatedAt.
// Returns (nil, nil) when the id is unknown — absence is reported, not
// raised. Changing category, account, or type re-checks reference
// compatibility.
func (t *Transactions) Update(ctx context.Context, id string, patch model.TransactionPatch) (*model.Transaction, error) {
	txn, err := t.store.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, nil
	}

	patch.Apply(txn, t.now())

	if patch.Value != nil && txn.Value < 0 {
		return nil, fmt.Errorf("%w: value must be non-negative", common.ErrValidation)
	}
	if patch.Date != nil && !txn.Date.Valid() {
		return nil, fmt.Errorf("%w: malformed date %q", common.ErrValidation, txn.Date)
	}
	if patch.CategoryID != nil || patch.AccountID != nil || patch.Type != nil {
		if err := t.checkReferences(ctx, txn); err != nil {
			return nil, err
		}
	}

	if err := t.store.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

// Delete physically removes a single transaction. Returns false when the id
// is unknown.
func (t *Transactions) Delete(ctx context.Context, id string) (bool, error) {
	txn, err := t.store.GetTransaction(ctx, id)
	if err != nil {
		return false, err
	}
	if txn == nil {
		return false, nil
	}
	if err := t.store.DeleteTransaction(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteSeries removes every installment sharing a parent id, regardless of
// completion state. Returns the number deleted.
func (t *Transactions) DeleteSeries(ctx context.Context, parentRepeatID string) (int, error) {
	return t.store.DeleteTransactionsByParent(ctx, parentRepeatID, false)
}

// DeletePendingSeries removes only the pending installments of a series,
// preserving completed history. Returns the number deleted.
func (t *Transactions) DeletePendingSeries(ctx context.Context, parentRepeatID string) (int, error) {
	return t.store.DeleteTransactionsByParent(ctx, parentRepeatID, true)
}

// validateDraft checks draft field shape and that its references resolve.
func (t *Transactions) validateDraft(ctx context.Context, draft *model.Transaction) error {
	if !draft.Type.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", common.ErrValidation, draft.Type)
	}
	if draft.Value < 0 {
		return fmt.Errorf("%w: value must be non-negative", common.ErrValidation)
	}
	if draft.Currency == "" {
		return fmt.Errorf("%w: currency is required", common.ErrValidation)
	}
	if !draft.Date.Valid() {
		return fmt.Errorf("%w: malformed date %q", common.ErrValidation, draft.Date)
	}
	return t.checkReferences(ctx, draft)
}

// checkReferences ensures categoryId and accountId resolve to live entities
// and that the category shares the transaction's type.
func (t *Transactions) checkReferences(ctx context.Context, txn *model.Transaction) error {
	if txn.CategoryID == "" {
		return fmt.Errorf("%w: category is required", common.ErrValidation)
	}
	if txn.AccountID == "" {
		return fmt.Errorf("%w: account is required", common.ErrValidation)
	}

	cat, err := t.store.GetCategory(ctx, txn.CategoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return fmt.Errorf("%w: category %s does not exist", common.ErrValidation, txn.CategoryID)
	}
	if cat.Type != txn.Type {
		return fmt.Errorf("%w: category %s is %s, transaction is %s",
			common.ErrValidation, cat.ID, cat.Type, txn.Type)
	}

	acc, err := t.store.GetAccount(ctx, txn.AccountID)
	if err != nil {
		return err
	}
	if acc == nil {
		return fmt.Errorf("%w: account %s does not exist", common.ErrValidation, txn.AccountID)
	}
	return nil
}
