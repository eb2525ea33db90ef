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

// Budgets manages per-(category, month) spending ceilings. Comparing spend
// against a ceiling is a caller concern, fed by the aggregation engine.
type Budgets struct {
	store service.Storage
	newID func() string
	now   func() time.Time
}

// NewBudgets creates a budget tracker.
func NewBudgets(store service.Storage) *Budgets {
	return &Budgets{
		store: store,
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Set upserts the budget for a (category, month) pair. An existing record
// keeps its id and createdAt; amount, currency, and updatedAt are
// overwritten in place.
func (b *Budgets) Set(ctx context.Context, categoryID string, amount float64, currency string, month model.MonthKey) (*model.CategoryBudget, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: budget amount must be non-negative", common.ErrValidation)
	}
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", common.ErrValidation)
	}
	if !month.Valid() {
		return nil, fmt.Errorf("%w: malformed month %q", common.ErrValidation, month)
	}

	cat, err := b.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: category %s does not exist", common.ErrValidation, categoryID)
	}

	now := b.now()
	budget, err := b.store.GetBudgetByCategoryMonth(ctx, categoryID, month)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		budget = &model.CategoryBudget{
			ID:         b.newID(),
			CategoryID: categoryID,
			Month:      month,
			CreatedAt:  now,
		}
	}
	budget.Amount = amount
	budget.Currency = currency
	budget.UpdatedAt = now

	if err := b.store.SaveBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to set budget: %w", err)
	}

	slog.Debug("set budget", "category", categoryID, "month", month, "amount", amount)
	return budget, nil
}

// ByMonth returns every budget recorded for a month.
func (b *Budgets) ByMonth(ctx context.Context, month model.MonthKey) ([]model.CategoryBudget, error) {
	return b.store.ListBudgetsByMonth(ctx, month)
}

// Delete removes a budget record. Returns false when the id is unknown.
func (b *Budgets) Delete(ctx context.Context, id string) (bool, error) {
	budget, err := b.store.GetBudget(ctx, id)
	if err != nil {
		return false, err
	}
	if budget == nil {
		return false, nil
	}
	if err := b.store.DeleteBudget(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// CopyToMonth replays the source month's budgets onto the target month via
// Set, so copying onto a month that already budgets a category overwrites
// that entry. Returns the number of budgets copied.
func (b *Budgets) CopyToMonth(ctx context.Context, from, to model.MonthKey) (int, error) {
	if from == to {
		return 0, fmt.Errorf("%w: source and target months must differ", common.ErrValidation)
	}

	budgets, err := b.store.ListBudgetsByMonth(ctx, from)
	if err != nil {
		return 0, err
	}

	copied := 0
	for _, src := range budgets {
		if _, err := b.Set(ctx, src.CategoryID, src.Amount, src.Currency, to); err != nil {
			return copied, fmt.Errorf("failed to copy budget for category %s: %w", src.CategoryID, err)
		}
		copied++
	}

	slog.Info("copied budgets", "from", from, "to", to, "count", copied)
	return copied, nil
}
