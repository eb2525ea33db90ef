package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/caixinha/caixinha/internal/model"
)

const budgetColumns = `id, category_id, amount, currency, month, created_at, updated_at`

// SaveBudget inserts or fully overwrites a budget by id. Uniqueness per
// (category, month) is the budget service's concern, enforced by
// upsert-by-lookup rather than an index.
func (s *SQLiteStorage) SaveBudget(ctx context.Context, budget *model.CategoryBudget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO budgets (`+budgetColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		budget.ID, budget.CategoryID, budget.Amount, budget.Currency,
		string(budget.Month), budget.CreatedAt, budget.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}

// GetBudget returns the budget with the given id, or (nil, nil) when it does
// not exist.
func (s *SQLiteStorage) GetBudget(ctx context.Context, id string) (*model.CategoryBudget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = ?`, id)
	budget, err := scanBudget(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}
	return &budget, nil
}

// GetBudgetByCategoryMonth returns the budget for a (category, month) pair,
// or (nil, nil) when none exists.
func (s *SQLiteStorage) GetBudgetByCategoryMonth(ctx context.Context, categoryID string, month model.MonthKey) (*model.CategoryBudget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return nil, err
	}
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE category_id = ? AND month = ?`,
		categoryID, string(month))
	budget, err := scanBudget(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}
	return &budget, nil
}

// ListBudgetsByMonth returns every budget recorded for a month.
func (s *SQLiteStorage) ListBudgetsByMonth(ctx context.Context, month model.MonthKey) ([]model.CategoryBudget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE month = ? ORDER BY category_id`,
		string(month))
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var out []model.CategoryBudget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		out = append(out, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return out, nil
}

// DeleteBudget physically removes a budget record.
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

func scanBudget(row scanner) (model.CategoryBudget, error) {
	var budget model.CategoryBudget
	var month string
	if err := row.Scan(&budget.ID, &budget.CategoryID, &budget.Amount,
		&budget.Currency, &month, &budget.CreatedAt, &budget.UpdatedAt); err != nil {
		return model.CategoryBudget{}, err
	}
	budget.Month = model.MonthKey(month)
	return budget, nil
}
