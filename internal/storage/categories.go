package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/caixinha/caixinha/internal/model"
)

const categoryColumns = `id, type, name, color, icon, is_default, is_system, created_at, updated_at`

// SaveCategory inserts or fully overwrites a category by id.
func (s *SQLiteStorage) SaveCategory(ctx context.Context, cat *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(cat); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO categories (`+categoryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cat.ID, cat.Type, cat.Name, cat.Color, cat.Icon,
		cat.IsDefault, cat.IsSystem, cat.CreatedAt, cat.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

// GetCategory returns the category with the given id, or (nil, nil) when it
// does not exist.
func (s *SQLiteStorage) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	var cat model.Category
	err := row.Scan(&cat.ID, &cat.Type, &cat.Name, &cat.Color, &cat.Icon,
		&cat.IsDefault, &cat.IsSystem, &cat.CreatedAt, &cat.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return &cat, nil
}

// ListCategories returns all categories ordered by type then name.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryCategories(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY type, name`)
}

// ListCategoriesByType returns the categories scoped to one transaction type.
func (s *SQLiteStorage) ListCategoriesByType(ctx context.Context, t model.TransactionType) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidCategory, t)
	}
	return s.queryCategories(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE type = ? ORDER BY name`, t)
}

// ReassignAndDeleteCategory repoints every transaction referencing fromID to
// toID (bumping updated_at) and then deletes the source category, all in one
// database transaction. Returns the number of transactions repointed.
func (s *SQLiteStorage) ReassignAndDeleteCategory(ctx context.Context, fromID, toID string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(fromID, "fromID"); err != nil {
		return 0, err
	}
	if err := validateString(toID, "toID"); err != nil {
		return 0, err
	}

	var moved int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE transactions SET category_id = ?, updated_at = ? WHERE category_id = ?`,
			toID, time.Now().UTC(), fromID)
		if err != nil {
			return fmt.Errorf("failed to repoint transactions: %w", err)
		}
		if moved, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to count repointed rows: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, fromID); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("deleted category", "id", fromID, "moved_to", toID, "transactions_repointed", moved)
	return int(moved), nil
}

func (s *SQLiteStorage) queryCategories(ctx context.Context, query string, args ...any) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Type, &cat.Name, &cat.Color, &cat.Icon,
			&cat.IsDefault, &cat.IsSystem, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return out, nil
}
