package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/caixinha/caixinha/internal/model"
)

const accountColumns = `id, name, color, icon, is_default, created_at, updated_at`

// SaveAccount inserts or fully overwrites an account by id.
func (s *SQLiteStorage) SaveAccount(ctx context.Context, acc *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(acc); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		acc.ID, acc.Name, acc.Color, acc.Icon, acc.IsDefault, acc.CreatedAt, acc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// GetAccount returns the account with the given id, or (nil, nil) when it
// does not exist.
func (s *SQLiteStorage) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	var acc model.Account
	err := row.Scan(&acc.ID, &acc.Name, &acc.Color, &acc.Icon,
		&acc.IsDefault, &acc.CreatedAt, &acc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	return &acc, nil
}

// ListAccounts returns all accounts ordered by name.
func (s *SQLiteStorage) ListAccounts(ctx context.Context) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var out []model.Account
	for rows.Next() {
		var acc model.Account
		if err := rows.Scan(&acc.ID, &acc.Name, &acc.Color, &acc.Icon,
			&acc.IsDefault, &acc.CreatedAt, &acc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		out = append(out, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return out, nil
}

// ReassignAndDeleteAccount repoints every transaction referencing fromID to
// toID (bumping updated_at) and then deletes the source account, all in one
// database transaction. Returns the number of transactions repointed.
func (s *SQLiteStorage) ReassignAndDeleteAccount(ctx context.Context, fromID, toID string) (int, error) {
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
			`UPDATE transactions SET account_id = ?, updated_at = ? WHERE account_id = ?`,
			toID, time.Now().UTC(), fromID)
		if err != nil {
			return fmt.Errorf("failed to repoint transactions: %w", err)
		}
		if moved, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to count repointed rows: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, fromID); err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("deleted account", "id", fromID, "moved_to", toID, "transactions_repointed", moved)
	return int(moved), nil
}
