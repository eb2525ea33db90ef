package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/caixinha/caixinha/internal/model"
)

// IsProcessed reports whether fixed-transaction generation has already run
// for the given month.
func (s *SQLiteStorage) IsProcessed(ctx context.Context, month model.MonthKey) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateMonth(month); err != nil {
		return false, err
	}

	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM processed_months WHERE month = ?`, string(month)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query processed months: %w", err)
	}
	return true, nil
}

// MarkProcessed records a month as processed. The ledger is append-only;
// marking an already-processed month is a no-op.
func (s *SQLiteStorage) MarkProcessed(ctx context.Context, month model.MonthKey) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateMonth(month); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO processed_months (month, processed_at) VALUES (?, ?)`,
		string(month), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark month processed: %w", err)
	}
	return nil
}

// ProcessedMonths returns every processed month key in ascending order.
func (s *SQLiteStorage) ProcessedMonths(ctx context.Context) ([]model.MonthKey, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT month FROM processed_months ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("failed to query processed months: %w", err)
	}
	defer rows.Close()

	var out []model.MonthKey
	for rows.Next() {
		var month string
		if err := rows.Scan(&month); err != nil {
			return nil, fmt.Errorf("failed to scan processed month: %w", err)
		}
		out = append(out, model.MonthKey(month))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating processed months: %w", err)
	}
	return out, nil
}

// SaveGeneratedMonth inserts a month's generated fixed transactions and marks
// the month processed in one database transaction. Either every clone lands
// and the month is marked, or nothing changes — a failed run leaves the
// month unprocessed and safe to retry.
func (s *SQLiteStorage) SaveGeneratedMonth(ctx context.Context, month model.MonthKey, txns []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateMonth(month); err != nil {
		return err
	}
	for i := range txns {
		if err := validateTransaction(&txns[i]); err != nil {
			return fmt.Errorf("generated transaction at index %d: %w", i, err)
		}
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for i := range txns {
			if err := execSaveTransaction(ctx, tx, &txns[i]); err != nil {
				return fmt.Errorf("failed to save generated transaction %s: %w", txns[i].ID, err)
			}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO processed_months (month, processed_at) VALUES (?, ?)`,
			string(month), time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to mark month processed: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("generated fixed transactions", "month", month, "count", len(txns))
	return nil
}
