package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/caixinha/caixinha/internal/model"
)

const transactionColumns = `id, type, value, currency, description, observation,
	category_id, account_id, date, is_completed, completed_at, is_fixed,
	is_repeating, repeat_period, repeat_times, repeat_custom_days,
	repeat_index, repeat_total, parent_repeat_id, tags, created_at, updated_at`

// SaveTransaction inserts or fully overwrites a transaction by id. There are
// no partial merge semantics at this layer; callers merge before calling.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	if err := execSaveTransaction(ctx, s.db, txn); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// SaveTransactions writes a batch of transactions atomically. Used for
// installment fan-out, where the whole series must land or none of it.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, txns []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for i := range txns {
		if err := validateTransaction(&txns[i]); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for i := range txns {
			if err := execSaveTransaction(ctx, tx, &txns[i]); err != nil {
				return fmt.Errorf("failed to save transaction %s: %w", txns[i].ID, err)
			}
		}
		return nil
	})
}

// execer covers both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func execSaveTransaction(ctx context.Context, db execer, txn *model.Transaction) error {
	tags, err := marshalTags(txn.Tags)
	if err != nil {
		return err
	}

	var period sql.NullString
	var times, customDays sql.NullInt64
	if txn.RepeatConfig != nil {
		period = sql.NullString{String: string(txn.RepeatConfig.Period), Valid: true}
		times = sql.NullInt64{Int64: int64(txn.RepeatConfig.Times), Valid: true}
		if txn.RepeatConfig.CustomDays > 0 {
			customDays = sql.NullInt64{Int64: int64(txn.RepeatConfig.CustomDays), Valid: true}
		}
	}

	_, err = db.ExecContext(ctx, `
		INSERT OR REPLACE INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.Type, txn.Value, txn.Currency, txn.Description, txn.Observation,
		txn.CategoryID, txn.AccountID, string(txn.Date), txn.IsCompleted, txn.CompletedAt,
		txn.IsFixed, txn.IsRepeating, period, times, customDays,
		txn.RepeatIndex, txn.RepeatTotal, nullString(txn.ParentRepeatID), tags,
		txn.CreatedAt, txn.UpdatedAt)
	return err
}

// GetTransaction returns the transaction with the given id, or (nil, nil)
// when it does not exist.
func (s *SQLiteStorage) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	txn, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	return &txn, nil
}

// ListTransactions returns every stored transaction ordered by date.
func (s *SQLiteStorage) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY date, created_at`)
}

// ListTransactionsByMonth returns the transactions whose date falls in the
// given calendar month.
func (s *SQLiteStorage) ListTransactionsByMonth(ctx context.Context, month model.MonthKey) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	start, end := month.Range()
	return s.ListTransactionsByRange(ctx, start, end)
}

// ListTransactionsByRange returns transactions with start <= date <= end.
// Dates are YYYY-MM-DD strings, so lexicographic comparison is date
// comparison.
func (s *SQLiteStorage) ListTransactionsByRange(ctx context.Context, start, end model.Date) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if !start.Valid() || !end.Valid() || end < start {
		return nil, fmt.Errorf("%w: %s..%s", ErrInvalidDateRange, start, end)
	}
	return s.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE date >= ? AND date <= ? ORDER BY date, created_at`,
		string(start), string(end))
}

// ListTransactionsByCategory returns the transactions referencing a category.
func (s *SQLiteStorage) ListTransactionsByCategory(ctx context.Context, categoryID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return nil, err
	}
	return s.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE category_id = ? ORDER BY date`,
		categoryID)
}

// ListTransactionsByAccount returns the transactions referencing an account.
func (s *SQLiteStorage) ListTransactionsByAccount(ctx context.Context, accountID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return nil, err
	}
	return s.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE account_id = ? ORDER BY date`,
		accountID)
}

// ListTransactionsByParent returns every installment sharing a series id,
// ordered by repeat index.
func (s *SQLiteStorage) ListTransactionsByParent(ctx context.Context, parentRepeatID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(parentRepeatID, "parentRepeatID"); err != nil {
		return nil, err
	}
	return s.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE parent_repeat_id = ? ORDER BY repeat_index`,
		parentRepeatID)
}

// DeleteTransaction physically removes a single transaction.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// DeleteTransactionsByParent removes every installment of a series. With
// pendingOnly set, completed installments are preserved and only the
// not-yet-confirmed remainder is removed. Returns the number deleted.
func (s *SQLiteStorage) DeleteTransactionsByParent(ctx context.Context, parentRepeatID string, pendingOnly bool) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(parentRepeatID, "parentRepeatID"); err != nil {
		return 0, err
	}

	query := `DELETE FROM transactions WHERE parent_repeat_id = ?`
	if pendingOnly {
		query += ` AND is_completed = 0`
	}
	res, err := s.db.ExecContext(ctx, query, parentRepeatID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete series: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted rows: %w", err)
	}

	slog.Debug("deleted installment series", "parent", parentRepeatID, "pending_only", pendingOnly, "count", n)
	return int(n), nil
}

func (s *SQLiteStorage) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		out = append(out, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return out, nil
}

// scanner handles both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (model.Transaction, error) {
	var txn model.Transaction
	var date string
	var completedAt sql.NullTime
	var period, parent, tags sql.NullString
	var times, customDays sql.NullInt64

	if err := row.Scan(&txn.ID, &txn.Type, &txn.Value, &txn.Currency,
		&txn.Description, &txn.Observation, &txn.CategoryID, &txn.AccountID,
		&date, &txn.IsCompleted, &completedAt, &txn.IsFixed, &txn.IsRepeating,
		&period, &times, &customDays, &txn.RepeatIndex, &txn.RepeatTotal,
		&parent, &tags, &txn.CreatedAt, &txn.UpdatedAt); err != nil {
		return model.Transaction{}, err
	}

	txn.Date = model.Date(date)
	if completedAt.Valid {
		t := completedAt.Time
		txn.CompletedAt = &t
	}
	if period.Valid {
		txn.RepeatConfig = &model.RepeatConfig{
			Period: model.RepeatPeriod(period.String),
			Times:  int(times.Int64),
		}
		if customDays.Valid {
			txn.RepeatConfig.CustomDays = int(customDays.Int64)
		}
	}
	if parent.Valid {
		txn.ParentRepeatID = parent.String
	}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &txn.Tags); err != nil {
			return model.Transaction{}, fmt.Errorf("failed to decode tags: %w", err)
		}
	}
	return txn, nil
}

func marshalTags(tags []string) (sql.NullString, error) {
	if len(tags) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode tags: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
