// Package service defines the interfaces the domain services depend on.
package service

import (
	"context"

	"github.com/caixinha/caixinha/internal/model"
)

// Storage defines the contract for the persistence layer. It is deliberately
// dumb keyed storage: saves are full overwrites by id, reads return
// (nil, nil) on absence, and no referential checks happen here — the ledger
// services in front of it own validation.
type Storage interface {
	// Transaction operations.
	SaveTransaction(ctx context.Context, txn *model.Transaction) error
	SaveTransactions(ctx context.Context, txns []model.Transaction) error
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	ListTransactionsByMonth(ctx context.Context, month model.MonthKey) ([]model.Transaction, error)
	ListTransactionsByRange(ctx context.Context, start, end model.Date) ([]model.Transaction, error)
	ListTransactionsByCategory(ctx context.Context, categoryID string) ([]model.Transaction, error)
	ListTransactionsByAccount(ctx context.Context, accountID string) ([]model.Transaction, error)
	ListTransactionsByParent(ctx context.Context, parentRepeatID string) ([]model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	DeleteTransactionsByParent(ctx context.Context, parentRepeatID string, pendingOnly bool) (int, error)

	// Composite operations, each atomic in one database transaction.
	ReassignAndDeleteCategory(ctx context.Context, fromID, toID string) (int, error)
	ReassignAndDeleteAccount(ctx context.Context, fromID, toID string) (int, error)
	SaveGeneratedMonth(ctx context.Context, month model.MonthKey, txns []model.Transaction) error

	// Category operations.
	SaveCategory(ctx context.Context, cat *model.Category) error
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListCategoriesByType(ctx context.Context, t model.TransactionType) ([]model.Category, error)

	// Account operations.
	SaveAccount(ctx context.Context, acc *model.Account) error
	GetAccount(ctx context.Context, id string) (*model.Account, error)
	ListAccounts(ctx context.Context) ([]model.Account, error)

	// Settings singleton.
	GetSettings(ctx context.Context) (*model.Settings, error)
	SaveSettings(ctx context.Context, settings *model.Settings) error

	// Budget operations.
	SaveBudget(ctx context.Context, budget *model.CategoryBudget) error
	GetBudget(ctx context.Context, id string) (*model.CategoryBudget, error)
	GetBudgetByCategoryMonth(ctx context.Context, categoryID string, month model.MonthKey) (*model.CategoryBudget, error)
	ListBudgetsByMonth(ctx context.Context, month model.MonthKey) ([]model.CategoryBudget, error)
	DeleteBudget(ctx context.Context, id string) error

	// Aggregation primitives.
	AccountBalances(ctx context.Context) (map[string]map[string]float64, error)

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}

// MonthLedger records which calendar months have had fixed-transaction
// generation applied. The transition to processed is one-way; there is no
// reprocess operation.
type MonthLedger interface {
	IsProcessed(ctx context.Context, month model.MonthKey) (bool, error)
	MarkProcessed(ctx context.Context, month model.MonthKey) error
	ProcessedMonths(ctx context.Context) ([]model.MonthKey, error)
}
