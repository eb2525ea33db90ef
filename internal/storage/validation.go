package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/caixinha/caixinha/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidDateRange   = errors.New("start date must be before end date")
	ErrInvalidMonth       = errors.New("invalid month key")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidAccount     = errors.New("invalid account")
	ErrInvalidBudget      = errors.New("invalid budget")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateMonth ensures a month key is well-formed.
func validateMonth(month model.MonthKey) error {
	if !month.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	return nil
}

// validateTransaction validates a single transaction record shape. This is
// storage-level shape checking only; referential checks live in the ledger
// services.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if !txn.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, txn.Type)
	}
	if txn.Value < 0 {
		return fmt.Errorf("%w: negative value", ErrInvalidTransaction)
	}
	if !txn.Date.Valid() {
		return fmt.Errorf("%w: malformed date %q", ErrInvalidTransaction, txn.Date)
	}
	if txn.Currency == "" {
		return fmt.Errorf("%w: missing currency", ErrInvalidTransaction)
	}
	return nil
}

// validateCategory validates a category record shape.
func validateCategory(cat *model.Category) error {
	if cat == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if cat.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidCategory)
	}
	if strings.TrimSpace(cat.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCategory)
	}
	if !cat.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCategory, cat.Type)
	}
	return nil
}

// validateAccount validates an account record shape.
func validateAccount(acc *model.Account) error {
	if acc == nil {
		return fmt.Errorf("%w: account", ErrNilParameter)
	}
	if acc.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidAccount)
	}
	if strings.TrimSpace(acc.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidAccount)
	}
	return nil
}

// validateBudget validates a budget record shape.
func validateBudget(b *model.CategoryBudget) error {
	if b == nil {
		return fmt.Errorf("%w: budget", ErrNilParameter)
	}
	if b.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidBudget)
	}
	if b.CategoryID == "" {
		return fmt.Errorf("%w: missing category ID", ErrInvalidBudget)
	}
	if b.Amount < 0 {
		return fmt.Errorf("%w: negative amount", ErrInvalidBudget)
	}
	if b.Currency == "" {
		return fmt.Errorf("%w: missing currency", ErrInvalidBudget)
	}
	if !b.Month.Valid() {
		return fmt.Errorf("%w: malformed month %q", ErrInvalidBudget, b.Month)
	}
	return nil
}
