package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caixinha/caixinha/internal/common"
	"github.com/caixinha/caixinha/internal/model"
	"github.com/caixinha/caixinha/internal/service"
)

// Catalog creates user-defined categories and accounts. Deletion goes
// through Integrity, which owns the repoint-then-remove procedure.
type Catalog struct {
	store service.Storage
	newID func() string
	now   func() time.Time
}

// NewCatalog creates a catalog service.
func NewCatalog(store service.Storage) *Catalog {
	return &Catalog{
		store: store,
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// AddCategory creates a user category scoped to one transaction type. Names
// are unique per type, case-insensitively.
func (c *Catalog) AddCategory(ctx context.Context, t model.TransactionType, name, color, icon string) (*model.Category, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown category type %q", common.ErrValidation, t)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", common.ErrValidation)
	}

	existing, err := c.store.ListCategoriesByType(ctx, t)
	if err != nil {
		return nil, err
	}
	for _, cat := range existing {
		if strings.EqualFold(cat.Name, name) {
			return nil, fmt.Errorf("%w: category %q already exists", common.ErrValidation, name)
		}
	}

	now := c.now()
	cat := &model.Category{
		ID:        c.newID(),
		Type:      t,
		Name:      name,
		Color:     color,
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.store.SaveCategory(ctx, cat); err != nil {
		return nil, fmt.Errorf("failed to add category: %w", err)
	}
	return cat, nil
}

// AddAccount creates a user account. Names are unique, case-insensitively.
func (c *Catalog) AddAccount(ctx context.Context, name, color, icon string) (*model.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", common.ErrValidation)
	}

	existing, err := c.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, acc := range existing {
		if strings.EqualFold(acc.Name, name) {
			return nil, fmt.Errorf("%w: account %q already exists", common.ErrValidation, name)
		}
	}

	now := c.now()
	acc := &model.Account{
		ID:        c.newID(),
		Name:      name,
		Color:     color,
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.store.SaveAccount(ctx, acc); err != nil {
		return nil, fmt.Errorf("failed to add account: %w", err)
	}
	return acc, nil
}
