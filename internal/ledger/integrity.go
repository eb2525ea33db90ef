package ledger

import (
	"context"
	"fmt"

	"github.com/caixinha/caixinha/internal/common"
	"github.com/caixinha/caixinha/internal/service"
)

// Integrity owns referential safety on entity deletion: every transaction
// referencing the doomed category or account is repointed to a caller-chosen
// substitute before the entity is removed. Default entities are protected
// here, in the core, rather than trusting the caller.
type Integrity struct {
	store service.Storage
}

// NewIntegrity creates a referential integrity manager.
func NewIntegrity(store service.Storage) *Integrity {
	return &Integrity{store: store}
}

// DeleteCategory repoints every transaction referencing id to moveToID, then
// deletes the category. The substitute must exist, differ from the source,
// and share its type. Returns the number of transactions repointed.
func (m *Integrity) DeleteCategory(ctx context.Context, id, moveToID string) (int, error) {
	if id == moveToID {
		return 0, fmt.Errorf("%w: substitute category must differ from the deleted one", common.ErrValidation)
	}

	cat, err := m.store.GetCategory(ctx, id)
	if err != nil {
		return 0, err
	}
	if cat == nil {
		return 0, fmt.Errorf("%w: category %s", common.ErrNotFound, id)
	}
	if cat.IsDefault {
		return 0, fmt.Errorf("%w: category %s", common.ErrDefaultEntity, id)
	}

	target, err := m.store.GetCategory(ctx, moveToID)
	if err != nil {
		return 0, err
	}
	if target == nil {
		return 0, fmt.Errorf("%w: substitute category %s", common.ErrNotFound, moveToID)
	}
	if target.Type != cat.Type {
		return 0, fmt.Errorf("%w: cannot move %s transactions to a %s category",
			common.ErrValidation, cat.Type, target.Type)
	}

	return m.store.ReassignAndDeleteCategory(ctx, id, moveToID)
}

// DeleteAccount repoints every transaction referencing id to moveToID, then
// deletes the account. Returns the number of transactions repointed.
func (m *Integrity) DeleteAccount(ctx context.Context, id, moveToID string) (int, error) {
	if id == moveToID {
		return 0, fmt.Errorf("%w: substitute account must differ from the deleted one", common.ErrValidation)
	}

	acc, err := m.store.GetAccount(ctx, id)
	if err != nil {
		return 0, err
	}
	if acc == nil {
		return 0, fmt.Errorf("%w: account %s", common.ErrNotFound, id)
	}
	if acc.IsDefault {
		return 0, fmt.Errorf("%w: account %s", common.ErrDefaultEntity, id)
	}

	target, err := m.store.GetAccount(ctx, moveToID)
	if err != nil {
		return 0, err
	}
	if target == nil {
		return 0, fmt.Errorf("%w: substitute account %s", common.ErrNotFound, moveToID)
	}

	return m.store.ReassignAndDeleteAccount(ctx, id, moveToID)
}
