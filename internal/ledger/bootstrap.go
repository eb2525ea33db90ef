package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/caixinha/caixinha/internal/model"
	"github.com/caixinha/caixinha/internal/service"
)

// System category label keys, resolved to display text by the presentation
// layer. The "none" entries are the non-deletable per-type defaults.
var systemCategories = []struct {
	key       string
	ctype     model.TransactionType
	isDefault bool
}{
	{"category.none.income", model.TypeIncome, true},
	{"category.salary", model.TypeIncome, false},
	{"category.investments", model.TypeIncome, false},
	{"category.gifts", model.TypeIncome, false},
	{"category.none.expense", model.TypeExpense, true},
	{"category.food", model.TypeExpense, false},
	{"category.transport", model.TypeExpense, false},
	{"category.home", model.TypeExpense, false},
	{"category.health", model.TypeExpense, false},
	{"category.leisure", model.TypeExpense, false},
	{"category.education", model.TypeExpense, false},
	{"category.shopping", model.TypeExpense, false},
	{"category.subscriptions", model.TypeExpense, false},
	{"category.travel", model.TypeExpense, false},
	{"category.taxes", model.TypeExpense, false},
}

const defaultAccountName = "account.wallet"

// seedID derives a stable id for a seeded entity, so repeated initialization
// can never duplicate defaults.
func seedID(kind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("caixinha:"+kind+":"+name)).String()
}

// Initialize seeds the settings singleton, the default account, and the
// built-in categories on first run. It is idempotent and safe to run on
// every startup: existing records are left untouched.
func Initialize(ctx context.Context, store service.Storage) error {
	now := time.Now().UTC()

	settings, err := store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	firstRun := settings == nil
	if firstRun {
		settings = &model.Settings{
			ID:        model.SettingsID,
			Locale:    "pt-BR",
			Theme:     "system",
			Currency:  "BRL",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := store.SaveSettings(ctx, settings); err != nil {
			return fmt.Errorf("failed to seed settings: %w", err)
		}
	}

	for _, seed := range systemCategories {
		id := seedID("category", seed.key)
		existing, err := store.GetCategory(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to read seeded category: %w", err)
		}
		if existing != nil {
			continue
		}
		cat := &model.Category{
			ID:        id,
			Type:      seed.ctype,
			Name:      seed.key,
			IsDefault: seed.isDefault,
			IsSystem:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := store.SaveCategory(ctx, cat); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", seed.key, err)
		}
	}

	accountID := seedID("account", defaultAccountName)
	existing, err := store.GetAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to read seeded account: %w", err)
	}
	if existing == nil {
		acc := &model.Account{
			ID:        accountID,
			Name:      defaultAccountName,
			IsDefault: true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := store.SaveAccount(ctx, acc); err != nil {
			return fmt.Errorf("failed to seed default account: %w", err)
		}
	}

	if firstRun {
		slog.Info("initialized defaults",
			"categories", len(systemCategories), "default_account", defaultAccountName)
	}
	return nil
}

// DefaultCategoryID returns the id of the catch-all category for a type.
func DefaultCategoryID(t model.TransactionType) string {
	if t == model.TypeIncome {
		return seedID("category", "category.none.income")
	}
	return seedID("category", "category.none.expense")
}

// DefaultAccountID returns the id of the seeded default account.
func DefaultAccountID() string {
	return seedID("account", defaultAccountName)
}
