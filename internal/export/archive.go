// Package export implements the versioned JSON archive format used to move a
// whole database between devices. Import merges by identity rather than
// replacing: records already present are skipped, everything else is
// inserted verbatim with its original id and timestamps.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caixinha/caixinha/internal/model"
	"github.com/caixinha/caixinha/internal/service"
)

// FormatVersion is the archive schema version this build reads and writes.
const FormatVersion = 1

// Settings is the archived settings singleton together with the
// processed-fixed-months ledger it owns.
type Settings struct {
	model.Settings
	ProcessedFixedMonths []model.MonthKey `json:"processedFixedMonths"`
}

// Archive is the on-disk export format.
type Archive struct {
	Version      int                 `json:"version"`
	ExportedAt   time.Time           `json:"exportedAt"`
	Transactions []model.Transaction `json:"transactions"`
	Categories   []model.Category    `json:"categories"`
	Accounts     []model.Account     `json:"accounts"`
	Settings     *Settings           `json:"settings,omitempty"`
}

// Snapshot reads the whole database into an archive.
func Snapshot(ctx context.Context, store service.Storage, months service.MonthLedger) (*Archive, error) {
	txns, err := store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	categories, err := store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	accounts, err := store.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}

	archive := &Archive{
		Version:      FormatVersion,
		ExportedAt:   time.Now().UTC(),
		Transactions: txns,
		Categories:   categories,
		Accounts:     accounts,
	}

	settings, err := store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if settings != nil {
		processed, err := months.ProcessedMonths(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read processed months: %w", err)
		}
		archive.Settings = &Settings{Settings: *settings, ProcessedFixedMonths: processed}
	}

	return archive, nil
}

// Write serializes the archive as indented JSON.
func (a *Archive) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}
	return nil
}

// Read parses and version-checks an archive.
func Read(r io.Reader) (*Archive, error) {
	var archive Archive
	if err := json.NewDecoder(r).Decode(&archive); err != nil {
		return nil, fmt.Errorf("failed to decode archive: %w", err)
	}
	if archive.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported archive version %d (expected %d)", archive.Version, FormatVersion)
	}
	return &archive, nil
}

// Stats reports what an import actually inserted versus skipped.
type Stats struct {
	TransactionsAdded   int
	TransactionsSkipped int
	CategoriesAdded     int
	CategoriesSkipped   int
	AccountsAdded       int
	AccountsSkipped     int
	SettingsApplied     bool
	MonthsMarked        int
}

// Merge imports an archive into the store. Categories dedupe by (type,
// name), accounts by name, transactions by id; records not already present
// are inserted as-is. Settings only land when none exist yet; processed
// months are unioned. onTransaction, when non-nil, is called after every
// transaction considered — the CLI drives its progress bar with it.
func Merge(ctx context.Context, store service.Storage, months service.MonthLedger, archive *Archive, onTransaction func()) (*Stats, error) {
	if archive == nil {
		return nil, fmt.Errorf("archive cannot be nil")
	}
	stats := &Stats{}

	// Categories and accounts first: transactions reference them.
	existingCats, err := store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	haveCat := make(map[string]bool, len(existingCats))
	for _, cat := range existingCats {
		haveCat[categoryKey(cat.Type, cat.Name)] = true
	}
	for i := range archive.Categories {
		cat := archive.Categories[i]
		key := categoryKey(cat.Type, cat.Name)
		if haveCat[key] {
			stats.CategoriesSkipped++
			continue
		}
		if err := store.SaveCategory(ctx, &cat); err != nil {
			return stats, fmt.Errorf("failed to import category %s: %w", cat.ID, err)
		}
		haveCat[key] = true
		stats.CategoriesAdded++
	}

	existingAccs, err := store.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	haveAcc := make(map[string]bool, len(existingAccs))
	for _, acc := range existingAccs {
		haveAcc[strings.ToLower(acc.Name)] = true
	}
	for i := range archive.Accounts {
		acc := archive.Accounts[i]
		key := strings.ToLower(acc.Name)
		if haveAcc[key] {
			stats.AccountsSkipped++
			continue
		}
		if err := store.SaveAccount(ctx, &acc); err != nil {
			return stats, fmt.Errorf("failed to import account %s: %w", acc.ID, err)
		}
		haveAcc[key] = true
		stats.AccountsAdded++
	}

	for i := range archive.Transactions {
		txn := archive.Transactions[i]
		existing, err := store.GetTransaction(ctx, txn.ID)
		if err != nil {
			return stats, fmt.Errorf("failed to check transaction %s: %w", txn.ID, err)
		}
		if existing != nil {
			stats.TransactionsSkipped++
		} else {
			if err := store.SaveTransaction(ctx, &txn); err != nil {
				return stats, fmt.Errorf("failed to import transaction %s: %w", txn.ID, err)
			}
			stats.TransactionsAdded++
		}
		if onTransaction != nil {
			onTransaction()
		}
	}

	if archive.Settings != nil {
		current, err := store.GetSettings(ctx)
		if err != nil {
			return stats, fmt.Errorf("failed to read settings: %w", err)
		}
		if current == nil {
			settings := archive.Settings.Settings
			if err := store.SaveSettings(ctx, &settings); err != nil {
				return stats, fmt.Errorf("failed to import settings: %w", err)
			}
			stats.SettingsApplied = true
		}
		for _, month := range archive.Settings.ProcessedFixedMonths {
			processed, err := months.IsProcessed(ctx, month)
			if err != nil {
				return stats, fmt.Errorf("failed to check processed month %s: %w", month, err)
			}
			if processed {
				continue
			}
			if err := months.MarkProcessed(ctx, month); err != nil {
				return stats, fmt.Errorf("failed to mark month %s: %w", month, err)
			}
			stats.MonthsMarked++
		}
	}

	slog.Info("imported archive",
		"transactions", stats.TransactionsAdded,
		"categories", stats.CategoriesAdded,
		"accounts", stats.AccountsAdded,
		"skipped", stats.TransactionsSkipped+stats.CategoriesSkipped+stats.AccountsSkipped)
	return stats, nil
}

func categoryKey(t model.TransactionType, name string) string {
	return string(t) + ":" + strings.ToLower(name)
}
