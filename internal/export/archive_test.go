package export

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caixinha/caixinha/internal/ledger"
	"github.com/caixinha/caixinha/internal/model"
	"github.com/caixinha/caixinha/internal/storage"
)

func newTestStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, ledger.Initialize(ctx, store))
	return store
}

func addTransaction(t *testing.T, store *storage.SQLiteStorage, id string, date model.Date) model.Transaction {
	t.Helper()
	now := time.Now().UTC()
	txn := model.Transaction{
		ID:          id,
		Type:        model.TypeExpense,
		Value:       42,
		Currency:    "BRL",
		Description: "archived " + id,
		CategoryID:  ledger.DefaultCategoryID(model.TypeExpense),
		AccountID:   ledger.DefaultAccountID(),
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, store.SaveTransaction(context.Background(), &txn))
	return txn
}

func TestSnapshotWriteReadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	addTransaction(t, store, "txn-1", "2024-03-01")
	addTransaction(t, store, "txn-2", "2024-03-15")
	require.NoError(t, store.MarkProcessed(ctx, "2024-03"))

	archive, err := Snapshot(ctx, store, store)
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, archive.Version)
	assert.Len(t, archive.Transactions, 2)
	require.NotNil(t, archive.Settings)
	assert.Equal(t, []model.MonthKey{"2024-03"}, archive.Settings.ProcessedFixedMonths)

	var buf bytes.Buffer
	require.NoError(t, archive.Write(&buf))

	decoded, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, decoded.Transactions, 2)
	assert.Equal(t, archive.Transactions[0].ID, decoded.Transactions[0].ID)
	assert.Len(t, decoded.Categories, len(archive.Categories))
	require.NotNil(t, decoded.Settings)
	assert.Equal(t, archive.Settings.Currency, decoded.Settings.Currency)
}

func TestRead_VersionMismatch(t *testing.T) {
	_, err := Read(strings.NewReader(`{"version": 99}`))
	assert.Error(t, err)
}

func TestRead_Malformed(t *testing.T) {
	_, err := Read(strings.NewReader(`{not json`))
	assert.Error(t, err)
}

func TestMerge_IntoEmptyStore(t *testing.T) {
	source := newTestStore(t)
	ctx := context.Background()

	addTransaction(t, source, "txn-1", "2024-03-01")
	require.NoError(t, source.MarkProcessed(ctx, "2024-03"))
	archive, err := Snapshot(ctx, source, source)
	require.NoError(t, err)

	// Fresh database without seeded defaults: everything in the archive is new.
	dbPath := filepath.Join(t.TempDir(), "fresh.db")
	target, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = target.Close() }()
	require.NoError(t, target.Migrate(ctx))

	calls := 0
	stats, err := Merge(ctx, target, target, archive, func() { calls++ })
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TransactionsAdded)
	assert.Equal(t, 0, stats.TransactionsSkipped)
	assert.Equal(t, len(archive.Categories), stats.CategoriesAdded)
	assert.Equal(t, len(archive.Accounts), stats.AccountsAdded)
	assert.True(t, stats.SettingsApplied)
	assert.Equal(t, 1, stats.MonthsMarked)
	assert.Equal(t, 1, calls, "progress callback runs once per transaction")

	got, err := target.GetTransaction(ctx, "txn-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "archived txn-1", got.Description)

	processed, err := target.IsProcessed(ctx, "2024-03")
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestMerge_SkipsExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	addTransaction(t, store, "txn-1", "2024-03-01")
	require.NoError(t, store.MarkProcessed(ctx, "2024-03"))
	archive, err := Snapshot(ctx, store, store)
	require.NoError(t, err)

	// Importing a snapshot into its own source must change nothing.
	stats, err := Merge(ctx, store, store, archive, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TransactionsAdded)
	assert.Equal(t, 1, stats.TransactionsSkipped)
	assert.Equal(t, 0, stats.CategoriesAdded)
	assert.Equal(t, 0, stats.AccountsAdded)
	assert.False(t, stats.SettingsApplied, "settings already present")
	assert.Equal(t, 0, stats.MonthsMarked)

	all, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMerge_DedupesCategoriesByTypeAndName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	archive := &Archive{
		Version: FormatVersion,
		Categories: []model.Category{
			// Same type and name as a seeded system category, different id.
			{ID: "other-id", Type: model.TypeExpense, Name: "category.food", CreatedAt: now, UpdatedAt: now},
			{ID: "new-id", Type: model.TypeExpense, Name: "Brand New", CreatedAt: now, UpdatedAt: now},
		},
	}

	stats, err := Merge(ctx, store, store, archive, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CategoriesAdded)
	assert.Equal(t, 1, stats.CategoriesSkipped)
}

func TestMerge_NilArchive(t *testing.T) {
	store := newTestStore(t)
	_, err := Merge(context.Background(), store, store, nil, nil)
	assert.Error(t, err)
}
