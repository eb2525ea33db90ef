package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/caixinha/caixinha/internal/common"
	"github.com/caixinha/caixinha/internal/config"
	"github.com/caixinha/caixinha/internal/ledger"
	"github.com/caixinha/caixinha/internal/model"
	"github.com/caixinha/caixinha/internal/storage"
)

func setupLogging() error {
	levelStr := viper.GetString("logging.level")
	format := viper.GetString("logging.format")

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return common.SetupLogger(level, format)
}

// initStorage opens the database, runs pending migrations, and seeds the
// built-in categories, default account, and settings on first run.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("could not open the database at %s", dbPath), err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := ledger.Initialize(ctx, store); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize defaults: %w", err)
	}

	return store, nil
}

// ensureMonthGenerated runs the fixed-transaction generator for a month
// before any read of that month, so recurring bills always show up.
func ensureMonthGenerated(ctx context.Context, store *storage.SQLiteStorage, month model.MonthKey) error {
	gen := ledger.NewFixedGenerator(store, store)
	created, err := gen.GenerateForMonth(ctx, month)
	if err != nil {
		return fmt.Errorf("failed to generate fixed transactions for %s: %w", month, err)
	}
	if created > 0 {
		slog.Debug("generated fixed transactions", "month", month, "count", created)
	}
	return nil
}

// parseMonthFlag parses a --month value, defaulting to the current month.
func parseMonthFlag(value string) (model.MonthKey, error) {
	if value == "" {
		now := time.Now()
		return model.NewMonthKey(now.Year(), now.Month()), nil
	}
	month, err := model.ParseMonthKey(value)
	if err != nil {
		return "", fmt.Errorf("invalid month %q (want YYYY-MM): %w", value, err)
	}
	return month, nil
}

// parseDateFlag parses a --date value, defaulting to today.
func parseDateFlag(value string) (model.Date, error) {
	if value == "" {
		return model.DateOf(time.Now()), nil
	}
	date, err := model.ParseDate(value)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", value, err)
	}
	return date, nil
}
