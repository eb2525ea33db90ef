package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/caixinha/caixinha/internal/model"
)

// GetSettings returns the user settings singleton, or (nil, nil) before
// first-run initialization has seeded it.
func (s *SQLiteStorage) GetSettings(ctx context.Context) (*model.Settings, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, locale, theme, currency, biometrics_enabled, created_at, updated_at
		FROM settings WHERE id = ?`, model.SettingsID)

	var settings model.Settings
	err := row.Scan(&settings.ID, &settings.Locale, &settings.Theme,
		&settings.Currency, &settings.BiometricsEnabled,
		&settings.CreatedAt, &settings.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	return &settings, nil
}

// SaveSettings inserts or fully overwrites the settings singleton.
func (s *SQLiteStorage) SaveSettings(ctx context.Context, settings *model.Settings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if settings == nil {
		return fmt.Errorf("%w: settings", ErrNilParameter)
	}
	if settings.ID == "" {
		settings.ID = model.SettingsID
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO settings
			(id, locale, theme, currency, biometrics_enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		settings.ID, settings.Locale, settings.Theme, settings.Currency,
		settings.BiometricsEnabled, settings.CreatedAt, settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
