package model

import "time"

// SettingsID keys the single settings record.
const SettingsID = "user"

// Settings is the process-wide user preferences singleton. The
// processed-fixed-months idempotency ledger lives in its own table and is
// surfaced through service.MonthLedger; it travels with the settings object
// only in export archives.
type Settings struct {
	ID                string    `json:"id"`
	Locale            string    `json:"locale"`
	Theme             string    `json:"theme"`
	Currency          string    `json:"currency"`
	BiometricsEnabled bool      `json:"biometricsEnabled"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
