package model

import "time"

// Category is a classification bucket scoped to exactly one transaction
// type. The one IsDefault category per type is the non-deletable catch-all;
// IsSystem categories are seeded at initialization and store a label key in
// Name that the presentation layer resolves to display text.
type Category struct {
	ID        string          `json:"id"`
	Type      TransactionType `json:"type"`
	Name      string          `json:"name"`
	Color     string          `json:"color,omitempty"`
	Icon      string          `json:"icon,omitempty"`
	IsDefault bool            `json:"isDefault"`
	IsSystem  bool            `json:"isSystem"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Account is a money container. Accounts are currency-agnostic: balances are
// tracked per currency a transaction has used. Exactly one account carries
// IsDefault and cannot be deleted.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
