package model

import "time"

// CategoryBudget is a per-(category, month) spending ceiling. At most one
// budget exists per pair; the budget service enforces this by
// upsert-by-lookup rather than a unique index.
type CategoryBudget struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"categoryId"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	Month      MonthKey  `json:"month"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
