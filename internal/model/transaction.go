package model

import "time"

// TransactionType indicates whether a transaction is money in or money out.
type TransactionType string

const (
	// TypeIncome represents money received.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money spent.
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// RepeatPeriod is the cadence of an installment series.
type RepeatPeriod string

const (
	RepeatDaily   RepeatPeriod = "daily"
	RepeatWeekly  RepeatPeriod = "weekly"
	RepeatMonthly RepeatPeriod = "monthly"
	RepeatYearly  RepeatPeriod = "yearly"
	RepeatCustom  RepeatPeriod = "custom"
)

// Valid reports whether p is a known repeat period.
func (p RepeatPeriod) Valid() bool {
	switch p {
	case RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly, RepeatCustom:
		return true
	}
	return false
}

// RepeatConfig describes how an installment series fans out.
type RepeatConfig struct {
	Times      int          `json:"times"`
	Period     RepeatPeriod `json:"period"`
	CustomDays int          `json:"customDays,omitempty"`
}

// Transaction is a single dated money movement. Value is always
// non-negative; the sign is implied by Type. Amounts are tracked per
// currency code and never converted.
type Transaction struct {
	ID             string          `json:"id"`
	Type           TransactionType `json:"type"`
	Value          float64         `json:"value"`
	Currency       string          `json:"currency"`
	Description    string          `json:"description"`
	Observation    string          `json:"observation,omitempty"`
	CategoryID     string          `json:"categoryId"`
	AccountID      string          `json:"accountId"`
	Date           Date            `json:"date"`
	IsCompleted    bool            `json:"isCompleted"`
	CompletedAt    *time.Time      `json:"completedAt,omitempty"`
	IsFixed        bool            `json:"isFixed"`
	IsRepeating    bool            `json:"isRepeating"`
	RepeatConfig   *RepeatConfig   `json:"repeatConfig,omitempty"`
	RepeatIndex    int             `json:"repeatIndex,omitempty"`
	RepeatTotal    int             `json:"repeatTotal,omitempty"`
	ParentRepeatID string          `json:"parentRepeatId,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// SignedValue returns the value with the sign implied by the type.
func (t *Transaction) SignedValue() float64 {
	if t.Type == TypeExpense {
		return -t.Value
	}
	return t.Value
}

// TransactionPatch is an explicit partial update. Only non-nil fields are
// applied, so an omitted field can never accidentally clear stored data.
type TransactionPatch struct {
	Type        *TransactionType
	Value       *float64
	Currency    *string
	Description *string
	Observation *string
	CategoryID  *string
	AccountID   *string
	Date        *Date
	IsCompleted *bool
	IsFixed     *bool
	Tags        *[]string
}

// Apply merges the patch into txn, stamping CompletedAt when the completion
// flag flips on and clearing it when it flips off.
func (p TransactionPatch) Apply(txn *Transaction, now time.Time) {
	if p.Type != nil {
		txn.Type = *p.Type
	}
	if p.Value != nil {
		txn.Value = *p.Value
	}
	if p.Currency != nil {
		txn.Currency = *p.Currency
	}
	if p.Description != nil {
		txn.Description = *p.Description
	}
	if p.Observation != nil {
		txn.Observation = *p.Observation
	}
	if p.CategoryID != nil {
		txn.CategoryID = *p.CategoryID
	}
	if p.AccountID != nil {
		txn.AccountID = *p.AccountID
	}
	if p.Date != nil {
		txn.Date = *p.Date
	}
	if p.IsCompleted != nil && *p.IsCompleted != txn.IsCompleted {
		txn.IsCompleted = *p.IsCompleted
		if txn.IsCompleted {
			completed := now
			txn.CompletedAt = &completed
		} else {
			txn.CompletedAt = nil
		}
	}
	if p.IsFixed != nil {
		txn.IsFixed = *p.IsFixed
	}
	if p.Tags != nil {
		txn.Tags = *p.Tags
	}
	txn.UpdatedAt = now
}
