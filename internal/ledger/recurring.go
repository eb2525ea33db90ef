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

// FixedGenerator materializes each month's fixed transactions by cloning the
// previous month's. It must run before any read of a month's transactions
// and is idempotent: the processed-months ledger makes redundant calls
// no-ops.
type FixedGenerator struct {
	store service.Storage
	month service.MonthLedger
	newID func() string
	now   func() time.Time
}

// NewFixedGenerator creates a generator backed by the given storage and
// processed-months ledger.
func NewFixedGenerator(store service.Storage, month service.MonthLedger) *FixedGenerator {
	return &FixedGenerator{
		store: store,
		month: month,
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// GenerateForMonth clones the previous month's fixed transactions into the
// target month and marks the month processed. Clones start pending — a new
// month's fixed bill is unpaid until confirmed — and keep the source's
// day-of-month clamped to the target month's last valid day, so a bill dated
// Jan 31 lands on Feb 29 or Feb 28, never in March. A month with no fixed
// transactions is still marked processed and never re-scanned. Returns the
// number of transactions created; 0 when the month was already processed.
//
// The clone inserts and the processed mark commit together: a failed run
// leaves the month unprocessed and fully retryable.
func (g *FixedGenerator) GenerateForMonth(ctx context.Context, month model.MonthKey) (int, error) {
	if !month.Valid() {
		return 0, fmt.Errorf("invalid month key %q", month)
	}

	processed, err := g.month.IsProcessed(ctx, month)
	if err != nil {
		return 0, err
	}
	if processed {
		return 0, nil
	}

	prev := month.Prev()
	prevTxns, err := g.store.ListTransactionsByMonth(ctx, prev)
	if err != nil {
		return 0, fmt.Errorf("failed to read previous month: %w", err)
	}

	now := g.now()
	var clones []model.Transaction
	for _, src := range prevTxns {
		if !src.IsFixed {
			continue
		}
		clone := model.Transaction{
			ID:          g.newID(),
			Type:        src.Type,
			Value:       src.Value,
			Currency:    src.Currency,
			Description: src.Description,
			Observation: src.Observation,
			CategoryID:  src.CategoryID,
			AccountID:   src.AccountID,
			Date:        month.ClampDay(src.Date.Day()),
			IsCompleted: false,
			IsFixed:     true,
			IsRepeating: false,
			Tags:        append([]string(nil), src.Tags...),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		clones = append(clones, clone)
	}

	if err := g.store.SaveGeneratedMonth(ctx, month, clones); err != nil {
		return 0, fmt.Errorf("failed to generate month %s: %w", month, err)
	}

	if len(clones) == 0 {
		slog.Debug("no fixed transactions to generate", "month", month, "previous", prev)
	}
	return len(clones), nil
}
