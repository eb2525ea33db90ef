package ledger

import (
	"context"
	"sort"

	"github.com/caixinha/caixinha/internal/model"
	"github.com/caixinha/caixinha/internal/service"
)

// Reports derives balances and time/category breakdowns on demand. Nothing
// is cached or incrementally maintained: every call recomputes from the
// transaction set, trading recompute cost for zero invalidation complexity —
// the dataset is one person's finances, full scans are cheap.
type Reports struct {
	store service.Storage
}

// NewReports creates an aggregation engine over the given storage.
func NewReports(store service.Storage) *Reports {
	return &Reports{store: store}
}

// AccountBalances returns each account's signed balance per currency over
// completed transactions only. Pending transactions never affect balances.
// Accounts with no completed transactions map to an empty currency map.
func (r *Reports) AccountBalances(ctx context.Context) (map[string]map[string]float64, error) {
	return r.store.AccountBalances(ctx)
}

// CurrencyFlow is an income/expense pair for one currency.
type CurrencyFlow struct {
	Currency string
	Income   float64
	Expense  float64
}

// MonthSummary is the aggregate view of one calendar month.
type MonthSummary struct {
	Month        model.MonthKey
	Flows        []CurrencyFlow
	ByCategory   []CategoryTotal
	PendingCount int
}

// CategoryTotal is a completed-transaction sum for one (category, currency)
// bucket of a given type.
type CategoryTotal struct {
	CategoryID string
	Currency   string
	Type       model.TransactionType
	Total      float64
}

// Summarize recomputes a month's totals from its transaction set. Sums cover
// completed transactions; pending ones are only counted.
func (r *Reports) Summarize(ctx context.Context, month model.MonthKey) (*MonthSummary, error) {
	txns, err := r.store.ListTransactionsByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	flows := make(map[string]*CurrencyFlow)
	categories := make(map[CategoryTotal]float64)
	summary := &MonthSummary{Month: month}

	for i := range txns {
		txn := &txns[i]
		if !txn.IsCompleted {
			summary.PendingCount++
			continue
		}
		flow, ok := flows[txn.Currency]
		if !ok {
			flow = &CurrencyFlow{Currency: txn.Currency}
			flows[txn.Currency] = flow
		}
		if txn.Type == model.TypeIncome {
			flow.Income += txn.Value
		} else {
			flow.Expense += txn.Value
		}
		key := CategoryTotal{CategoryID: txn.CategoryID, Currency: txn.Currency, Type: txn.Type}
		categories[key] += txn.Value
	}

	for _, flow := range flows {
		summary.Flows = append(summary.Flows, *flow)
	}
	sort.Slice(summary.Flows, func(i, j int) bool {
		return summary.Flows[i].Currency < summary.Flows[j].Currency
	})

	for key, total := range categories {
		key.Total = total
		summary.ByCategory = append(summary.ByCategory, key)
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		a, b := summary.ByCategory[i], summary.ByCategory[j]
		if a.CategoryID != b.CategoryID {
			return a.CategoryID < b.CategoryID
		}
		return a.Currency < b.Currency
	})

	return summary, nil
}

// DailyTotal is the completed income/expense sum of one day in one currency.
type DailyTotal struct {
	Date     model.Date
	Currency string
	Income   float64
	Expense  float64
}

// DailyTotals recomputes per-day sums within a month, ordered by date then
// currency.
func (r *Reports) DailyTotals(ctx context.Context, month model.MonthKey) ([]DailyTotal, error) {
	txns, err := r.store.ListTransactionsByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		date     model.Date
		currency string
	}
	totals := make(map[bucket]*DailyTotal)
	for i := range txns {
		txn := &txns[i]
		if !txn.IsCompleted {
			continue
		}
		key := bucket{txn.Date, txn.Currency}
		dt, ok := totals[key]
		if !ok {
			dt = &DailyTotal{Date: txn.Date, Currency: txn.Currency}
			totals[key] = dt
		}
		if txn.Type == model.TypeIncome {
			dt.Income += txn.Value
		} else {
			dt.Expense += txn.Value
		}
	}

	out := make([]DailyTotal, 0, len(totals))
	for _, dt := range totals {
		out = append(out, *dt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Currency < out[j].Currency
	})
	return out, nil
}

// MonthFlow is the completed income/expense sum of one month in one currency.
type MonthFlow struct {
	Month    model.MonthKey
	Currency string
	Income   float64
	Expense  float64
}

// TrendMonths is the window size of the trailing trend report.
const TrendMonths = 12

// Trend recomputes the trailing twelve months of completed totals ending at
// the given month, ordered chronologically. Months with no completed
// transactions are omitted.
func (r *Reports) Trend(ctx context.Context, end model.MonthKey) ([]MonthFlow, error) {
	start, _ := end.AddMonths(-(TrendMonths - 1)).Range()
	_, last := end.Range()

	txns, err := r.store.ListTransactionsByRange(ctx, start, last)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		month    model.MonthKey
		currency string
	}
	flows := make(map[bucket]*MonthFlow)
	for i := range txns {
		txn := &txns[i]
		if !txn.IsCompleted {
			continue
		}
		key := bucket{txn.Date.MonthKey(), txn.Currency}
		mf, ok := flows[key]
		if !ok {
			mf = &MonthFlow{Month: key.month, Currency: key.currency}
			flows[key] = mf
		}
		if txn.Type == model.TypeIncome {
			mf.Income += txn.Value
		} else {
			mf.Expense += txn.Value
		}
	}

	out := make([]MonthFlow, 0, len(flows))
	for _, mf := range flows {
		out = append(out, *mf)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Currency < out[j].Currency
	})
	return out, nil
}
