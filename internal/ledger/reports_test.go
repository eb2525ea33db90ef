package ledger

import (
	"context"
	"testing"

	"github.com/caixinha/caixinha/internal/model"
)

func addCompleted(t *testing.T, txns *Transactions, txType model.TransactionType, value float64, currency string, date model.Date) {
	t.Helper()
	draft := validDraft(date)
	draft.Type = txType
	if txType == model.TypeIncome {
		draft.CategoryID = "cat-income"
	}
	draft.Value = value
	draft.Currency = currency
	draft.IsCompleted = true
	if _, err := txns.Add(context.Background(), draft); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
}

func TestReports_Summarize(t *testing.T) {
	store := newTestStore(t)
	seedBasics(t, store)
	ctx := context.Background()
	txns := NewTransactions(store)

	addCompleted(t, txns, model.TypeIncome, 3000, "BRL", "2024-03-01")
	addCompleted(t, txns, model.TypeExpense, 1200, "BRL", "2024-03-05")
	addCompleted(t, txns, model.TypeExpense, 80, "USD", "2024-03-07")
	// Pending: counted, never summed.
	pending := validDraft("2024-03-10")
	pending.Value = 9999
	if _, err := txns.Add(ctx, pending); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	// Outside the month: invisible.
	addCompleted(t, txns, model.TypeExpense, 500, "BRL", "2024-04-01")

	summary, err := NewReports(store).Summarize(ctx, "2024-03")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if summary.PendingCount != 1 {
		t.Errorf("PendingCount = %d, want 1", summary.PendingCount)
	}
	if len(summary.Flows) != 2 {
		t.Fatalf("len(Flows) = %d, want 2 currencies", len(summary.Flows))
	}
	// Flows sort by currency: BRL before USD.
	brl, usd := summary.Flows[0], summary.Flows[1]
	if brl.Currency != "BRL" || brl.Income != 3000 || brl.Expense != 1200 {
		t.Errorf("BRL flow = %+v", brl)
	}
	if usd.Currency != "USD" || usd.Income != 0 || usd.Expense != 80 {
		t.Errorf("USD flow = %+v", usd)
	}

	if len(summary.ByCategory) != 3 {
		t.Errorf("len(ByCategory) = %d, want 3 buckets", len(summary.ByCategory))
	}
	for _, ct := range summary.ByCategory {
		if ct.CategoryID == "cat-income" && ct.Total != 3000 {
			t.Errorf("income category total = %v, want 3000", ct.Total)
		}
	}
}

func TestReports_DailyTotals(t *testing.T) {
	store := newTestStore(t)
	seedBasics(t, store)
	txns := NewTransactions(store)

	addCompleted(t, txns, model.TypeExpense, 10, "BRL", "2024-03-05")
	addCompleted(t, txns, model.TypeExpense, 15, "BRL", "2024-03-05")
	addCompleted(t, txns, model.TypeIncome, 100, "BRL", "2024-03-02")

	totals, err := NewReports(store).DailyTotals(context.Background(), "2024-03")
	if err != nil {
		t.Fatalf("DailyTotals() error = %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("len = %d, want 2 days", len(totals))
	}
	if totals[0].Date != "2024-03-02" || totals[0].Income != 100 {
		t.Errorf("first day = %+v", totals[0])
	}
	if totals[1].Date != "2024-03-05" || totals[1].Expense != 25 {
		t.Errorf("second day = %+v", totals[1])
	}
}

func TestReports_Trend(t *testing.T) {
	store := newTestStore(t)
	seedBasics(t, store)
	txns := NewTransactions(store)

	// Inside the trailing window ending 2024-12.
	addCompleted(t, txns, model.TypeExpense, 50, "BRL", "2024-01-15")
	addCompleted(t, txns, model.TypeIncome, 200, "BRL", "2024-12-01")
	// Just outside: 2023-12 is month 13 back from 2024-12.
	addCompleted(t, txns, model.TypeExpense, 999, "BRL", "2023-12-31")

	flows, err := NewReports(store).Trend(context.Background(), "2024-12")
	if err != nil {
		t.Fatalf("Trend() error = %v", err)
	}
	if len(flows) != 2 {
		t.Fatalf("len = %d, want 2 months", len(flows))
	}
	if flows[0].Month != "2024-01" || flows[0].Expense != 50 {
		t.Errorf("first month = %+v", flows[0])
	}
	if flows[1].Month != "2024-12" || flows[1].Income != 200 {
		t.Errorf("last month = %+v", flows[1])
	}
}

func TestReports_AccountBalancesDelegation(t *testing.T) {
	store := newTestStore(t)
	seedBasics(t, store)
	txns := NewTransactions(store)

	addCompleted(t, txns, model.TypeIncome, 100, "BRL", "2024-03-01")
	addCompleted(t, txns, model.TypeExpense, 40, "BRL", "2024-03-02")

	balances, err := NewReports(store).AccountBalances(context.Background())
	if err != nil {
		t.Fatalf("AccountBalances() error = %v", err)
	}
	if got := balances["acc-main"]["BRL"]; got != 60 {
		t.Errorf("balance = %v, want 60", got)
	}
}
