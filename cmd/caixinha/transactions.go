package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caixinha/caixinha/internal/cli"
	"github.com/caixinha/caixinha/internal/ledger"
	"github.com/caixinha/caixinha/internal/model"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Record and manage transactions",
	}
	cmd.AddCommand(txAddCmd())
	cmd.AddCommand(txListCmd())
	cmd.AddCommand(txCompleteCmd())
	cmd.AddCommand(txDeleteCmd())
	cmd.AddCommand(txDeleteSeriesCmd())
	return cmd
}

func txAddCmd() *cobra.Command {
	var (
		txType    string
		value     float64
		currency  string
		dateStr   string
		category  string
		account   string
		obs       string
		tags      []string
		completed bool
		fixed     bool
		repeat    int
		period    string
		everyDays int
	)

	cmd := &cobra.Command{
		Use:   "add [description]",
		Short: "Add a transaction (optionally a fixed bill or installment series)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			date, err := parseDateFlag(dateStr)
			if err != nil {
				return err
			}

			t := model.TransactionType(txType)
			if category == "" {
				category = ledger.DefaultCategoryID(t)
			}
			if account == "" {
				account = ledger.DefaultAccountID()
			}
			if currency == "" {
				settings, err := store.GetSettings(ctx)
				if err != nil {
					return err
				}
				if settings != nil {
					currency = settings.Currency
				}
			}

			draft := model.Transaction{
				Type:        t,
				Value:       value,
				Currency:    currency,
				Description: args[0],
				Observation: obs,
				CategoryID:  category,
				AccountID:   account,
				Date:        date,
				IsCompleted: completed,
				IsFixed:     fixed,
				Tags:        tags,
			}

			txns := ledger.NewTransactions(store)

			if repeat > 1 {
				draft.IsRepeating = true
				draft.RepeatConfig = &model.RepeatConfig{
					Times:      repeat,
					Period:     model.RepeatPeriod(period),
					CustomDays: everyDays,
				}
				series, err := txns.AddRecurring(ctx, draft)
				if err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf(
					"Added %d installments (%s through %s)",
					len(series), series[0].Date, series[len(series)-1].Date)))
				return nil
			}

			saved, err := txns.Add(ctx, draft)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s of %.2f %s on %s",
				saved.Type, saved.Value, saved.Currency, saved.Date)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&txType, "type", "t", "expense", "transaction type (income, expense)")
	cmd.Flags().Float64VarP(&value, "value", "v", 0, "amount (non-negative)")
	cmd.Flags().StringVar(&currency, "currency", "", "currency code (default: settings currency)")
	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category id (default: catch-all for type)")
	cmd.Flags().StringVarP(&account, "account", "a", "", "account id (default: wallet)")
	cmd.Flags().StringVar(&obs, "note", "", "free-form observation")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag (repeatable)")
	cmd.Flags().BoolVar(&completed, "completed", false, "mark as already completed")
	cmd.Flags().BoolVar(&fixed, "fixed", false, "fixed bill, regenerated every month")
	cmd.Flags().IntVar(&repeat, "repeat", 0, "number of installments (creates a series when > 1)")
	cmd.Flags().StringVar(&period, "period", "monthly", "installment period (daily, weekly, monthly, yearly, custom)")
	cmd.Flags().IntVar(&everyDays, "every-days", 0, "day interval for --period custom")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func txListCmd() *cobra.Command {
	var (
		monthStr string
		pending  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a month's transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			month, err := parseMonthFlag(monthStr)
			if err != nil {
				return err
			}
			if err := ensureMonthGenerated(ctx, store, month); err != nil {
				return err
			}

			txns, err := store.ListTransactionsByMonth(ctx, month)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Transactions for %s", month)))
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, cli.TableHeaderStyle.Render("DATE\tDESCRIPTION\tAMOUNT\tSTATUS\tID"))
			shown := 0
			for i := range txns {
				txn := &txns[i]
				if pending && txn.IsCompleted {
					continue
				}
				status := "pending"
				if txn.IsCompleted {
					status = "completed"
				}
				if txn.IsFixed {
					status += " (fixed)"
				}
				if txn.IsRepeating {
					status += fmt.Sprintf(" (%d/%d)", txn.RepeatIndex, txn.RepeatTotal)
				}
				amount := cli.FormatAmount(
					fmt.Sprintf("%+.2f %s", txn.SignedValue(), txn.Currency),
					txn.Type == model.TypeIncome)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					txn.Date, txn.Description, amount, status, txn.ID)
				shown++
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if shown == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions."))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&monthStr, "month", "m", "", "month YYYY-MM (default: current)")
	cmd.Flags().BoolVar(&pending, "pending", false, "show only pending transactions")
	return cmd
}

func txCompleteCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "complete [id]",
		Short: "Mark a transaction completed (or pending again with --undo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			completed := !undo
			patch := model.TransactionPatch{IsCompleted: &completed}
			txn, err := ledger.NewTransactions(store).Update(ctx, args[0], patch)
			if err != nil {
				return err
			}
			if txn == nil {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("No transaction with id %s", args[0])))
				return nil
			}
			if completed {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Completed %q (%.2f %s)",
					txn.Description, txn.Value, txn.Currency)))
			} else {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Reopened %q as pending", txn.Description)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "mark pending instead of completed")
	return cmd
}

func txDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a single transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			deleted, err := ledger.NewTransactions(store).Delete(ctx, args[0])
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("No transaction with id %s", args[0])))
				return nil
			}
			fmt.Println(cli.FormatSuccess("Transaction deleted"))
			return nil
		},
	}
}

func txDeleteSeriesCmd() *cobra.Command {
	var pendingOnly bool

	cmd := &cobra.Command{
		Use:   "delete-series [parent-id]",
		Short: "Delete an installment series by its shared parent id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txns := ledger.NewTransactions(store)
			var count int
			if pendingOnly {
				count, err = txns.DeletePendingSeries(ctx, args[0])
			} else {
				count, err = txns.DeleteSeries(ctx, args[0])
			}
			if err != nil {
				return err
			}
			if count == 0 {
				fmt.Println(cli.FormatWarning("No matching installments"))
				return nil
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %d installments", count)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pendingOnly, "pending-only", false, "keep completed installments")
	return cmd
}
