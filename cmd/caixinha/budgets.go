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

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage per-category monthly budgets",
	}
	cmd.AddCommand(budgetSetCmd())
	cmd.AddCommand(budgetListCmd())
	cmd.AddCommand(budgetCopyCmd())
	cmd.AddCommand(budgetDeleteCmd())
	return cmd
}

func budgetSetCmd() *cobra.Command {
	var (
		amount   float64
		currency string
		monthStr string
	)

	cmd := &cobra.Command{
		Use:   "set [category-id]",
		Short: "Set (or overwrite) a category's budget for a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if currency == "" {
				settings, err := store.GetSettings(ctx)
				if err != nil {
					return err
				}
				if settings != nil {
					currency = settings.Currency
				}
			}

			budget, err := ledger.NewBudgets(store).Set(ctx, args[0], amount, currency, month)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Budget for %s set to %.2f %s",
				budget.Month, budget.Amount, budget.Currency)))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "budget ceiling (non-negative)")
	cmd.Flags().StringVar(&currency, "currency", "", "currency code (default: settings currency)")
	cmd.Flags().StringVarP(&monthStr, "month", "m", "", "month YYYY-MM (default: current)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func budgetListCmd() *cobra.Command {
	var monthStr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a month's budgets with spend against each",
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

			budgets, err := ledger.NewBudgets(store).ByMonth(ctx, month)
			if err != nil {
				return err
			}
			summary, err := ledger.NewReports(store).Summarize(ctx, month)
			if err != nil {
				return err
			}

			// Completed expense spend per (category, currency).
			spend := make(map[string]float64)
			for _, ct := range summary.ByCategory {
				if ct.Type == model.TypeExpense {
					spend[ct.CategoryID+":"+ct.Currency] = ct.Total
				}
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Budgets for %s", month)))
			if len(budgets) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No budgets set."))
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, cli.TableHeaderStyle.Render("CATEGORY\tBUDGET\tSPENT\tREMAINING\tID"))
			for i := range budgets {
				b := &budgets[i]
				spent := spend[b.CategoryID+":"+b.Currency]
				remaining := b.Amount - spent
				remainingStr := cli.FormatAmount(
					fmt.Sprintf("%.2f %s", remaining, b.Currency), remaining >= 0)
				fmt.Fprintf(w, "%s\t%.2f %s\t%.2f %s\t%s\t%s\n",
					b.CategoryID, b.Amount, b.Currency, spent, b.Currency, remainingStr, b.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&monthStr, "month", "m", "", "month YYYY-MM (default: current)")
	return cmd
}

func budgetCopyCmd() *cobra.Command {
	var (
		fromStr string
		toStr   string
	)

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy one month's budgets onto another",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			from, err := model.ParseMonthKey(fromStr)
			if err != nil {
				return fmt.Errorf("invalid --from month: %w", err)
			}
			to, err := parseMonthFlag(toStr)
			if err != nil {
				return err
			}

			copied, err := ledger.NewBudgets(store).CopyToMonth(ctx, from, to)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Copied %d budgets from %s to %s",
				copied, from, to)))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "source month YYYY-MM")
	cmd.Flags().StringVar(&toStr, "to", "", "target month YYYY-MM (default: current)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func budgetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a budget record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			deleted, err := ledger.NewBudgets(store).Delete(ctx, args[0])
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("No budget with id %s", args[0])))
				return nil
			}
			fmt.Println(cli.FormatSuccess("Budget deleted"))
			return nil
		},
	}
}
