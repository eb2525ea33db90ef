package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caixinha/caixinha/internal/cli"
	"github.com/caixinha/caixinha/internal/ledger"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Balances, monthly summaries, and trends",
	}
	cmd.AddCommand(reportBalancesCmd())
	cmd.AddCommand(reportMonthCmd())
	cmd.AddCommand(reportDailyCmd())
	cmd.AddCommand(reportTrendCmd())
	return cmd
}

func reportBalancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Per-account balances from completed transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			accounts, err := store.ListAccounts(ctx)
			if err != nil {
				return err
			}
			balances, err := ledger.NewReports(store).AccountBalances(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Account balances"))
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, cli.TableHeaderStyle.Render("ACCOUNT\tBALANCE"))
			for i := range accounts {
				fmt.Fprintf(w, "%s\t%s\n", accounts[i].Name, formatBalances(balances[accounts[i].ID]))
			}
			return w.Flush()
		},
	}
}

func reportMonthCmd() *cobra.Command {
	var monthStr string

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Summarize one month: flows per currency and per category",
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

			summary, err := ledger.NewReports(store).Summarize(ctx, month)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%s Summary for %s", cli.ChartIcon, month)))
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, cli.TableHeaderStyle.Render("CURRENCY\tINCOME\tEXPENSE\tNET"))
			for _, flow := range summary.Flows {
				net := flow.Income - flow.Expense
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					flow.Currency,
					cli.IncomeStyle.Render(fmt.Sprintf("%.2f", flow.Income)),
					cli.ExpenseStyle.Render(fmt.Sprintf("%.2f", flow.Expense)),
					cli.FormatAmount(fmt.Sprintf("%.2f", net), net >= 0))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if len(summary.ByCategory) > 0 {
				fmt.Println()
				w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, cli.TableHeaderStyle.Render("CATEGORY\tTYPE\tTOTAL"))
				for _, ct := range summary.ByCategory {
					fmt.Fprintf(w, "%s\t%s\t%s\n", ct.CategoryID, ct.Type,
						cli.FormatAmount(fmt.Sprintf("%.2f %s", ct.Total, ct.Currency),
							ct.Type == "income"))
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			if summary.PendingCount > 0 {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf(
					"%d pending transactions not included in totals", summary.PendingCount)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&monthStr, "month", "m", "", "month YYYY-MM (default: current)")
	return cmd
}

func reportDailyCmd() *cobra.Command {
	var monthStr string

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Per-day completed totals within a month",
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

			totals, err := ledger.NewReports(store).DailyTotals(ctx, month)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Daily totals for %s", month)))
			if len(totals) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No completed transactions."))
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, cli.TableHeaderStyle.Render("DATE\tCURRENCY\tINCOME\tEXPENSE"))
			for _, dt := range totals {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", dt.Date, dt.Currency,
					cli.IncomeStyle.Render(fmt.Sprintf("%.2f", dt.Income)),
					cli.ExpenseStyle.Render(fmt.Sprintf("%.2f", dt.Expense)))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&monthStr, "month", "m", "", "month YYYY-MM (default: current)")
	return cmd
}

func reportTrendCmd() *cobra.Command {
	var endStr string

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Trailing twelve months of completed totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			end, err := parseMonthFlag(endStr)
			if err != nil {
				return err
			}

			flows, err := ledger.NewReports(store).Trend(ctx, end)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%s Trend through %s", cli.ChartIcon, end)))
			if len(flows) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No completed transactions in the window."))
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, cli.TableHeaderStyle.Render("MONTH\tCURRENCY\tINCOME\tEXPENSE\tNET"))
			for _, mf := range flows {
				net := mf.Income - mf.Expense
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", mf.Month, mf.Currency,
					cli.IncomeStyle.Render(fmt.Sprintf("%.2f", mf.Income)),
					cli.ExpenseStyle.Render(fmt.Sprintf("%.2f", mf.Expense)),
					cli.FormatAmount(fmt.Sprintf("%.2f", net), net >= 0))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&endStr, "end", "", "final month YYYY-MM (default: current)")
	return cmd
}
