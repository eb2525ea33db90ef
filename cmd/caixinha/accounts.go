package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caixinha/caixinha/internal/cli"
	"github.com/caixinha/caixinha/internal/ledger"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"acc"},
		Short:   "Manage accounts",
	}
	cmd.AddCommand(accountsListCmd())
	cmd.AddCommand(accountsAddCmd())
	cmd.AddCommand(accountsDeleteCmd())
	return cmd
}

func accountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts with their balances",
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

			fmt.Println(cli.FormatTitle("Accounts"))
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, cli.TableHeaderStyle.Render("NAME\tBALANCE\tID"))
			for i := range accounts {
				acc := &accounts[i]
				balance := formatBalances(balances[acc.ID])
				fmt.Fprintf(w, "%s\t%s\t%s\n", acc.Name, balance, acc.ID)
			}
			return w.Flush()
		},
	}
}

func accountsAddCmd() *cobra.Command {
	var (
		color string
		icon  string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			acc, err := ledger.NewCatalog(store).AddAccount(ctx, args[0], color, icon)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added account %q (%s)", acc.Name, acc.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "display color")
	cmd.Flags().StringVar(&icon, "icon", "", "display icon")
	return cmd
}

func accountsDeleteCmd() *cobra.Command {
	var moveTo string

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an account, repointing its transactions first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			target := moveTo
			if target == "" {
				target = ledger.DefaultAccountID()
			}

			moved, err := ledger.NewIntegrity(store).DeleteAccount(ctx, args[0], target)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Account deleted; %d transactions repointed", moved)))
			return nil
		},
	}

	cmd.Flags().StringVar(&moveTo, "move-to", "", "substitute account id (default: wallet)")
	return cmd
}

// formatBalances renders a per-currency balance map as "12.30 BRL, -4.00 USD".
func formatBalances(byCurrency map[string]float64) string {
	if len(byCurrency) == 0 {
		return cli.SubtleStyle.Render("—")
	}
	currencies := make([]string, 0, len(byCurrency))
	for currency := range byCurrency {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	out := ""
	for i, currency := range currencies {
		if i > 0 {
			out += ", "
		}
		amount := byCurrency[currency]
		out += cli.FormatAmount(fmt.Sprintf("%.2f %s", amount, currency), amount >= 0)
	}
	return out
}
