package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/caixinha/caixinha/internal/cli"
	"github.com/caixinha/caixinha/internal/export"
)

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the whole database to a JSON archive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			archive, err := export.Snapshot(ctx, store, store)
			if err != nil {
				return err
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer func() { _ = f.Close() }()
				out = f
			}
			if err := archive.Write(out); err != nil {
				return err
			}

			if output != "" {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf(
					"Exported %d transactions, %d categories, %d accounts to %s",
					len(archive.Transactions), len(archive.Categories),
					len(archive.Accounts), output)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Merge a JSON archive into the database",
		Long: `Merge a previously exported archive into the local database. Records
already present are skipped: categories match by type and name, accounts
by name, transactions by id. Settings are only applied when none exist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			archive, err := export.Read(f)
			if err != nil {
				return err
			}

			bar := progressbar.NewOptions(len(archive.Transactions),
				progressbar.OptionSetDescription("Importing transactions"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			stats, err := export.Merge(ctx, store, store, archive, func() {
				_ = bar.Add(1)
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Imported %d transactions, %d categories, %d accounts (%d already present)",
				stats.TransactionsAdded, stats.CategoriesAdded, stats.AccountsAdded,
				stats.TransactionsSkipped+stats.CategoriesSkipped+stats.AccountsSkipped)))
			return nil
		},
	}
}
