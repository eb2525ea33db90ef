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

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}
	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddCmd())
	cmd.AddCommand(categoriesDeleteCmd())
	return cmd
}

func categoriesListCmd() *cobra.Command {
	var typeFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var cats []model.Category
			if typeFilter != "" {
				cats, err = store.ListCategoriesByType(ctx, model.TransactionType(typeFilter))
			} else {
				cats, err = store.ListCategories(ctx)
			}
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Categories"))
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, cli.TableHeaderStyle.Render("NAME\tTYPE\tFLAGS\tID"))
			for i := range cats {
				cat := &cats[i]
				flags := ""
				if cat.IsSystem {
					flags = "system"
				}
				if cat.IsDefault {
					flags += " default"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cat.Name, cat.Type, flags, cat.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&typeFilter, "type", "t", "", "filter by type (income, expense)")
	return cmd
}

func categoriesAddCmd() *cobra.Command {
	var (
		txType string
		color  string
		icon   string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := ledger.NewCatalog(store).AddCategory(
				ctx, model.TransactionType(txType), args[0], color, icon)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s category %q (%s)",
				cat.Type, cat.Name, cat.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&txType, "type", "t", "expense", "category type (income, expense)")
	cmd.Flags().StringVar(&color, "color", "", "display color")
	cmd.Flags().StringVar(&icon, "icon", "", "display icon")
	return cmd
}

func categoriesDeleteCmd() *cobra.Command {
	var moveTo string

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a category, repointing its transactions first",
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
				cat, err := store.GetCategory(ctx, args[0])
				if err != nil {
					return err
				}
				if cat != nil {
					target = ledger.DefaultCategoryID(cat.Type)
				}
			}

			moved, err := ledger.NewIntegrity(store).DeleteCategory(ctx, args[0], target)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Category deleted; %d transactions repointed", moved)))
			return nil
		},
	}

	cmd.Flags().StringVar(&moveTo, "move-to", "", "substitute category id (default: catch-all for the type)")
	return cmd
}
