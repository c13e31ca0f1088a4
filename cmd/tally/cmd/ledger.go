package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jask/tally/internal/ledger"
	"github.com/jask/tally/internal/service"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import FILE...",
	Short: "Import one or more bank CSV exports",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			res, err := current.svc.Import.Import(cmd.Context(), f, service.ImportOptions{
				DryRun: importDryRun,
				Source: filepath.Base(path),
			})
			_ = f.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			current.out.Import(res, importDryRun)
		}
		return nil
	},
}

var listFilter service.ListFilter

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List ledger transactions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		current.out.Transactions(current.svc.Ledger.List(cmd.Context(), listFilter))
		return nil
	},
}

var addFlags struct {
	date, desc, amount, category string
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a transaction by hand",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := current.today()
		if addFlags.date != "" {
			var err error
			if d, err = parseDate(addFlags.date); err != nil {
				return err
			}
		}
		amount, err := decimal.NewFromString(addFlags.amount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", addFlags.amount, err)
		}
		tx, err := current.svc.Ledger.Add(cmd.Context(), service.NewTransaction{
			Date:        d,
			Description: addFlags.desc,
			Amount:      amount,
			Category:    addFlags.category,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", tx.ID)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change the fields of a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var (
			tx  ledger.Transaction
			err error
		)
		if flags.Changed("amount") || flags.Changed("date") {
			tx, err = replaceTransaction(cmd, args[0])
		} else {
			var d service.Details
			if flags.Changed("desc") {
				v, _ := flags.GetString("desc")
				d.Description = &v
			}
			if flags.Changed("category") {
				v, _ := flags.GetString("category")
				d.Category = &v
			}
			tx, err = current.svc.Ledger.UpdateDetails(cmd.Context(), args[0], d)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated %s: %s [%s] %s %s\n",
			tx.ID, tx.Description, tx.Category, tx.Date, tx.Amount.StringFixed(2))
		return nil
	},
}

// replaceTransaction rewrites the whole record when a field outside the
// description and category changes.
func replaceTransaction(cmd *cobra.Command, id string) (ledger.Transaction, error) {
	ctx := cmd.Context()
	flags := cmd.Flags()
	tx, err := current.svc.Ledger.Get(ctx, id)
	if err != nil {
		return ledger.Transaction{}, err
	}
	if flags.Changed("date") {
		v, _ := flags.GetString("date")
		if tx.Date, err = parseDate(v); err != nil {
			return ledger.Transaction{}, err
		}
	}
	if flags.Changed("amount") {
		v, _ := flags.GetString("amount")
		if tx.Amount, err = decimal.NewFromString(v); err != nil {
			return ledger.Transaction{}, fmt.Errorf("invalid amount %q: %w", v, err)
		}
	}
	if flags.Changed("desc") {
		tx.Description, _ = flags.GetString("desc")
	}
	if flags.Changed("category") {
		tx.Category, _ = flags.GetString("category")
	}
	return current.svc.Ledger.Replace(ctx, id, tx)
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.svc.Ledger.Delete(cmd.Context(), args[0])
	},
}

var recategorizeAll bool

var recategorizeCmd = &cobra.Command{
	Use:   "recategorize",
	Short: "Apply category rules to stored transactions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := current.svc.Categorize.Recategorize(cmd.Context(), recategorizeAll)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "recategorized %d transactions\n", n)
		return nil
	},
}

var categoriesRules bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List known categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if categoriesRules {
			current.out.CategoryRules(current.svc.Categorize.Rules.Rules())
			return nil
		}
		current.out.Categories(current.svc.Categorize.Categories(cmd.Context()))
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "parse and show rows without saving")

	listCmd.Flags().StringVar(&listFilter.Month, "month", "", "only transactions in this month (YYYY-MM)")
	listCmd.Flags().StringVar(&listFilter.Category, "category", "", "only transactions in this category")

	addCmd.Flags().StringVar(&addFlags.date, "date", "", "date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&addFlags.desc, "desc", "", "description")
	addCmd.Flags().StringVar(&addFlags.amount, "amount", "", "signed amount, negative for spending")
	addCmd.Flags().StringVar(&addFlags.category, "category", "", "category label")
	_ = addCmd.MarkFlagRequired("amount")

	editCmd.Flags().String("desc", "", "new description")
	editCmd.Flags().String("category", "", "new category")
	editCmd.Flags().String("amount", "", "new signed amount")
	editCmd.Flags().String("date", "", "new date (YYYY-MM-DD)")

	categoriesCmd.Flags().BoolVar(&categoriesRules, "rules", false, "show the categorization rules instead")

	recategorizeCmd.Flags().BoolVar(&recategorizeAll, "all", false, "overwrite existing categories too")
}
