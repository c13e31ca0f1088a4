package cmd

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jask/tally/internal/ledger"
)

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Manage recurring transaction templates",
}

var recurringListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates and their state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		current.out.Templates(current.svc.Recurring.List(cmd.Context()))
		return nil
	},
}

var recurringAddFlags struct {
	desc, amount, category, frequency, start, end string
}

var recurringAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a recurring template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := recurringAddFlags
		amount, err := decimal.NewFromString(f.amount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", f.amount, err)
		}
		t := ledger.NewTemplate(time.Now().In(current.cfg.UI.Location()))
		t.Description = f.desc
		t.Amount = amount
		t.Frequency = ledger.Frequency(f.frequency)
		if f.category != "" {
			t.Category = f.category
		}
		if f.start != "" {
			if t.StartDate, err = parseDate(f.start); err != nil {
				return err
			}
		}
		if f.end != "" {
			end, err := parseDate(f.end)
			if err != nil {
				return err
			}
			t.EndDate = &end
		}
		t, err = current.svc.Recurring.Add(cmd.Context(), t)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added template %s\n", t.ID)
		return nil
	},
}

var recurringRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove a recurring template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.svc.Recurring.Remove(cmd.Context(), args[0])
	},
}

var recurringRunDate string

var recurringRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Materialize occurrences that are due",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		today := current.today()
		if recurringRunDate != "" {
			var err error
			if today, err = parseDate(recurringRunDate); err != nil {
				return err
			}
		}
		res, err := current.svc.Recurring.Run(cmd.Context(), today)
		if err != nil {
			return err
		}
		current.out.Materialized(res)
		return nil
	},
}

var previewFlags struct {
	from, to string
	count    int
}

var recurringPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show upcoming occurrences without saving",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from := current.today()
		to := civil.DateOf(from.In(time.UTC).AddDate(0, 3, 0))
		var err error
		if previewFlags.from != "" {
			if from, err = parseDate(previewFlags.from); err != nil {
				return err
			}
		}
		if previewFlags.to != "" {
			if to, err = parseDate(previewFlags.to); err != nil {
				return err
			}
		}
		current.out.Previews(current.svc.Recurring.Preview(cmd.Context(), from, to, previewFlags.count))
		return nil
	},
}

func init() {
	f := recurringAddCmd.Flags()
	f.StringVar(&recurringAddFlags.desc, "desc", "", "description")
	f.StringVar(&recurringAddFlags.amount, "amount", "", "signed amount, negative for spending")
	f.StringVar(&recurringAddFlags.category, "category", "", "category label (default Other)")
	f.StringVar(&recurringAddFlags.frequency, "frequency", string(ledger.Monthly), "weekly, biweekly or monthly")
	f.StringVar(&recurringAddFlags.start, "start", "", "start date (YYYY-MM-DD, default today)")
	f.StringVar(&recurringAddFlags.end, "end", "", "optional end date (YYYY-MM-DD)")
	_ = recurringAddCmd.MarkFlagRequired("desc")
	_ = recurringAddCmd.MarkFlagRequired("amount")

	recurringRunCmd.Flags().StringVar(&recurringRunDate, "date", "", "process as of this date (default today)")

	recurringPreviewCmd.Flags().StringVar(&previewFlags.from, "from", "", "window start (default today)")
	recurringPreviewCmd.Flags().StringVar(&previewFlags.to, "to", "", "window end (default three months out)")
	recurringPreviewCmd.Flags().IntVar(&previewFlags.count, "count", 5, "max occurrences per template")

	recurringCmd.AddCommand(recurringListCmd, recurringAddCmd, recurringRemoveCmd, recurringRunCmd, recurringPreviewCmd)
}
