// Package cmd - periods commands
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"utilfee/adapters/storage"
	"utilfee/core/output"
	"utilfee/core/period"
	"utilfee/core/store"
	"utilfee/core/types"
	"utilfee/internal/errors"
	"utilfee/internal/logging"
)

var (
	addName   string
	addStart  string
	datesFrom string
	datesTo   string
	datesOpen bool
	rateAge   string
	rateBand  string
	rateSide  string
)

// periodsCmd groups the rate table editing commands
var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "View and edit the rate periods",
	Long: `View and edit the table of rate periods.

Every change is saved immediately. Periods are resolved in the order
shown by 'periods list'; when ranges overlap the first one wins.`,
}

var periodsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List periods in resolution order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, table, err := openTable(context.Background())
		if err != nil {
			return err
		}
		defer st.Close()

		periods := table.Periods()
		if err := output.RenderPeriodList(cmd.OutOrStdout(), periods); err != nil {
			return err
		}
		warnOverlaps(cmd.ErrOrStderr(), periods)
		return nil
	},
}

var periodsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the full rate table of a period",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, table, err := openTable(context.Background())
		if err != nil {
			return err
		}
		defer st.Close()

		p, ok := table.Get(args[0])
		if !ok {
			return errors.NotFound("period", args[0])
		}
		return output.RenderPeriodTables(cmd.OutOrStdout(), p)
	},
}

var periodsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an empty open-ended period at the top of the list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := types.Today()
		if addStart != "" {
			d, ok := types.ParseDate(addStart)
			if !ok {
				return errors.Newf(errors.TypeInput, "invalid start date: %s (use YYYY-MM-DD)", addStart)
			}
			start = d
		}

		var added types.Period
		err := editTable(cmd, func(table *store.Table) error {
			added = table.Add(addName, start)
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added period %s (%s)\n", added.ID, added.Name)
		return nil
	},
}

var periodsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a period",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := editTable(cmd, func(table *store.Table) error {
			return table.Remove(args[0])
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed period %s\n", args[0])
		return nil
	},
}

var periodsRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a period",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editTable(cmd, func(table *store.Table) error {
			return table.Rename(args[0], args[1])
		})
	},
}

var periodsSetDatesCmd = &cobra.Command{
	Use:   "set-dates <id>",
	Short: "Change the start and end dates of a period",
	Long: `Change the start and end dates of a period.

Text that is not a YYYY-MM-DD date is stored as given; the period then
matches no date until it is corrected.

Examples:
  utilfee periods set-dates 2025-01-01 --start 2025-01-01 --end 2025-12-31
  utilfee periods set-dates 2025-01-01 --open`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("start") && !flags.Changed("end") && !datesOpen {
			return errors.Input("nothing to change: pass --start, --end or --open")
		}
		if datesOpen && flags.Changed("end") {
			return errors.Input("--open and --end are mutually exclusive")
		}

		id := args[0]
		err := editTable(cmd, func(table *store.Table) error {
			if flags.Changed("start") {
				if err := table.SetStart(id, datesFrom); err != nil {
					return err
				}
			}
			if flags.Changed("end") {
				return table.SetEnd(id, datesTo)
			}
			if datesOpen {
				return table.SetEnd(id, "")
			}
			return nil
		})
		if err != nil {
			return err
		}

		if flags.Changed("start") {
			warnDate(cmd.ErrOrStderr(), "start", datesFrom)
		}
		if flags.Changed("end") {
			warnDate(cmd.ErrOrStderr(), "end", datesTo)
		}
		return nil
	},
}

var periodsSetRateCmd = &cobra.Command{
	Use:   "set-rate <id> <amount>",
	Short: "Set one amount in a period's rate table",
	Long: `Set one amount in a period's rate table.

The amount is in whole rubles. Negative or non-numeric input is stored as 0,
fractions are rounded.

Examples:
  utilfee periods set-rate 2025-01-01 3400 --age new --band "<=1.0" --audience phys
  utilfee periods set-rate 2025-01-01 1174000 --age used --band HYB --audience legal`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		age, ok := types.ParseAgeClass(rateAge)
		if !ok {
			return errors.Newf(errors.TypeInput, "unknown age class: %s (use new or used)", rateAge)
		}
		band, ok := types.ParseBand(rateBand)
		if !ok {
			return errors.Newf(errors.TypeInput, "unknown band: %s", rateBand)
		}
		audience, ok := types.ParseAudience(rateSide)
		if !ok {
			return errors.Newf(errors.TypeInput, "unknown audience: %s (use phys or legal)", rateSide)
		}

		id := args[0]
		var amount decimal.Decimal
		err := editTable(cmd, func(table *store.Table) error {
			if err := table.SetRate(id, age, band, audience, args[1]); err != nil {
				return err
			}
			var err error
			amount, err = table.Rate(id, age, band, audience)
			return err
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s = %s\n", id, age, band, audience, output.Rubles(amount))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(periodsCmd)
	periodsCmd.AddCommand(periodsListCmd)
	periodsCmd.AddCommand(periodsShowCmd)
	periodsCmd.AddCommand(periodsAddCmd)
	periodsCmd.AddCommand(periodsRemoveCmd)
	periodsCmd.AddCommand(periodsRenameCmd)
	periodsCmd.AddCommand(periodsSetDatesCmd)
	periodsCmd.AddCommand(periodsSetRateCmd)

	periodsAddCmd.Flags().StringVar(&addName, "name", "", "period name (default \""+store.DefaultPeriodName+"\")")
	periodsAddCmd.Flags().StringVar(&addStart, "start", "", "start date, YYYY-MM-DD (default today)")

	periodsSetDatesCmd.Flags().StringVar(&datesFrom, "start", "", "new start date, YYYY-MM-DD")
	periodsSetDatesCmd.Flags().StringVar(&datesTo, "end", "", "new end date, YYYY-MM-DD")
	periodsSetDatesCmd.Flags().BoolVar(&datesOpen, "open", false, "remove the end date")

	periodsSetRateCmd.Flags().StringVar(&rateAge, "age", "", "age class (new, used)")
	periodsSetRateCmd.Flags().StringVar(&rateBand, "band", "", "band (<=1.0, 1.0–2.0, 2.0–3.0, 3.0–3.5, >3.5, HYB, EV)")
	periodsSetRateCmd.Flags().StringVar(&rateSide, "audience", "", "audience (phys, legal)")
	periodsSetRateCmd.MarkFlagRequired("age")
	periodsSetRateCmd.MarkFlagRequired("band")
	periodsSetRateCmd.MarkFlagRequired("audience")
}

// editTable loads the table, applies edit and saves the result
func editTable(cmd *cobra.Command, edit func(table *store.Table) error) error {
	ctx := context.Background()
	st, table, err := openTable(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := edit(table); err != nil {
		return err
	}
	return saveTable(ctx, cmd, st, table.Periods())
}

func saveTable(ctx context.Context, cmd *cobra.Command, st storage.Store, periods []types.Period) error {
	if err := st.Save(ctx, periods); err != nil {
		return err
	}
	logging.Debug("rate table saved", zap.Int("periods", len(periods)))
	warnOverlaps(cmd.ErrOrStderr(), periods)
	return nil
}

func warnOverlaps(w io.Writer, periods []types.Period) {
	for _, o := range period.FindOverlaps(periods) {
		fmt.Fprintf(w, "Warning: %q overlaps %q; %q wins for shared dates\n", o.First.Name, o.Second.Name, o.First.Name)
	}
}

func warnDate(w io.Writer, field, text string) {
	if text == "" {
		return
	}
	if _, ok := types.ParseDate(text); !ok {
		fmt.Fprintf(w, "Warning: %s %q is not a YYYY-MM-DD date; the period will match no dates\n", field, text)
	}
}
