package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/service/dashboard"
)

type filterFlags struct {
	from     int
	to       int
	category string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.from, "from", 0, "First year to include (default earliest year in the data)")
	cmd.Flags().IntVar(&f.to, "to", 0, "Last year to include (default latest year in the data)")
	cmd.Flags().StringVar(&f.category, "category", "", "Restrict category views to one category")
}

// bundle opens analytics and applies any year or category flags on top of the defaults.
func (f *filterFlags) bundle(cmd *cobra.Command, s *dashboard.Session) (dashboard.Bundle, error) {
	b := s.OpenAnalytics(cmd.Context())

	changed := cmd.Flags().Changed("from") || cmd.Flags().Changed("to") || cmd.Flags().Changed("category")
	if !changed {
		return b, nil
	}

	fromSet, toSet := cmd.Flags().Changed("from"), cmd.Flags().Changed("to")
	if !b.Filter.HasYears && !fromSet && !toSet {
		return b, nil
	}

	from, to := b.Filter.YearFrom, b.Filter.YearTo
	if fromSet {
		from = f.from
	}
	if toSet {
		to = f.to
	}
	// Without years in the data there is no default bound; a single flag selects one year.
	if !b.Filter.HasYears {
		if !toSet {
			to = from
		}
		if !fromSet {
			from = to
		}
	}
	return s.SetFilter(from, to, f.category)
}

func newSummaryCmd(a *App) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Income, expense and profit over the selected years",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := ff.bundle(cmd, a.session(cmd.Context()))
			if err != nil {
				return err
			}

			w := newTable(a.out)
			fmt.Fprintf(w, "Years\t%s\n", yearLabel(b.Filter))
			fmt.Fprintf(w, "Income\t%s\n", money(b.Summary.Income))
			fmt.Fprintf(w, "Expense\t%s\n", money(b.Summary.Expense))
			fmt.Fprintf(w, "Profit\t%s\n", money(b.Summary.Profit))
			return w.Flush()
		},
	}
	ff.bind(cmd)
	return cmd
}

func newCategoriesCmd(a *App) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Expense totals per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := ff.bundle(cmd, a.session(cmd.Context()))
			if err != nil {
				return err
			}

			w := newTable(a.out)
			fmt.Fprintln(w, "CATEGORY\tAMOUNT")
			for _, g := range b.ExpenseTable.Groups {
				fmt.Fprintf(w, "%s\t%s\n", g.Category, money(g.Amount))
			}
			fmt.Fprintf(w, "TOTAL\t%s\n", money(b.ExpenseTable.Total))
			return w.Flush()
		},
	}
	ff.bind(cmd)
	return cmd
}

func newSeriesCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "series",
		Short: "Monthly income against expense, all years",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := a.session(cmd.Context()).OpenAnalytics(cmd.Context())

			w := newTable(a.out)
			fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSE")
			for i, p := range b.IncomeExpense.Income.Points {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Period, money(p.Value), money(b.IncomeExpense.Expense.Points[i].Value))
			}
			return w.Flush()
		},
	}
}

func newMilkCmd(a *App) *cobra.Command {
	var monthly bool
	cmd := &cobra.Command{
		Use:   "milk",
		Short: "Milk yield per delivery date or per month",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := a.session(cmd.Context()).OpenAnalytics(cmd.Context())

			series, header := b.Milk.Daily, "DATE\tYIELD"
			if monthly {
				series, header = b.Milk.Monthly, "MONTH\tYIELD"
			}

			w := newTable(a.out)
			fmt.Fprintln(w, header)
			for _, p := range series.Points {
				fmt.Fprintf(w, "%s\t%s\n", p.Period, strconv.FormatFloat(p.Value, 'f', -1, 64))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&monthly, "monthly", false, "Aggregate by month")
	return cmd
}

func newCowsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cows",
		Short: "List cow profile cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := newTable(a.out)
			fmt.Fprintln(w, "ID\tNAME\tBREED\tSTATUS")
			for _, c := range a.session(cmd.Context()).Cards(cmd.Context()) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Breed, c.Status)
			}
			return w.Flush()
		},
	}
}

func newCowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cow <id-or-name>",
		Short: "Show one cow's full profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.session(cmd.Context()).Cow(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return writeJSON(a.out, p)
		},
	}
}

func newChartCmd(a *App) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "chart <target>",
		Short: "Print a rendered chart definition as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.session(cmd.Context())
			if _, err := ff.bundle(cmd, s); err != nil {
				return err
			}

			c, ok := s.Chart(args[0])
			if !ok {
				return fmt.Errorf("unknown chart %q, expected one of %v", args[0], s.ChartTargets())
			}
			return writeJSON(a.out, c)
		},
	}
	ff.bind(cmd)
	return cmd
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func yearLabel(f models.FilterContext) string {
	if !f.HasYears {
		return "none"
	}
	if f.YearFrom == f.YearTo {
		return strconv.Itoa(f.YearFrom)
	}
	return fmt.Sprintf("%d-%d", f.YearFrom, f.YearTo)
}
