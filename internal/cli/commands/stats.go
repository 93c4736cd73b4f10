package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/salesledger/internal/ledger"
)

// StatsOptions holds options for the stats command.
type StatsOptions struct {
	Top  int // How many products to list
	Days int // Trend window in days
}

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	opts := &StatsOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show ledger-wide sales statistics",
		Long: `Report summary aggregates, the best-selling products, and the daily
sales trend. All queries run against the replica endpoint.`,
		Example: `  # Default report: top 10 products, 30-day trend
  salesledger stats

  # Top 3 products over the last week
  salesledger stats --top 3 --days 7`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Top, "top", 10, "Number of top products to show")
	cmd.Flags().IntVar(&opts.Days, "days", 30, "Trend window in days")

	return cmd
}

func runStats(cmd *cobra.Command, opts *StatsOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	stats, err := cmdCtx.Store.SummaryStats(ctx)
	if err != nil {
		return err
	}
	renderSummary(out, stats)

	products, err := cmdCtx.Store.TopProducts(ctx, opts.Top)
	if err != nil {
		return err
	}
	renderTopProducts(out, products)

	trend, err := cmdCtx.Store.SalesTrend(ctx, opts.Days)
	if err != nil {
		return err
	}
	renderTrend(out, trend, opts.Days)

	return nil
}

func renderSummary(w io.Writer, stats *ledger.SummaryStats) {
	_, _ = fmt.Fprintln(w, "Summary")
	_, _ = fmt.Fprintf(w, "  Sales:       %d\n", stats.TotalSales)
	_, _ = fmt.Fprintf(w, "  Revenue:     %s\n", stats.TotalRevenue.StringFixed(2))
	_, _ = fmt.Fprintf(w, "  Items sold:  %d\n", stats.TotalItemsSold)
	_, _ = fmt.Fprintf(w, "  Avg sale:    %s\n", stats.AverageSaleValue.StringFixed(2))
	_, _ = fmt.Fprintln(w)
}

func renderTopProducts(w io.Writer, products []*ledger.ProductSales) {
	_, _ = fmt.Fprintln(w, "Top products")
	if len(products) == 0 {
		_, _ = fmt.Fprintln(w, "  (none)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Product", "Quantity", "Revenue"})
	for _, p := range products {
		t.AppendRow(table.Row{p.ProductName, p.TotalQuantity, p.TotalRevenue.StringFixed(2)})
	}
	t.Render()
	_, _ = fmt.Fprintln(w)
}

func renderTrend(w io.Writer, trend []*ledger.TrendPoint, days int) {
	_, _ = fmt.Fprintf(w, "Daily trend (last %d days)\n", days)
	if len(trend) == 0 {
		_, _ = fmt.Fprintln(w, "  (no sales in window)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Day", "Amount", "Sales"})
	for _, p := range trend {
		t.AppendRow(table.Row{p.Day.Format("2006-01-02"), p.TotalAmount.StringFixed(2), p.SaleCount})
	}
	t.Render()
}
