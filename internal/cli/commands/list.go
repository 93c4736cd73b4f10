package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/salesledger/internal/ledger"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sales",
		Long:  `List sales one page at a time, newest first. Reads go to the replica.`,
		Example: `  # First page, 20 sales
  salesledger list

  # Third page, 50 per page
  salesledger list --page 3 --page-size 50`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			sales, err := cmdCtx.Store.ListSales(cmd.Context(), page, pageSize)
			if err != nil {
				return err
			}

			renderSales(cmd.OutOrStdout(), sales)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "Sales per page")

	return cmd
}

func renderSales(w io.Writer, sales []*ledger.Sale) {
	if len(sales) == 0 {
		_, _ = fmt.Fprintln(w, "(0 sales)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Time", "Cashier", "Store", "Payment", "Amount", "Discount", "Customer"})

	for _, s := range sales {
		customer := ""
		if s.CustomerID != nil {
			customer = fmt.Sprintf("%d", *s.CustomerID)
		}
		t.AppendRow(table.Row{
			s.ID,
			s.TransactionTime.Format("2006-01-02 15:04"),
			s.CashierID,
			s.StoreID,
			s.PaymentMethod,
			s.TotalAmount.StringFixed(2),
			s.TotalDiscount.StringFixed(2),
			customer,
		})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d sales)\n", len(sales))
}
