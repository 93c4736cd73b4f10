package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/salesledger/internal/store"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <transaction-id>",
		Short: "Show one sale with its line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}

			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			sale, err := cmdCtx.Store.GetSale(cmd.Context(), id)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("sale %d not found", id)
			}
			if err != nil {
				return err
			}

			items, err := cmdCtx.Store.ItemsBySale(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Sale %d\n", sale.ID)
			_, _ = fmt.Fprintf(out, "  Time:     %s\n", sale.TransactionTime.Format("2006-01-02 15:04:05"))
			_, _ = fmt.Fprintf(out, "  Cashier:  %d  Store: %d\n", sale.CashierID, sale.StoreID)
			_, _ = fmt.Fprintf(out, "  Payment:  %s\n", sale.PaymentMethod)
			if sale.CustomerID != nil {
				_, _ = fmt.Fprintf(out, "  Customer: %d\n", *sale.CustomerID)
			}
			_, _ = fmt.Fprintf(out, "  Amount:   %s  (discount %s)\n",
				sale.TotalAmount.StringFixed(2), sale.TotalDiscount.StringFixed(2))
			_, _ = fmt.Fprintln(out)

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Code", "Product", "Category", "Qty", "Unit Price", "Discount", "Total"})
			for _, item := range items {
				category := ""
				if item.Category != nil {
					category = *item.Category
				}
				t.AppendRow(table.Row{
					item.ProductCode,
					item.ProductName,
					category,
					item.Quantity,
					item.UnitPrice.StringFixed(2),
					item.Discount.StringFixed(2),
					item.TotalPrice.StringFixed(2),
				})
			}
			t.Render()

			return nil
		},
	}
}
