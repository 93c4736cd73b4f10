package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a sale and its line items",
		Long: `Delete a sale from the master endpoint. Line items go with it via
the foreign key cascade.`,
		Args: cobra.ExactArgs(1),
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

			deleted, err := cmdCtx.Store.DeleteSale(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("sale %d not found", id)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted sale %d\n", id)
			return nil
		},
	}
}
