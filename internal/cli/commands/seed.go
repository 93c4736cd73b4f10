package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/salesledger/internal/seed"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate random demo sales",
		Long: `Generate random sales from the built-in product catalog and write
them to the master endpoint. Timestamps are spread over the trailing
30 days so the trend report has something to show.`,
		Example: `  # Create 50 random sales
  salesledger seed

  # Create 500 random sales
  salesledger seed --count 500`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			g := seed.New(cmdCtx.Store, cmdCtx.Logger)
			ids, err := g.Run(cmd.Context(), count)
			if err != nil {
				return fmt.Errorf("seeding failed after %d sales: %w", len(ids), err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %d sales\n", len(ids))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 50, "Number of sales to create")

	return cmd
}
