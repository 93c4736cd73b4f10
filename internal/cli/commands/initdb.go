package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewInitDBCommand creates the initdb command.
func NewInitDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create the ledger schema on the master endpoint",
		Long: `Create the sales_transaction and sales_item tables on the master
endpoint if they do not exist yet. Safe to run repeatedly.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := cmdCtx.Store.Bootstrap(); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}

			version, err := cmdCtx.Store.SchemaVersion()
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Schema ready (version %d)\n", version)
			return nil
		},
	}
}
