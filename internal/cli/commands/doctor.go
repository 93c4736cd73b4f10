package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/salesledger/internal/config"
	"github.com/leapstack-labs/salesledger/internal/store"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check connectivity to both database endpoints",
		Long: `Probe the master and replica endpoints independently and report
the reachability of each. The probes are isolated: one endpoint being
down does not hide the status of the other.

Exits non-zero if either endpoint is unreachable.`,
		Example: `  # Check both endpoints
  salesledger doctor

  # Check against an explicit master
  salesledger doctor --master-host db1.internal`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContextWithoutStore(cmd)

			h := store.Probe(cmd.Context(), cmdCtx.Cfg, cmdCtx.Logger)

			out := cmd.OutOrStdout()
			printEndpoint(out, "master (write)", cmdCtx.Cfg.Master, h.Write)
			printEndpoint(out, "replica (read)", cmdCtx.Cfg.Replica, h.Read)

			if !h.Write || !h.Read {
				return fmt.Errorf("one or more endpoints unreachable")
			}
			_, _ = fmt.Fprintln(out, "All endpoints healthy")
			return nil
		},
	}
}

func printEndpoint(out io.Writer, label string, cfg config.EndpointConfig, up bool) {
	status := "ok"
	if !up {
		status = "UNREACHABLE"
	}
	_, _ = fmt.Fprintf(out, "%-16s %s:%d/%s  %s\n", label, cfg.Host, cfg.Port, cfg.Database, status)
}
