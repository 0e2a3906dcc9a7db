package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	grpcAdapter "github.com/andrescamacho/baron-go/internal/adapters/grpc"
)

// NewDaemonCommand creates the daemon command
func NewDaemonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Inspect the baron daemon",
		Long: `Inspect the baron daemon. The daemon itself is started with the
baron-daemon binary.

Example:
  baron daemon status`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Check that the daemon is running and responsive",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, client *grpcAdapter.GameClient) error {
				active, err := client.ListGames(ctx, "ACTIVE")
				if err != nil {
					return fmt.Errorf("daemon is not responding: %w", err)
				}
				finished, err := client.ListGames(ctx, "FINISHED")
				if err != nil {
					return fmt.Errorf("daemon is not responding: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "✓ Daemon is healthy")
				fmt.Fprintf(out, "  Active games:    %d\n", len(active))
				fmt.Fprintf(out, "  Finished games:  %d\n", len(finished))
				return nil
			})
		},
	})

	return cmd
}
