package cli

import (
	"github.com/spf13/cobra"

	"github.com/matthiasdebernardini/lowmain/internal/actions"
)

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test Neo4j connection health",
		Args:  cobra.NoArgs,
		RunE: wrap(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			repo, client, conn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			if err := repo.Ping(ctx); err != nil {
				return err
			}

			logger.Debug("ping succeeded", "uri", conn.URI, "db", conn.Database)

			return emit(cmd, map[string]any{
				"connected": true,
				"uri":       conn.URI,
				"db":        conn.Database,
			}, actions.ForPing())
		}),
	}
}
