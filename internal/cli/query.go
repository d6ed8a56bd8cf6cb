package cli

import (
	"github.com/spf13/cobra"

	"github.com/matthiasdebernardini/lowmain/internal/actions"
	"github.com/matthiasdebernardini/lowmain/internal/apperr"
	"github.com/matthiasdebernardini/lowmain/internal/repository"
)

func newQueryCmd() *cobra.Command {
	var (
		paramsJSON string
		limit      int
		write      bool
	)

	cmd := &cobra.Command{
		Use:   "query <cypher>",
		Short: "Execute a raw Cypher query",
		Args:  cobra.MaximumNArgs(1),
		RunE: wrap(func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return apperr.InvalidParams(`Missing Cypher query. Usage: lowmain query "MATCH (n) RETURN n"`)
			}
			cypher := args[0]

			ctx := cmd.Context()
			repo, client, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			res, err := repo.RunRawQuery(ctx, repository.RawQueryOptions{
				Cypher: cypher,
				Params: paramsJSON,
				Limit:  limit,
				Write:  write,
			})
			if err != nil {
				return err
			}

			if res.Write {
				logger.Debug("write query executed", "cypher", cypher)
				return emit(cmd, map[string]any{
					"executed": true,
					"cypher":   res.Cypher,
					"mode":     "write",
				}, actions.ForQueryWrite())
			}

			logger.Debug("read query executed", "cypher", cypher, "rows", res.Count, "truncated", res.Truncated)

			return emit(cmd, map[string]any{
				"cypher":    res.Cypher,
				"rows":      res.Rows,
				"count":     res.Count,
				"truncated": res.Truncated,
				"limit":     res.Limit,
			}, actions.ForQueryRead())
		}),
	}

	cmd.Flags().StringVar(&paramsJSON, "params", "", "JSON object of query parameters")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum rows to collect in read mode")
	cmd.Flags().BoolVar(&write, "write", false, "Execute as a write query (no rows returned)")

	return cmd
}
