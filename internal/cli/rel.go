package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matthiasdebernardini/lowmain/internal/actions"
	"github.com/matthiasdebernardini/lowmain/internal/apperr"
	"github.com/matthiasdebernardini/lowmain/internal/repository"
)

func newRelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rel",
		Short: "Relationship CRUD operations",
	}

	cmd.AddCommand(
		newRelFindCmd(),
		newRelCreateCmd(),
		newRelDeleteCmd(),
	)

	return cmd
}

func newRelFindCmd() *cobra.Command {
	var (
		from    string
		to      string
		relType string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find relationships by type and/or endpoints",
		Args:  cobra.NoArgs,
		RunE: wrap(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, client, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			// Endpoint filters that fail to parse are dropped, not rejected.
			opts := repository.FindRelationshipsOptions{
				Type:  relType,
				Limit: limit,
			}
			if id, err := strconv.ParseInt(from, 10, 64); err == nil {
				opts.FromID = &id
			}
			if id, err := strconv.ParseInt(to, 10, 64); err == nil {
				opts.ToID = &id
			}

			list, err := repo.FindRelationships(ctx, opts)
			if err != nil {
				return err
			}

			logger.Debug("rel find", "cypher", list.Cypher, "count", len(list.Relationships))

			return emit(cmd, map[string]any{
				"relationships": list.Relationships,
				"count":         len(list.Relationships),
			}, actions.ForRelFind())
		}),
	}

	cmd.Flags().StringVar(&from, "from", "", "Source node ID")
	cmd.Flags().StringVar(&to, "to", "", "Target node ID")
	cmd.Flags().StringVar(&relType, "type", "", "Relationship type")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum relationships to return")

	return cmd
}

func newRelCreateCmd() *cobra.Command {
	var (
		from      string
		to        string
		relType   string
		propsJSON string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a relationship between two nodes",
		Args:  cobra.NoArgs,
		RunE: wrap(func(cmd *cobra.Command, args []string) error {
			if from == "" {
				return apperr.InvalidParams("Missing --from. Usage: lowmain rel create --from=1 --to=2 --type=KNOWS")
			}
			if to == "" {
				return apperr.InvalidParams("Missing --to node ID")
			}
			if relType == "" {
				return apperr.InvalidParams("Missing --type relationship type")
			}

			fromID, err := strconv.ParseInt(from, 10, 64)
			if err != nil {
				return apperr.InvalidParams(fmt.Sprintf("Invalid --from ID: %s", from))
			}
			toID, err := strconv.ParseInt(to, 10, 64)
			if err != nil {
				return apperr.InvalidParams(fmt.Sprintf("Invalid --to ID: %s", to))
			}

			ctx := cmd.Context()
			repo, client, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			res, err := repo.CreateRelationship(ctx, fromID, toID, relType, propsJSON)
			if err != nil {
				return err
			}

			logger.Debug("rel created", "id", res.ID, "type", relType)

			return emit(cmd, map[string]any{
				"created":      true,
				"relationship": res.Relationship,
			}, actions.ForRelCreate(res.FromID, res.ToID, res.ID))
		}),
	}

	cmd.Flags().StringVar(&from, "from", "", "Source node ID")
	cmd.Flags().StringVar(&to, "to", "", "Target node ID")
	cmd.Flags().StringVar(&relType, "type", "", "Relationship type")
	cmd.Flags().StringVar(&propsJSON, "props", "", "JSON object of relationship properties")

	return cmd
}

func newRelDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a relationship by ID",
		Args:  cobra.MaximumNArgs(1),
		RunE: wrap(func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return apperr.InvalidParams("Missing relationship ID. Usage: lowmain rel delete <id>")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return apperr.InvalidParams(fmt.Sprintf("Invalid relationship ID: %s", args[0]))
			}

			ctx := cmd.Context()
			repo, client, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			if err := repo.DeleteRelationship(ctx, id); err != nil {
				return err
			}

			return emit(cmd, map[string]any{
				"deleted": true,
				"id":      id,
			}, actions.ForRelDelete())
		}),
	}
}
