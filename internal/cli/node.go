package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matthiasdebernardini/lowmain/internal/actions"
	"github.com/matthiasdebernardini/lowmain/internal/apperr"
	"github.com/matthiasdebernardini/lowmain/internal/repository"
)

func newNodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Node CRUD operations",
	}

	cmd.AddCommand(
		newNodeFindCmd(),
		newNodeGetCmd(),
		newNodeCreateCmd(),
		newNodeUpdateCmd(),
		newNodeDeleteCmd(),
	)

	return cmd
}

func newNodeFindCmd() *cobra.Command {
	var (
		label string
		where string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find nodes by label and optional filters",
		Args:  cobra.NoArgs,
		RunE: wrap(func(cmd *cobra.Command, args []string) error {
			if label == "" {
				return apperr.InvalidParams("Missing --label. Usage: lowmain node find --label=Person")
			}

			ctx := cmd.Context()
			repo, client, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			list, err := repo.FindNodes(ctx, repository.FindNodesOptions{
				Label: label,
				Where: where,
				Limit: limit,
			})
			if err != nil {
				return err
			}

			logger.Debug("node find", "cypher", list.Cypher, "count", len(list.Nodes))

			return emit(cmd, map[string]any{
				"cypher": list.Cypher,
				"nodes":  list.Nodes,
				"count":  len(list.Nodes),
				"label":  list.Label,
			}, actions.ForNodeFind(list.Label, list.IDs))
		}),
	}

	cmd.Flags().StringVar(&label, "label", "", "Node label to search")
	cmd.Flags().StringVar(&where, "where", "", "Single equality filter, prop=value")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum nodes to return")

	return cmd
}

func newNodeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a node by internal ID",
		Args:  cobra.MaximumNArgs(1),
		RunE: wrap(func(cmd *cobra.Command, args []string) error {
			id, err := nodeIDArg(args, "Missing node ID. Usage: lowmain node get <id>")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			repo, client, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			res, err := repo.GetNode(ctx, id)
			if err != nil {
				return err
			}

			return emit(cmd, map[string]any{"node": res.Node}, actions.ForNodeGet(res.ID))
		}),
	}
}

func newNodeCreateCmd() *cobra.Command {
	var (
		label     string
		propsJSON string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new node",
		Args:  cobra.NoArgs,
		RunE: wrap(func(cmd *cobra.Command, args []string) error {
			if label == "" {
				return apperr.InvalidParams(`Missing --label. Usage: lowmain node create --label=Person --props='{"name":"Alice"}'`)
			}
			if propsJSON == "" {
				return apperr.InvalidParams("Missing --props. Provide a JSON object of properties")
			}

			ctx := cmd.Context()
			repo, client, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			res, err := repo.CreateNode(ctx, label, propsJSON)
			if err != nil {
				return err
			}

			logger.Debug("node created", "id", res.ID, "label", label)

			return emit(cmd, map[string]any{
				"created": true,
				"node":    res.Node,
			}, actions.ForNodeCreate(res.ID, label))
		}),
	}

	cmd.Flags().StringVar(&label, "label", "", "Label for the new node")
	cmd.Flags().StringVar(&propsJSON, "props", "", "JSON object of node properties")

	return cmd
}

func newNodeUpdateCmd() *cobra.Command {
	var setJSON string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a node's properties",
		Args:  cobra.MaximumNArgs(1),
		RunE: wrap(func(cmd *cobra.Command, args []string) error {
			id, err := nodeIDArg(args, `Missing node ID. Usage: lowmain node update <id> --set='{"name":"Bob"}'`)
			if err != nil {
				return err
			}
			if setJSON == "" {
				return apperr.InvalidParams("Missing --set. Provide a JSON object of properties to update")
			}

			ctx := cmd.Context()
			repo, client, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			res, err := repo.UpdateNode(ctx, id, setJSON)
			if err != nil {
				return err
			}

			return emit(cmd, map[string]any{
				"updated": true,
				"node":    res.Node,
			}, actions.ForNodeUpdate(id))
		}),
	}

	cmd.Flags().StringVar(&setJSON, "set", "", "JSON object of properties to set")

	return cmd
}

func newNodeDeleteCmd() *cobra.Command {
	var detach bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a node by ID",
		Args:  cobra.MaximumNArgs(1),
		RunE: wrap(func(cmd *cobra.Command, args []string) error {
			id, err := nodeIDArg(args, "Missing node ID. Usage: lowmain node delete <id>")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			repo, client, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			if err := repo.DeleteNode(ctx, id, detach); err != nil {
				return err
			}

			return emit(cmd, map[string]any{
				"deleted": true,
				"id":      id,
				"detach":  detach,
			}, actions.ForNodeDelete())
		}),
	}

	cmd.Flags().BoolVar(&detach, "detach", false, "Also delete the node's relationships")

	return cmd
}

func nodeIDArg(args []string, missingMsg string) (int64, error) {
	if len(args) == 0 {
		return 0, apperr.InvalidParams(missingMsg)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, apperr.InvalidParams(fmt.Sprintf("Invalid node ID: %s", args[0]))
	}
	return id, nil
}
