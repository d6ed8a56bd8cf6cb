package cli

import (
	"github.com/spf13/cobra"

	"github.com/matthiasdebernardini/lowmain/internal/actions"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Introspect database structure",
		Args:  cobra.NoArgs,
		RunE: wrap(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, client, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			overview, err := repo.Overview(ctx)
			if err != nil {
				return err
			}

			return emit(cmd, map[string]any{
				"labels":             overview.Labels,
				"relationship_types": overview.Types,
				"indexes":            overview.Indexes,
				"constraints":        overview.Constraints,
			}, actions.ForSchemaOverview(overview.Labels))
		}),
	}

	cmd.AddCommand(
		newSchemaLabelsCmd(),
		newSchemaTypesCmd(),
		newSchemaIndexesCmd(),
		newSchemaConstraintsCmd(),
		newSchemaCountCmd(),
	)

	return cmd
}

func newSchemaLabelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "List all node labels",
		Args:  cobra.NoArgs,
		RunE: wrap(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, client, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			labels, err := repo.Labels(ctx)
			if err != nil {
				return err
			}

			return emit(cmd, map[string]any{"labels": labels}, actions.ForSchemaLabels(labels))
		}),
	}
}

func newSchemaTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List all relationship types",
		Args:  cobra.NoArgs,
		RunE: wrap(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, client, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			types, err := repo.RelationshipTypes(ctx)
			if err != nil {
				return err
			}

			return emit(cmd, map[string]any{"relationship_types": types}, actions.ForSchemaTypes(types))
		}),
	}
}

func newSchemaIndexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "List all indexes",
		Args:  cobra.NoArgs,
		RunE: wrap(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, client, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			indexes, err := repo.Indexes(ctx)
			if err != nil {
				return err
			}

			return emit(cmd, map[string]any{"indexes": indexes}, actions.ForSchemaIndexes())
		}),
	}
}

func newSchemaConstraintsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "constraints",
		Short: "List all constraints",
		Args:  cobra.NoArgs,
		RunE: wrap(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, client, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			constraints, err := repo.Constraints(ctx)
			if err != nil {
				return err
			}

			return emit(cmd, map[string]any{"constraints": constraints}, actions.ForSchemaConstraints())
		}),
	}
}

func newSchemaCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count nodes and relationships",
		Args:  cobra.NoArgs,
		RunE: wrap(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, client, _, err := connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			counts, err := repo.Count(ctx)
			if err != nil {
				return err
			}

			return emit(cmd, map[string]any{
				"node_count":         counts.Nodes,
				"relationship_count": counts.Relationships,
			}, actions.ForSchemaCount())
		}),
	}
}
