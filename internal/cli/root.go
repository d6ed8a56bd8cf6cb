// Package cli wires the cobra command surface. Handlers stay thin: resolve
// the connection, run the repository operation, and render one JSON envelope
// on stdout.
package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/matthiasdebernardini/lowmain/internal/actions"
	"github.com/matthiasdebernardini/lowmain/internal/apperr"
	"github.com/matthiasdebernardini/lowmain/internal/config"
	"github.com/matthiasdebernardini/lowmain/internal/envelope"
	"github.com/matthiasdebernardini/lowmain/internal/graph"
	"github.com/matthiasdebernardini/lowmain/internal/logging"
	"github.com/matthiasdebernardini/lowmain/internal/repository"
)

const version = "0.1.0"

var (
	flagURI      string
	flagUser     string
	flagPassword string
	flagDB       string
	flagLogLevel string

	logger = slog.Default()
)

// ErrCommandFailed signals that an error envelope was already written; the
// process should exit nonzero without further output.
var ErrCommandFailed = errors.New("command failed")

// newClient is swapped out by tests to avoid a real driver connection.
var newClient = graph.NewNeo4jClient

// NewRootCommand assembles the full lowmain command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "lowmain",
		Short:         "Agent-native Neo4j CLI",
		Long:          "lowmain exposes Neo4j CRUD, raw queries, and schema introspection as JSON envelopes with machine-readable next-action suggestions.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(flagLogLevel)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&flagURI, "uri", "", "Neo4j Bolt URI (default bolt://localhost:7687, env NEO4J_URI)")
	flags.StringVar(&flagUser, "user", "", "Neo4j user (default neo4j, env NEO4J_USER)")
	flags.StringVar(&flagPassword, "password", "", "Neo4j password (env NEO4J_PASSWORD)")
	flags.StringVar(&flagDB, "db", "", "Target database name (default neo4j, env NEO4J_DB)")
	flags.StringVar(&flagLogLevel, "log-level", "info", "Log level for stderr diagnostics (debug|info|warn|error)")

	root.AddCommand(
		newPingCmd(),
		newQueryCmd(),
		newSchemaCmd(),
		newNodeCmd(),
		newRelCmd(),
	)

	return root
}

// Execute runs the command tree. Dispatch failures (unknown flags, unknown
// subcommands, bad argument counts) never reach a handler, so they are
// rendered here as INVALID_PARAMS envelopes; every invocation ends with
// structured output on stdout.
func Execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if err == nil || errors.Is(err, ErrCommandFailed) {
		return err
	}

	appErr := apperr.InvalidParams(err.Error())
	if werr := envelope.Failure(appErr).Write(root.OutOrStdout()); werr != nil {
		return werr
	}
	return ErrCommandFailed
}

// wrap turns a handler error into an error envelope on stdout, keeping the
// classified code and retry flag intact for the calling agent.
func wrap(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil {
			return nil
		}

		appErr := apperr.Classify(err)
		logger.Debug("command failed", "code", appErr.Code(), "retryable", appErr.Retryable())

		if werr := envelope.Failure(appErr).Write(cmd.OutOrStdout()); werr != nil {
			return werr
		}
		return ErrCommandFailed
	}
}

// connect resolves the connection config and opens a graph client. The
// password check happens inside Resolve, before any network work.
func connect(ctx context.Context) (*repository.Repository, graph.Client, config.Connection, error) {
	conn, err := config.Resolve(config.Overrides{
		URI:      flagURI,
		Username: flagUser,
		Password: flagPassword,
		Database: flagDB,
	})
	if err != nil {
		return nil, nil, config.Connection{}, err
	}

	client, err := newClient(ctx, graph.Options{
		URI:      conn.URI,
		Database: conn.Database,
		Username: conn.Username,
		Password: conn.Password,
	})
	if err != nil {
		return nil, nil, config.Connection{}, apperr.Classify(err)
	}

	return repository.New(client), client, conn, nil
}

func emit(cmd *cobra.Command, data map[string]any, next []actions.NextAction) error {
	return envelope.Success(data, next).Write(cmd.OutOrStdout())
}
