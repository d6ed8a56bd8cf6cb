// Package graph is the boundary to the Neo4j driver. The rest of the tool
// talks to the Client interface so operations can be tested against an
// in-memory double.
package graph

import (
	"context"
)

// Client defines the minimal contract the command operations need from the
// underlying graph database.
type Client interface {
	// ExecuteRead runs a query in a read session and collects every record.
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	// ExecuteWrite runs a query in a write session and collects every record.
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	// Run executes a write query without collecting rows (fire-and-forget).
	Run(ctx context.Context, cypher string, params map[string]any) error
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result is a simplified representation of a query response.
type Result struct {
	Records []Record
}

// Record groups key-value pairs returned from the graph engine. Values keep
// their driver-native types (neo4j.Node, neo4j.Relationship, scalars).
type Record map[string]any

// Options configures a graph client implementation.
type Options struct {
	URI      string
	Database string
	Username string
	Password string
}
