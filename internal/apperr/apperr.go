// Package apperr defines the closed error taxonomy surfaced to calling agents.
// Every failure leaving the tool carries a stable code, a retry flag, and a
// remediation hint so the caller can branch without parsing message text.
package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
)

// Kind enumerates the failure categories. The set is closed: new failures must
// map onto one of these.
type Kind int

const (
	KindConnectionFailed Kind = iota
	KindAuthenticationFailed
	KindCypherSyntax
	KindConstraintViolation
	KindQueryFailed
	KindNodeNotFound
	KindRelationshipNotFound
	KindConnectionNotConfigured
	KindInvalidParams
)

// Error is a classified failure. Detail carries the upstream reason or, for
// the not-found kinds, the identifier that was looked up.
type Error struct {
	Kind   Kind
	Detail string
}

func ConnectionFailed(reason string) *Error {
	return &Error{Kind: KindConnectionFailed, Detail: reason}
}

func AuthenticationFailed(reason string) *Error {
	return &Error{Kind: KindAuthenticationFailed, Detail: reason}
}

func CypherSyntax(detail string) *Error {
	return &Error{Kind: KindCypherSyntax, Detail: detail}
}

func ConstraintViolation(detail string) *Error {
	return &Error{Kind: KindConstraintViolation, Detail: detail}
}

func QueryFailed(reason string) *Error {
	return &Error{Kind: KindQueryFailed, Detail: reason}
}

func NodeNotFound(id string) *Error {
	return &Error{Kind: KindNodeNotFound, Detail: id}
}

func RelationshipNotFound(id string) *Error {
	return &Error{Kind: KindRelationshipNotFound, Detail: id}
}

func ConnectionNotConfigured() *Error {
	return &Error{Kind: KindConnectionNotConfigured}
}

func InvalidParams(reason string) *Error {
	return &Error{Kind: KindInvalidParams, Detail: reason}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindConnectionFailed:
		return fmt.Sprintf("Connection failed: %s", e.Detail)
	case KindAuthenticationFailed:
		return fmt.Sprintf("Authentication failed: %s", e.Detail)
	case KindCypherSyntax:
		return fmt.Sprintf("Cypher syntax error: %s", e.Detail)
	case KindConstraintViolation:
		return fmt.Sprintf("Constraint violation: %s", e.Detail)
	case KindQueryFailed:
		return fmt.Sprintf("Query failed: %s", e.Detail)
	case KindNodeNotFound:
		return fmt.Sprintf("Node not found: %s", e.Detail)
	case KindRelationshipNotFound:
		return fmt.Sprintf("Relationship not found: %s", e.Detail)
	case KindConnectionNotConfigured:
		return "Connection not configured: NEO4J_PASSWORD is required"
	case KindInvalidParams:
		return fmt.Sprintf("Invalid parameters: %s", e.Detail)
	default:
		return e.Detail
	}
}

// Code returns the stable machine-readable identifier for the kind.
func (e *Error) Code() string {
	switch e.Kind {
	case KindConnectionFailed:
		return "CONNECTION_FAILED"
	case KindAuthenticationFailed:
		return "AUTH_FAILED"
	case KindCypherSyntax:
		return "CYPHER_SYNTAX_ERROR"
	case KindConstraintViolation:
		return "CONSTRAINT_VIOLATION"
	case KindQueryFailed:
		return "QUERY_FAILED"
	case KindNodeNotFound:
		return "NODE_NOT_FOUND"
	case KindRelationshipNotFound:
		return "REL_NOT_FOUND"
	case KindConnectionNotConfigured:
		return "CONNECTION_NOT_CONFIGURED"
	case KindInvalidParams:
		return "INVALID_PARAMS"
	default:
		return "QUERY_FAILED"
	}
}

// Retryable reports whether retrying the same invocation can succeed. Only
// transient connection failures qualify.
func (e *Error) Retryable() bool {
	return e.Kind == KindConnectionFailed
}

// Fix returns a remediation hint for the calling agent.
func (e *Error) Fix() string {
	switch e.Kind {
	case KindConnectionFailed:
		return "Check that Neo4j is running and the URI is correct. Default: bolt://localhost:7687"
	case KindAuthenticationFailed:
		return "Check NEO4J_USER and NEO4J_PASSWORD, or pass --user and --password"
	case KindCypherSyntax:
		return "Check Cypher syntax. Run `lowmain schema` to see available labels and types"
	case KindConstraintViolation:
		return "Check `lowmain schema constraints` for active constraints"
	case KindQueryFailed:
		return "Check the query and parameters. Run `lowmain schema` to explore the database"
	case KindNodeNotFound:
		return fmt.Sprintf("No node with ID %s. Run `lowmain node find` to list nodes", e.Detail)
	case KindRelationshipNotFound:
		return fmt.Sprintf("No relationship with ID %s. Run `lowmain rel find` to list relationships", e.Detail)
	case KindConnectionNotConfigured:
		return "Set NEO4J_PASSWORD env var or pass --password. Example: NEO4J_PASSWORD=secret lowmain ping"
	case KindInvalidParams:
		return "Check parameter format. --params expects a JSON object, --props expects a JSON object"
	default:
		return "Check the query and parameters. Run `lowmain schema` to explore the database"
	}
}

// Classify maps a driver failure onto the taxonomy. Classification is
// deterministic for a given error: the driver's structured status code is
// inspected when available, with substring matching on the rendered message
// as the fallback for transport errors that never receive a status code.
// First match wins: auth, syntax, constraint, connection, then the catch-all.
func Classify(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	msg := err.Error()
	code := ""
	var neoErr *db.Neo4jError
	if errors.As(err, &neoErr) {
		code = neoErr.Code
	}

	switch {
	case strings.HasPrefix(code, "Neo.ClientError.Security."),
		strings.Contains(msg, "authentication"),
		strings.Contains(msg, "Unauthorized"),
		strings.Contains(msg, "credentials"):
		return AuthenticationFailed(msg)
	case strings.Contains(code, "SyntaxError"),
		strings.Contains(msg, "SyntaxError"),
		strings.Contains(msg, "Invalid input"):
		return CypherSyntax(msg)
	case strings.Contains(code, "ConstraintValidationFailed"),
		strings.Contains(msg, "ConstraintValidationFailed"),
		strings.Contains(msg, "already exists"):
		return ConstraintViolation(msg)
	case strings.Contains(msg, "connection"),
		strings.Contains(msg, "Connection"),
		strings.Contains(msg, "refused"):
		return ConnectionFailed(msg)
	default:
		return QueryFailed(msg)
	}
}
