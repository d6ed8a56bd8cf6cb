package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodes(t *testing.T) {
	cases := []struct {
		err  *Error
		code string
	}{
		{ConnectionFailed("refused"), "CONNECTION_FAILED"},
		{AuthenticationFailed("bad pw"), "AUTH_FAILED"},
		{CypherSyntax("oops"), "CYPHER_SYNTAX_ERROR"},
		{ConstraintViolation("dup"), "CONSTRAINT_VIOLATION"},
		{QueryFailed("fail"), "QUERY_FAILED"},
		{NodeNotFound("42"), "NODE_NOT_FOUND"},
		{RelationshipNotFound("7"), "REL_NOT_FOUND"},
		{ConnectionNotConfigured(), "CONNECTION_NOT_CONFIGURED"},
		{InvalidParams("bad json"), "INVALID_PARAMS"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code())
	}
}

func TestRetryable_OnlyConnectionFailed(t *testing.T) {
	assert.True(t, ConnectionFailed("timeout").Retryable())

	nonRetryable := []*Error{
		AuthenticationFailed("x"),
		CypherSyntax("x"),
		ConstraintViolation("x"),
		QueryFailed("x"),
		NodeNotFound("x"),
		RelationshipNotFound("x"),
		ConnectionNotConfigured(),
		InvalidParams("x"),
	}
	for _, e := range nonRetryable {
		assert.False(t, e.Retryable(), "expected %s to be terminal", e.Code())
	}
}

func TestFixStrings_AllNonEmpty(t *testing.T) {
	all := []*Error{
		ConnectionFailed("r"),
		AuthenticationFailed("r"),
		CypherSyntax("d"),
		ConstraintViolation("d"),
		QueryFailed("r"),
		NodeNotFound("42"),
		RelationshipNotFound("7"),
		ConnectionNotConfigured(),
		InvalidParams("r"),
	}
	for _, e := range all {
		assert.NotEmpty(t, e.Fix(), "fix empty for %s", e.Code())
	}
}

func TestNotFound_EchoesID(t *testing.T) {
	err := NodeNotFound("9001")
	assert.Contains(t, err.Error(), "9001")
	assert.Contains(t, err.Fix(), "9001")
}

func TestClassify_TextMarkers(t *testing.T) {
	cases := []struct {
		msg  string
		kind Kind
	}{
		{"server authentication failed", KindAuthenticationFailed},
		{"Unauthorized: wrong password", KindAuthenticationFailed},
		{"invalid credentials supplied", KindAuthenticationFailed},
		{"SyntaxError near MATCH", KindCypherSyntax},
		{"Invalid input 'FOO'", KindCypherSyntax},
		{"ConstraintValidationFailed on unique index", KindConstraintViolation},
		{"node already exists", KindConstraintViolation},
		{"connection reset by peer", KindConnectionFailed},
		{"Connection timed out", KindConnectionFailed},
		{"dial tcp: connect: connection refused", KindConnectionFailed},
		{"something entirely different", KindQueryFailed},
	}

	for _, tc := range cases {
		got := Classify(errors.New(tc.msg))
		assert.Equal(t, tc.kind, got.Kind, "message %q", tc.msg)
	}
}

func TestClassify_RefusedIsRetryable(t *testing.T) {
	got := Classify(errors.New("connect: connection refused"))
	require.Equal(t, KindConnectionFailed, got.Kind)
	assert.True(t, got.Retryable())
}

func TestClassify_MatchOrder(t *testing.T) {
	// Auth markers win over connection markers when both appear.
	got := Classify(errors.New("connection closed: Unauthorized"))
	assert.Equal(t, KindAuthenticationFailed, got.Kind)
}

func TestClassify_StructuredStatusCodes(t *testing.T) {
	cases := []struct {
		code string
		kind Kind
	}{
		{"Neo.ClientError.Security.Unauthorized", KindAuthenticationFailed},
		{"Neo.ClientError.Statement.SyntaxError", KindCypherSyntax},
		{"Neo.ClientError.Schema.ConstraintValidationFailed", KindConstraintViolation},
	}

	for _, tc := range cases {
		err := &db.Neo4jError{Code: tc.code, Msg: "details withheld"}
		got := Classify(fmt.Errorf("run query: %w", err))
		assert.Equal(t, tc.kind, got.Kind, "status code %s", tc.code)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	err := errors.New("SyntaxError at offset 12")
	first := Classify(err)
	second := Classify(err)
	assert.Equal(t, first.Kind, second.Kind)
	assert.Equal(t, first.Error(), second.Error())
}

func TestClassify_PassesThroughClassified(t *testing.T) {
	orig := NodeNotFound("17")
	got := Classify(fmt.Errorf("wrapped: %w", orig))
	assert.Same(t, orig, got)
}
