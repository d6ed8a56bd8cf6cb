// Package repository compiles each logical operation into a parameterized
// Cypher query and normalizes what comes back. Structural identifiers
// (labels, relationship types, property keys) are embedded as backtick-quoted
// literal text because Cypher has no parameter slot for them; every
// caller-supplied value is bound through the driver's parameter channel. That
// asymmetry is the injection defense and must hold for every query built here.
package repository

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/matthiasdebernardini/lowmain/internal/apperr"
	"github.com/matthiasdebernardini/lowmain/internal/graph"
)

// Repository executes the tool's operations against a graph client.
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// quoteIdent wraps a structural identifier in backticks, doubling any
// embedded backtick so the identifier always reads as literal text.
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// setClause builds "alias.`k` = $`k`" assignments for every property key in
// deterministic (sorted) order. Empty input yields an empty clause.
func setClause(alias string, keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s.%s = $%s", alias, quoteIdent(k), quoteIdent(k)))
	}
	return strings.Join(parts, ", ")
}

// decodeProps parses a JSON object of caller-supplied properties into typed
// query parameters plus the sorted key list used for clause building. The
// input must be exactly one object: null and trailing input are rejected.
// Numbers with an exact integer representation bind as integers, other
// numbers as floats; null, object and array values fall back to their textual
// JSON rendering bound as a string.
func decodeProps(raw, flag string) (map[string]any, []string, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, nil, apperr.InvalidParams(fmt.Sprintf("Invalid %s JSON: %v", flag, err))
	}
	if obj == nil {
		return nil, nil, apperr.InvalidParams(fmt.Sprintf("Invalid %s JSON: expected an object", flag))
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, nil, apperr.InvalidParams(fmt.Sprintf("Invalid %s JSON: trailing data after object", flag))
	}

	params := make(map[string]any, len(obj))
	keys := make([]string, 0, len(obj))
	for k, v := range obj {
		params[k] = typedParam(v)
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return params, keys, nil
}

func typedParam(v any) any {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case bool:
		return val
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(raw)
	}
}

func toInt64(val any) int64 {
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

const defaultLimit = 100

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}
