// Package convert normalizes driver-native graph values into canonical JSON
// objects. Conversion is total: a value that fits no known shape becomes JSON
// null, never an error.
package convert

import (
	"encoding/json"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/matthiasdebernardini/lowmain/internal/graph"
)

// Reserved metadata keys are underscore-prefixed to avoid colliding with user
// properties.
const (
	KeyID          = "_id"
	KeyLabels      = "_labels"
	KeyStartNodeID = "_start_node_id"
	KeyEndNodeID   = "_end_node_id"
	KeyType        = "_type"
)

// NodeToJSON converts a node into its canonical JSON object.
func NodeToJSON(node neo4j.Node) map[string]any {
	out := make(map[string]any, len(node.Props)+2)
	out[KeyID] = node.Id
	out[KeyLabels] = node.Labels

	for key, val := range node.Props {
		out[key] = nodePropValue(val)
	}

	return out
}

// nodePropValue applies the ordered-attempt decode policy for node
// properties: integer, float, boolean, string, array of string, array of
// integer. Anything else is null.
func nodePropValue(val any) any {
	switch v := val.(type) {
	case int64:
		return v
	case float64:
		return v
	case bool:
		return v
	case string:
		return v
	case []any:
		if s, ok := stringSlice(v); ok {
			return s
		}
		if n, ok := intSlice(v); ok {
			return n
		}
		return nil
	default:
		return nil
	}
}

// RelationshipToJSON converts a relationship into its canonical JSON object.
// Relationship properties decode through the narrower scalar-only policy:
// arrays are not attempted, matching node/relationship parity rules.
func RelationshipToJSON(rel neo4j.Relationship) map[string]any {
	out := make(map[string]any, len(rel.Props)+4)
	out[KeyID] = rel.Id
	out[KeyStartNodeID] = rel.StartId
	out[KeyEndNodeID] = rel.EndId
	out[KeyType] = rel.Type

	for key, val := range rel.Props {
		out[key] = relPropValue(val)
	}

	return out
}

func relPropValue(val any) any {
	switch v := val.(type) {
	case int64:
		return v
	case float64:
		return v
	case bool:
		return v
	case string:
		return v
	default:
		return nil
	}
}

// RowToJSON converts a full record with arbitrary named columns into a JSON
// object by structural decoding of each column value.
func RowToJSON(rec graph.Record) map[string]any {
	out := make(map[string]any, len(rec))
	for key, val := range rec {
		out[key] = RowValue(val)
	}
	return out
}

// RowValue converts an arbitrary driver value into a JSON-compatible value.
// Graph entities expand to their canonical objects; containers convert
// elementwise; values that cannot be rendered become null.
func RowValue(val any) any {
	switch v := val.(type) {
	case nil:
		return nil
	case int64, float64, bool, string:
		return v
	case neo4j.Node:
		return NodeToJSON(v)
	case neo4j.Relationship:
		return RelationshipToJSON(v)
	case neo4j.Path:
		return pathToJSON(v)
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = RowValue(item)
		}
		return items
	case map[string]any:
		obj := make(map[string]any, len(v))
		for k, item := range v {
			obj[k] = RowValue(item)
		}
		return obj
	default:
		// Temporal and spatial driver types land here. Round-trip through
		// encoding/json; failure is swallowed into null.
		raw, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil
		}
		return decoded
	}
}

func pathToJSON(p neo4j.Path) map[string]any {
	nodes := make([]any, len(p.Nodes))
	for i, n := range p.Nodes {
		nodes[i] = NodeToJSON(n)
	}
	rels := make([]any, len(p.Relationships))
	for i, r := range p.Relationships {
		rels[i] = RelationshipToJSON(r)
	}
	return map[string]any{
		KeyType:         "path",
		"nodes":         nodes,
		"relationships": rels,
	}
}

func stringSlice(vals []any) ([]string, bool) {
	out := make([]string, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}

func intSlice(vals []any) ([]int64, bool) {
	out := make([]int64, len(vals))
	for i, v := range vals {
		n, ok := v.(int64)
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}
