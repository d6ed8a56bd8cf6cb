package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/matthiasdebernardini/lowmain/internal/apperr"
	"github.com/matthiasdebernardini/lowmain/internal/convert"
)

// FindNodesOptions filters a node search.
type FindNodesOptions struct {
	Label string
	Where string // optional single prop=value equality filter
	Limit int
}

// NodeList is the result of a node search.
type NodeList struct {
	Cypher string
	Label  string
	Nodes  []map[string]any
	IDs    []int64
}

// NodeResult is a single normalized node plus its internal id.
type NodeResult struct {
	ID   int64
	Node map[string]any
}

// FindNodes lists nodes carrying a label, optionally filtered by one
// property equality.
func (r *Repository) FindNodes(ctx context.Context, opts FindNodesOptions) (NodeList, error) {
	limit := normalizeLimit(opts.Limit)

	var cypher string
	params := map[string]any{}

	if opts.Where != "" {
		prop, val, found := cutFilter(opts.Where)
		if !found {
			return NodeList{}, apperr.InvalidParams("Invalid --where format. Use prop=value")
		}
		cypher = fmt.Sprintf("MATCH (n:%s) WHERE n.%s = $val RETURN n LIMIT %d",
			quoteIdent(opts.Label), quoteIdent(prop), limit)
		params["val"] = val
	} else {
		cypher = fmt.Sprintf("MATCH (n:%s) RETURN n LIMIT %d", quoteIdent(opts.Label), limit)
	}

	res, err := r.client.ExecuteRead(ctx, cypher, params)
	if err != nil {
		return NodeList{}, apperr.Classify(err)
	}

	list := NodeList{
		Cypher: cypher,
		Label:  opts.Label,
		Nodes:  []map[string]any{},
	}
	for _, rec := range res.Records {
		node, ok := rec["n"].(neo4j.Node)
		if !ok {
			continue
		}
		list.Nodes = append(list.Nodes, convert.NodeToJSON(node))
		list.IDs = append(list.IDs, node.Id)
	}

	return list, nil
}

const getNodeCypher = "MATCH (n) WHERE elementId(n) = toString($id) OR id(n) = $id RETURN n"

// GetNode fetches a node by internal id, tolerating stores that address by
// element id instead.
func (r *Repository) GetNode(ctx context.Context, id int64) (NodeResult, error) {
	res, err := r.client.ExecuteRead(ctx, getNodeCypher, map[string]any{"id": id})
	if err != nil {
		return NodeResult{}, apperr.Classify(err)
	}

	if len(res.Records) == 0 {
		return NodeResult{}, apperr.NodeNotFound(strconv.FormatInt(id, 10))
	}

	node, ok := res.Records[0]["n"].(neo4j.Node)
	if !ok {
		return NodeResult{}, apperr.QueryFailed("query did not return a node")
	}

	return NodeResult{ID: node.Id, Node: convert.NodeToJSON(node)}, nil
}

// CreateNode creates a labeled node with the given JSON properties object.
func (r *Repository) CreateNode(ctx context.Context, label, propsJSON string) (NodeResult, error) {
	params, keys, err := decodeProps(propsJSON, "--props")
	if err != nil {
		return NodeResult{}, err
	}

	var cypher string
	if clause := setClause("n", keys); clause == "" {
		cypher = fmt.Sprintf("CREATE (n:%s) RETURN n", quoteIdent(label))
	} else {
		cypher = fmt.Sprintf("CREATE (n:%s) SET %s RETURN n", quoteIdent(label), clause)
	}

	res, err := r.client.ExecuteWrite(ctx, cypher, params)
	if err != nil {
		return NodeResult{}, apperr.Classify(err)
	}

	if len(res.Records) == 0 {
		return NodeResult{}, apperr.QueryFailed("CREATE did not return a node")
	}

	node, ok := res.Records[0]["n"].(neo4j.Node)
	if !ok {
		return NodeResult{}, apperr.QueryFailed("query did not return a node")
	}

	return NodeResult{ID: node.Id, Node: convert.NodeToJSON(node)}, nil
}

// UpdateNode sets properties on an existing node.
func (r *Repository) UpdateNode(ctx context.Context, id int64, setJSON string) (NodeResult, error) {
	params, keys, err := decodeProps(setJSON, "--set")
	if err != nil {
		return NodeResult{}, err
	}
	params["id"] = id

	var cypher string
	if clause := setClause("n", keys); clause == "" {
		cypher = "MATCH (n) WHERE id(n) = $id RETURN n"
	} else {
		cypher = fmt.Sprintf("MATCH (n) WHERE id(n) = $id SET %s RETURN n", clause)
	}

	res, err := r.client.ExecuteWrite(ctx, cypher, params)
	if err != nil {
		return NodeResult{}, apperr.Classify(err)
	}

	if len(res.Records) == 0 {
		return NodeResult{}, apperr.NodeNotFound(strconv.FormatInt(id, 10))
	}

	node, ok := res.Records[0]["n"].(neo4j.Node)
	if !ok {
		return NodeResult{}, apperr.QueryFailed("query did not return a node")
	}

	return NodeResult{ID: node.Id, Node: convert.NodeToJSON(node)}, nil
}

// DeleteNode removes a node. With detach set, its relationships go with it;
// without, the store rejects the delete while relationships remain and the
// failure surfaces through classification. The affected count is re-read to
// distinguish a missing node from a successful delete.
func (r *Repository) DeleteNode(ctx context.Context, id int64, detach bool) error {
	cypher := "MATCH (n) WHERE id(n) = $id DELETE n RETURN count(n) AS deleted"
	if detach {
		cypher = "MATCH (n) WHERE id(n) = $id DETACH DELETE n RETURN count(n) AS deleted"
	}

	res, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{"id": id})
	if err != nil {
		return apperr.Classify(err)
	}

	var deleted int64
	if len(res.Records) > 0 {
		deleted = toInt64(res.Records[0]["deleted"])
	}
	if deleted == 0 {
		return apperr.NodeNotFound(strconv.FormatInt(id, 10))
	}

	return nil
}

// cutFilter splits a prop=value filter on the first equals sign.
func cutFilter(filter string) (prop, val string, found bool) {
	return strings.Cut(filter, "=")
}
