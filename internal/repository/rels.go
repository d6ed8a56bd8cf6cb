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

// FindRelationshipsOptions filters a relationship search. Zero, one, or both
// endpoint filters are valid.
type FindRelationshipsOptions struct {
	FromID *int64
	ToID   *int64
	Type   string
	Limit  int
}

// RelationshipList is the result of a relationship search.
type RelationshipList struct {
	Cypher        string
	Relationships []map[string]any
}

// RelationshipResult is a single normalized relationship with its endpoints.
type RelationshipResult struct {
	ID           int64
	FromID       int64
	ToID         int64
	Relationship map[string]any
}

// FindRelationships lists relationships, optionally constrained by type and
// endpoint node ids.
func (r *Repository) FindRelationships(ctx context.Context, opts FindRelationshipsOptions) (RelationshipList, error) {
	limit := normalizeLimit(opts.Limit)

	relPattern := "[r]"
	if opts.Type != "" {
		relPattern = fmt.Sprintf("[r:%s]", quoteIdent(opts.Type))
	}

	var whereClauses []string
	params := map[string]any{}
	if opts.FromID != nil {
		whereClauses = append(whereClauses, "id(a) = $from_id")
		params["from_id"] = *opts.FromID
	}
	if opts.ToID != nil {
		whereClauses = append(whereClauses, "id(b) = $to_id")
		params["to_id"] = *opts.ToID
	}

	whereStr := ""
	if len(whereClauses) > 0 {
		whereStr = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	cypher := fmt.Sprintf("MATCH (a)-%s->(b)%s RETURN r, id(a) AS from_id, id(b) AS to_id LIMIT %d",
		relPattern, whereStr, limit)

	res, err := r.client.ExecuteRead(ctx, cypher, params)
	if err != nil {
		return RelationshipList{}, apperr.Classify(err)
	}

	list := RelationshipList{
		Cypher:        cypher,
		Relationships: []map[string]any{},
	}
	for _, rec := range res.Records {
		rel, ok := rec["r"].(neo4j.Relationship)
		if !ok {
			continue
		}
		list.Relationships = append(list.Relationships, convert.RelationshipToJSON(rel))
	}

	return list, nil
}

// CreateRelationship links two existing nodes. The store enforces endpoint
// existence: a CREATE that returns no row means at least one endpoint was
// missing, which is reported without a second verification round trip.
func (r *Repository) CreateRelationship(ctx context.Context, fromID, toID int64, relType, propsJSON string) (RelationshipResult, error) {
	params := map[string]any{
		"from_id": fromID,
		"to_id":   toID,
	}

	clause := ""
	if propsJSON != "" {
		props, keys, err := decodeProps(propsJSON, "--props")
		if err != nil {
			return RelationshipResult{}, err
		}
		for k, v := range props {
			params[k] = v
		}
		clause = setClause("r", keys)
	}

	var cypher string
	if clause == "" {
		cypher = fmt.Sprintf(
			"MATCH (a), (b) WHERE id(a) = $from_id AND id(b) = $to_id CREATE (a)-[r:%s]->(b) RETURN r",
			quoteIdent(relType))
	} else {
		cypher = fmt.Sprintf(
			"MATCH (a), (b) WHERE id(a) = $from_id AND id(b) = $to_id CREATE (a)-[r:%s]->(b) SET %s RETURN r",
			quoteIdent(relType), clause)
	}

	res, err := r.client.ExecuteWrite(ctx, cypher, params)
	if err != nil {
		return RelationshipResult{}, apperr.Classify(err)
	}

	if len(res.Records) == 0 {
		return RelationshipResult{}, apperr.QueryFailed("CREATE did not return a relationship; check that both nodes exist")
	}

	rel, ok := res.Records[0]["r"].(neo4j.Relationship)
	if !ok {
		return RelationshipResult{}, apperr.QueryFailed("query did not return a relationship")
	}

	return RelationshipResult{
		ID:           rel.Id,
		FromID:       fromID,
		ToID:         toID,
		Relationship: convert.RelationshipToJSON(rel),
	}, nil
}

const deleteRelationshipCypher = "MATCH ()-[r]->() WHERE id(r) = $id DELETE r RETURN count(r) AS deleted"

// DeleteRelationship removes a relationship by internal id.
func (r *Repository) DeleteRelationship(ctx context.Context, id int64) error {
	res, err := r.client.ExecuteWrite(ctx, deleteRelationshipCypher, map[string]any{"id": id})
	if err != nil {
		return apperr.Classify(err)
	}

	var deleted int64
	if len(res.Records) > 0 {
		deleted = toInt64(res.Records[0]["deleted"])
	}
	if deleted == 0 {
		return apperr.RelationshipNotFound(strconv.FormatInt(id, 10))
	}

	return nil
}
