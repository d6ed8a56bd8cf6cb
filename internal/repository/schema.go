package repository

import (
	"context"

	"github.com/matthiasdebernardini/lowmain/internal/apperr"
	"github.com/matthiasdebernardini/lowmain/internal/convert"
)

const (
	labelsCypher      = "CALL db.labels() YIELD label RETURN label ORDER BY label"
	relTypesCypher    = "CALL db.relationshipTypes() YIELD relationshipType RETURN relationshipType ORDER BY relationshipType"
	indexesCypher     = "SHOW INDEXES YIELD name, type, labelsOrTypes, properties, state"
	constraintsCypher = "SHOW CONSTRAINTS YIELD name, type, labelsOrTypes, properties"
	nodeCountCypher   = "MATCH (n) RETURN count(n) AS node_count"
	relCountCypher    = "MATCH ()-[r]->() RETURN count(r) AS rel_count"
)

// SchemaOverview aggregates every introspection result in one response.
type SchemaOverview struct {
	Labels      []string
	Types       []string
	Indexes     []map[string]any
	Constraints []map[string]any
}

// Counts holds the node and relationship totals.
type Counts struct {
	Nodes         int64
	Relationships int64
}

// Labels lists every node label known to the store.
func (r *Repository) Labels(ctx context.Context) ([]string, error) {
	return r.stringColumn(ctx, labelsCypher, "label")
}

// RelationshipTypes lists every relationship type known to the store.
func (r *Repository) RelationshipTypes(ctx context.Context) ([]string, error) {
	return r.stringColumn(ctx, relTypesCypher, "relationshipType")
}

// Indexes lists the store's indexes.
func (r *Repository) Indexes(ctx context.Context) ([]map[string]any, error) {
	return r.rowQuery(ctx, indexesCypher)
}

// Constraints lists the store's constraints.
func (r *Repository) Constraints(ctx context.Context) ([]map[string]any, error) {
	return r.rowQuery(ctx, constraintsCypher)
}

// Count issues two independent count queries and merges the scalars.
func (r *Repository) Count(ctx context.Context) (Counts, error) {
	nodes, err := r.scalarCount(ctx, nodeCountCypher, "node_count")
	if err != nil {
		return Counts{}, err
	}

	rels, err := r.scalarCount(ctx, relCountCypher, "rel_count")
	if err != nil {
		return Counts{}, err
	}

	return Counts{Nodes: nodes, Relationships: rels}, nil
}

// Overview fetches labels, relationship types, indexes, and constraints.
func (r *Repository) Overview(ctx context.Context) (SchemaOverview, error) {
	labels, err := r.Labels(ctx)
	if err != nil {
		return SchemaOverview{}, err
	}
	types, err := r.RelationshipTypes(ctx)
	if err != nil {
		return SchemaOverview{}, err
	}
	indexes, err := r.Indexes(ctx)
	if err != nil {
		return SchemaOverview{}, err
	}
	constraints, err := r.Constraints(ctx)
	if err != nil {
		return SchemaOverview{}, err
	}

	return SchemaOverview{
		Labels:      labels,
		Types:       types,
		Indexes:     indexes,
		Constraints: constraints,
	}, nil
}

func (r *Repository) stringColumn(ctx context.Context, cypher, column string) ([]string, error) {
	res, err := r.client.ExecuteRead(ctx, cypher, nil)
	if err != nil {
		return nil, apperr.Classify(err)
	}

	values := []string{}
	for _, rec := range res.Records {
		if s, ok := rec[column].(string); ok {
			values = append(values, s)
		}
	}
	return values, nil
}

func (r *Repository) rowQuery(ctx context.Context, cypher string) ([]map[string]any, error) {
	res, err := r.client.ExecuteRead(ctx, cypher, nil)
	if err != nil {
		return nil, apperr.Classify(err)
	}

	rows := make([]map[string]any, 0, len(res.Records))
	for _, rec := range res.Records {
		rows = append(rows, convert.RowToJSON(rec))
	}
	return rows, nil
}

func (r *Repository) scalarCount(ctx context.Context, cypher, column string) (int64, error) {
	res, err := r.client.ExecuteRead(ctx, cypher, nil)
	if err != nil {
		return 0, apperr.Classify(err)
	}

	if len(res.Records) == 0 {
		return 0, nil
	}
	return toInt64(res.Records[0][column]), nil
}
