package repository

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthiasdebernardini/lowmain/internal/apperr"
	"github.com/matthiasdebernardini/lowmain/internal/graph"
)

func int64Ptr(v int64) *int64 { return &v }

func TestFindRelationships_NoFilters(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)

	mem.PushReadResult(graph.Result{Records: []graph.Record{
		{
			"r":       neo4j.Relationship{Id: 10, StartId: 1, EndId: 2, Type: "KNOWS", Props: map[string]any{"since": int64(2020)}},
			"from_id": int64(1),
			"to_id":   int64(2),
		},
	}})

	list, err := repo.FindRelationships(context.Background(), FindRelationshipsOptions{})
	require.NoError(t, err)

	assert.Equal(t, "MATCH (a)-[r]->(b) RETURN r, id(a) AS from_id, id(b) AS to_id LIMIT 100", list.Cypher)
	require.Len(t, list.Relationships, 1)
	assert.Equal(t, "KNOWS", list.Relationships[0]["_type"])
	assert.Equal(t, int64(2020), list.Relationships[0]["since"])
}

func TestFindRelationships_TypeAndEndpoints(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)

	_, err := repo.FindRelationships(context.Background(), FindRelationshipsOptions{
		Type:   "KNOWS",
		FromID: int64Ptr(1),
		ToID:   int64Ptr(2),
		Limit:  10,
	})
	require.NoError(t, err)

	calls := mem.ReadCalls()
	require.Len(t, calls, 1)
	assert.Equal(t,
		"MATCH (a)-[r:`KNOWS`]->(b) WHERE id(a) = $from_id AND id(b) = $to_id RETURN r, id(a) AS from_id, id(b) AS to_id LIMIT 10",
		calls[0].Query)
	assert.Equal(t, int64(1), calls[0].Params["from_id"])
	assert.Equal(t, int64(2), calls[0].Params["to_id"])
}

func TestFindRelationships_SingleEndpoint(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)

	_, err := repo.FindRelationships(context.Background(), FindRelationshipsOptions{
		ToID: int64Ptr(7),
	})
	require.NoError(t, err)

	calls := mem.ReadCalls()
	require.Len(t, calls, 1)
	assert.Equal(t,
		"MATCH (a)-[r]->(b) WHERE id(b) = $to_id RETURN r, id(a) AS from_id, id(b) AS to_id LIMIT 100",
		calls[0].Query)
	_, hasFrom := calls[0].Params["from_id"]
	assert.False(t, hasFrom)
}

func TestCreateRelationship_WithProps(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)

	mem.PushWriteResult(graph.Result{Records: []graph.Record{
		{"r": neo4j.Relationship{Id: 99, StartId: 1, EndId: 2, Type: "KNOWS", Props: map[string]any{"since": int64(2020)}}},
	}})

	res, err := repo.CreateRelationship(context.Background(), 1, 2, "KNOWS", `{"since":2020}`)
	require.NoError(t, err)

	assert.Equal(t, int64(99), res.ID)
	assert.Equal(t, int64(1), res.FromID)
	assert.Equal(t, int64(2), res.ToID)

	calls := mem.WriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t,
		"MATCH (a), (b) WHERE id(a) = $from_id AND id(b) = $to_id CREATE (a)-[r:`KNOWS`]->(b) SET r.`since` = $`since` RETURN r",
		calls[0].Query)
	assert.Equal(t, int64(2020), calls[0].Params["since"])
}

func TestCreateRelationship_NoProps(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)

	mem.PushWriteResult(graph.Result{Records: []graph.Record{
		{"r": neo4j.Relationship{Id: 5, StartId: 1, EndId: 2, Type: "KNOWS"}},
	}})

	_, err := repo.CreateRelationship(context.Background(), 1, 2, "KNOWS", "")
	require.NoError(t, err)

	calls := mem.WriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t,
		"MATCH (a), (b) WHERE id(a) = $from_id AND id(b) = $to_id CREATE (a)-[r:`KNOWS`]->(b) RETURN r",
		calls[0].Query)
}

func TestCreateRelationship_MissingEndpoint(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)

	// No pushed result: the CREATE matched nothing, so no row comes back.
	_, err := repo.CreateRelationship(context.Background(), 1, 404, "KNOWS", "")

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "QUERY_FAILED", appErr.Code())
	assert.Contains(t, appErr.Error(), "both nodes exist")
}

func TestCreateRelationship_InvalidProps(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)

	_, err := repo.CreateRelationship(context.Background(), 1, 2, "KNOWS", `[1,2]`)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_PARAMS", appErr.Code())
	assert.Empty(t, mem.WriteCalls())
}

func TestDeleteRelationship_Found(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)

	mem.PushWriteResult(graph.Result{Records: []graph.Record{{"deleted": int64(1)}}})

	err := repo.DeleteRelationship(context.Background(), 12)
	require.NoError(t, err)

	calls := mem.WriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, deleteRelationshipCypher, calls[0].Query)
	assert.Equal(t, int64(12), calls[0].Params["id"])
}

func TestDeleteRelationship_NotFound(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)

	mem.PushWriteResult(graph.Result{Records: []graph.Record{{"deleted": int64(0)}}})

	err := repo.DeleteRelationship(context.Background(), 12)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "REL_NOT_FOUND", appErr.Code())
	assert.Contains(t, appErr.Error(), "12")
}
