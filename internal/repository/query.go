package repository

import (
	"context"

	"github.com/matthiasdebernardini/lowmain/internal/apperr"
	"github.com/matthiasdebernardini/lowmain/internal/convert"
)

// RawQueryOptions describes a raw Cypher execution.
type RawQueryOptions struct {
	Cypher string
	Params string // optional JSON object of query parameters
	Limit  int
	Write  bool
}

// RawQueryResult carries collected rows for read mode. Write mode returns
// only the confirmation: no rows, no truncation.
type RawQueryResult struct {
	Cypher    string
	Write     bool
	Rows      []map[string]any
	Count     int
	Truncated bool
	Limit     int
}

// RunRawQuery executes caller-supplied Cypher. Read mode collects rows up to
// the limit and flags truncation when collection stops at the cap; the flag
// means collection was capped, not that more rows provably exist. Write mode
// is fire-and-forget and never truncates.
func (r *Repository) RunRawQuery(ctx context.Context, opts RawQueryOptions) (RawQueryResult, error) {
	params := map[string]any{}
	if opts.Params != "" {
		decoded, _, err := decodeProps(opts.Params, "--params")
		if err != nil {
			return RawQueryResult{}, err
		}
		params = decoded
	}

	if opts.Write {
		if err := r.client.Run(ctx, opts.Cypher, params); err != nil {
			return RawQueryResult{}, apperr.Classify(err)
		}
		return RawQueryResult{Cypher: opts.Cypher, Write: true}, nil
	}

	limit := normalizeLimit(opts.Limit)

	res, err := r.client.ExecuteRead(ctx, opts.Cypher, params)
	if err != nil {
		return RawQueryResult{}, apperr.Classify(err)
	}

	rows := make([]map[string]any, 0, len(res.Records))
	for _, rec := range res.Records {
		if len(rows) >= limit {
			break
		}
		rows = append(rows, convert.RowToJSON(rec))
	}

	return RawQueryResult{
		Cypher:    opts.Cypher,
		Rows:      rows,
		Count:     len(rows),
		Truncated: len(rows) >= limit,
		Limit:     limit,
	}, nil
}
