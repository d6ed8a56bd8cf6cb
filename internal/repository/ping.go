package repository

import (
	"context"

	"github.com/matthiasdebernardini/lowmain/internal/apperr"
)

const pingCypher = "RETURN 1 AS ok"

// Ping verifies driver connectivity and then issues a trivial query to
// confirm the credentials are accepted end to end.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.client.VerifyConnectivity(ctx); err != nil {
		return apperr.Classify(err)
	}
	if _, err := r.client.ExecuteRead(ctx, pingCypher, nil); err != nil {
		return apperr.Classify(err)
	}
	return nil
}
