// Package srsweights implements the per-user weight-vector repository using
// PostgreSQL. The vector is stored as a float8 array; shape validation is the
// caller's concern since a malformed vector degrades to defaults.
package srsweights

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vocadrill/backend/internal/adapter/postgres"
)

// Repo provides weight vector persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new weights repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getSQL = `SELECT weights FROM srs_weights WHERE user_id = $1`

const upsertSQL = `
INSERT INTO srs_weights (user_id, weights, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET
    weights    = EXCLUDED.weights,
    updated_at = EXCLUDED.updated_at`

// Get returns the user's stored weight vector, domain.ErrNotFound if absent.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) ([]float64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var weights []float64
	if err := querier.QueryRow(ctx, getSQL, userID).Scan(&weights); err != nil {
		return nil, postgres.MapError(err, "srs weights", userID.String())
	}
	return weights, nil
}

// Upsert stores the user's weight vector.
func (r *Repo) Upsert(ctx context.Context, userID uuid.UUID, weights []float64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, upsertSQL, userID, weights, time.Now().UTC())
	if err != nil {
		return postgres.MapError(err, "srs weights", userID.String())
	}
	return nil
}
