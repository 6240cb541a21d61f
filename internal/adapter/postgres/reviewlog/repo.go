// Package reviewlog implements the review-log repository using PostgreSQL.
package reviewlog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vocadrill/backend/internal/adapter/postgres"
	"github.com/vocadrill/backend/internal/domain"
)

// Repo provides review log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO review_logs (id, user_id, deck, vocab_id, rating, reviewed_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, user_id, deck, vocab_id, rating, reviewed_at`

// Ascending order matters to the replay evaluator: each step's elapsed time
// depends on the previous review.
const listByUserSQL = `
SELECT id, user_id, deck, vocab_id, rating, reviewed_at
FROM review_logs
WHERE user_id = $1
ORDER BY reviewed_at ASC`

const countByUserSQL = `SELECT count(*) FROM review_logs WHERE user_id = $1`

// Create inserts one review event.
func (r *Repo) Create(ctx context.Context, log *domain.ReviewLog) (*domain.ReviewLog, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var saved domain.ReviewLog
	var rating string
	err := querier.QueryRow(ctx, createSQL,
		log.ID, log.UserID, log.Deck, log.VocabID,
		string(log.Rating), log.ReviewedAt,
	).Scan(&saved.ID, &saved.UserID, &saved.Deck, &saved.VocabID, &rating, &saved.ReviewedAt)
	if err != nil {
		return nil, postgres.MapError(err, "review log", log.CardID())
	}
	saved.Rating = domain.ParseRating(rating)
	return &saved, nil
}

// ListByUser returns a user's full review history, ascending by reviewed_at.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ReviewLog, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByUserSQL, userID)
	if err != nil {
		return nil, postgres.MapError(err, "review logs", userID.String())
	}
	defer rows.Close()

	var logs []domain.ReviewLog
	for rows.Next() {
		var l domain.ReviewLog
		var rating string
		if err := rows.Scan(&l.ID, &l.UserID, &l.Deck, &l.VocabID, &rating, &l.ReviewedAt); err != nil {
			return nil, fmt.Errorf("scan review log: %w", err)
		}
		l.Rating = domain.ParseRating(rating)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// CountByUser counts a user's review events.
func (r *Repo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countByUserSQL, userID).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "review logs", userID.String())
	}
	return count, nil
}
