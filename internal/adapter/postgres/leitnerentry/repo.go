// Package leitnerentry implements the Leitner box-entry repository using
// PostgreSQL.
package leitnerentry

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vocadrill/backend/internal/adapter/postgres"
	"github.com/vocadrill/backend/internal/domain"
)

// Repo provides Leitner entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new Leitner entry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const entryColumns = `user_id, deck, vocab_id, box, due_at, created_at, updated_at`

const getForUpdateSQL = `
SELECT ` + entryColumns + `
FROM leitner_entries
WHERE user_id = $1 AND deck = $2 AND vocab_id = $3
FOR UPDATE`

const listByDeckSQL = `
SELECT ` + entryColumns + `
FROM leitner_entries
WHERE user_id = $1 AND deck = $2
ORDER BY due_at ASC`

const countByBoxSQL = `
SELECT box, count(*) FROM leitner_entries
WHERE user_id = $1 AND deck = $2
GROUP BY box`

const upsertSQL = `
INSERT INTO leitner_entries (` + entryColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_id, deck, vocab_id) DO UPDATE SET
    box        = EXCLUDED.box,
    due_at     = EXCLUDED.due_at,
    updated_at = EXCLUDED.updated_at
RETURNING ` + entryColumns

// GetForUpdate returns a single entry with a row lock held for the duration
// of the surrounding transaction.
func (r *Repo) GetForUpdate(ctx context.Context, userID uuid.UUID, deck, vocabID string) (*domain.LeitnerEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	entry, err := scanEntry(querier.QueryRow(ctx, getForUpdateSQL, userID, deck, vocabID))
	if err != nil {
		return nil, postgres.MapError(err, "leitner entry", domain.CardKey(deck, vocabID))
	}
	return entry, nil
}

// ListByDeck returns all entries for a (user, deck) pair ordered by due date.
func (r *Repo) ListByDeck(ctx context.Context, userID uuid.UUID, deck string) ([]domain.LeitnerEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByDeckSQL, userID, deck)
	if err != nil {
		return nil, postgres.MapError(err, "leitner entries", deck)
	}
	defer rows.Close()

	var entries []domain.LeitnerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leitner entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Upsert inserts or merges the full entry record.
func (r *Repo) Upsert(ctx context.Context, entry *domain.LeitnerEntry) (*domain.LeitnerEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	saved, err := scanEntry(querier.QueryRow(ctx, upsertSQL,
		entry.UserID, entry.Deck, entry.VocabID, entry.Box,
		domain.FormatTimestamp(entry.DueAt),
		entry.CreatedAt, entry.UpdatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "leitner entry", entry.Key())
	}
	return saved, nil
}

// ExistingIDs reports which of the given vocab ids already have an entry.
func (r *Repo) ExistingIDs(ctx context.Context, userID uuid.UUID, deck string, vocabIDs []string) (map[string]bool, error) {
	if len(vocabIDs) == 0 {
		return map[string]bool{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select("vocab_id").
		From("leitner_entries").
		Where(squirrel.Eq{"user_id": userID, "deck": deck, "vocab_id": vocabIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build existing ids query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "leitner entries", deck)
	}
	defer rows.Close()

	existing := make(map[string]bool, len(vocabIDs))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan vocab id: %w", err)
		}
		existing[id] = true
	}
	return existing, rows.Err()
}

// CountByBox returns per-box entry counts for a (user, deck) pair.
func (r *Repo) CountByBox(ctx context.Context, userID uuid.UUID, deck string) (domain.BoxCounts, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countByBoxSQL, userID, deck)
	if err != nil {
		return domain.BoxCounts{}, postgres.MapError(err, "leitner entries", deck)
	}
	defer rows.Close()

	var counts domain.BoxCounts
	for rows.Next() {
		var box, count int
		if err := rows.Scan(&box, &count); err != nil {
			return domain.BoxCounts{}, fmt.Errorf("scan box count: %w", err)
		}
		switch box {
		case 1:
			counts.Box1 = count
		case 2:
			counts.Box2 = count
		case 3:
			counts.Box3 = count
		}
		counts.Total += count
	}
	return counts, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.LeitnerEntry, error) {
	var (
		e     domain.LeitnerEntry
		dueAt string
	)
	err := row.Scan(
		&e.UserID, &e.Deck, &e.VocabID, &e.Box,
		&dueAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.DueAt, err = domain.ParseTimestamp(dueAt)
	if err != nil {
		return nil, fmt.Errorf("parse due_at: %w", err)
	}
	return &e, nil
}
