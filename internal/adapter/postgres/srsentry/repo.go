// Package srsentry implements the FSRS scheduling-entry repository using
// PostgreSQL. Fixed-shape queries are raw SQL consts; dynamic ones are built
// with squirrel.
package srsentry

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vocadrill/backend/internal/adapter/postgres"
	"github.com/vocadrill/backend/internal/domain"
)

// Repo provides FSRS entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new FSRS entry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const entryColumns = `user_id, deck, vocab_id, stability, difficulty, last_reviewed_at, state, next_interval_days, due_at, created_at, updated_at`

const getSQL = `
SELECT ` + entryColumns + `
FROM srs_entries
WHERE user_id = $1 AND deck = $2 AND vocab_id = $3`

const getForUpdateSQL = getSQL + `
FOR UPDATE`

const listByDeckSQL = `
SELECT ` + entryColumns + `
FROM srs_entries
WHERE user_id = $1 AND deck = $2
ORDER BY due_at ASC`

// due_at holds RFC 3339 UTC strings, so a plain string comparison orders
// chronologically.
const countDueSQL = `
SELECT count(*) FROM srs_entries
WHERE user_id = $1 AND deck = $2 AND due_at <= $3`

const countNewSQL = `
SELECT count(*) FROM srs_entries
WHERE user_id = $1 AND deck = $2 AND state = 'new'`

const upsertSQL = `
INSERT INTO srs_entries (` + entryColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (user_id, deck, vocab_id) DO UPDATE SET
    stability          = EXCLUDED.stability,
    difficulty         = EXCLUDED.difficulty,
    last_reviewed_at   = EXCLUDED.last_reviewed_at,
    state              = EXCLUDED.state,
    next_interval_days = EXCLUDED.next_interval_days,
    due_at             = EXCLUDED.due_at,
    updated_at         = EXCLUDED.updated_at
RETURNING ` + entryColumns

// Get returns a single entry by its composite key.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID, deck, vocabID string) (*domain.SRSEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	entry, err := scanEntry(querier.QueryRow(ctx, getSQL, userID, deck, vocabID))
	if err != nil {
		return nil, postgres.MapError(err, "srs entry", domain.CardKey(deck, vocabID))
	}
	return entry, nil
}

// GetForUpdate returns a single entry with a row lock held for the duration
// of the surrounding transaction. Outside a transaction the lock is released
// immediately and provides no protection.
func (r *Repo) GetForUpdate(ctx context.Context, userID uuid.UUID, deck, vocabID string) (*domain.SRSEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	entry, err := scanEntry(querier.QueryRow(ctx, getForUpdateSQL, userID, deck, vocabID))
	if err != nil {
		return nil, postgres.MapError(err, "srs entry", domain.CardKey(deck, vocabID))
	}
	return entry, nil
}

// ListByDeck returns all entries for a (user, deck) pair ordered by due date.
func (r *Repo) ListByDeck(ctx context.Context, userID uuid.UUID, deck string) ([]domain.SRSEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByDeckSQL, userID, deck)
	if err != nil {
		return nil, postgres.MapError(err, "srs entries", deck)
	}
	defer rows.Close()

	var entries []domain.SRSEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan srs entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Upsert inserts or merges the full entry record.
func (r *Repo) Upsert(ctx context.Context, entry *domain.SRSEntry) (*domain.SRSEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	saved, err := scanEntry(querier.QueryRow(ctx, upsertSQL,
		entry.UserID, entry.Deck, entry.VocabID,
		entry.State.Stability, entry.State.Difficulty,
		domain.FormatTimestampPtr(entry.State.LastReviewedAt), string(entry.State.State),
		entry.NextIntervalDays, domain.FormatTimestamp(entry.DueAt),
		entry.CreatedAt, entry.UpdatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "srs entry", entry.Key())
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
		From("srs_entries").
		Where(squirrel.Eq{"user_id": userID, "deck": deck, "vocab_id": vocabIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build existing ids query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "srs entries", deck)
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

// CountDue counts entries due at or before now.
func (r *Repo) CountDue(ctx context.Context, userID uuid.UUID, deck string, now time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	err := querier.QueryRow(ctx, countDueSQL, userID, deck, domain.FormatTimestamp(now)).Scan(&count)
	if err != nil {
		return 0, postgres.MapError(err, "srs entries", deck)
	}
	return count, nil
}

// CountNew counts never-reviewed entries.
func (r *Repo) CountNew(ctx context.Context, userID uuid.UUID, deck string) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	err := querier.QueryRow(ctx, countNewSQL, userID, deck).Scan(&count)
	if err != nil {
		return 0, postgres.MapError(err, "srs entries", deck)
	}
	return count, nil
}

// scanEntry reads one entry row; timestamps in due_at / last_reviewed_at are
// persisted as RFC 3339 strings and parsed back here.
func scanEntry(row pgx.Row) (*domain.SRSEntry, error) {
	var (
		e              domain.SRSEntry
		lastReviewedAt string
		state          string
		dueAt          string
	)
	err := row.Scan(
		&e.UserID, &e.Deck, &e.VocabID,
		&e.State.Stability, &e.State.Difficulty, &lastReviewedAt, &state,
		&e.NextIntervalDays, &dueAt,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.State.LastReviewedAt, err = domain.ParseTimestampPtr(lastReviewedAt)
	if err != nil {
		return nil, fmt.Errorf("parse last_reviewed_at: %w", err)
	}
	e.DueAt, err = domain.ParseTimestamp(dueAt)
	if err != nil {
		return nil, fmt.Errorf("parse due_at: %w", err)
	}
	e.State.State = domain.LifecycleState(state)
	e.State = e.State.Normalized()

	return &e, nil
}
