package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vocadrill/backend/internal/domain"
)

// SeedSRSEntry inserts an FSRS entry with default new-card state and returns it.
func SeedSRSEntry(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, deck, vocabID string) domain.SRSEntry {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	entry := domain.SRSEntry{
		UserID:    userID,
		Deck:      deck,
		VocabID:   vocabID,
		State:     domain.NewMemoryState(),
		DueAt:     now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO srs_entries (user_id, deck, vocab_id, stability, difficulty, last_reviewed_at, state, next_interval_days, due_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		entry.UserID, entry.Deck, entry.VocabID,
		entry.State.Stability, entry.State.Difficulty,
		domain.FormatTimestampPtr(entry.State.LastReviewedAt), string(entry.State.State),
		entry.NextIntervalDays, domain.FormatTimestamp(entry.DueAt),
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSRSEntry: %v", err)
	}

	return entry
}

// SeedLeitnerEntry inserts a Leitner entry at the given box, due now.
func SeedLeitnerEntry(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, deck, vocabID string, box int) domain.LeitnerEntry {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	entry := domain.LeitnerEntry{
		UserID:    userID,
		Deck:      deck,
		VocabID:   vocabID,
		Box:       box,
		DueAt:     now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO leitner_entries (user_id, deck, vocab_id, box, due_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.UserID, entry.Deck, entry.VocabID, entry.Box,
		domain.FormatTimestamp(entry.DueAt), entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLeitnerEntry: %v", err)
	}

	return entry
}

// SeedReviewLog inserts a review log row.
func SeedReviewLog(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, deck, vocabID string, rating domain.Rating, reviewedAt time.Time) domain.ReviewLog {
	t.Helper()
	ctx := context.Background()

	log := domain.ReviewLog{
		ID:         uuid.New(),
		UserID:     userID,
		Deck:       deck,
		VocabID:    vocabID,
		Rating:     rating,
		ReviewedAt: reviewedAt.UTC().Truncate(time.Second),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO review_logs (id, user_id, deck, vocab_id, rating, reviewed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		log.ID, log.UserID, log.Deck, log.VocabID, string(log.Rating), log.ReviewedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReviewLog: %v", err)
	}

	return log
}
