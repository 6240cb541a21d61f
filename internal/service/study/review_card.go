package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vocadrill/backend/internal/domain"
	"github.com/vocadrill/backend/internal/service/study/fsrs"
	"github.com/vocadrill/backend/pkg/ctxutil"
)

// ReviewResult is the outcome of one FSRS review.
type ReviewResult struct {
	Entry          *domain.SRSEntry
	Retrievability float64
}

// ReviewCard records an FSRS review and reschedules the card.
//
// The entry row is locked for the duration of the transaction so two
// concurrent reviews of the same card serialize instead of silently
// overwriting each other.
func (s *Service) ReviewCard(ctx context.Context, input ReviewCardInput) (*ReviewResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	params := s.userParameters(ctx, userID)

	var (
		updated *domain.SRSEntry
		result  fsrs.ScheduleResult
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		entry, err := s.srs.GetForUpdate(txCtx, userID, input.Deck, input.VocabID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			entry = &domain.SRSEntry{
				UserID:    userID,
				Deck:      input.Deck,
				VocabID:   input.VocabID,
				State:     domain.NewMemoryState(),
				DueAt:     now,
				CreatedAt: now,
			}
		case err != nil:
			return fmt.Errorf("get srs entry: %w", err)
		}

		result = fsrs.Schedule(params, toModelState(entry.State), toModelRating(input.Rating), now)

		entry.State = fromModelState(result.NewState)
		entry.NextIntervalDays = result.NextIntervalDays
		entry.DueAt = result.NextDueAt
		entry.UpdatedAt = now

		updated, err = s.srs.Upsert(txCtx, entry)
		if err != nil {
			return fmt.Errorf("upsert srs entry: %w", err)
		}

		_, err = s.reviews.Create(txCtx, &domain.ReviewLog{
			ID:         uuid.New(),
			UserID:     userID,
			Deck:       input.Deck,
			VocabID:    input.VocabID,
			Rating:     input.Rating,
			ReviewedAt: now,
		})
		if err != nil {
			return fmt.Errorf("create review log: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "card reviewed",
		slog.String("user_id", userID.String()),
		slog.String("card", updated.Key()),
		slog.String("rating", input.Rating.String()),
		slog.String("state", updated.State.State.String()),
		slog.Float64("stability", updated.State.Stability),
		slog.Int("interval_days", updated.NextIntervalDays),
	)

	return &ReviewResult{
		Entry:          updated,
		Retrievability: result.Retrievability,
	}, nil
}
