package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vocadrill/backend/internal/domain"
	"github.com/vocadrill/backend/internal/service/study/leitner"
	"github.com/vocadrill/backend/pkg/ctxutil"
)

// AnswerQuiz records a Leitner quiz answer and moves the card between boxes.
// A card with no prior entry starts at box 1 before the transition applies.
func (s *Service) AnswerQuiz(ctx context.Context, input AnswerQuizInput) (*domain.LeitnerEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var updated *domain.LeitnerEntry

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		entry, err := s.boxes.GetForUpdate(txCtx, userID, input.Deck, input.VocabID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			entry = &domain.LeitnerEntry{
				UserID:    userID,
				Deck:      input.Deck,
				VocabID:   input.VocabID,
				Box:       leitner.MinBox,
				DueAt:     now,
				CreatedAt: now,
			}
		case err != nil:
			return fmt.Errorf("get leitner entry: %w", err)
		}

		next := leitner.Advance(leitner.Entry{Box: entry.Box, DueAt: entry.DueAt}, input.Correct, now)
		entry.Box = next.Box
		entry.DueAt = next.DueAt
		entry.UpdatedAt = now

		updated, err = s.boxes.Upsert(txCtx, entry)
		if err != nil {
			return fmt.Errorf("upsert leitner entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "quiz answered",
		slog.String("user_id", userID.String()),
		slog.String("card", updated.Key()),
		slog.Bool("correct", input.Correct),
		slog.Int("box", updated.Box),
	)

	return updated, nil
}
