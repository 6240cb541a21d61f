package study

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vocadrill/backend/internal/domain"
	"github.com/vocadrill/backend/internal/service/study/leitner"
	"github.com/vocadrill/backend/pkg/ctxutil"
)

// EnsureResult reports how many entries were seeded per track.
type EnsureResult struct {
	CreatedSRS     int
	CreatedLeitner int
}

// EnsureEntries seeds missing scheduling entries for a list of cards, on both
// tracks, with default initial state and dueAt = now. Existing entries are
// left untouched. Used when a deck is first loaded for a user.
func (s *Service) EnsureEntries(ctx context.Context, input EnsureEntriesInput) (*EnsureResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var result EnsureResult

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		srsExisting, err := s.srs.ExistingIDs(txCtx, userID, input.Deck, input.VocabIDs)
		if err != nil {
			return fmt.Errorf("list existing srs entries: %w", err)
		}
		boxExisting, err := s.boxes.ExistingIDs(txCtx, userID, input.Deck, input.VocabIDs)
		if err != nil {
			return fmt.Errorf("list existing leitner entries: %w", err)
		}

		for _, vocabID := range input.VocabIDs {
			if !srsExisting[vocabID] {
				_, err := s.srs.Upsert(txCtx, &domain.SRSEntry{
					UserID:    userID,
					Deck:      input.Deck,
					VocabID:   vocabID,
					State:     domain.NewMemoryState(),
					DueAt:     now,
					CreatedAt: now,
					UpdatedAt: now,
				})
				if err != nil {
					return fmt.Errorf("seed srs entry %s: %w", vocabID, err)
				}
				result.CreatedSRS++
			}

			if !boxExisting[vocabID] {
				_, err := s.boxes.Upsert(txCtx, &domain.LeitnerEntry{
					UserID:    userID,
					Deck:      input.Deck,
					VocabID:   vocabID,
					Box:       leitner.MinBox,
					DueAt:     now,
					CreatedAt: now,
					UpdatedAt: now,
				})
				if err != nil {
					return fmt.Errorf("seed leitner entry %s: %w", vocabID, err)
				}
				result.CreatedLeitner++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "entries ensured",
		slog.String("user_id", userID.String()),
		slog.String("deck", input.Deck),
		slog.Int("requested", len(input.VocabIDs)),
		slog.Int("created_srs", result.CreatedSRS),
		slog.Int("created_leitner", result.CreatedLeitner),
	)

	return &result, nil
}
