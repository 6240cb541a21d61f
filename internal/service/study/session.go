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

// BuildSession assembles a Leitner study queue for a deck: card ids ordered
// box 1 first, weighted across boxes, due cards preferred.
func (s *Service) BuildSession(ctx context.Context, input BuildSessionInput) ([]string, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	entries, err := s.boxes.ListByDeck(ctx, userID, input.Deck)
	if err != nil {
		return nil, fmt.Errorf("list leitner entries: %w", err)
	}

	boxes := make(map[int][]leitner.Card, leitner.MaxBox)
	for _, e := range entries {
		boxes[e.Box] = append(boxes[e.Box], leitner.Card{ID: e.VocabID, DueAt: e.DueAt})
	}

	queue := leitner.BuildQueue(boxes, input.SessionSize, s.cfg.Session, now)

	s.log.InfoContext(ctx, "session built",
		slog.String("user_id", userID.String()),
		slog.String("deck", input.Deck),
		slog.Int("requested", input.SessionSize),
		slog.Int("selected", len(queue)),
	)

	return queue, nil
}
