package study

import (
	"context"
	"fmt"
	"time"

	"github.com/vocadrill/backend/internal/domain"
	"github.com/vocadrill/backend/pkg/ctxutil"
)

// GetDashboard returns aggregated study statistics for a deck across both
// scheduling tracks.
func (s *Service) GetDashboard(ctx context.Context, deck string) (domain.Dashboard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Dashboard{}, domain.ErrUnauthorized
	}
	if deck == "" {
		return domain.Dashboard{}, domain.NewValidationError("deck", "required")
	}

	now := time.Now().UTC()

	dueCount, err := s.srs.CountDue(ctx, userID, deck, now)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count due: %w", err)
	}

	newCount, err := s.srs.CountNew(ctx, userID, deck)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count new: %w", err)
	}

	reviewedTotal, err := s.reviews.CountByUser(ctx, userID)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count reviews: %w", err)
	}

	boxes, err := s.boxes.CountByBox(ctx, userID, deck)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count boxes: %w", err)
	}

	return domain.Dashboard{
		DueCount:      dueCount,
		NewCount:      newCount,
		ReviewedTotal: reviewedTotal,
		Boxes:         boxes,
	}, nil
}
