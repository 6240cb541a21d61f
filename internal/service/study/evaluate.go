package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vocadrill/backend/internal/domain"
	"github.com/vocadrill/backend/internal/service/study/fsrs"
	"github.com/vocadrill/backend/internal/service/study/optimizer"
	"github.com/vocadrill/backend/pkg/ctxutil"
)

// EvaluationResult reports prediction quality of a weight vector over the
// user's review history.
type EvaluationResult struct {
	Loss     float64
	LogCount int
	Weights  fsrs.Weights
}

// EvaluateWeights replays the user's full review history with the candidate
// weight vector and returns the mean cross-entropy loss. With no candidate
// given, the user's stored weights (or the defaults) are evaluated.
func (s *Service) EvaluateWeights(ctx context.Context, input EvaluateWeightsInput) (*EvaluationResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var w fsrs.Weights
	if len(input.Weights) > 0 {
		w = fsrs.WeightsFromSlice(input.Weights)
	} else {
		w = s.userParameters(ctx, userID).W
	}

	logs, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list review logs: %w", err)
	}

	replay := make([]optimizer.Log, 0, len(logs))
	for _, l := range logs {
		replay = append(replay, optimizer.Log{
			CardID:     l.CardID(),
			ReviewedAt: l.ReviewedAt,
			Rating:     toModelRating(l.Rating),
		})
	}

	loss := optimizer.LogLoss(w, replay)

	s.log.InfoContext(ctx, "weights evaluated",
		slog.String("user_id", userID.String()),
		slog.Int("logs", len(replay)),
		slog.Float64("loss", loss),
	)

	return &EvaluationResult{
		Loss:     loss,
		LogCount: len(replay),
		Weights:  w,
	}, nil
}

// SaveWeights persists a per-user weight vector after validating it.
func (s *Service) SaveWeights(ctx context.Context, weights []float64) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if len(weights) != fsrs.NumWeights {
		return domain.NewValidationError("weights", "must contain exactly 17 values")
	}
	var w fsrs.Weights
	copy(w[:], weights)
	if err := fsrs.ValidateWeights(w); err != nil {
		return domain.NewValidationError("weights", err.Error())
	}

	if err := s.weights.Upsert(ctx, userID, weights); err != nil {
		return fmt.Errorf("save weights: %w", err)
	}

	s.log.InfoContext(ctx, "weights saved", slog.String("user_id", userID.String()))
	return nil
}
