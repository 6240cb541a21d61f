package study

import (
	"github.com/vocadrill/backend/internal/domain"
	"github.com/vocadrill/backend/internal/service/study/fsrs"
)

// toModelState converts the persisted memory state into the scheduler's
// representation, normalizing out-of-range values on the way in.
func toModelState(m domain.MemoryState) fsrs.MemoryState {
	m = m.Normalized()
	return fsrs.MemoryState{
		Stability:      m.Stability,
		Difficulty:     m.Difficulty,
		LastReviewedAt: m.LastReviewedAt,
		State:          toModelLifecycle(m.State),
	}
}

// fromModelState converts the scheduler's output back to the persisted form.
func fromModelState(m fsrs.MemoryState) domain.MemoryState {
	return domain.MemoryState{
		Stability:      m.Stability,
		Difficulty:     m.Difficulty,
		LastReviewedAt: m.LastReviewedAt,
		State:          fromModelLifecycle(m.State),
	}
}

func toModelLifecycle(s domain.LifecycleState) fsrs.State {
	switch s {
	case domain.StateReview:
		return fsrs.StateReview
	case domain.StateLapsed:
		return fsrs.StateLapsed
	default:
		return fsrs.StateNew
	}
}

func fromModelLifecycle(s fsrs.State) domain.LifecycleState {
	switch s {
	case fsrs.StateReview:
		return domain.StateReview
	case fsrs.StateLapsed:
		return domain.StateLapsed
	default:
		return domain.StateNew
	}
}

// toModelRating maps the wire rating to the scheduler's numeric rating.
func toModelRating(r domain.Rating) fsrs.Rating {
	switch r {
	case domain.RatingAgain:
		return fsrs.Again
	case domain.RatingHard:
		return fsrs.Hard
	case domain.RatingEasy:
		return fsrs.Easy
	default:
		return fsrs.Good
	}
}
