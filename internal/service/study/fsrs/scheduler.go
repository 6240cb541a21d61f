package fsrs

import (
	"math"
	"time"
)

// State is the scheduling lifecycle of a card.
type State int

const (
	StateNew State = iota
	StateReview
	StateLapsed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateReview:
		return "review"
	case StateLapsed:
		return "lapsed"
	}
	return "new"
}

// MemoryState holds the per-card memory model state.
// LastReviewedAt is nil for never-reviewed cards.
type MemoryState struct {
	Stability      float64
	Difficulty     float64
	LastReviewedAt *time.Time
	State          State
}

// Parameters holds the scheduling configuration.
type Parameters struct {
	W                Weights
	DesiredRetention float64
	MaxIntervalDays  int
}

// DefaultParameters returns the global defaults.
func DefaultParameters() Parameters {
	return Parameters{
		W:                DefaultWeights,
		DesiredRetention: 0.9,
		MaxIntervalDays:  365,
	}
}

// ScheduleResult is the outcome of one scheduling step.
// Retrievability is the predicted recall probability at the moment of this
// review, computed from the state BEFORE the update.
type ScheduleResult struct {
	NextIntervalDays int
	NextDueAt        time.Time
	NewState         MemoryState
	Retrievability   float64
}

// Schedule advances a card's memory state for one review.
//
// All numeric inputs are clamped rather than rejected: the function is total
// over its input domain and never returns an error. The caller supplies now
// explicitly: log replay depends on rewriting the review clock.
func Schedule(params Parameters, state MemoryState, rating Rating, now time.Time) ScheduleResult {
	elapsed := elapsedDays(state.LastReviewedAt, now)

	priorS := math.Max(state.Stability, MinStability)
	r := Retrievability(elapsed, priorS)

	d := NextDifficulty(params.W, state.Difficulty, rating)

	var s float64
	var next State
	if rating == Again {
		s = NextStabilityFailure(params.W, d, priorS, r)
		next = StateLapsed
	} else {
		s = NextStabilitySuccess(params.W, d, priorS, r, rating)
		next = StateReview
	}

	interval := int(math.Round(IntervalForRetention(params.DesiredRetention, s)))
	if interval < 1 {
		interval = 1
	}
	if params.MaxIntervalDays > 0 && interval > params.MaxIntervalDays {
		interval = params.MaxIntervalDays
	}

	reviewedAt := now
	return ScheduleResult{
		NextIntervalDays: interval,
		NextDueAt:        now.AddDate(0, 0, interval),
		NewState: MemoryState{
			Stability:      s,
			Difficulty:     d,
			LastReviewedAt: &reviewedAt,
			State:          next,
		},
		Retrievability: r,
	}
}

// elapsedDays returns fractional days between the last review and now,
// 0 for never-reviewed cards. Negative values (clock skew) clamp to 0.
func elapsedDays(lastReviewedAt *time.Time, now time.Time) float64 {
	if lastReviewedAt == nil {
		return 0
	}
	days := now.Sub(*lastReviewedAt).Hours() / 24
	return math.Max(0, days)
}
