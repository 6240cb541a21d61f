package optimizer

import (
	"math"

	"github.com/vocadrill/backend/internal/service/study/fsrs"
)

// replayRetention is the fixed target retention used while replaying history.
// The evaluator measures prediction quality, not interval quality, so the
// target only needs to be consistent across candidate vectors.
const replayRetention = 0.9

const probEpsilon = 1e-8

// LogLoss replays every card's review history through the scheduler with the
// candidate weights and returns the mean binary cross-entropy between the
// predicted retrievability and the observed outcome (forgot = 0, recalled = 1).
// Lower is better. Returns 0 when there are no usable logs.
func LogLoss(w fsrs.Weights, logs []Log) float64 {
	params := fsrs.Parameters{
		W:                w,
		DesiredRetention: replayRetention,
	}

	var total float64
	var count int

	for _, history := range groupByCard(logs) {
		state := fsrs.MemoryState{
			Stability:  fsrs.MinStability,
			Difficulty: 5,
			State:      fsrs.StateNew,
		}

		for _, l := range history {
			elapsed := 0.0
			if state.LastReviewedAt != nil {
				elapsed = math.Max(0, l.ReviewedAt.Sub(*state.LastReviewedAt).Hours()/24)
			}
			predicted := fsrs.Retrievability(elapsed, math.Max(state.Stability, fsrs.MinStability))

			observed := 1.0
			if l.Rating == fsrs.Again {
				observed = 0
			}
			total += crossEntropy(observed, predicted)
			count++

			// The scheduler stamps its own clock into the new state, so
			// replay must rewrite it with the historical review moment to
			// keep subsequent elapsed-time computations accurate.
			result := fsrs.Schedule(params, state, l.Rating, l.ReviewedAt)
			state = result.NewState
			reviewedAt := l.ReviewedAt
			state.LastReviewedAt = &reviewedAt
		}
	}

	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// crossEntropy is the binary cross-entropy of one prediction, with the
// probability clamped away from 0 and 1 to keep the logs finite.
func crossEntropy(observed, predicted float64) float64 {
	p := math.Max(probEpsilon, math.Min(1-probEpsilon, predicted))
	return -(observed*math.Log(p) + (1-observed)*math.Log(1-p))
}
