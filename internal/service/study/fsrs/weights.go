package fsrs

import (
	"fmt"
	"math"
)

// NumWeights is the length of the model weight vector.
const NumWeights = 17

// Weights is the ordered vector of model weights, 0-indexed w[0]..w[16].
//
// Index mapping (authoritative; some upstream comments label these 1-indexed):
//
//	w[5]  difficulty adjustment scale
//	w[6]  difficulty mean-reversion blend toward the baseline of 5
//	w[8]  recall stability: exp(w8) growth base
//	w[9]  recall stability: S^(-w9) saturation
//	w[10] recall stability: exp(w10*(1-R)) retrievability term
//	w[11..14] forget stability formula
//	w[15] hard penalty multiplier
//	w[16] easy bonus multiplier
type Weights [NumWeights]float64

// DefaultWeights is the global default weight vector.
var DefaultWeights = Weights{
	0.4, 0.6, 2.4, 5.8,
	4.93, 0.94, 0.86, 0.01,
	1.49, 0.14, 0.94, 2.18,
	0.05, 0.34, 1.26, 0.29,
	2.61,
}

// ValidateWeights checks that all weights are finite and non-NaN.
func ValidateWeights(w Weights) error {
	for i, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight w[%d] is invalid: %v", i, v)
		}
	}
	return nil
}

// WeightsFromSlice converts a persisted float slice to a Weights vector.
// Wrong length or non-finite values fall back to DefaultWeights: a malformed
// per-user record degrades to defaults rather than failing the review.
func WeightsFromSlice(vals []float64) Weights {
	if len(vals) != NumWeights {
		return DefaultWeights
	}
	var w Weights
	copy(w[:], vals)
	if err := ValidateWeights(w); err != nil {
		return DefaultWeights
	}
	return w
}
