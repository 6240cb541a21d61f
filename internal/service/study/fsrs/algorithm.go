// Package fsrs implements the continuous memory-state scheduling model:
// a power-law forgetting curve over per-card stability and difficulty,
// with separate stability updates for recalled and forgotten cards.
package fsrs

import "math"

// MinStability is the floor for stability values.
const MinStability = 0.01

const (
	// decayExponent and curveFactor parameterize the forgetting curve so
	// that R = 0.9 exactly when elapsed == stability.
	decayExponent = -0.5
	curveFactor   = 19.0 / 81.0

	// difficultyBaseline is the mean-reversion target for difficulty.
	difficultyBaseline = 5.0
)

// Rating represents the user's recall quality.
type Rating int

const (
	Again Rating = 1
	Hard  Rating = 2
	Good  Rating = 3
	Easy  Rating = 4
)

// Retrievability calculates the probability of recall after elapsedDays.
//
//	R(t, S) = (1 + (19/81) * t/S)^(-0.5)
//
// Returns 0 when stability is non-positive.
func Retrievability(elapsedDays, stability float64) float64 {
	if stability <= 0 {
		return 0
	}
	return math.Pow(1+curveFactor*elapsedDays/stability, decayExponent)
}

// IntervalForRetention inverts the forgetting curve: the number of days until
// predicted recall decays to targetRetention.
//
//	I(r, S) = (S / (19/81)) * (r^(-2) - 1)
//
// targetRetention is clamped to [0.01, 0.99] to avoid the singularities at 0
// and 1. At r = 0.9 the interval equals the stability itself.
func IntervalForRetention(targetRetention, stability float64) float64 {
	r := math.Max(0.01, math.Min(0.99, targetRetention))
	return stability / curveFactor * (math.Pow(r, 1/decayExponent) - 1)
}

// NextDifficulty calculates the new difficulty after a review.
//
//	updated = D - w[5]*(G-3)
//	D'      = w[6]*5 + (1-w[6])*updated
//	clamped to [1, 10]
//
// Blending toward the baseline keeps difficulty from drifting unboundedly
// after long runs of extreme ratings.
func NextDifficulty(w Weights, d float64, rating Rating) float64 {
	if d == 0 {
		d = difficultyBaseline
	}
	updated := d - w[5]*(float64(rating)-3)
	blended := w[6]*difficultyBaseline + (1-w[6])*updated
	return clampDifficulty(blended)
}

// NextStabilitySuccess calculates post-recall stability (rating >= Hard).
//
//	S' = S * (1 + e^(w[8]) * (11-D) * S^(-w[9]) * e^(w[10]*(1-R)) * mult)
//
// mult = w[15] for Hard, w[16] for Easy, 1 for Good. Growth is largest when
// the card is easy, stability is low, and the recall was a near miss.
func NextStabilitySuccess(w Weights, d, s, r float64, rating Rating) float64 {
	mult := 1.0
	switch rating {
	case Hard:
		mult = w[15]
	case Easy:
		mult = w[16]
	}

	grow := math.Exp(w[8]) *
		(11 - d) *
		math.Pow(s, -w[9]) *
		math.Exp(w[10]*(1-r)) *
		mult

	return math.Max(MinStability, s*(1+grow))
}

// NextStabilityFailure calculates post-lapse stability (rating == Again).
//
//	S' = w[11] * D^(-w[12]) * ((S+1)^w[13] - 1) * e^(w[14]*(1-R))
func NextStabilityFailure(w Weights, d, s, r float64) float64 {
	newS := w[11] *
		math.Pow(d, -w[12]) *
		(math.Pow(s+1, w[13]) - 1) *
		math.Exp(w[14]*(1-r))
	return math.Max(MinStability, newS)
}

// clampDifficulty constrains difficulty to [1, 10].
func clampDifficulty(d float64) float64 {
	return math.Max(1, math.Min(10, d))
}
