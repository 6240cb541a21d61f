package domain

// Rating represents the user's self-assessed recall quality.
// The four lowercase literals are the persisted wire vocabulary and must not
// be renamed: externally stored entries depend on them.
type Rating string

const (
	RatingAgain Rating = "again"
	RatingHard  Rating = "hard"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

func (r Rating) String() string { return string(r) }

func (r Rating) IsValid() bool {
	switch r {
	case RatingAgain, RatingHard, RatingGood, RatingEasy:
		return true
	}
	return false
}

// Score maps the rating to its numeric grade (again=1 … easy=4).
func (r Rating) Score() int {
	switch r {
	case RatingAgain:
		return 1
	case RatingHard:
		return 2
	case RatingGood:
		return 3
	case RatingEasy:
		return 4
	}
	return 3
}

// IsCorrect maps the rating to the box-track boolean: only "again" counts as
// an incorrect answer.
func (r Rating) IsCorrect() bool {
	return r != RatingAgain
}

// ParseRating maps a raw string to a Rating, falling back to "good" for
// unrecognized values. Used by log ingestion, where bad data is a quality
// degradation rather than an error.
func ParseRating(s string) Rating {
	r := Rating(s)
	if !r.IsValid() {
		return RatingGood
	}
	return r
}

// LifecycleState represents the scheduling lifecycle of an FSRS entry.
type LifecycleState string

const (
	StateNew    LifecycleState = "new"
	StateReview LifecycleState = "review"
	StateLapsed LifecycleState = "lapsed"
)

func (s LifecycleState) String() string { return string(s) }

func (s LifecycleState) IsValid() bool {
	switch s {
	case StateNew, StateReview, StateLapsed:
		return true
	}
	return false
}
