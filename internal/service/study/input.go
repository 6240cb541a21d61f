package study

import (
	"github.com/vocadrill/backend/internal/domain"
)

const (
	maxDeckLen    = 100
	maxVocabIDLen = 200
	maxSession    = 200
	maxEnsure     = 500
)

// ReviewCardInput holds the parameters for an FSRS review.
type ReviewCardInput struct {
	Deck    string
	VocabID string
	Rating  domain.Rating
}

// Validate checks all fields and collects all errors.
func (i *ReviewCardInput) Validate() error {
	var errs []domain.FieldError

	if i.Deck == "" {
		errs = append(errs, domain.FieldError{Field: "deck", Message: "required"})
	} else if len(i.Deck) > maxDeckLen {
		errs = append(errs, domain.FieldError{Field: "deck", Message: "too long"})
	}
	if i.VocabID == "" {
		errs = append(errs, domain.FieldError{Field: "vocab_id", Message: "required"})
	} else if len(i.VocabID) > maxVocabIDLen {
		errs = append(errs, domain.FieldError{Field: "vocab_id", Message: "too long"})
	}
	if !i.Rating.IsValid() {
		errs = append(errs, domain.FieldError{Field: "rating", Message: "must be again, hard, good, or easy"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AnswerQuizInput holds the parameters for a Leitner quiz answer.
type AnswerQuizInput struct {
	Deck    string
	VocabID string
	Correct bool
}

// Validate checks all fields and collects all errors.
func (i *AnswerQuizInput) Validate() error {
	var errs []domain.FieldError

	if i.Deck == "" {
		errs = append(errs, domain.FieldError{Field: "deck", Message: "required"})
	} else if len(i.Deck) > maxDeckLen {
		errs = append(errs, domain.FieldError{Field: "deck", Message: "too long"})
	}
	if i.VocabID == "" {
		errs = append(errs, domain.FieldError{Field: "vocab_id", Message: "required"})
	} else if len(i.VocabID) > maxVocabIDLen {
		errs = append(errs, domain.FieldError{Field: "vocab_id", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// BuildSessionInput holds the parameters for building a study queue.
type BuildSessionInput struct {
	Deck        string
	SessionSize int
}

// Validate checks all fields and collects all errors.
func (i *BuildSessionInput) Validate() error {
	var errs []domain.FieldError

	if i.Deck == "" {
		errs = append(errs, domain.FieldError{Field: "deck", Message: "required"})
	}
	if i.SessionSize <= 0 || i.SessionSize > maxSession {
		errs = append(errs, domain.FieldError{Field: "session_size", Message: "must be between 1 and 200"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// EnsureEntriesInput holds the parameters for seeding scheduling entries.
type EnsureEntriesInput struct {
	Deck     string
	VocabIDs []string
}

// Validate checks all fields and collects all errors.
func (i *EnsureEntriesInput) Validate() error {
	var errs []domain.FieldError

	if i.Deck == "" {
		errs = append(errs, domain.FieldError{Field: "deck", Message: "required"})
	}
	if len(i.VocabIDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "vocab_ids", Message: "required (at least 1)"})
	} else if len(i.VocabIDs) > maxEnsure {
		errs = append(errs, domain.FieldError{Field: "vocab_ids", Message: "too many (max 500)"})
	}
	for _, id := range i.VocabIDs {
		if id == "" {
			errs = append(errs, domain.FieldError{Field: "vocab_ids", Message: "contains empty id"})
			break
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// EvaluateWeightsInput holds a candidate weight vector to score against the
// user's review history. An empty vector evaluates the stored (or default)
// weights instead.
type EvaluateWeightsInput struct {
	Weights []float64
}

// Validate checks all fields and collects all errors.
func (i *EvaluateWeightsInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Weights) != 0 && len(i.Weights) != 17 {
		errs = append(errs, domain.FieldError{Field: "weights", Message: "must contain exactly 17 values"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
