package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Clamping bounds for memory state values. All constructors and persistence
// paths enforce these; the scheduling math assumes they hold.
const (
	MinStability  = 0.01
	MinDifficulty = 1.0
	MaxDifficulty = 10.0

	// DefaultDifficulty is used for never-reviewed cards.
	DefaultDifficulty = 5.0
)

// MemoryState is the FSRS memory state of a single card.
// LastReviewedAt is nil for never-reviewed cards.
type MemoryState struct {
	Stability      float64
	Difficulty     float64
	LastReviewedAt *time.Time
	State          LifecycleState
}

// NewMemoryState returns the initial state for a never-reviewed card.
func NewMemoryState() MemoryState {
	return MemoryState{
		Stability:  MinStability,
		Difficulty: DefaultDifficulty,
		State:      StateNew,
	}
}

// Normalized returns a copy with stability and difficulty clamped to their
// valid ranges and an invalid lifecycle state reset to "new".
func (m MemoryState) Normalized() MemoryState {
	if m.Stability < MinStability {
		m.Stability = MinStability
	}
	if m.Difficulty == 0 {
		m.Difficulty = DefaultDifficulty
	}
	if m.Difficulty < MinDifficulty {
		m.Difficulty = MinDifficulty
	}
	if m.Difficulty > MaxDifficulty {
		m.Difficulty = MaxDifficulty
	}
	if !m.State.IsValid() {
		m.State = StateNew
	}
	return m
}

// SRSEntry is the persisted FSRS scheduling record for one (user, deck, card).
type SRSEntry struct {
	UserID           uuid.UUID
	Deck             string
	VocabID          string
	State            MemoryState
	NextIntervalDays int
	DueAt            time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Key returns the composite document key "${deck}:${vocabID}".
func (e SRSEntry) Key() string { return CardKey(e.Deck, e.VocabID) }

// LeitnerEntry is the persisted box-track record for one (user, deck, card).
type LeitnerEntry struct {
	UserID    uuid.UUID
	Deck      string
	VocabID   string
	Box       int
	DueAt     time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key returns the composite document key "${deck}:${vocabID}".
func (e LeitnerEntry) Key() string { return CardKey(e.Deck, e.VocabID) }

// CardKey builds the composite key shared by both scheduling tracks.
func CardKey(deck, vocabID string) string {
	return fmt.Sprintf("%s:%s", deck, vocabID)
}

// ReviewLog records a single FSRS review event.
type ReviewLog struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Deck       string
	VocabID    string
	Rating     Rating
	ReviewedAt time.Time
}

// CardID returns the composite key identifying the reviewed card.
func (l ReviewLog) CardID() string { return CardKey(l.Deck, l.VocabID) }

// BoxCounts holds per-box entry counts for the Leitner track.
type BoxCounts struct {
	Box1  int
	Box2  int
	Box3  int
	Total int
}

// Dashboard aggregates study statistics across both tracks.
type Dashboard struct {
	DueCount      int
	NewCount      int
	ReviewedTotal int
	Boxes         BoxCounts
}
