// Package leitner implements the discrete 3-box scheduling track: short fixed
// intervals for reinforcing weak or new material, complementary to the
// continuous memory-state track used for long-term retention.
package leitner

import "time"

const (
	MinBox = 1
	MaxBox = 3
)

// intervalDays is the fixed review interval per box.
var intervalDays = map[int]int{
	1: 1,
	2: 3,
	3: 5,
}

// IntervalDays returns the fixed interval for a box, clamping out-of-range
// boxes into [MinBox, MaxBox].
func IntervalDays(box int) int {
	return intervalDays[clampBox(box)]
}

// Entry is the per-card box state.
type Entry struct {
	Box   int
	DueAt time.Time
}

// NewEntry returns the initial state for a never-quizzed card: box 1, due
// immediately.
func NewEntry(now time.Time) Entry {
	return Entry{Box: MinBox, DueAt: now}
}

// Advance applies one quiz answer. A zero-value entry is treated as a fresh
// box-1 card. The new due date is computed from the moment of review, not
// from the previous due date: a late answer resets the cadence.
func Advance(e Entry, correct bool, now time.Time) Entry {
	box := e.Box
	if box < MinBox {
		box = MinBox
	}

	if correct {
		box++
	} else {
		box--
	}
	box = clampBox(box)

	return Entry{
		Box:   box,
		DueAt: now.AddDate(0, 0, intervalDays[box]),
	}
}

func clampBox(box int) int {
	if box < MinBox {
		return MinBox
	}
	if box > MaxBox {
		return MaxBox
	}
	return box
}
