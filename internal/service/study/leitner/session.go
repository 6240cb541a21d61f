package leitner

import (
	"math"
	"sort"
	"time"
)

// Card is one selectable item in a box.
type Card struct {
	ID    string
	DueAt time.Time
}

// SessionConfig controls queue building.
type SessionConfig struct {
	// Weights allocates session slots across boxes. Higher weight means a
	// larger share of the session.
	Weights map[int]int
	// Capacities are soft per-box limits; boxes holding more entries than
	// their capacity get a quota boost to drain the backlog.
	Capacities map[int]int
	// PreferDue fills each box's quota from already-due cards before
	// touching not-yet-due ones.
	PreferDue bool
}

// DefaultSessionConfig favors box 1: its cards carry the shortest intervals
// and are the most time-sensitive.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Weights:    map[int]int{1: 13, 2: 8, 3: 5},
		Capacities: map[int]int{1: 200, 2: 120, 3: 80},
		PreferDue:  true,
	}
}

// BuildQueue selects up to sessionSize cards across the boxes and returns
// their ids ordered box 1 first, box 2, then box 3.
//
// Quotas are allocated proportionally to the box weights, remainders going to
// the heaviest boxes first. Overfull boxes (entry count above capacity) get a
// bounded quota boost; if boosting pushes the total past sessionSize the
// excess is trimmed from box 3 downward so box 1 keeps its share.
func BuildQueue(boxes map[int][]Card, sessionSize int, cfg SessionConfig, now time.Time) []string {
	if sessionSize <= 0 {
		return nil
	}

	quotas := allocateQuotas(boxes, sessionSize, cfg)

	queue := make([]string, 0, sessionSize)
	for box := MinBox; box <= MaxBox; box++ {
		if len(queue) >= sessionSize {
			break
		}
		quota := quotas[box]
		if quota > sessionSize-len(queue) {
			quota = sessionSize - len(queue)
		}
		queue = append(queue, selectFromBox(boxes[box], quota, cfg.PreferDue, now)...)
	}
	return queue
}

func allocateQuotas(boxes map[int][]Card, sessionSize int, cfg SessionConfig) map[int]int {
	totalWeight := 0
	for box := MinBox; box <= MaxBox; box++ {
		totalWeight += cfg.Weights[box]
	}

	quotas := make(map[int]int, MaxBox)
	if totalWeight <= 0 {
		return quotas
	}

	allocated := 0
	for box := MinBox; box <= MaxBox; box++ {
		q := sessionSize * cfg.Weights[box] / totalWeight
		quotas[box] = q
		allocated += q
	}

	// Hand out the rounding remainder one slot at a time, heaviest box first.
	for remainder := sessionSize - allocated; remainder > 0; {
		for _, box := range boxesByWeightDesc(cfg.Weights) {
			if remainder == 0 {
				break
			}
			quotas[box]++
			remainder--
		}
	}

	// Backlogged boxes get extra slots, bounded so no single box can take
	// over the whole session.
	maxBoost := int(math.Max(3, math.Ceil(float64(sessionSize)*0.25)))
	for box := MinBox; box <= MaxBox; box++ {
		capacity := cfg.Capacities[box]
		if capacity <= 0 {
			continue
		}
		overflow := len(boxes[box]) - capacity
		if overflow <= 0 {
			continue
		}
		extra := int(math.Ceil(float64(overflow) / 10))
		if extra > maxBoost {
			extra = maxBoost
		}
		quotas[box] += extra
	}

	// Trim any excess from box 3 downward.
	total := 0
	for box := MinBox; box <= MaxBox; box++ {
		total += quotas[box]
	}
	for box := MaxBox; box >= MinBox && total > sessionSize; box-- {
		cut := total - sessionSize
		if cut > quotas[box] {
			cut = quotas[box]
		}
		quotas[box] -= cut
		total -= cut
	}

	return quotas
}

func boxesByWeightDesc(weights map[int]int) []int {
	order := make([]int, 0, MaxBox)
	for box := MinBox; box <= MaxBox; box++ {
		order = append(order, box)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return weights[order[i]] > weights[order[j]]
	})
	return order
}

func selectFromBox(cards []Card, quota int, preferDue bool, now time.Time) []string {
	if quota <= 0 || len(cards) == 0 {
		return nil
	}

	sorted := make([]Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueAt.Before(sorted[j].DueAt)
	})

	if preferDue {
		due := make([]Card, 0, len(sorted))
		notDue := make([]Card, 0, len(sorted))
		for _, c := range sorted {
			if !c.DueAt.After(now) {
				due = append(due, c)
			} else {
				notDue = append(notDue, c)
			}
		}
		sorted = append(due, notDue...)
	}

	if quota > len(sorted) {
		quota = len(sorted)
	}
	ids := make([]string, 0, quota)
	for _, c := range sorted[:quota] {
		ids = append(ids, c.ID)
	}
	return ids
}
