// Package optimizer evaluates scheduling weight vectors by replaying a user's
// historical reviews and scoring predicted recall against observed outcomes.
package optimizer

import (
	"sort"
	"time"

	"github.com/vocadrill/backend/internal/service/study/fsrs"
)

// Log is one historical review event.
type Log struct {
	CardID     string
	ReviewedAt time.Time
	Rating     fsrs.Rating
}

// groupByCard buckets logs per card and sorts each bucket ascending by
// timestamp. Replay order matters: every step's elapsed time depends on the
// previous step's review moment. Logs without a card id or timestamp are
// dropped as unusable.
func groupByCard(logs []Log) map[string][]Log {
	groups := make(map[string][]Log)
	for _, l := range logs {
		if l.CardID == "" || l.ReviewedAt.IsZero() {
			continue
		}
		groups[l.CardID] = append(groups[l.CardID], l)
	}
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].ReviewedAt.Before(group[j].ReviewedAt)
		})
	}
	return groups
}
