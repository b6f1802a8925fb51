package sprint

import (
	"sort"
	"time"
)

// State is the lifecycle state of a sprint as reported by the tracker.
type State string

const (
	StateActive State = "active"
	StateFuture State = "future"
	StateClosed State = "closed"
)

// Sprint is an iteration on a board.
type Sprint struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	State        State      `json:"state"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	CompleteDate *time.Time `json:"completeDate,omitempty"`
	Goal         string     `json:"goal,omitempty"`
}

// IsFuture reports whether the sprint has not started yet.
func (s Sprint) IsFuture() bool {
	return s.State == StateFuture
}

// HasDates reports whether both start and end dates are set.
func (s Sprint) HasDates() bool {
	return s.StartDate != nil && s.EndDate != nil
}

// Board is a tracker board visible to the configured credentials.
type Board struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

var stateRank = map[State]int{StateActive: 0, StateFuture: 1, StateClosed: 2}

// SortForListing orders sprints active, future, closed; newest start first
// inside each group. Undated sprints sort after dated ones.
func SortForListing(sprints []Sprint) {
	sort.SliceStable(sprints, func(a, b int) bool {
		ra, rb := rankOf(sprints[a].State), rankOf(sprints[b].State)
		if ra != rb {
			return ra < rb
		}
		sa, sb := sprints[a].StartDate, sprints[b].StartDate
		switch {
		case sa == nil && sb == nil:
			return sprints[a].ID > sprints[b].ID
		case sa == nil:
			return false
		case sb == nil:
			return true
		}
		return sa.After(*sb)
	})
}

func rankOf(s State) int {
	if r, ok := stateRank[s]; ok {
		return r
	}
	return len(stateRank)
}
