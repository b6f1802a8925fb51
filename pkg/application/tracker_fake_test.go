package application_test

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

// fakeTracker serves canned sprints and issues and applies status filters the
// way the tracker would.
type fakeTracker struct {
	mu       sync.Mutex
	sprints  []sprint.Sprint
	boards   []sprint.Board
	current  map[string][]sprint.Issue // by sprint name
	initial  map[int][]sprint.Issue    // by sprint id
	failWith func(sprint.Filter) error
	calls    []sprint.Filter
}

func (f *fakeTracker) Search(ctx context.Context, filter sprint.Filter, fields []string) (*sprint.SearchResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, filter)
	f.mu.Unlock()

	if f.failWith != nil {
		if err := f.failWith(filter); err != nil {
			return nil, err
		}
	}

	var source []sprint.Issue
	if filter.SprintID != 0 {
		source = f.initial[filter.SprintID]
	} else {
		source = f.current[filter.SprintName]
	}

	var out []sprint.Issue
	for _, is := range source {
		if matchesStatus(filter, is.Status) {
			if !filter.ExpandHistory {
				is.SprintHistory = nil
			}
			out = append(out, is)
		}
	}
	return &sprint.SearchResult{Total: len(out), Issues: out}, nil
}

func (f *fakeTracker) Sprints(ctx context.Context, boardID int, states ...sprint.State) ([]sprint.Sprint, error) {
	var out []sprint.Sprint
	for _, s := range f.sprints {
		for _, st := range states {
			if s.State == st {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (f *fakeTracker) Boards(ctx context.Context) ([]sprint.Board, error) {
	return f.boards, nil
}

func (f *fakeTracker) callsWithHistory() int {
	n := 0
	for _, c := range f.calls {
		if c.ExpandHistory {
			n++
		}
	}
	return n
}

func matchesStatus(f sprint.Filter, status string) bool {
	switch f.StatusOp {
	case sprint.StatusEq, sprint.StatusIn:
		return sprint.ContainsFold(f.Statuses, status)
	case sprint.StatusNotEq, sprint.StatusNotIn:
		return !sprint.ContainsFold(f.Statuses, status)
	default:
		return true
	}
}
