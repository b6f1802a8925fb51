// Package trackertest provides an in-memory issue tracker for tests.
package trackertest

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

// Tracker serves canned sprints and issues. Status filters are applied the
// way Jira applies them; issues are looked up by sprint name, or by sprint id
// for id filters.
type Tracker struct {
	mu sync.Mutex

	SprintList []sprint.Sprint
	BoardList  []sprint.Board
	ByName     map[string][]sprint.Issue
	ByID       map[int][]sprint.Issue
	Err        error // returned from every call when set

	searches int
}

func (t *Tracker) Search(ctx context.Context, f sprint.Filter, fields []string) (*sprint.SearchResult, error) {
	t.mu.Lock()
	t.searches++
	t.mu.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}

	source := t.ByName[f.SprintName]
	if f.SprintID != 0 {
		source = t.ByID[f.SprintID]
	}
	out := []sprint.Issue{}
	for _, is := range source {
		if matches(f, is.Status) {
			out = append(out, is)
		}
	}
	return &sprint.SearchResult{Total: len(out), Issues: out}, nil
}

func (t *Tracker) Sprints(ctx context.Context, boardID int, states ...sprint.State) ([]sprint.Sprint, error) {
	if t.Err != nil {
		return nil, t.Err
	}
	var out []sprint.Sprint
	for _, s := range t.SprintList {
		for _, st := range states {
			if s.State == st {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

func (t *Tracker) Boards(ctx context.Context) ([]sprint.Board, error) {
	if t.Err != nil {
		return nil, t.Err
	}
	return t.BoardList, nil
}

// Searches is the number of Search calls made so far.
func (t *Tracker) Searches() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.searches
}

func matches(f sprint.Filter, status string) bool {
	switch f.StatusOp {
	case sprint.StatusEq, sprint.StatusIn:
		return sprint.ContainsFold(f.Statuses, status)
	case sprint.StatusNotEq, sprint.StatusNotIn:
		return !sprint.ContainsFold(f.Statuses, status)
	default:
		return true
	}
}
