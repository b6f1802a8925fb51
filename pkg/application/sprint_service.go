package application

import (
	"context"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

// SprintSelector picks a sprint on a board. Name wins over Active, which wins
// over Next.
type SprintSelector struct {
	Name   string
	Active bool
	Next   bool
}

// IsZero reports whether nothing was selected.
func (s SprintSelector) IsZero() bool {
	return s.Name == "" && !s.Active && !s.Next
}

// SprintService finds sprints on a board.
type SprintService struct {
	tracker domain.IssueTracker
}

// NewSprintService creates a new sprint service.
func NewSprintService(tracker domain.IssueTracker) *SprintService {
	return &SprintService{tracker: tracker}
}

// List returns the board's sprints in the given states, active first, then
// future, then closed, newest first within each group.
func (s *SprintService) List(ctx context.Context, boardID int, states ...sprint.State) ([]sprint.Sprint, error) {
	if len(states) == 0 {
		states = []sprint.State{sprint.StateActive, sprint.StateFuture, sprint.StateClosed}
	}
	sprints, err := s.tracker.Sprints(ctx, boardID, states...)
	if err != nil {
		return nil, err
	}
	sprint.SortForListing(sprints)
	return sprints, nil
}

// ByName finds a sprint by exact name, falling back to a case-insensitive match.
func (s *SprintService) ByName(ctx context.Context, boardID int, name string) (*sprint.Sprint, error) {
	sprints, err := s.List(ctx, boardID)
	if err != nil {
		return nil, err
	}
	var folded *sprint.Sprint
	for i := range sprints {
		if sprints[i].Name == name {
			return &sprints[i], nil
		}
		if folded == nil && strings.EqualFold(strings.TrimSpace(sprints[i].Name), strings.TrimSpace(name)) {
			folded = &sprints[i]
		}
	}
	if folded != nil {
		return folded, nil
	}
	return nil, errors.Wrapf(sprint.ErrSprintNotFound, "sprint %q on board %d", name, boardID)
}

// Active returns the board's active sprint.
func (s *SprintService) Active(ctx context.Context, boardID int) (*sprint.Sprint, error) {
	sprints, err := s.tracker.Sprints(ctx, boardID, sprint.StateActive)
	if err != nil {
		return nil, err
	}
	if len(sprints) == 0 {
		return nil, errors.Wrapf(sprint.ErrNoActiveSprint, "board %d", boardID)
	}
	sprint.SortForListing(sprints)
	return &sprints[0], nil
}

// Next returns the future sprint that starts first. Undated future sprints
// are considered after dated ones, in tracker order.
func (s *SprintService) Next(ctx context.Context, boardID int) (*sprint.Sprint, error) {
	sprints, err := s.tracker.Sprints(ctx, boardID, sprint.StateFuture)
	if err != nil {
		return nil, err
	}
	if len(sprints) == 0 {
		return nil, errors.Wrapf(sprint.ErrNoFutureSprint, "board %d", boardID)
	}
	sort.SliceStable(sprints, func(a, b int) bool {
		sa, sb := sprints[a].StartDate, sprints[b].StartDate
		switch {
		case sa == nil:
			return false
		case sb == nil:
			return true
		}
		return sa.Before(*sb)
	})
	return &sprints[0], nil
}

// Resolve applies a selector. A zero selector resolves to fallback.
func (s *SprintService) Resolve(ctx context.Context, boardID int, sel, fallback SprintSelector) (*sprint.Sprint, error) {
	if sel.IsZero() {
		sel = fallback
	}
	switch {
	case sel.Name != "":
		return s.ByName(ctx, boardID, sel.Name)
	case sel.Next:
		return s.Next(ctx, boardID)
	default:
		return s.Active(ctx, boardID)
	}
}
