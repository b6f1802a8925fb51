package domain

import (
	"context"

	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

// IssueTracker reads boards, sprints and issues from the team's tracker.
// Implementations mark transport failures with sprint.ErrTransport and never
// retry on their own.
type IssueTracker interface {
	Search(ctx context.Context, filter sprint.Filter, fields []string) (*sprint.SearchResult, error)
	Sprints(ctx context.Context, boardID int, states ...sprint.State) ([]sprint.Sprint, error)
	Boards(ctx context.Context) ([]sprint.Board, error)
}
