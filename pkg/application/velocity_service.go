package application

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/analytics"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

// DefaultVelocitySamples is how many closed sprints feed a suggestion.
const DefaultVelocitySamples = 6

// VelocityService derives a team velocity from closed sprints.
type VelocityService struct {
	tracker domain.IssueTracker
	logger  *slog.Logger
}

// NewVelocityService creates a new velocity service.
func NewVelocityService(tracker domain.IssueTracker, logger *slog.Logger) *VelocityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &VelocityService{tracker: tracker, logger: logger}
}

// Suggest summarizes completed points of the last n closed sprints. Sprints
// whose query fails are skipped.
func (s *VelocityService) Suggest(ctx context.Context, board sprint.BoardConfig, n int) (*analytics.VelocityStats, error) {
	if n <= 0 {
		n = DefaultVelocitySamples
	}
	closed, err := s.tracker.Sprints(ctx, board.ID, sprint.StateClosed)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(closed, func(a, b int) bool {
		return endOf(closed[a]).Before(endOf(closed[b]))
	})
	if len(closed) > n {
		closed = closed[len(closed)-n:]
	}

	completedStatuses := append(append([]string(nil), board.Done()...), board.FinishLineStatuses...)
	var samples []analytics.SprintVelocity
	for _, sp := range closed {
		f := sprint.InSprintID(sp.ID).
			WithPoints(board.StoryPointsField()).
			WithStatus(sprint.StatusIn, completedStatuses...)
		res, err := s.tracker.Search(ctx, f, nil)
		if err != nil {
			if !errors.Is(err, sprint.ErrTransport) {
				return nil, err
			}
			s.logger.Warn("skipping sprint in velocity history", "sprint", sp.Name, "error", err)
			continue
		}
		samples = append(samples, analytics.SprintVelocity{
			SprintID:        sp.ID,
			SprintName:      sp.Name,
			CompletedPoints: sprint.SumPoints(res.Issues),
		})
	}

	vs, err := analytics.Summarize(samples)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "board %d", board.ID),
			"close at least one sprint with pointed issues before asking for a velocity",
		)
	}
	return vs, nil
}

func endOf(sp sprint.Sprint) time.Time {
	switch {
	case sp.CompleteDate != nil:
		return *sp.CompleteDate
	case sp.EndDate != nil:
		return *sp.EndDate
	case sp.StartDate != nil:
		return *sp.StartDate
	}
	return time.Time{}
}
