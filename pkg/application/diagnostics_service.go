package application

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

// Diagnosis is what the debug command prints about one board.
type Diagnosis struct {
	Board         BoardRef        `json:"board"`
	PointsField   string          `json:"storyPointsField"`
	RecentSprints []sprint.Sprint `json:"recentSprints"`
	ProbeSprint   string          `json:"probeSprint,omitempty"`
	ProbeIssues   int             `json:"probeIssues"`
	ProbePointed  int             `json:"probePointed"`
	ProbeSample   []sprint.Issue  `json:"probeSample,omitempty"`
}

// PointsFieldLooksWrong reports whether the probe found issues but none of
// them carried a value in the story-points field.
func (d *Diagnosis) PointsFieldLooksWrong() bool {
	return d.ProbeIssues > 0 && d.ProbePointed == 0
}

// DiagnosticsService checks connectivity and board configuration.
type DiagnosticsService struct {
	tracker domain.IssueTracker
	sprints *SprintService
}

// NewDiagnosticsService creates a new diagnostics service.
func NewDiagnosticsService(tracker domain.IssueTracker, sprints *SprintService) *DiagnosticsService {
	return &DiagnosticsService{tracker: tracker, sprints: sprints}
}

const (
	recentSprintLimit = 5
	probeSampleLimit  = 5
)

// Diagnose lists recent sprints and probes the story-points field against the
// most recent one.
func (s *DiagnosticsService) Diagnose(ctx context.Context, board sprint.BoardConfig) (*Diagnosis, error) {
	d := &Diagnosis{
		Board:       BoardRef{ID: board.ID, Name: board.Name},
		PointsField: board.StoryPointsField(),
	}
	sprints, err := s.sprints.List(ctx, board.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list sprints")
	}
	if len(sprints) > recentSprintLimit {
		sprints = sprints[:recentSprintLimit]
	}
	d.RecentSprints = sprints
	if len(sprints) == 0 {
		return d, nil
	}

	probe := sprints[0]
	d.ProbeSprint = probe.Name
	res, err := s.tracker.Search(ctx, sprint.InSprintID(probe.ID).WithPoints(d.PointsField), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "probe sprint %q", probe.Name)
	}
	d.ProbeIssues = len(res.Issues)
	for _, is := range res.Issues {
		if is.IsPointed() {
			d.ProbePointed++
		}
	}
	d.ProbeSample = res.Issues
	if len(d.ProbeSample) > probeSampleLimit {
		d.ProbeSample = d.ProbeSample[:probeSampleLimit]
	}
	return d, nil
}
