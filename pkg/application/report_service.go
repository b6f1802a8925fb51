package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/calendar"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/drift"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/metrics"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

// ReportService builds progress, planning and digest reports. Each tracker
// query degrades on its own: a transport failure empties that section, logs a
// warning and leaves the rest of the report intact.
type ReportService struct {
	tracker  domain.IssueTracker
	sprints  *SprintService
	drift    *drift.Calculator
	logger   *slog.Logger
	now      func() time.Time
	location *time.Location
}

// ReportOption configures a ReportService.
type ReportOption func(*ReportService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ReportOption {
	return func(s *ReportService) { s.now = now }
}

// WithLocation sets the time zone calendar dates are taken in.
func WithLocation(loc *time.Location) ReportOption {
	return func(s *ReportService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewReportService creates a new report service.
func NewReportService(tracker domain.IssueTracker, sprints *SprintService, logger *slog.Logger, opts ...ReportOption) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &ReportService{
		tracker:  tracker,
		sprints:  sprints,
		drift:    drift.NewCalculator(),
		logger:   logger,
		now:      time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProgressOptions tunes a progress report.
type ProgressOptions struct {
	TimeShift int // business days added to today
}

// Progress builds the progress report for sp.
func (s *ReportService) Progress(ctx context.Context, board sprint.BoardConfig, sp *sprint.Sprint, opts ProgressOptions) (*ProgressReport, error) {
	if sp == nil {
		return nil, nil
	}
	if !sp.HasDates() {
		return nil, sprint.ConfigError("start the sprint in the tracker first", "sprint %q has no start or end date", sp.Name)
	}

	start := sp.StartDate.In(s.location)
	end := sp.EndDate.In(s.location)
	today := calendar.ShiftBusinessDays(s.now().In(s.location), opts.TimeShift)

	cal := calendar.NewBreakdown(start, end, today)
	if override, ok := board.TotalBusinessDaysOverride(sp.Name); ok {
		cal.Total = override
	}

	rep := &ProgressReport{
		Board:              BoardRef{ID: board.ID, Name: board.Name},
		Sprint:             *sp,
		Notes:              board.Notes(sp.Name),
		TimeShift:          opts.TimeShift,
		Calendar:           cal,
		StatusOrder:        board.StatusOrder,
		FinishLineStatuses: board.FinishLineStatuses,
	}
	points := board.StoryPointsField()
	byID := sprint.InSprintID(sp.ID).WithPoints(points)
	byName := sprint.InSprintNamed(sp.Name).WithPoints(points)

	initial, err := s.search(ctx, rep.addWarning, "initial scope", byID)
	if err != nil {
		return nil, err
	}
	initialPoints := sprint.SumPoints(initial)

	notDone, err := s.search(ctx, rep.addWarning, "remaining work", byName.WithStatus(sprint.StatusNotIn, board.Done()...))
	if err != nil {
		return nil, err
	}
	rep.Remaining = metrics.Remaining(notDone, board.FinishLineStatuses)

	done, err := s.search(ctx, rep.addWarning, "completed work", byName.WithStatus(sprint.StatusIn, board.Done()...))
	if err != nil {
		return nil, err
	}
	var crossed []sprint.Issue
	if len(board.FinishLineStatuses) > 0 {
		crossed, err = s.search(ctx, rep.addWarning, "finish line", byName.WithStatus(sprint.StatusIn, board.FinishLineStatuses...))
		if err != nil {
			return nil, err
		}
	}
	rep.Completed = metrics.Completed(done, crossed)
	rep.FinishLine = metrics.CompletedByAssignee(rep.Completed.Issues)

	in := drift.Input{
		InitialTotalPoints:      initialPoints,
		CurrentRemainingPoints:  rep.Remaining.TotalPoints,
		CompletedPoints:         rep.Completed.TotalPoints,
		TotalSprintBusinessDays: cal.Total,
		ElapsedBusinessDays:     cal.Elapsed,
	}
	if v, ok := board.TeamVelocity(sp.Name); ok {
		in.TeamVelocity = &v
	}
	if rep.Drift, err = s.drift.Calculate(in); err != nil {
		return nil, errors.Wrapf(err, "drift for sprint %q", sp.Name)
	}

	grooming, err := s.search(ctx, rep.addWarning, "grooming risk", groomingFilter(board, sp.Name))
	if err != nil {
		return nil, err
	}
	rep.Risk = metrics.AssessGroomingRisk(grooming, board.FinishLineStatuses)

	current, err := s.search(ctx, rep.addWarning, "scope changes", byName.WithHistory())
	if err != nil {
		return nil, err
	}
	if current != nil {
		sc := metrics.TrackScopeChanges(*sp, initialPoints, current)
		rep.Scope = &sc
	}

	s.logger.Debug("progress report built",
		"board", board.ID, "sprint", sp.Name,
		"drift", rep.Drift.Drift, "warnings", len(rep.Warnings))
	return rep, nil
}

// Planning builds the planning report for sp.
func (s *ReportService) Planning(ctx context.Context, board sprint.BoardConfig, sp *sprint.Sprint) (*PlanningReport, error) {
	if sp == nil {
		return nil, nil
	}
	rep := &PlanningReport{
		Board:              BoardRef{ID: board.ID, Name: board.Name},
		Sprint:             *sp,
		Notes:              board.Notes(sp.Name),
		StatusOrder:        board.StatusOrder,
		FinishLineStatuses: board.FinishLineStatuses,
	}
	if v, ok := board.TeamVelocity(sp.Name); ok {
		rep.TeamVelocity = &v
	}

	issues, err := s.search(ctx, rep.addWarning, "grooming", groomingFilter(board, sp.Name))
	if err != nil {
		return nil, err
	}
	rep.Grooming = metrics.Grooming(issues, board.GroomedStatuses(), board.FinishLineStatuses)
	rep.Risk = metrics.AssessGroomingRisk(issues, board.FinishLineStatuses)
	return rep, nil
}

// Digest builds progress for the active sprint and planning for the next one.
// A board without an active or future sprint yields a nil section.
func (s *ReportService) Digest(ctx context.Context, board sprint.BoardConfig, opts ProgressOptions) (*Digest, error) {
	d := &Digest{GeneratedAt: s.now()}

	active, err := s.sprints.Active(ctx, board.ID)
	if err := notFoundIsNil(err); err != nil {
		return nil, err
	}
	if d.Progress, err = s.Progress(ctx, board, active, opts); err != nil {
		return nil, err
	}

	next, err := s.sprints.Next(ctx, board.ID)
	if err := notFoundIsNil(err); err != nil {
		return nil, err
	}
	if d.Planning, err = s.Planning(ctx, board, next); err != nil {
		return nil, err
	}
	return d, nil
}

func notFoundIsNil(err error) error {
	if err == nil || sprint.IsNotFound(err) {
		return nil
	}
	return err
}

func groomingFilter(board sprint.BoardConfig, sprintName string) sprint.Filter {
	statuses := append(append([]string(nil), board.UngroomedStatuses()...), board.GroomedStatuses()...)
	return sprint.InSprintNamed(sprintName).
		WithPoints(board.StoryPointsField()).
		WithStatus(sprint.StatusIn, statuses...)
}

// search runs one query. Transport failures are logged, reported through warn
// and turned into a nil result; success always yields a non-nil slice. Any
// other error is returned.
func (s *ReportService) search(ctx context.Context, warn func(string, error), section string, f sprint.Filter) ([]sprint.Issue, error) {
	res, err := s.tracker.Search(ctx, f, nil)
	if err != nil {
		if !errors.Is(err, sprint.ErrTransport) {
			return nil, errors.Wrapf(err, "%s query", section)
		}
		s.logger.Warn("tracker query failed, continuing without it", "section", section, "error", err)
		warn(section, err)
		return nil, nil
	}
	if res == nil || res.Issues == nil {
		return []sprint.Issue{}, nil
	}
	return res.Issues, nil
}

func (r *ProgressReport) addWarning(section string, err error) {
	r.Warnings = append(r.Warnings, Warning{Section: section, Message: err.Error()})
}

func (r *PlanningReport) addWarning(section string, err error) {
	r.Warnings = append(r.Warnings, Warning{Section: section, Message: err.Error()})
}
