package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/felixgeelhaar/sprintpulse/pkg/application"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/calendar"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/drift"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/metrics"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

const (
	summaryWidth = 40
	// Status groups list their issues when small or heavy enough to matter.
	detailMaxIssues = 10
	detailMinPoints = 20
)

const dateLayout = "2006-01-02"

// Formatter renders reports as text.
type Formatter struct {
	Palette Palette
}

// Progress renders the full progress report of an active sprint.
func (f Formatter) Progress(r *application.ProgressReport) string {
	var b strings.Builder
	p := f.Palette

	fmt.Fprintln(&b, p.Header(fmt.Sprintf("=== Progress: Board %d %q ===", r.Board.ID, r.Sprint.Name)))
	if r.Board.Name != "" {
		fmt.Fprintf(&b, "Board: %s\n", p.Bold(r.Board.Name))
	}
	if r.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", r.Notes)
	}
	f.warnings(&b, r.Warnings)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, p.Bold("Calculation Breakdown:"))
	fmt.Fprintf(&b, "Remaining Actual: %s points\n", pts(r.Remaining.TotalPoints))
	f.statusGroups(&b, r.Remaining.ByStatus, r.StatusOrder)
	fmt.Fprintln(&b)

	if d := r.Drift; d != nil {
		f.plannedSection(&b, r, d)
		fmt.Fprintln(&b)
	}

	if r.Scope != nil {
		b.WriteString(f.ScopeChanges(*r.Scope))
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "%s %s points (%d issues)\n", p.Bold("Completed Issues:"), pts(r.Completed.TotalPoints), len(r.Completed.Issues))
	b.WriteString(f.FinishLine(r.FinishLine, r.FinishLineStatuses))
	fmt.Fprintln(&b)

	if d := r.Drift; d != nil {
		fmt.Fprintln(&b, f.DriftLine(d))
	}
	fmt.Fprintln(&b, f.RiskLine(r.Risk))
	fmt.Fprintln(&b)

	f.sprintDetails(&b, r.Sprint, r.Calendar.Today)
	fmt.Fprintln(&b)
	b.WriteString(f.BusinessDays(r.Calendar, r.TimeShift))
	return b.String()
}

func (f Formatter) warnings(b *strings.Builder, ws []application.Warning) {
	for _, w := range ws {
		fmt.Fprintln(b, f.Palette.Yellow(fmt.Sprintf("Warning: %s unavailable: %s", w.Section, w.Message)))
	}
}

func (f Formatter) statusGroups(b *strings.Builder, groups map[string]*metrics.StatusGroup, order []string) {
	for _, status := range metrics.SortedStatuses(groups, order) {
		g := groups[status]
		line := fmt.Sprintf("  %s: %s points (%d issues)", status, pts(g.Points), len(g.Issues))
		if g.FinishLine {
			line += " " + f.Palette.Dim("[NOT COUNTED IN DRIFT]")
		}
		fmt.Fprintln(b, line)
		if len(g.Issues) <= detailMaxIssues || g.Points > detailMinPoints {
			for _, is := range g.Issues {
				fmt.Fprintln(b, issueLine("    ", is))
			}
		}
	}
}

func issueLine(indent string, is sprint.Issue) string {
	return fmt.Sprintf("%s- %s %-*s %5s pts  %s", indent, is.Key, summaryWidth, truncate(is.Summary, summaryWidth),
		pts(is.PointValue()), is.AssigneeOrUnassigned())
}

func (f Formatter) plannedSection(b *strings.Builder, r *application.ProgressReport, d *drift.Result) {
	p := f.Palette
	fmt.Fprintln(b, p.Bold("Remaining Planned:"))
	fmt.Fprintf(b, "  Initial Points: %s\n", pts(d.InitialTotalPoints))
	fmt.Fprintf(b, "  Sprint Duration: %d business days\n", d.TotalSprintBusinessDays)

	pct := 0
	if d.TotalSprintBusinessDays > 0 {
		pct = int(math.Round(float64(d.ElapsedBusinessDays) / float64(d.TotalSprintBusinessDays) * 100))
	}
	elapsed := fmt.Sprintf("  Days Elapsed: %d (%d%%)", d.ElapsedBusinessDays, pct)
	if r.TimeShift != 0 {
		elapsed += " " + p.Yellow("[time-shifted]")
	}
	fmt.Fprintln(b, elapsed)

	if d.TeamVelocity != nil {
		fmt.Fprintf(b, "  Team Velocity: %s points per sprint\n", pts(*d.TeamVelocity))
	}
	fmt.Fprintf(b, "  Expected Burn Rate: %s points/day\n", pts(d.DailyRate))
	fmt.Fprintf(b, "  Expected Completed: %s points\n", pts(d.ExpectedCompletedPoints))
	fmt.Fprintf(b, "  Expected Remaining: %s points\n", pts(d.PlannedRemainingPoints))
	if d.RawCalculatedRemaining < 0 {
		fmt.Fprintf(b, "  %s\n", p.Dim(fmt.Sprintf("(raw calculation %s, clamped to 0)", pts(d.RawCalculatedRemaining))))
	}

	if l := d.Load; l != nil {
		switch l.Class {
		case drift.LoadLight:
			day := int(math.Ceil(l.ExpectedCompletionDay))
			fmt.Fprintf(b, "  Sprint Load: light (%d%% of velocity), expected done by the %s business day\n",
				l.LoadPercentage, humanize.Ordinal(day))
		case drift.LoadHeavy:
			fmt.Fprintf(b, "  Sprint Load: %s\n", p.Red(fmt.Sprintf("heavy (%d%% of velocity, %s points over)",
				l.LoadPercentage, pts(l.OvercommitPoints))))
		default:
			fmt.Fprintf(b, "  Sprint Load: normal (%d%% of velocity)\n", l.LoadPercentage)
		}
	}
}

// DriftLine is the one-line drift summary with its formula.
func (f Formatter) DriftLine(d *drift.Result) string {
	return fmt.Sprintf("Drift Score (Ideal is zero): %s = [%s expected completed] - [%s completed] (%s)",
		f.Palette.Drift(d.Drift, pts(d.Drift)), pts(d.ExpectedCompletedPoints), pts(d.CompletedPoints),
		f.Palette.Drift(d.Drift, string(d.Severity())))
}

// RiskLine is the one-line grooming risk summary with its formula.
func (f Formatter) RiskLine(r metrics.RiskResult) string {
	head := fmt.Sprintf("%.2f (%s Risk)", r.Score, r.Level)
	return fmt.Sprintf("Risk Score: %s = 1 - ([%d groomed issues] / [%d issues needing grooming])",
		f.Palette.Risk(r.Level, head), r.GroomedCount, r.TotalNeedingGrooming)
}

// ScopeChanges renders how the sprint scope moved since it started.
func (f Formatter) ScopeChanges(sc metrics.ScopeChanges) string {
	var b strings.Builder
	fmt.Fprintln(&b, f.Palette.Bold("Sprint Scope Changes:"))
	if sc.Placeholder {
		fmt.Fprintln(&b, "  Sprint has not started; no scope changes tracked.")
		return b.String()
	}
	fmt.Fprintf(&b, "  Initial Scope: %s points\n", pts(sc.InitialPoints))
	fmt.Fprintf(&b, "  Current Scope: %s points\n", pts(sc.CurrentPoints))
	fmt.Fprintf(&b, "  Net Change: %s points\n", signed(sc.NetPointChange))
	fmt.Fprintf(&b, "  Added Issues: %d (%s points)\n", sc.AddedIssueCount, pts(sc.AddedPoints))
	for _, is := range sc.AddedIssues {
		fmt.Fprintln(&b, issueLine("    ", is))
	}
	if sc.IsEstimated {
		fmt.Fprintf(&b, "  Removed (estimated): ~%s points\n", pts(sc.EstimatedRemovedPoints))
	}
	if len(sc.AddedByAssignee) > 0 {
		fmt.Fprintln(&b, "  Added by Assignee:")
		writeWork(&b, sc.AddedByAssignee)
	}
	if len(sc.CurrentByAssignee) > 0 {
		fmt.Fprintln(&b, "  Current Workload Distribution:")
		writeWork(&b, sc.CurrentByAssignee)
	}
	return b.String()
}

func writeWork(b *strings.Builder, work map[string]*metrics.AssigneeWork) {
	names := make([]string, 0, len(work))
	for n := range work {
		names = append(names, n)
	}
	sortByWork(names, work)
	for _, n := range names {
		w := work[n]
		fmt.Fprintf(b, "    %s: %d issues, %s points\n", n, w.Count, pts(w.Points))
	}
}

// FinishLine renders completed work per assignee.
func (f Formatter) FinishLine(fl metrics.FinishLineBreakdown, statuses []string) string {
	var b strings.Builder
	fmt.Fprintln(&b, f.Palette.Bold(fmt.Sprintf("Finish Line Breakdown (%s points):", pts(fl.TotalPoints))))
	if len(fl.Contributions) == 0 {
		fmt.Fprintln(&b, "  No points have crossed the finish line yet.")
	}
	for _, c := range fl.Contributions {
		fmt.Fprintf(&b, "  %s: %s points (%d%% of completed work)\n", c.Assignee, pts(c.Points), c.Percent)
		for _, is := range c.Issues {
			fmt.Fprintln(&b, issueLine("    ", is))
		}
	}
	if fl.ZeroPointIssues > 0 {
		fmt.Fprintf(&b, "  Total zero-point issues: %d\n", fl.ZeroPointIssues)
	}
	if len(statuses) > 0 {
		fmt.Fprintln(&b, f.Palette.Dim(fmt.Sprintf("  Note: issues in %s count as completed.", strings.Join(statuses, ", "))))
	}
	return b.String()
}

func (f Formatter) sprintDetails(b *strings.Builder, s sprint.Sprint, today time.Time) {
	fmt.Fprintln(b, f.Palette.Bold("Sprint Details:"))
	fmt.Fprintf(b, "  ID: %d\n", s.ID)
	if s.StartDate != nil {
		fmt.Fprintf(b, "  Start: %s\n", s.StartDate.Format(dateLayout))
	}
	if s.EndDate != nil {
		end := s.EndDate.Format(dateLayout)
		if !today.IsZero() {
			end += " (" + humanize.RelTime(*s.EndDate, today, "ago", "from now") + ")"
		}
		fmt.Fprintf(b, "  End: %s\n", end)
	}
	if s.Goal != "" {
		fmt.Fprintf(b, "  Goal: %s\n", s.Goal)
	}
}

// BusinessDays renders the calendar breakdown behind the elapsed and total
// day counts.
func (f Formatter) BusinessDays(cal calendar.Breakdown, timeShift int) string {
	var b strings.Builder
	fmt.Fprintln(&b, f.Palette.Bold("Business Days Breakdown:"))
	fmt.Fprintf(&b, "  Sprint: %s to %s\n", cal.Start.Format(dateLayout), cal.End.Format(dateLayout))
	today := "  Today: " + cal.Today.Format(dateLayout)
	if timeShift != 0 {
		today += fmt.Sprintf(" (shifted %s business days)", signed(float64(timeShift)))
	}
	fmt.Fprintln(&b, today)
	fmt.Fprintf(&b, "  Calendar days elapsed: %d\n", cal.CalendarDaysElapsed())
	fmt.Fprintf(&b, "  Business days elapsed: %d of %d\n", cal.Elapsed, cal.Total)

	days := make([]string, 0, len(cal.Days))
	for i, d := range cal.Days {
		label := d.Format("Mon 01-02")
		if i < cal.Elapsed {
			label = f.Palette.Dim(label)
		}
		days = append(days, label)
	}
	if len(days) > 0 {
		fmt.Fprintf(&b, "  Days: %s\n", strings.Join(days, ", "))
	}
	return b.String()
}
