package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/sprintpulse/pkg/application"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/analytics"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

func (f Formatter) table(columns []table.Column, rows []table.Row) string {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	if f.Palette.Enabled {
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Bold(true)
	} else {
		s.Header = lipgloss.NewStyle().Padding(0, 1)
		s.Cell = lipgloss.NewStyle().Padding(0, 1)
	}
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t.View()
}

// Sprints renders sprints as a table.
func (f Formatter) Sprints(sprints []sprint.Sprint) string {
	if len(sprints) == 0 {
		return "No sprints found.\n"
	}
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Name", Width: 30},
		{Title: "State", Width: 8},
		{Title: "Start", Width: 10},
		{Title: "End", Width: 10},
	}
	rows := make([]table.Row, 0, len(sprints))
	for _, s := range sprints {
		rows = append(rows, table.Row{
			strconv.Itoa(s.ID),
			s.Name,
			string(s.State),
			dateOrDash(s.StartDate),
			dateOrDash(s.EndDate),
		})
	}
	return f.table(columns, rows) + "\n"
}

// Boards renders boards as a table, marking the ones present in config.
func (f Formatter) Boards(boards []sprint.Board, configured map[int]bool) string {
	if len(boards) == 0 {
		return "No boards found.\n"
	}
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Name", Width: 36},
		{Title: "Type", Width: 8},
		{Title: "Config", Width: 6},
	}
	rows := make([]table.Row, 0, len(boards))
	for _, b := range boards {
		mark := ""
		if configured[b.ID] {
			mark = "yes"
		}
		rows = append(rows, table.Row{strconv.Itoa(b.ID), b.Name, b.Type, mark})
	}
	return f.table(columns, rows) + "\n"
}

// Velocity renders per-sprint velocity and the suggestion derived from it.
func (f Formatter) Velocity(board application.BoardRef, vs *analytics.VelocityStats) string {
	var b strings.Builder
	fmt.Fprintln(&b, f.Palette.Header(fmt.Sprintf("=== Velocity: Board %d %q ===", board.ID, board.Name)))

	columns := []table.Column{
		{Title: "Sprint", Width: 30},
		{Title: "Completed", Width: 10},
	}
	rows := make([]table.Row, 0, len(vs.Sprints))
	for _, s := range vs.Sprints {
		rows = append(rows, table.Row{s.SprintName, pts(s.CompletedPoints)})
	}
	fmt.Fprintln(&b, f.table(columns, rows))

	fmt.Fprintf(&b, "Samples: %d\n", vs.Samples)
	fmt.Fprintf(&b, "Mean: %.1f  Median: %.1f  StdDev: %.1f\n", vs.Mean, vs.Median, vs.StdDev)
	fmt.Fprintf(&b, "Range: %.1f to %.1f (min %s, max %s)\n", vs.Range.Low, vs.Range.High, pts(vs.Min), pts(vs.Max))
	fmt.Fprintf(&b, "Trend: %s\n", vs.Trend)
	consistency := f.Palette.Yellow("variable")
	if vs.IsConsistent() {
		consistency = f.Palette.Green("consistent")
	}
	fmt.Fprintf(&b, "Consistency: %s\n", consistency)
	fmt.Fprintf(&b, "Suggested defaultTeamVelocity: %s\n", f.Palette.Bold(fmt.Sprintf("%.0f", vs.Suggested())))
	return b.String()
}

// Diagnosis renders the debug report of a board.
func (f Formatter) Diagnosis(d *application.Diagnosis) string {
	var b strings.Builder
	p := f.Palette
	fmt.Fprintln(&b, p.Header(fmt.Sprintf("=== Debug: Board %d %q ===", d.Board.ID, d.Board.Name)))
	fmt.Fprintf(&b, "Story points field: %s\n", d.PointsField)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, p.Bold("Recent sprints:"))
	b.WriteString(f.Sprints(d.RecentSprints))

	if d.ProbeSprint == "" {
		return b.String()
	}
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Probe sprint %q: %d issues, %d with points\n", d.ProbeSprint, d.ProbeIssues, d.ProbePointed)
	for _, is := range d.ProbeSample {
		points := "-"
		if is.IsPointed() {
			points = pts(is.PointValue())
		}
		fmt.Fprintf(&b, "  - %s [%s] %s pts\n", is.Key, is.Status, points)
	}
	if d.PointsFieldLooksWrong() {
		fmt.Fprintln(&b, p.Red(fmt.Sprintf("No issue has a value in %s; check customFields.storyPoints for this board.", d.PointsField)))
	}
	return b.String()
}

func dateOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}
