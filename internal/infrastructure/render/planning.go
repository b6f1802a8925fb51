package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/sprintpulse/pkg/application"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/metrics"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

const planningSummaryWidth = 50

// Planning renders the grooming readiness of an upcoming sprint.
func (f Formatter) Planning(r *application.PlanningReport) string {
	var b strings.Builder
	p := f.Palette

	fmt.Fprintln(&b, p.Header(fmt.Sprintf("=== Planning: Board %d %q ===", r.Board.ID, r.Sprint.Name)))
	if r.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", r.Notes)
	}
	f.warnings(&b, r.Warnings)
	fmt.Fprintln(&b)

	g := r.Grooming
	fmt.Fprintln(&b, p.Yellow("UNGROOMED ISSUES (Unpointed):"))
	if len(g.Unpointed) == 0 {
		fmt.Fprintln(&b, p.Green("No unpointed issues that need grooming!"))
	}
	f.planningGroups(&b, g.Unpointed, r.StatusOrder, false)
	fmt.Fprintln(&b)

	if len(g.EssentiallyDone) > 0 {
		fmt.Fprintln(&b, p.Dim("ESSENTIALLY DONE (Unpointed, past the finish line):"))
		f.planningGroups(&b, g.EssentiallyDone, r.StatusOrder, false)
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, p.Green(fmt.Sprintf("GROOMED ISSUES (Pointed): %s points", pts(g.PointedTotal()))))
	f.planningGroups(&b, g.Pointed, r.StatusOrder, true)
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "Groomed: %d of %d issues (%d%%)\n", r.Risk.GroomedCount, r.Risk.TotalNeedingGrooming, r.Risk.GroomedPercent())
	if g.GroomedByStatus > 0 {
		fmt.Fprintf(&b, "In a groomed status: %d issues\n", g.GroomedByStatus)
	}
	if r.TeamVelocity != nil {
		fmt.Fprintf(&b, "Commitment: %s of %s velocity points (%.0f%%)\n",
			pts(g.PointedTotal()), pts(*r.TeamVelocity), r.CommitmentRatio()*100)
	}
	fmt.Fprintln(&b, f.RiskLine(r.Risk))
	return b.String()
}

func (f Formatter) planningGroups(b *strings.Builder, issues []sprint.Issue, order []string, withPoints bool) {
	groups := make(map[string][]sprint.Issue)
	for _, is := range issues {
		groups[is.Status] = append(groups[is.Status], is)
	}
	statuses := make([]string, 0, len(groups))
	for s := range groups {
		statuses = append(statuses, s)
	}
	for _, status := range metrics.OrderStatuses(statuses, order) {
		list := groups[status]
		if withPoints {
			fmt.Fprintf(b, "%s: %d issues, %s points\n", f.Palette.Bold(status), len(list), pts(sprint.SumPoints(list)))
		} else {
			fmt.Fprintf(b, "%s: %d issues\n", f.Palette.Bold(status), len(list))
		}
		for _, is := range list {
			line := fmt.Sprintf("  - %s: %s (%s)", is.Key, truncate(is.Summary, planningSummaryWidth), is.AssigneeOrUnassigned())
			if withPoints {
				line += fmt.Sprintf(" [%s pts]", pts(is.PointValue()))
			}
			fmt.Fprintln(b, line)
		}
	}
}

func sortByWork(names []string, work map[string]*metrics.AssigneeWork) {
	sort.Slice(names, func(a, b int) bool {
		pa, pb := work[names[a]].Points, work[names[b]].Points
		if pa != pb {
			return pa > pb
		}
		return names[a] < names[b]
	})
}
