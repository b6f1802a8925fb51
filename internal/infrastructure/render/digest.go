package render

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/sprintpulse/pkg/application"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/metrics"
)

// Digest renders the condensed view of the active and next sprint.
func (f Formatter) Digest(d *application.Digest) string {
	var b strings.Builder
	p := f.Palette

	if r := d.Progress; r != nil {
		fmt.Fprintln(&b, p.Header(fmt.Sprintf("=== Progress: Board %d %q ===", r.Board.ID, r.Sprint.Name)))
		f.warnings(&b, r.Warnings)
		if r.Drift != nil {
			fmt.Fprintln(&b, f.DriftLine(r.Drift))
		}
		fmt.Fprintln(&b, BurdenBalance(r.Remaining))
		fmt.Fprintln(&b, f.RiskLine(r.Risk))
	} else {
		fmt.Fprintln(&b, p.Dim("No active sprint."))
	}
	fmt.Fprintln(&b)

	if r := d.Planning; r != nil {
		fmt.Fprintln(&b, p.Header(fmt.Sprintf("=== Planning: Board %d %q ===", r.Board.ID, r.Sprint.Name)))
		f.warnings(&b, r.Warnings)
		fmt.Fprintln(&b, f.RiskLine(r.Risk))
	} else {
		fmt.Fprintln(&b, p.Dim("No future sprint."))
	}
	return b.String()
}

// BurdenBalance lists remaining points per assignee by first name, with the
// unassigned remainder last.
func BurdenBalance(r metrics.RemainingSummary) string {
	parts := make([]string, 0, len(r.Workload))
	for _, name := range r.Assignees() {
		parts = append(parts, fmt.Sprintf("%s %s", firstName(name), pts(r.Workload[name])))
	}
	parts = append(parts, fmt.Sprintf("Uncarried %s", pts(r.UnassignedPoints())))
	return "Burden Balance: " + strings.Join(parts, ", ")
}
