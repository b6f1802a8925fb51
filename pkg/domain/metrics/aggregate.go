// Package metrics aggregates story points across a sprint's issues.
package metrics

import (
	"math"
	"sort"

	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

// StatusGroup collects the issues sharing one status.
type StatusGroup struct {
	Status     string         `json:"status"`
	Points     float64        `json:"points"`
	Issues     []sprint.Issue `json:"issues"`
	FinishLine bool           `json:"finishLine"` // excluded from remaining totals
}

// RemainingSummary describes the work not yet done in a sprint.
type RemainingSummary struct {
	TotalPoints float64                 `json:"totalPoints"`
	Workload    map[string]float64      `json:"workload"` // assignee -> points, sprint.Unassigned for nobody
	ByStatus    map[string]*StatusGroup `json:"byStatus"`
}

// UnassignedPoints is the workload nobody carries yet.
func (r RemainingSummary) UnassignedPoints() float64 {
	return r.Workload[sprint.Unassigned]
}

// Assignees returns the assignees with workload, highest first, excluding
// sprint.Unassigned.
func (r RemainingSummary) Assignees() []string {
	var names []string
	for name := range r.Workload {
		if name != sprint.Unassigned {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(a, b int) bool {
		wa, wb := r.Workload[names[a]], r.Workload[names[b]]
		if wa != wb {
			return wa > wb
		}
		return names[a] < names[b]
	})
	return names
}

// Remaining summarizes issues that are not done. Issues whose status is in
// finishLine are grouped by status but left out of the total and workload.
func Remaining(notDone []sprint.Issue, finishLine []string) RemainingSummary {
	sum := RemainingSummary{
		Workload: make(map[string]float64),
		ByStatus: make(map[string]*StatusGroup),
	}
	for _, is := range notDone {
		crossed := sprint.ContainsFold(finishLine, is.Status)

		g, ok := sum.ByStatus[is.Status]
		if !ok {
			g = &StatusGroup{Status: is.Status, FinishLine: crossed}
			sum.ByStatus[is.Status] = g
		}
		g.Issues = append(g.Issues, is)
		g.Points += is.PointValue()

		if crossed {
			continue
		}
		sum.TotalPoints += is.PointValue()
		sum.Workload[is.AssigneeOrUnassigned()] += is.PointValue()
	}
	for _, g := range sum.ByStatus {
		sprint.SortByPoints(g.Issues)
	}
	return sum
}

// CompletedSummary is the deduplicated set of issues counted as completed.
type CompletedSummary struct {
	TotalPoints float64        `json:"totalPoints"`
	Issues      []sprint.Issue `json:"issues"`
}

// Completed merges the done set with the finish-line set. Issues present in
// both are counted once, keeping the higher point value.
func Completed(done, finishLine []sprint.Issue) CompletedSummary {
	byKey := make(map[string]sprint.Issue, len(done)+len(finishLine))
	var order []string
	for _, set := range [][]sprint.Issue{done, finishLine} {
		for _, is := range set {
			prev, seen := byKey[is.Key]
			if !seen {
				order = append(order, is.Key)
				byKey[is.Key] = is
				continue
			}
			if is.PointValue() > prev.PointValue() {
				byKey[is.Key] = is
			}
		}
	}

	out := CompletedSummary{Issues: make([]sprint.Issue, 0, len(order))}
	for _, k := range order {
		is := byKey[k]
		out.Issues = append(out.Issues, is)
		out.TotalPoints += is.PointValue()
	}
	return out
}

// Contribution is one assignee's share of completed work.
type Contribution struct {
	Assignee string         `json:"assignee"`
	Points   float64        `json:"points"`
	Percent  int            `json:"percent"`
	Issues   []sprint.Issue `json:"issues"`
}

// FinishLineBreakdown groups completed issues by assignee.
type FinishLineBreakdown struct {
	TotalPoints     float64        `json:"totalPoints"`
	Contributions   []Contribution `json:"contributions"`
	ZeroPointIssues int            `json:"zeroPointIssues"`
}

// CompletedByAssignee builds the finish-line breakdown, highest contributor
// first.
func CompletedByAssignee(completed []sprint.Issue) FinishLineBreakdown {
	idx := make(map[string]int)
	var out FinishLineBreakdown
	for _, is := range completed {
		name := is.AssigneeOrUnassigned()
		i, ok := idx[name]
		if !ok {
			i = len(out.Contributions)
			idx[name] = i
			out.Contributions = append(out.Contributions, Contribution{Assignee: name})
		}
		out.Contributions[i].Points += is.PointValue()
		out.Contributions[i].Issues = append(out.Contributions[i].Issues, is)
		out.TotalPoints += is.PointValue()
		if is.PointValue() == 0 {
			out.ZeroPointIssues++
		}
	}

	for i := range out.Contributions {
		c := &out.Contributions[i]
		sprint.SortByPoints(c.Issues)
		if out.TotalPoints > 0 {
			c.Percent = int(math.Round(c.Points / out.TotalPoints * 100))
		}
	}
	sort.SliceStable(out.Contributions, func(a, b int) bool {
		return out.Contributions[a].Points > out.Contributions[b].Points
	})
	return out
}

// OrderStatuses sorts statuses by the configured order. Statuses missing from
// order follow the configured ones alphabetically.
func OrderStatuses(statuses []string, order []string) []string {
	rank := make(map[string]int, len(order))
	for i, s := range order {
		rank[s] = i
	}
	out := append([]string(nil), statuses...)
	sort.SliceStable(out, func(a, b int) bool {
		ra, oka := rank[out[a]]
		rb, okb := rank[out[b]]
		switch {
		case oka && okb:
			return ra < rb
		case oka:
			return true
		case okb:
			return false
		}
		return out[a] < out[b]
	})
	return out
}

// SortedStatuses returns the status keys of groups in display order.
func SortedStatuses(groups map[string]*StatusGroup, order []string) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	return OrderStatuses(keys, order)
}
