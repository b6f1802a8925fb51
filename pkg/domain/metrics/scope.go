package metrics

import (
	"sort"

	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

// AssigneeWork is a per-assignee slice of sprint scope.
type AssigneeWork struct {
	Count  int            `json:"count"`
	Points float64        `json:"points"`
	Issues []sprint.Issue `json:"issues"`
}

// ScopeChanges reconstructs how a sprint's scope moved since it started.
// Removed work cannot be enumerated from current issues alone, so it is
// reported as an estimate derived from point deltas.
type ScopeChanges struct {
	InitialPoints          float64                  `json:"initialPoints"`
	CurrentPoints          float64                  `json:"currentPoints"`
	NetPointChange         float64                  `json:"netPointChange"`
	AddedIssueCount        int                      `json:"addedIssueCount"`
	AddedIssues            []sprint.Issue           `json:"addedIssues"`
	AddedPoints            float64                  `json:"addedPoints"`
	AddedByAssignee        map[string]*AssigneeWork `json:"addedByAssignee"`
	CurrentByAssignee      map[string]*AssigneeWork `json:"currentByAssignee"`
	RemovedIssueCount      int                      `json:"removedIssueCount"`
	EstimatedRemovedPoints float64                  `json:"estimatedRemovedPoints"`
	IsEstimated            bool                     `json:"isEstimated"`
	Placeholder            bool                     `json:"placeholder"` // future sprint, nothing tracked
}

// TrackScopeChanges compares the issues currently in s with its initial
// scope. An issue counts as added when its latest assignment to the sprint
// happened after the sprint start; issues without such history count as
// initial scope.
func TrackScopeChanges(s sprint.Sprint, initialPoints float64, current []sprint.Issue) ScopeChanges {
	sc := ScopeChanges{
		InitialPoints:     initialPoints,
		AddedByAssignee:   make(map[string]*AssigneeWork),
		CurrentByAssignee: make(map[string]*AssigneeWork),
	}
	if s.IsFuture() {
		sc.CurrentPoints = initialPoints
		sc.Placeholder = true
		return sc
	}

	for _, is := range current {
		sc.CurrentPoints += is.PointValue()
		addWork(sc.CurrentByAssignee, is)

		if !addedAfterStart(is, s) {
			continue
		}
		sc.AddedIssues = append(sc.AddedIssues, is)
		sc.AddedPoints += is.PointValue()
		addWork(sc.AddedByAssignee, is)
	}
	sort.Slice(sc.AddedIssues, func(a, b int) bool { return sc.AddedIssues[a].Key < sc.AddedIssues[b].Key })
	sc.AddedIssueCount = len(sc.AddedIssues)
	sc.NetPointChange = sc.CurrentPoints - sc.InitialPoints

	if shortfall := sc.AddedPoints - sc.NetPointChange; shortfall > 0 {
		sc.EstimatedRemovedPoints = shortfall
		sc.IsEstimated = true
	}
	return sc
}

func addedAfterStart(is sprint.Issue, s sprint.Sprint) bool {
	if s.StartDate == nil {
		return false
	}
	at, ok := is.LastAssignmentTo(s.Name)
	return ok && at.After(*s.StartDate)
}

func addWork(m map[string]*AssigneeWork, is sprint.Issue) {
	name := is.AssigneeOrUnassigned()
	w, ok := m[name]
	if !ok {
		w = &AssigneeWork{}
		m[name] = w
	}
	w.Count++
	w.Points += is.PointValue()
	w.Issues = append(w.Issues, is)
}
