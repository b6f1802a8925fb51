package metrics

import "github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"

// GroomingSummary classifies the issues of an upcoming sprint.
type GroomingSummary struct {
	GroomedByStatus int                     `json:"groomedByStatus"` // issues in a groomed status
	Total           int                     `json:"total"`
	Pointed         []sprint.Issue          `json:"pointed"`
	Unpointed       []sprint.Issue          `json:"unpointed"`       // still need grooming
	EssentiallyDone []sprint.Issue          `json:"essentiallyDone"` // unpointed but past the finish line
	ByStatus        map[string]*StatusGroup `json:"byStatus"`
}

// Grooming splits issues into pointed, unpointed and essentially done, and
// counts those sitting in a groomed status.
func Grooming(issues []sprint.Issue, groomedStatuses, finishLine []string) GroomingSummary {
	g := GroomingSummary{
		Total:    len(issues),
		ByStatus: make(map[string]*StatusGroup),
	}
	for _, is := range issues {
		if sprint.ContainsFold(groomedStatuses, is.Status) {
			g.GroomedByStatus++
		}

		grp, ok := g.ByStatus[is.Status]
		if !ok {
			grp = &StatusGroup{Status: is.Status, FinishLine: sprint.ContainsFold(finishLine, is.Status)}
			g.ByStatus[is.Status] = grp
		}
		grp.Issues = append(grp.Issues, is)
		grp.Points += is.PointValue()

		switch {
		case is.IsPointed():
			g.Pointed = append(g.Pointed, is)
		case sprint.ContainsFold(finishLine, is.Status):
			g.EssentiallyDone = append(g.EssentiallyDone, is)
		default:
			g.Unpointed = append(g.Unpointed, is)
		}
	}
	sprint.SortByPoints(g.Pointed)
	return g
}

// PointedTotal sums the points of groomed issues.
func (g GroomingSummary) PointedTotal() float64 {
	return sprint.SumPoints(g.Pointed)
}
