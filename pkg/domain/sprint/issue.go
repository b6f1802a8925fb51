// Package sprint holds the issue, sprint and board types shared by the
// metric engines.
package sprint

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Unassigned is the workload key for issues without an assignee.
const Unassigned = "Unassigned"

// Issue is the tracker's view of a work item.
type Issue struct {
	Key           string             `json:"key"`
	Summary       string             `json:"summary"`
	Status        string             `json:"status"`
	Assignee      string             `json:"assignee,omitempty"` // empty means unassigned
	Points        *float64           `json:"points"`             // nil means unpointed
	SprintHistory []SprintAssignment `json:"-"`
}

// SprintAssignment is one changelog item that moved the issue between sprints.
type SprintAssignment struct {
	At        time.Time
	ToSprints string // raw target value, may list several sprint names
}

// PointValue returns the story points, counting unpointed as zero.
func (i Issue) PointValue() float64 {
	if i.Points == nil {
		return 0
	}
	return *i.Points
}

// IsPointed reports whether the issue carries a story-point estimate.
func (i Issue) IsPointed() bool {
	return i.Points != nil
}

// AssigneeOrUnassigned returns the assignee, or Unassigned.
func (i Issue) AssigneeOrUnassigned() string {
	if i.Assignee == "" {
		return Unassigned
	}
	return i.Assignee
}

// LastAssignmentTo returns the time of the most recent sprint assignment whose
// target names sprintName. ok is false when the history has no such event.
func (i Issue) LastAssignmentTo(sprintName string) (at time.Time, ok bool) {
	for _, a := range i.SprintHistory {
		if !strings.Contains(a.ToSprints, sprintName) {
			continue
		}
		if !ok || a.At.After(at) {
			at, ok = a.At, true
		}
	}
	return at, ok
}

// Pts returns a pointer to v. It keeps test tables and adapters readable.
func Pts(v float64) *float64 {
	return &v
}

// PointsOf reads a story-point value out of an untyped field bag. Numbers and
// numeric strings convert; anything else, including a missing key, is nil.
func PointsOf(fields map[string]interface{}, fieldID string) *float64 {
	raw, ok := fields[fieldID]
	if !ok || raw == nil {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		return Pts(v)
	case float32:
		return Pts(float64(v))
	case int:
		return Pts(float64(v))
	case int64:
		return Pts(float64(v))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		return Pts(f)
	default:
		return nil
	}
}

// SumPoints adds the points of all issues; unpointed issues count as zero.
func SumPoints(issues []Issue) float64 {
	total := 0.0
	for _, is := range issues {
		total += is.PointValue()
	}
	return total
}

// SortByPoints orders issues by points descending, then key ascending.
func SortByPoints(issues []Issue) {
	sort.SliceStable(issues, func(a, b int) bool {
		pa, pb := issues[a].PointValue(), issues[b].PointValue()
		if pa != pb {
			return pa > pb
		}
		return issues[a].Key < issues[b].Key
	})
}
