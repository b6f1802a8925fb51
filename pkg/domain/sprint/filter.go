package sprint

// StatusOp is the comparison applied to the issue status.
type StatusOp string

const (
	StatusAny   StatusOp = ""
	StatusEq    StatusOp = "="
	StatusNotEq StatusOp = "!="
	StatusIn    StatusOp = "IN"
	StatusNotIn StatusOp = "NOT IN"
)

// Filter describes an issue search in tracker-neutral terms. Exactly one of
// SprintID or SprintName selects the sprint.
type Filter struct {
	SprintID      int
	SprintName    string
	StatusOp      StatusOp
	Statuses      []string
	PointsField   string // custom field holding story points
	ExpandHistory bool
	OrderBy       string
}

// InSprintID selects every issue ever committed to the sprint with this id.
func InSprintID(id int) Filter {
	return Filter{SprintID: id}
}

// InSprintNamed selects issues currently in the named sprint.
func InSprintNamed(name string) Filter {
	return Filter{SprintName: name}
}

// WithStatus returns a copy of f restricted by op over statuses.
func (f Filter) WithStatus(op StatusOp, statuses ...string) Filter {
	f.StatusOp = op
	f.Statuses = append([]string(nil), statuses...)
	return f
}

// WithPoints returns a copy of f that reads story points from field.
func (f Filter) WithPoints(field string) Filter {
	f.PointsField = field
	return f
}

// WithHistory returns a copy of f that asks for the issue changelog.
func (f Filter) WithHistory() Filter {
	f.ExpandHistory = true
	return f
}

// SearchResult is one completed search.
type SearchResult struct {
	Total  int
	Issues []Issue
}
