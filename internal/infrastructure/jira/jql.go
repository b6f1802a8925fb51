package jira

import (
	"strconv"
	"strings"

	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

const defaultOrderBy = "key ASC"

// JQL renders a filter as a Jira query.
func JQL(f sprint.Filter) string {
	var clauses []string
	switch {
	case f.SprintID != 0:
		clauses = append(clauses, "sprint = "+strconv.Itoa(f.SprintID))
	case f.SprintName != "":
		clauses = append(clauses, "sprint = "+quote(f.SprintName))
	}

	if clause := statusClause(f.StatusOp, f.Statuses); clause != "" {
		clauses = append(clauses, clause)
	}

	order := f.OrderBy
	if order == "" {
		order = defaultOrderBy
	}
	return strings.Join(clauses, " AND ") + " ORDER BY " + order
}

func statusClause(op sprint.StatusOp, statuses []string) string {
	if len(statuses) == 0 {
		return ""
	}
	switch op {
	case sprint.StatusEq, sprint.StatusNotEq:
		return "status " + string(op) + " " + quote(statuses[0])
	case sprint.StatusIn, sprint.StatusNotIn:
		quoted := make([]string, len(statuses))
		for i, s := range statuses {
			quoted[i] = quote(s)
		}
		return "status " + strings.ToLower(string(op)) + " (" + strings.Join(quoted, ", ") + ")"
	default:
		return ""
	}
}

// matchesNothing reports whether the filter asks for a status in an empty set.
func matchesNothing(f sprint.Filter) bool {
	return (f.StatusOp == sprint.StatusIn || f.StatusOp == sprint.StatusEq) && len(f.Statuses) == 0
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
