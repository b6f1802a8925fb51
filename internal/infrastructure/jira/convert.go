package jira

import (
	"time"

	jira "github.com/andygrunwald/go-jira"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

// Layout of changelog timestamps, e.g. 2024-03-06T14:00:00.000+0000.
const changelogTimeLayout = "2006-01-02T15:04:05.999-0700"

const sprintField = "Sprint"

func toIssue(src jira.Issue, pointsField string) sprint.Issue {
	is := sprint.Issue{Key: src.Key}
	if f := src.Fields; f != nil {
		is.Summary = f.Summary
		if f.Status != nil {
			is.Status = f.Status.Name
		}
		if f.Assignee != nil {
			is.Assignee = f.Assignee.DisplayName
		}
		if pointsField != "" {
			is.Points = sprint.PointsOf(map[string]interface{}(f.Unknowns), pointsField)
		}
	}
	if src.Changelog != nil {
		is.SprintHistory = sprintHistory(src.Changelog.Histories)
	}
	return is
}

func sprintHistory(histories []jira.ChangelogHistory) []sprint.SprintAssignment {
	var out []sprint.SprintAssignment
	for _, h := range histories {
		at, err := time.Parse(changelogTimeLayout, h.Created)
		if err != nil {
			continue
		}
		for _, item := range h.Items {
			if item.Field != sprintField {
				continue
			}
			out = append(out, sprint.SprintAssignment{At: at, ToSprints: item.ToString})
		}
	}
	return out
}

func toSprint(src jira.Sprint) sprint.Sprint {
	return sprint.Sprint{
		ID:           src.ID,
		Name:         src.Name,
		State:        sprint.State(src.State),
		StartDate:    src.StartDate,
		EndDate:      src.EndDate,
		CompleteDate: src.CompleteDate,
	}
}

func toBoard(src jira.Board) sprint.Board {
	return sprint.Board{ID: src.ID, Name: src.Name, Type: src.Type}
}
