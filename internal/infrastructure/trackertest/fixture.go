package trackertest

import (
	"time"

	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

// BoardID is the board the fixture sprints belong to.
const BoardID = 7

// Today is a Monday one week into the fixture's active sprint.
var Today = time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)

// Fixture returns a tracker with an active sprint "Sprint 9" running
// 2024-03-04 to 2024-03-18, a future "Sprint 10" and two closed sprints.
func Fixture() *Tracker {
	at := func(m time.Month, d int) *time.Time {
		t := time.Date(2024, m, d, 9, 0, 0, 0, time.UTC)
		return &t
	}

	active := []sprint.Issue{
		{Key: "SP-1", Summary: "Checkout flow", Status: "In Progress", Assignee: "Ada Lovelace", Points: sprint.Pts(5)},
		{Key: "SP-2", Summary: "Payment retries", Status: "To Do", Points: sprint.Pts(3)},
		{Key: "SP-3", Summary: "Receipts", Status: "Done", Assignee: "Grace Hopper", Points: sprint.Pts(8)},
	}
	future := []sprint.Issue{
		{Key: "SP-10", Summary: "Search", Status: "TO COMMIT", Points: sprint.Pts(5)},
		{Key: "SP-11", Summary: "Filters", Status: "TO GROOM"},
	}

	closed8 := []sprint.Issue{{Key: "SP-5", Status: "Done", Points: sprint.Pts(20)}}
	closed7 := []sprint.Issue{{Key: "SP-4", Status: "Done", Points: sprint.Pts(16)}}

	return &Tracker{
		BoardList: []sprint.Board{{ID: BoardID, Name: "Core", Type: "scrum"}},
		SprintList: []sprint.Sprint{
			{ID: 9, Name: "Sprint 9", State: sprint.StateActive, StartDate: at(3, 4), EndDate: at(3, 18)},
			{ID: 10, Name: "Sprint 10", State: sprint.StateFuture, StartDate: at(3, 18), EndDate: at(4, 1)},
			{ID: 8, Name: "Sprint 8", State: sprint.StateClosed, StartDate: at(2, 19), EndDate: at(3, 4), CompleteDate: at(3, 4)},
			{ID: 7, Name: "Sprint 7", State: sprint.StateClosed, StartDate: at(2, 5), EndDate: at(2, 19), CompleteDate: at(2, 19)},
		},
		ByName: map[string][]sprint.Issue{
			"Sprint 9":  active,
			"Sprint 10": future,
			"Sprint 8":  closed8,
			"Sprint 7":  closed7,
		},
		ByID: map[int][]sprint.Issue{9: active, 8: closed8, 7: closed7},
	}
}
