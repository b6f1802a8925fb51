package metrics_test

import (
	"testing"

	"github.com/felixgeelhaar/sprintpulse/pkg/domain/metrics"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
	"github.com/google/go-cmp/cmp"
)

func TestRemaining(t *testing.T) {
	issues := []sprint.Issue{
		{Key: "A-1", Status: "In Progress", Assignee: "Ada Lovelace", Points: sprint.Pts(5)},
		{Key: "A-2", Status: "To Do", Assignee: "Ada Lovelace", Points: sprint.Pts(3)},
		{Key: "A-3", Status: "To Do", Points: sprint.Pts(2)},
		{Key: "A-4", Status: "To Do", Assignee: "Grace Hopper"},
		{Key: "A-5", Status: "In Review", Assignee: "Grace Hopper", Points: sprint.Pts(8)},
	}

	sum := metrics.Remaining(issues, []string{"In Review"})

	if sum.TotalPoints != 10 {
		t.Errorf("expected 10 remaining points, got %v", sum.TotalPoints)
	}
	wantWorkload := map[string]float64{
		"Ada Lovelace":    8,
		"Grace Hopper":    0,
		sprint.Unassigned: 2,
	}
	if diff := cmp.Diff(wantWorkload, sum.Workload); diff != "" {
		t.Errorf("workload mismatch (-want +got):\n%s", diff)
	}
	if sum.UnassignedPoints() != 2 {
		t.Errorf("expected 2 unassigned points, got %v", sum.UnassignedPoints())
	}

	review := sum.ByStatus["In Review"]
	if review == nil || !review.FinishLine || review.Points != 8 {
		t.Errorf("expected flagged In Review group with 8 points, got %+v", review)
	}
	todo := sum.ByStatus["To Do"]
	if todo == nil || len(todo.Issues) != 3 || todo.Issues[0].Key != "A-2" {
		t.Errorf("expected To Do group sorted by points, got %+v", todo)
	}

	if diff := cmp.Diff([]string{"Ada Lovelace", "Grace Hopper"}, sum.Assignees()); diff != "" {
		t.Errorf("assignee order mismatch:\n%s", diff)
	}
}

func TestCompleted_DeduplicatesKeepingHigherPoints(t *testing.T) {
	done := []sprint.Issue{
		{Key: "A-1", Status: "Done", Points: sprint.Pts(3)},
		{Key: "A-2", Status: "Done", Points: sprint.Pts(5)},
	}
	finish := []sprint.Issue{
		{Key: "A-2", Status: "Done", Points: sprint.Pts(2)},
		{Key: "A-1", Status: "Done", Points: sprint.Pts(8)},
		{Key: "A-3", Status: "In Review"},
	}

	got := metrics.Completed(done, finish)

	if got.TotalPoints != 13 {
		t.Errorf("expected 13 completed points, got %v", got.TotalPoints)
	}
	if len(got.Issues) != 3 {
		t.Fatalf("expected 3 unique issues, got %d", len(got.Issues))
	}
	if got.Issues[0].PointValue() != 8 {
		t.Errorf("expected A-1 to keep 8 points, got %v", got.Issues[0].PointValue())
	}
}

func TestCompletedByAssignee(t *testing.T) {
	completed := []sprint.Issue{
		{Key: "A-1", Assignee: "Ada", Points: sprint.Pts(6)},
		{Key: "A-2", Assignee: "Grace", Points: sprint.Pts(3)},
		{Key: "A-3", Assignee: "Ada"},
		{Key: "A-4", Points: sprint.Pts(1)},
	}

	got := metrics.CompletedByAssignee(completed)

	if got.TotalPoints != 10 || got.ZeroPointIssues != 1 {
		t.Errorf("unexpected totals: %+v", got)
	}
	var names []string
	var percents []int
	for _, c := range got.Contributions {
		names = append(names, c.Assignee)
		percents = append(percents, c.Percent)
	}
	if diff := cmp.Diff([]string{"Ada", "Grace", sprint.Unassigned}, names); diff != "" {
		t.Errorf("contributor order mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]int{60, 30, 10}, percents); diff != "" {
		t.Errorf("percent mismatch:\n%s", diff)
	}
}

func TestOrderStatuses(t *testing.T) {
	got := metrics.OrderStatuses(
		[]string{"Blocked", "In Progress", "Archived", "To Do"},
		[]string{"To Do", "In Progress", "In Review"},
	)
	want := []string{"To Do", "In Progress", "Archived", "Blocked"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestGrooming(t *testing.T) {
	issues := []sprint.Issue{
		{Key: "B-1", Status: "TO PLAN", Points: sprint.Pts(3)},
		{Key: "B-2", Status: "to commit", Points: sprint.Pts(5)},
		{Key: "B-3", Status: "TO GROOM"},
		{Key: "B-4", Status: "In Review"},
	}

	g := metrics.Grooming(issues, sprint.DefaultGroomedStatuses, []string{"In Review"})

	if g.GroomedByStatus != 2 || g.Total != 4 {
		t.Errorf("unexpected counts: groomed=%d total=%d", g.GroomedByStatus, g.Total)
	}
	if len(g.Pointed) != 2 || g.Pointed[0].Key != "B-2" {
		t.Errorf("expected pointed issues sorted by points, got %+v", g.Pointed)
	}
	if len(g.Unpointed) != 1 || g.Unpointed[0].Key != "B-3" {
		t.Errorf("expected B-3 unpointed, got %+v", g.Unpointed)
	}
	if len(g.EssentiallyDone) != 1 || g.EssentiallyDone[0].Key != "B-4" {
		t.Errorf("expected B-4 essentially done, got %+v", g.EssentiallyDone)
	}
	if g.PointedTotal() != 8 {
		t.Errorf("expected 8 pointed points, got %v", g.PointedTotal())
	}
}
