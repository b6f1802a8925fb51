package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/trackertest"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

func TestReportDefault(t *testing.T) {
	useFixture(t, trackertest.Fixture(), testConfig)

	out, err := runCLI(t, "report", "--no-color")
	if err != nil {
		t.Fatalf("report: %v\n%s", err, out)
	}
	for _, want := range []string{
		`=== Progress: Board 7 "Sprint 9" ===`,
		"Drift Score (Ideal is zero): 0",
		`=== Planning: Board 7 "Sprint 10" ===`,
		"Risk Score: 0.50 (Medium Risk)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestReportTimeShift(t *testing.T) {
	useFixture(t, trackertest.Fixture(), testConfig)

	out, err := runCLI(t, "report", "--progress", "--json", "--time-shift", "2")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	var got struct {
		Progress struct {
			TimeShift int `json:"timeShift"`
			Drift     struct {
				Elapsed int `json:"elapsedBusinessDays"`
			} `json:"drift"`
		} `json:"progress"`
		Planning json.RawMessage `json:"planning"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if got.Progress.TimeShift != 2 || got.Progress.Drift.Elapsed != 7 {
		t.Errorf("time shift not applied: %+v", got.Progress)
	}
	if got.Planning != nil {
		t.Error("--progress should skip the planning report")
	}
}

func TestReportFutureDaysFallback(t *testing.T) {
	useFixture(t, trackertest.Fixture(), testConfig)

	out, err := runCLI(t, "report", "--progress", "--json", "--future-days", "-3")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, `"timeShift": -3`) {
		t.Errorf("future-days not honoured:\n%s", out)
	}
}

func TestReportNamedSprint(t *testing.T) {
	useFixture(t, trackertest.Fixture(), testConfig)

	out, err := runCLI(t, "report", "--planning", "--ls", "sprint 10", "--no-color")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, `"Sprint 10"`) {
		t.Errorf("case-insensitive sprint name not resolved:\n%s", out)
	}

	_, err = runCLI(t, "report", "-s", "Sprint 99")
	if !errors.Is(err, sprint.ErrSprintNotFound) {
		t.Fatalf("expected sprint not found, got %v", err)
	}
}

func TestReportSkipsMissingDefaultSprint(t *testing.T) {
	tracker := trackertest.Fixture()
	tracker.SprintList = tracker.SprintList[:1] // active only
	useFixture(t, tracker, testConfig)

	out, err := runCLI(t, "report")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, "Skipping:") || !strings.Contains(out, "Sprint 9") {
		t.Errorf("expected progress plus a skip note:\n%s", out)
	}
}

func TestReportTrackerDown(t *testing.T) {
	tracker := trackertest.Fixture()
	tracker.Err = sprint.MarkTransport(errors.New("connection refused"), "sprints")
	useFixture(t, tracker, testConfig)

	_, err := runCLI(t, "report")
	if ExitCode(err) != ExitTracker {
		t.Fatalf("expected tracker exit code, got %v", err)
	}
}

func TestReportDigestPublish(t *testing.T) {
	var hits int32
	bodies := make(chan []byte, 1)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		body, _ := io.ReadAll(r.Body)
		bodies <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer hook.Close()

	cfg := testConfig + `
messaging:
  adapters:
    - name: ci
      type: webhook
      url: ` + hook.URL + `
      enabled: true
`
	useFixture(t, trackertest.Fixture(), cfg)

	out, err := runCLI(t, "report", "--digest", "--publish", "--no-color")
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if !strings.Contains(out, "Burden Balance: Ada 5, Uncarried 3") {
		t.Errorf("digest output:\n%s", out)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("webhook hits = %d", atomic.LoadInt32(&hits))
	}
	var msg struct {
		Title  string            `json:"title"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(<-bodies, &msg); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if msg.Title != "Sprint digest: Sprint 9" || msg.Fields["Drift"] != "0" || msg.Fields["Next sprint risk"] != "Medium" {
		t.Errorf("message = %+v", msg)
	}
}

func TestBoardsCommand(t *testing.T) {
	useFixture(t, trackertest.Fixture(), testConfig)

	out, err := runCLI(t, "boards", "--json")
	if err != nil {
		t.Fatalf("boards: %v", err)
	}
	var boards []sprint.Board
	if err := json.Unmarshal([]byte(out), &boards); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(boards) != 1 || boards[0].Name != "Core" {
		t.Errorf("boards = %+v", boards)
	}
}

func TestBoardsCommandTrackerDown(t *testing.T) {
	tracker := trackertest.Fixture()
	tracker.Err = sprint.MarkTransport(errors.New("timeout"), "boards")
	useFixture(t, tracker, testConfig)

	out, err := runCLI(t, "boards", "--no-color")
	if err != nil {
		t.Fatalf("boards should degrade, got %v", err)
	}
	if !strings.Contains(out, "Jira boards unavailable") || !strings.Contains(out, "Core") {
		t.Errorf("output:\n%s", out)
	}
}

func TestSprintsCommand(t *testing.T) {
	useFixture(t, trackertest.Fixture(), testConfig)

	out, err := runCLI(t, "sprints", "--state", "closed", "--json")
	if err != nil {
		t.Fatalf("sprints: %v", err)
	}
	var sprints []sprint.Sprint
	if err := json.Unmarshal([]byte(out), &sprints); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(sprints) != 2 || sprints[0].Name != "Sprint 8" {
		t.Errorf("sprints = %+v", sprints)
	}

	if _, err := runCLI(t, "sprints", "--state", "paused"); err == nil {
		t.Error("expected error for unknown state")
	}
}

func TestVelocityCommand(t *testing.T) {
	useFixture(t, trackertest.Fixture(), testConfig)

	out, err := runCLI(t, "velocity", "--sprints", "1", "--no-color")
	if err != nil {
		t.Fatalf("velocity: %v", err)
	}
	if !strings.Contains(out, "Samples: 1") || !strings.Contains(out, "Suggested defaultTeamVelocity: 20") {
		t.Errorf("velocity output:\n%s", out)
	}
}

func TestDebugCommand(t *testing.T) {
	useFixture(t, trackertest.Fixture(), testConfig)

	out, err := runCLI(t, "debug", "--no-color")
	if err != nil {
		t.Fatalf("debug: %v", err)
	}
	for _, want := range []string{"Config: " + testConfigPath, "Story points field: customfield_10016", "Sprint 9"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug missing %q\n%s", want, out)
		}
	}
}

func TestOpenAPICommand(t *testing.T) {
	useFixture(t, trackertest.Fixture(), testConfig)

	out, err := runCLI(t, "openapi")
	if err != nil {
		t.Fatalf("openapi: %v", err)
	}
	if !strings.Contains(out, "/tools/sprint_progress") {
		t.Errorf("openapi output:\n%s", out)
	}
}

func TestMCPCommandRejectsTransport(t *testing.T) {
	useFixture(t, trackertest.Fixture(), testConfig)

	if _, err := runCLI(t, "mcp", "--transport", "carrier-pigeon"); err == nil {
		t.Fatal("expected error for unsupported transport")
	}
}
