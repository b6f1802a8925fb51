package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/analytics"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

func TestCLIError(t *testing.T) {
	t.Run("Error with cause", func(t *testing.T) {
		cause := errors.New("root cause")
		e := NewCLIError("something failed", "try this", cause)
		if e.Error() != "something failed: root cause" {
			t.Fatalf("unexpected: %s", e.Error())
		}
		if e.ExitCode != 1 {
			t.Fatalf("expected exit code 1, got %d", e.ExitCode)
		}
	})

	t.Run("Error without cause", func(t *testing.T) {
		e := NewCLIError("something failed", "try this", nil)
		if e.Error() != "something failed" {
			t.Fatalf("unexpected: %s", e.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root")
		e := NewCLIError("msg", "", cause)
		if !errors.Is(e, cause) {
			t.Fatal("errors.Is should match wrapped cause")
		}
	})
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHint string
		wantCode int
		wantCLI  bool
	}{
		{
			name: "nil returns nil",
			err:  nil,
		},
		{
			name:     "config error keeps its own hint",
			err:      sprint.ConfigError("set baseUrl", "jira base URL is empty"),
			wantHint: "set baseUrl",
			wantCode: ExitConfig,
			wantCLI:  true,
		},
		{
			name:     "board not found",
			err:      errors.Wrapf(sprint.ErrBoardNotFound, "board %d", 3),
			wantHint: "Run 'sprintpulse boards' to list configured boards",
			wantCode: ExitConfig,
			wantCLI:  true,
		},
		{
			name:     "sprint not found",
			err:      errors.Wrap(sprint.ErrSprintNotFound, "sprint \"x\""),
			wantHint: "Run 'sprintpulse sprints' to list sprint names",
			wantCode: ExitFailure,
			wantCLI:  true,
		},
		{
			name:     "no active sprint",
			err:      sprint.ErrNoActiveSprint,
			wantHint: "Pick a sprint with -s <name>",
			wantCode: ExitFailure,
			wantCLI:  true,
		},
		{
			name:     "transport",
			err:      sprint.MarkTransport(errors.New("connection refused"), "search"),
			wantHint: "Check baseUrl, credentials and network access",
			wantCode: ExitTracker,
			wantCLI:  true,
		},
		{
			name:     "no velocity samples",
			err:      analytics.ErrNoSamples,
			wantHint: "Close at least one sprint with pointed issues",
			wantCode: ExitFailure,
			wantCLI:  true,
		},
		{
			name: "unmapped error passes through",
			err:  errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if tt.err == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}

			var cliErr *CLIError
			isCLI := errors.As(got, &cliErr)
			if isCLI != tt.wantCLI {
				t.Fatalf("CLIError = %v, want %v (%v)", isCLI, tt.wantCLI, got)
			}
			if !tt.wantCLI {
				if got != tt.err {
					t.Fatalf("unmapped error changed: %v", got)
				}
				return
			}
			if cliErr.Hint != tt.wantHint {
				t.Errorf("hint = %q, want %q", cliErr.Hint, tt.wantHint)
			}
			if ExitCode(got) != tt.wantCode {
				t.Errorf("exit code = %d, want %d", ExitCode(got), tt.wantCode)
			}
			if !errors.Is(got, tt.err) {
				t.Error("mapped error should wrap the original")
			}
		})
	}
}

func TestMapErrorKeepsCLIError(t *testing.T) {
	orig := NewCLIError("already mapped", "hint", nil)
	if got := MapError(orig); got != error(orig) {
		t.Fatalf("CLIError was remapped: %v", got)
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, NewCLIError("no active sprint", "Pick a sprint with -s <name>", nil))
	out := buf.String()
	if !strings.Contains(out, "Error: no active sprint") || !strings.Contains(out, "Hint: Pick a sprint") {
		t.Errorf("unexpected output: %q", out)
	}
	if ExitCode(errors.New("plain")) != ExitFailure {
		t.Error("plain errors exit with 1")
	}
}
