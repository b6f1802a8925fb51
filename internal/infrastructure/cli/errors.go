package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/analytics"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

// Exit codes returned by the binary.
const (
	ExitFailure = 1
	ExitConfig  = 2
	ExitTracker = 3
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: ExitFailure,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Hints attached deeper in the stack take precedence over the generic ones.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	var mapped *CLIError
	switch {
	case errors.Is(err, sprint.ErrInvalidConfig):
		mapped = NewCLIError("invalid configuration", "Run 'sprintpulse debug' to check the config and connection", err)
		mapped.ExitCode = ExitConfig
	case errors.Is(err, sprint.ErrBoardNotFound):
		mapped = NewCLIError("board not found", "Run 'sprintpulse boards' to list configured boards", err)
		mapped.ExitCode = ExitConfig
	case errors.Is(err, sprint.ErrSprintNotFound):
		mapped = NewCLIError("sprint not found", "Run 'sprintpulse sprints' to list sprint names", err)
	case errors.Is(err, sprint.ErrNoActiveSprint):
		mapped = NewCLIError("no active sprint", "Pick a sprint with -s <name>", err)
	case errors.Is(err, sprint.ErrNoFutureSprint):
		mapped = NewCLIError("no future sprint", "Create the next sprint in Jira or pick one with -s <name>", err)
	case errors.Is(err, analytics.ErrNoSamples):
		mapped = NewCLIError("no velocity history", "Close at least one sprint with pointed issues", err)
	case errors.Is(err, sprint.ErrTransport):
		mapped = NewCLIError("cannot reach Jira", "Check baseUrl, credentials and network access", err)
		mapped.ExitCode = ExitTracker
	default:
		return err
	}

	if hints := errors.GetAllHints(err); len(hints) > 0 {
		mapped.Hint = strings.Join(hints, "\n")
	}
	return mapped
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	var cliErr *CLIError
	if errors.As(err, &cliErr) && cliErr.Hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", cliErr.Hint)
	}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	var cliErr *CLIError
	if errors.As(err, &cliErr) && cliErr.ExitCode != 0 {
		return cliErr.ExitCode
	}
	return ExitFailure
}
