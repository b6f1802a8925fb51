package sprint

import "github.com/cockroachdb/errors"

// Domain errors for sprint metrics.
var (
	// ErrTransport marks a failed call to the issue tracker. Callers that can
	// degrade treat the affected sub-result as empty.
	ErrTransport = errors.New("issue tracker request failed")

	// ErrInvalidConfig marks configuration that makes a computation impossible.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSprintNotFound indicates no sprint matched the requested name.
	ErrSprintNotFound = errors.New("sprint not found")

	// ErrNoActiveSprint indicates the board has no active sprint.
	ErrNoActiveSprint = errors.New("no active sprint")

	// ErrNoFutureSprint indicates the board has no future sprint.
	ErrNoFutureSprint = errors.New("no future sprint")

	// ErrBoardNotFound indicates the board is not configured.
	ErrBoardNotFound = errors.New("board not found")
)

// IsNotFound reports whether err means a requested sprint or board is absent.
func IsNotFound(err error) bool {
	return errors.IsAny(err, ErrSprintNotFound, ErrNoActiveSprint, ErrNoFutureSprint, ErrBoardNotFound)
}

// MarkTransport classifies err as a tracker transport failure.
func MarkTransport(err error, op string) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.Wrap(err, op), ErrTransport)
}

// ConfigError builds an error marked ErrInvalidConfig with a user hint.
func ConfigError(hint, format string, args ...interface{}) error {
	err := errors.Mark(errors.Newf(format, args...), ErrInvalidConfig)
	if hint != "" {
		err = errors.WithHint(err, hint)
	}
	return err
}
