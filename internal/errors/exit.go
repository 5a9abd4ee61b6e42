package errors

import "fmt"

// Process exit codes shared by the merge and open commands.
const (
	ExitOK             = 0
	ExitUsage          = 1
	ExitLaunchFailed   = 2
	ExitTabHostMissing = 3
)

// ExitError carries the exit code a command wants the process to return.
// A nil Err with a non-zero code is valid: the command already reported
// its outcome and only the status is left to propagate.
type ExitError struct {
	Code int
	Err  error
}

// NewExitError wraps err with an exit code.
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// Error returns the wrapped error's message, or a generic one.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned from a command to a process exit code.
//
//   - nil → ExitOK
//   - *ExitError → its Code
//   - ErrTabHostNotFound → ExitTabHostMissing
//   - ErrLaunchFailed → ExitLaunchFailed
//   - ErrEmptyPath, ErrInvalidInput → ExitUsage
//   - anything else → ExitUsage
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case Is(err, ErrTabHostNotFound):
		return ExitTabHostMissing
	case Is(err, ErrLaunchFailed):
		return ExitLaunchFailed
	default:
		return ExitUsage
	}
}
