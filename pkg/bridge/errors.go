package bridge

import "errors"

// CommandError is a backend invocation failure. Reason is the
// human-readable message the backend attached; it is surfaced to the
// request ledger verbatim and is always terminal for that invocation.
type CommandError struct {
	Command string
	Reason  string
}

func (e *CommandError) Error() string {
	return e.Reason
}

// NewCommandError wraps a backend-reported failure for one command.
func NewCommandError(command, reason string) *CommandError {
	return &CommandError{Command: command, Reason: reason}
}

// Reason extracts the surfaced message from any invocation error.
func Reason(err error) string {
	if err == nil {
		return ""
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Reason
	}

	return err.Error()
}
