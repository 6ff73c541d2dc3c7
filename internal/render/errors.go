package render

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrEngineNotFound is returned when the typesetting engine binary
	// is not on PATH.
	ErrEngineNotFound = errors.New("render: typesetting engine not found")

	// ErrNoPDF is returned when the engine exits successfully but
	// produces no PDF file.
	ErrNoPDF = errors.New("render: engine produced no PDF")
)

// outputTail limits how much engine output an error carries. Engine logs
// run to thousands of lines; the failure is almost always at the end.
const outputTail = 40

// Error describes a failed typesetting run.
type Error struct {
	// Command is the engine invocation that failed.
	Command string

	// ExitCode is the engine's exit status, or -1 when it did not run.
	ExitCode int

	// Output is the tail of the engine's combined output.
	Output string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("render: %s exited with code %d", e.Command, e.ExitCode)
	if e.Err != nil {
		msg = fmt.Sprintf("render: %s: %v", e.Command, e.Err)
	}
	if e.Output != "" {
		msg += "\n" + e.Output
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// commandError builds the typed error for a failed subprocess.
func commandError(args []string, output []byte, err error) *Error {
	cmdErr := &Error{
		Command:  strings.Join(args, " "),
		ExitCode: -1,
		Output:   tail(output, outputTail),
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	} else {
		cmdErr.Err = err
	}
	return cmdErr
}

// tail returns the last n lines of engine output.
func tail(output []byte, n int) string {
	lines := strings.Split(strings.TrimRight(string(output), "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
