package linker

import (
	"errors"
	"os/exec"
)

// ToolOutcome is how an invocation of the external tool ended.
type ToolOutcome struct {
	ExitCode int
	Output   string
	// Err is set when the tool could not be started or exited non-zero.
	Err error
}

// Failed reports whether the tool did not finish cleanly.
func (o ToolOutcome) Failed() bool {
	return o.Err != nil || o.ExitCode != 0
}

// ToolRunner runs an external command to completion.
type ToolRunner interface {
	Run(tool string, args []string) ToolOutcome
}

// ExecRunner runs the tool as a child process and waits for it. No timeout
// is applied.
type ExecRunner struct{}

// Run starts the tool and collects its combined output.
func (ExecRunner) Run(tool string, args []string) ToolOutcome {
	out, err := exec.Command(tool, args...).CombinedOutput()

	outcome := ToolOutcome{
		Output: string(out),
		Err:    err,
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		outcome.ExitCode = 0
	case errors.As(err, &exitErr):
		outcome.ExitCode = exitErr.ExitCode()
	default:
		outcome.ExitCode = -1
	}

	return outcome
}
