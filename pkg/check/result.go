package check

import (
	"fmt"
	"strings"
)

// Status classifies a check result.
type Status int

const (
	// Skipped means the check was disabled by settings.
	Skipped Status = iota
	// Passed means the check ran and found no problem.
	Passed
	// Failed means the check ran and found a problem.
	Failed
)

func (s Status) String() string {
	switch s {
	case Skipped:
		return "Skipped"
	case Passed:
		return "Passed"
	case Failed:
		return "Failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the outcome of a single check. Message is only set for failures.
type Result struct {
	Source  string
	Status  Status
	Message string
}

// Pass returns a passing result for source.
func Pass(source string) Result { return Result{Source: source, Status: Passed} }

// Skip returns a skipped result for source.
func Skip(source string) Result { return Result{Source: source, Status: Skipped} }

// Fail returns a failing result for source with the reason.
func Fail(source, message string) Result {
	return Result{Source: source, Status: Failed, Message: message}
}

// Failed reports whether the result is a failure.
func (r Result) Failed() bool { return r.Status == Failed }

func (r Result) String() string {
	if r.Status == Failed {
		return fmt.Sprintf("Failed: %s - %s", r.Source, r.Message)
	}
	return fmt.Sprintf("%s: %s", r.Status, r.Source)
}

// Error aggregates every failed check of a run.
type Error struct {
	Failures []Result
}

func (e *Error) Error() string {
	lines := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		lines[i] = f.String()
	}
	return strings.Join(lines, "\n")
}
