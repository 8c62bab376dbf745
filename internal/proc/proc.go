// Package proc runs the external tools a build drives (git, dotnet, nuget).
//
// Commands are executed through mage's sh package. Error semantics:
//   - nil when the command exits 0
//   - an error wrapping ErrNonZeroExit and ExitCodeError when it exits non-zero
//   - any other error when the command could not be started
//
// Calls block until the command exits and cannot be cancelled.
package proc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/magefile/mage/sh"
	"github.com/rs/zerolog"
)

// ErrNonZeroExit is returned when a command completes but exits with a non-zero code.
var ErrNonZeroExit = errors.New("command exited with non-zero code")

// ExitCodeError carries the exit code of a failed command.
// Use errors.As to extract it.
type ExitCodeError struct {
	Code int
}

func (e ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// Runner runs external commands.
type Runner interface {
	// Run runs cmd, streaming or capturing its output.
	Run(cmd string, args ...string) error
	// Output runs cmd and returns its trimmed standard output.
	Output(cmd string, args ...string) (string, error)
}

type execFunc func(env map[string]string, stdout, stderr io.Writer, cmd string, args ...string) (bool, error)

// Shell is the Runner backed by mage's sh package.
type Shell struct {
	Stdout io.Writer
	Stderr io.Writer
	Env    map[string]string
	Log    zerolog.Logger

	// Spin shows a spinner on Stderr while a command runs. Output is then
	// captured and replayed only when the command fails.
	Spin bool

	exec execFunc
}

// NewShell returns a Shell writing to the process's stdout and stderr.
func NewShell(log zerolog.Logger, spin bool) *Shell {
	return &Shell{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Log:    log,
		Spin:   spin,
		exec:   sh.Exec,
	}
}

// Run implements Runner.
func (s *Shell) Run(cmd string, args ...string) error {
	line := commandLine(cmd, args)
	s.Log.Debug().Str("cmd", line).Msg("run")

	if !s.Spin {
		ran, err := s.execute(s.Stdout, s.Stderr, cmd, args)
		return classify(line, ran, err)
	}

	sp := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(s.Stderr))
	sp.Suffix = " " + line
	sp.Start()

	var captured bytes.Buffer
	ran, err := s.execute(&captured, &captured, cmd, args)
	sp.Stop()

	if err != nil {
		_, _ = io.Copy(s.Stderr, &captured)
	}
	return classify(line, ran, err)
}

// Output implements Runner. Standard error is included in the returned error.
func (s *Shell) Output(cmd string, args ...string) (string, error) {
	line := commandLine(cmd, args)
	s.Log.Trace().Str("cmd", line).Msg("output")

	var stdout, stderr bytes.Buffer
	ran, err := s.execute(&stdout, &stderr, cmd, args)
	if err != nil {
		err = classify(line, ran, err)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return strings.TrimRight(stdout.String(), "\r\n"), nil
}

func (s *Shell) execute(stdout, stderr io.Writer, cmd string, args []string) (bool, error) {
	run := s.exec
	if run == nil {
		run = sh.Exec
	}
	return run(s.Env, stdout, stderr, cmd, args...)
}

func classify(line string, ran bool, err error) error {
	if err == nil {
		return nil
	}
	if !ran {
		return fmt.Errorf("%s: %w", line, err)
	}
	return fmt.Errorf("%s: %w: %w", line, ErrNonZeroExit, ExitCodeError{Code: sh.ExitStatus(err)})
}

func commandLine(cmd string, args []string) string {
	return strings.TrimSpace(cmd + " " + strings.Join(args, " "))
}
