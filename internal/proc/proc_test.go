package proc

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/magefile/mage/mg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeShell(stdout, stderr string, code int, ran bool) (*Shell, *bytes.Buffer) {
	var out bytes.Buffer
	s := &Shell{
		Stdout: &out,
		Stderr: &out,
		Log:    zerolog.Nop(),
		exec: func(_ map[string]string, o, e io.Writer, _ string, _ ...string) (bool, error) {
			_, _ = io.WriteString(o, stdout)
			_, _ = io.WriteString(e, stderr)
			switch {
			case !ran:
				return false, errors.New(`failed to run "missing": exec: "missing": executable file not found in $PATH`)
			case code != 0:
				return true, mg.Fatalf(code, "running command failed: exit status %d", code)
			}
			return true, nil
		},
	}
	return s, &out
}

func TestRun_When_CommandSucceeds(t *testing.T) {
	t.Parallel()

	s, out := fakeShell("built\n", "", 0, true)

	require.NoError(t, s.Run("dotnet", "build"))
	assert.Equal(t, "built\n", out.String())
}

func TestRun_When_NonZeroExit(t *testing.T) {
	t.Parallel()

	s, _ := fakeShell("", "", 3, true)

	err := s.Run("dotnet", "build")

	require.ErrorIs(t, err, ErrNonZeroExit)
	var exitErr ExitCodeError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Contains(t, err.Error(), "dotnet build")
}

func TestRun_When_CommandMissing(t *testing.T) {
	t.Parallel()

	s, _ := fakeShell("", "", 0, false)

	err := s.Run("missing")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNonZeroExit)
	assert.Contains(t, err.Error(), "executable file not found")
}

func TestRun_When_SpinningAndFailing(t *testing.T) {
	t.Parallel()

	s, out := fakeShell("partial output", "", 1, true)
	s.Spin = true

	require.Error(t, s.Run("nuget", "push"))
	assert.Contains(t, out.String(), "partial output", "captured output is replayed on failure")
}

func TestRun_When_SpinningAndSucceeding(t *testing.T) {
	t.Parallel()

	s, out := fakeShell("noisy output", "", 0, true)
	s.Spin = true

	require.NoError(t, s.Run("nuget", "pack"))
	assert.NotContains(t, out.String(), "noisy output")
}

func TestOutput_When_TrailingNewline(t *testing.T) {
	t.Parallel()

	s, _ := fakeShell("/repo\n", "", 0, true)

	out, err := s.Output("git", "rev-parse", "--show-toplevel")

	require.NoError(t, err)
	assert.Equal(t, "/repo", out)
}

func TestOutput_When_StderrOnFailure(t *testing.T) {
	t.Parallel()

	s, _ := fakeShell("", "fatal: not a git repository\n", 128, true)

	_, err := s.Output("git", "status")

	require.ErrorIs(t, err, ErrNonZeroExit)
	assert.Contains(t, err.Error(), "fatal: not a git repository")
}
