package check

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/dkoosis/recipes/pkg/releasenotes"
)

// Repository answers the working-tree questions the git checks ask.
type Repository interface {
	FindRoot(path string) (string, error)
	HasStagedChanges(root string) (bool, error)
	HasUncommittedChanges(root string) (bool, error)
	HasUntrackedFiles(root string) (bool, error)
}

// Func is a single named check.
type Func func(repo Repository, s Settings) Result

// SourceNewReleaseNotes names the check that v-next notes were written.
const SourceNewReleaseNotes = "NewReleaseNotes"

// Checks lists the checks in the order Run executes them.
var Checks = []Func{
	StagedChanges,
	UncommittedChanges,
	UntrackedFiles,
	ReleaseNotesFileExists,
	ReleaseNotesVNextFileExists,
	NewReleaseNotes,
}

// Run executes every check, logs each result and returns the results.
// When any check failed the returned error is an *Error listing them all.
func Run(repo Repository, s Settings, log zerolog.Logger) ([]Result, error) {
	if s.GitRoot == "" && (s.StagedChanges || s.UncommittedChanges || s.UntrackedFiles) {
		root, err := repo.FindRoot(".")
		if err != nil {
			return nil, fmt.Errorf("find git root: %w", err)
		}
		s.GitRoot = root
	}

	results := make([]Result, 0, len(Checks))
	var failures []Result
	for _, check := range Checks {
		r := check(repo, s)
		results = append(results, r)

		switch r.Status {
		case Skipped:
			log.Info().Msgf("Skipped: %s", r.Source)
		case Passed:
			log.Info().Msgf("Passed: %s", r.Source)
		case Failed:
			log.Error().Msg(r.String())
			failures = append(failures, r)
		}
	}

	if len(failures) > 0 {
		return results, &Error{Failures: failures}
	}
	return results, nil
}

// StagedChanges fails when the index holds staged changes.
func StagedChanges(repo Repository, s Settings) Result {
	const source = "StagedChanges"
	if !s.StagedChanges {
		return Skip(source)
	}
	return gitCheck(source, repo.HasStagedChanges, s.GitRoot,
		"Git has staged changes, please commit all files before building")
}

// UncommittedChanges fails when tracked files have uncommitted edits.
func UncommittedChanges(repo Repository, s Settings) Result {
	const source = "UncommittedChanges"
	if !s.UncommittedChanges {
		return Skip(source)
	}
	return gitCheck(source, repo.HasUncommittedChanges, s.GitRoot,
		"Git has uncommitted changes, please commit all files before building")
}

// UntrackedFiles fails when the working tree has untracked, unignored files.
func UntrackedFiles(repo Repository, s Settings) Result {
	const source = "UntrackedFiles"
	if !s.UntrackedFiles {
		return Skip(source)
	}
	return gitCheck(source, repo.HasUntrackedFiles, s.GitRoot,
		"Git has untracked files, please commit or ignore files before building")
}

// ReleaseNotesFileExists fails when the main release-notes file is missing.
func ReleaseNotesFileExists(_ Repository, s Settings) Result {
	return fileCheck("ReleaseNotesFileExists", s.RequireReleaseNotes, s.ReleaseNotesFile)
}

// ReleaseNotesVNextFileExists fails when the v-next release-notes file is missing.
func ReleaseNotesVNextFileExists(_ Repository, s Settings) Result {
	return fileCheck("ReleaseNotesVNextFileExists", s.RequireReleaseNotes, s.ReleaseNotesVNextFile)
}

// NewReleaseNotes fails when the v-next file holds no notes.
func NewReleaseNotes(_ Repository, s Settings) Result {
	const source = SourceNewReleaseNotes
	if !s.RequireReleaseNotes {
		return Skip(source)
	}
	ok, err := releasenotes.Any(s.ReleaseNotesVNextFile)
	if err != nil {
		return Fail(source, err.Error())
	}
	if !ok {
		return Fail(source, fmt.Sprintf("No new release notes found in %s", s.ReleaseNotesVNextFile))
	}
	return Pass(source)
}

func gitCheck(source string, query func(string) (bool, error), root, message string) Result {
	dirty, err := query(root)
	if err != nil {
		return Fail(source, err.Error())
	}
	if dirty {
		return Fail(source, message)
	}
	return Pass(source)
}

func fileCheck(source string, enabled bool, path string) Result {
	if !enabled {
		return Skip(source)
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return Pass(source)
	case errors.Is(err, fs.ErrNotExist):
		return Fail(source, fmt.Sprintf("Unable to find release notes file: %s", path))
	default:
		return Fail(source, err.Error())
	}
}
