package check

import "github.com/dkoosis/recipes/pkg/releasenotes"

// Settings controls which checks run and where they look.
type Settings struct {
	// GitRoot is the repository root. When empty, Run resolves it from the
	// working directory.
	GitRoot string

	StagedChanges       bool
	UncommittedChanges  bool
	UntrackedFiles      bool
	RequireReleaseNotes bool

	ReleaseNotesFile      string
	ReleaseNotesVNextFile string
}

// DefaultSettings enables every check against the default release-notes files.
func DefaultSettings() Settings {
	return Settings{
		StagedChanges:         true,
		UncommittedChanges:    true,
		UntrackedFiles:        true,
		RequireReleaseNotes:   true,
		ReleaseNotesFile:      releasenotes.DefaultFile,
		ReleaseNotesVNextFile: releasenotes.DefaultVNextFile,
	}
}
