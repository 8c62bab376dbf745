// Package commit records, reverts and pushes the files a release build changes.
package commit

import (
	"errors"
	"fmt"

	"github.com/dkoosis/recipes/pkg/version"
)

// Defaults for the commit identity and remote.
const (
	DefaultUserName = "CakeBuild"
	DefaultEmail    = "build@cake.com"
	DefaultRemote   = "origin"
)

// ErrVersionRequired is returned when a commit is requested without a version.
var ErrVersionRequired = errors.New("commit requires the version to be set")

// Git is the subset of git operations used to commit, revert and push.
type Git interface {
	FindRoot(path string) (string, error)
	Add(root string, files ...string) error
	AddAll(root string) error
	Commit(root, userName, email, message string) error
	Tag(root, name string) error
	Push(root, remote string, tags, force bool) error
	Checkout(root string, files ...string) error
}

// Settings controls the post-build commit.
type Settings struct {
	CommitChanges    bool
	CreateVersionTag bool
	PushToRemote     bool

	// Files limits the commit to these paths. Empty means every change.
	Files []string

	GitRoot     string
	GitRemote   string
	GitUserName string
	GitEmail    string

	Version     *version.Version
	ProductName string
}

// DefaultSettings commits and tags with the default identity. Pushing is opt-in.
func DefaultSettings() Settings {
	return Settings{
		CommitChanges:    true,
		CreateVersionTag: true,
		GitRemote:        DefaultRemote,
		GitUserName:      DefaultUserName,
		GitEmail:         DefaultEmail,
	}
}

// RevertSettings names the files a failed or finished build restores.
type RevertSettings struct {
	GitRoot               string
	AssemblyInfoFile      string
	ReleaseNotesFile      string
	ReleaseNotesVNextFile string
	Files                 []string
}

// PushSettings controls a push to an upstream remote.
type PushSettings struct {
	Remote string
	Tags   bool
	Force  bool
}

// DefaultPushSettings pushes branch and tags to origin.
func DefaultPushSettings() PushSettings {
	return PushSettings{Remote: DefaultRemote, Tags: true}
}

// Message returns the commit message for the settings' product and version.
func (s Settings) Message() string {
	if s.ProductName != "" {
		return fmt.Sprintf("%s Version - %s", s.ProductName, s.Version)
	}
	return fmt.Sprintf("Version - %s", s.Version)
}

// Tag returns the version tag name, v{major}.{minor}.{patch}.
func (s Settings) Tag() string {
	return "v" + s.Version.String()
}

// Commit stages, commits and optionally tags and pushes the build's changes.
// It does nothing when CommitChanges is false.
func Commit(git Git, s Settings) error {
	if !s.CommitChanges {
		return nil
	}
	if s.Version == nil {
		return ErrVersionRequired
	}

	root, err := resolveRoot(git, s.GitRoot)
	if err != nil {
		return err
	}

	if len(s.Files) == 0 {
		err = git.AddAll(root)
	} else {
		err = git.Add(root, s.Files...)
	}
	if err != nil {
		return fmt.Errorf("stage changes: %w", err)
	}

	if err := git.Commit(root, s.GitUserName, s.GitEmail, s.Message()); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if s.CreateVersionTag {
		if err := git.Tag(root, s.Tag()); err != nil {
			return fmt.Errorf("tag %s: %w", s.Tag(), err)
		}
	}

	if s.PushToRemote {
		return Push(git, root, PushSettings{Remote: s.GitRemote, Tags: true})
	}
	return nil
}

// Push pushes the current branch, then the tags when requested.
func Push(git Git, root string, s PushSettings) error {
	remote := s.Remote
	if remote == "" {
		remote = DefaultRemote
	}
	if err := git.Push(root, remote, false, s.Force); err != nil {
		return fmt.Errorf("push %s: %w", remote, err)
	}
	if s.Tags {
		if err := git.Push(root, remote, true, s.Force); err != nil {
			return fmt.Errorf("push tags to %s: %w", remote, err)
		}
	}
	return nil
}

// Revert checks out the tracked files the build may have modified.
func Revert(git Git, s RevertSettings) error {
	files := s.Paths()
	if len(files) == 0 {
		return nil
	}
	root, err := resolveRoot(git, s.GitRoot)
	if err != nil {
		return err
	}
	if err := git.Checkout(root, files...); err != nil {
		return fmt.Errorf("revert changes: %w", err)
	}
	return nil
}

// Paths lists the files Revert restores, skipping unset entries.
func (s RevertSettings) Paths() []string {
	files := make([]string, 0, 3+len(s.Files))
	for _, f := range []string{s.AssemblyInfoFile, s.ReleaseNotesFile, s.ReleaseNotesVNextFile} {
		if f != "" {
			files = append(files, f)
		}
	}
	return append(files, s.Files...)
}

func resolveRoot(git Git, root string) (string, error) {
	if root != "" {
		return root, nil
	}
	root, err := git.FindRoot(".")
	if err != nil {
		return "", fmt.Errorf("find git root: %w", err)
	}
	return root, nil
}
