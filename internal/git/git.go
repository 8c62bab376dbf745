// Package git answers repository questions and records build commits by
// driving the git CLI.
package git

import (
	"fmt"
	"path/filepath"

	"github.com/dkoosis/recipes/internal/proc"
)

// Command is the git executable.
const Command = "git"

// Client runs git through a proc.Runner. Every call targets an explicit
// repository root with git -C.
type Client struct {
	runner proc.Runner
}

// New returns a client using r.
func New(r proc.Runner) *Client {
	return &Client{runner: r}
}

// FindRoot returns the top-level directory of the repository containing path.
func (c *Client) FindRoot(path string) (string, error) {
	root, err := c.runner.Output(Command, "-C", path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("find git root from %s: %w", path, err)
	}
	return filepath.FromSlash(root), nil
}

// HasStagedChanges reports whether the index differs from HEAD.
func (c *Client) HasStagedChanges(root string) (bool, error) {
	return c.anyOutput(root, "diff", "--cached", "--name-only")
}

// HasUncommittedChanges reports whether tracked files differ from HEAD.
func (c *Client) HasUncommittedChanges(root string) (bool, error) {
	return c.anyOutput(root, "status", "--porcelain", "--untracked-files=no")
}

// HasUntrackedFiles reports whether the tree holds files that are neither
// tracked nor ignored.
func (c *Client) HasUntrackedFiles(root string) (bool, error) {
	return c.anyOutput(root, "ls-files", "--others", "--exclude-standard")
}

// Add stages files.
func (c *Client) Add(root string, files ...string) error {
	paths, err := absolute(files)
	if err != nil {
		return err
	}
	return c.run(root, append([]string{"add", "--"}, paths...)...)
}

// AddAll stages every change, including removals and new files.
func (c *Client) AddAll(root string) error {
	return c.run(root, "add", "--all")
}

// Commit records the staged changes under the given identity.
func (c *Client) Commit(root, userName, email, message string) error {
	return c.run(root,
		"-c", "user.name="+userName,
		"-c", "user.email="+email,
		"commit", "-m", message)
}

// Tag creates a lightweight tag at HEAD.
func (c *Client) Tag(root, name string) error {
	return c.run(root, "tag", name)
}

// Push pushes the current branch, or every tag when tags is set.
func (c *Client) Push(root, remote string, tags, force bool) error {
	args := []string{"push", remote}
	if tags {
		args = append(args, "--tags")
	}
	if force {
		args = append(args, "--force")
	}
	return c.run(root, args...)
}

// Checkout restores files from HEAD, discarding working-tree edits.
func (c *Client) Checkout(root string, files ...string) error {
	paths, err := absolute(files)
	if err != nil {
		return err
	}
	return c.run(root, append([]string{"checkout", "--"}, paths...)...)
}

// Describe returns the nearest v* tag description of HEAD, marked dirty
// when the tree has changes.
func (c *Client) Describe(root string) (string, error) {
	return c.output(root, "describe", "--tags", "--always", "--dirty", "--match=v*")
}

// ShortCommit returns the abbreviated HEAD commit hash.
func (c *Client) ShortCommit(root string) (string, error) {
	return c.output(root, "rev-parse", "--short", "HEAD")
}

func (c *Client) run(root string, args ...string) error {
	return c.runner.Run(Command, append([]string{"-C", root}, args...)...)
}

func (c *Client) output(root string, args ...string) (string, error) {
	return c.runner.Output(Command, append([]string{"-C", root}, args...)...)
}

func (c *Client) anyOutput(root string, args ...string) (bool, error) {
	out, err := c.output(root, args...)
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// absolute makes paths independent of the -C root.
func absolute(files []string) ([]string, error) {
	out := make([]string, len(files))
	for i, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", f, err)
		}
		out[i] = abs
	}
	return out, nil
}
