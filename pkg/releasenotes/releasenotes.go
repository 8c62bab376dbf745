// Package releasenotes manages the pair of markdown files that carry a
// project's changelog: the main release-notes file and the v-next file that
// accumulates bullet points for the unreleased version.
package releasenotes

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/dkoosis/recipes/pkg/version"
)

const (
	// DefaultFile is the default path of the main release-notes file.
	DefaultFile = "./ReleaseNotes.md"

	// DefaultVNextFile is the default path of the v-next release-notes file.
	DefaultVNextFile = "./ReleaseNotes.vnext.md"

	// initialVNext is written to a freshly created v-next file.
	initialVNext = "## 0.1.0"
)

// ErrVersionRequired is returned by Update when Settings.Version is unset.
var ErrVersionRequired = errors.New("release notes settings require a version")

var notePattern = regexp.MustCompile(`^[-*]\s*(.+)$`)

// Settings locates the release-notes files and the version being released.
type Settings struct {
	File      string
	VNextFile string
	Version   *version.Version
}

// DefaultSettings returns settings pointing at the default file locations.
func DefaultSettings() Settings {
	return Settings{File: DefaultFile, VNextFile: DefaultVNextFile}
}

// FilterLines returns the text of every bullet line ("- note" or "* note"),
// with the marker removed. Blank and non-bullet lines are dropped.
func FilterLines(lines []string) []string {
	notes := []string{}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := notePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		notes = append(notes, m[1])
	}
	return notes
}

// Read returns the filtered notes held in the file at path.
func Read(path string) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	return FilterLines(lines), nil
}

// Any reports whether the file at path holds at least one note.
// A missing file holds no notes.
func Any(path string) (bool, error) {
	notes, err := Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(notes) > 0, nil
}

// Updated reports whether the v-next file holds pending notes.
func Updated(s Settings) (bool, error) {
	return Any(s.VNextFile)
}

// Update folds the pending v-next notes into the main file under a
// "## {version}" heading, resets the v-next file to the next patch version
// and returns the notes that were released.
func Update(s Settings) ([]string, error) {
	if s.Version == nil {
		return nil, ErrVersionRequired
	}

	notes, err := Read(s.VNextFile)
	if err != nil {
		return nil, fmt.Errorf("read v-next release notes: %w", err)
	}

	existing, err := os.ReadFile(s.File)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read release notes: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", s.Version)
	for _, note := range notes {
		fmt.Fprintf(&b, "- %s\n", note)
	}
	b.WriteString("\n")
	b.Write(existing)

	if err := os.WriteFile(s.File, []byte(b.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write release notes: %w", err)
	}

	next := s.Version.Bump(version.Patch)
	if err := os.WriteFile(s.VNextFile, []byte(fmt.Sprintf("## %s", next)), 0o644); err != nil {
		return nil, fmt.Errorf("write v-next release notes: %w", err)
	}

	return notes, nil
}

// EnsureExist creates the release-notes files when they are missing. The
// main file starts empty; the v-next file starts with a "## 0.1.0" heading.
func EnsureExist(file, vnextFile string) error {
	if err := createIfMissing(file, ""); err != nil {
		return err
	}
	return createIfMissing(vnextFile, initialVNext)
}

func createIfMissing(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
