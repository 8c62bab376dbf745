// Package fsutil holds the file-system helpers used by the build stages.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/sh"
)

const dirPerm = 0o750

// EnsureDir creates dir and its parents when missing.
func EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("ensure directory %s: %w", dir, err)
	}
	return nil
}

// CleanDir empties dir, creating it when missing.
func CleanDir(dir string) error {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return EnsureDir(dir)
	}
	if err != nil {
		return fmt.Errorf("clean directory %s: %w", dir, err)
	}
	for _, e := range entries {
		if err := sh.Rm(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("clean directory %s: %w", dir, err)
		}
	}
	return nil
}

// CleanDirs empties every directory under root matching pattern.
func CleanDirs(root, pattern string) error {
	dirs, err := Glob(root, pattern)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			continue
		}
		if err := CleanDir(d); err != nil {
			return err
		}
	}
	return nil
}

// Copy copies the file src to dst.
func Copy(dst, src string) error {
	if err := EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}
	return sh.Copy(dst, src)
}

// Remove deletes path and everything under it. A missing path is not an error.
func Remove(p string) error {
	return sh.Rm(p)
}

// Exists reports whether p exists.
func Exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// Glob returns the paths under root whose slash-separated path relative to
// root matches pattern. A "**" segment matches zero or more directories;
// other segments follow path.Match. Results are in walk order.
func Glob(root, pattern string) ([]string, error) {
	segments := strings.Split(path.Clean(filepath.ToSlash(pattern)), "/")
	for _, s := range segments {
		if _, err := path.Match(s, ""); err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
	}

	var matches []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == root {
				return fs.SkipAll
			}
			return err
		}
		if p == root {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if match(segments, strings.Split(filepath.ToSlash(rel), "/")) {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("glob %s under %s: %w", pattern, root, err)
	}
	return matches, nil
}

func match(pattern, parts []string) bool {
	if len(pattern) == 0 {
		return len(parts) == 0
	}
	if pattern[0] == "**" {
		for i := 0; i <= len(parts); i++ {
			if match(pattern[1:], parts[i:]) {
				return true
			}
		}
		return false
	}
	if len(parts) == 0 {
		return false
	}
	ok, _ := path.Match(pattern[0], parts[0])
	return ok && match(pattern[1:], parts[1:])
}
