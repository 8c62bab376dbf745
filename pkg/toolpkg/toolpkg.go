// Package toolpkg installs NuGet packages as build tools or addins by
// unpacking them into the tools directory.
package toolpkg

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dkoosis/recipes/internal/fsutil"
)

// AddinsDir is the tools subdirectory that receives addins.
const AddinsDir = "Addins"

var (
	ErrMissingID             = errors.New("tool package id is required")
	ErrMissingVersion        = errors.New("tool package version is required")
	ErrMissingNuGetDirectory = errors.New("nuget directory is required")
	ErrMissingToolsDirectory = errors.New("tools directory is required")
	ErrNoTarget              = errors.New("tool package must install as an addin, a tool, or both")
	ErrPackageNotFound       = errors.New("tool package file not found")
)

// Settings describe one package install.
type Settings struct {
	ID             string
	Version        string
	NuGetDirectory string
	ToolsDirectory string
	AsAddin        bool
	AsTool         bool
}

// Name is "{id}.{version}".
func (s Settings) Name() string { return s.ID + "." + s.Version }

// PackageFile is the .nupkg path inside the nuget directory.
func (s Settings) PackageFile() string {
	return filepath.Join(s.NuGetDirectory, s.Name()+".nupkg")
}

// AddinDirectory is where the package lands when installed as an addin.
func (s Settings) AddinDirectory() string {
	return filepath.Join(s.ToolsDirectory, AddinsDir, s.Name())
}

// ToolDirectory is where the package lands when installed as a tool.
func (s Settings) ToolDirectory() string {
	return filepath.Join(s.ToolsDirectory, s.Name())
}

// Validate reports the first missing setting.
func (s Settings) Validate() error {
	switch {
	case s.ID == "":
		return ErrMissingID
	case s.Version == "":
		return fmt.Errorf("%s: %w", s.ID, ErrMissingVersion)
	case s.NuGetDirectory == "":
		return fmt.Errorf("%s: %w", s.Name(), ErrMissingNuGetDirectory)
	case s.ToolsDirectory == "":
		return fmt.Errorf("%s: %w", s.Name(), ErrMissingToolsDirectory)
	case !s.AsAddin && !s.AsTool:
		return fmt.Errorf("%s: %w", s.Name(), ErrNoTarget)
	}
	return nil
}

func (s Settings) targets() []string {
	var dirs []string
	if s.AsAddin {
		dirs = append(dirs, s.AddinDirectory())
	}
	if s.AsTool {
		dirs = append(dirs, s.ToolDirectory())
	}
	return dirs
}

// Install unpacks the package into each requested directory, replacing any
// previous install, and copies the package file alongside the contents.
func Install(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	pkg := s.PackageFile()
	if !fsutil.Exists(pkg) {
		return fmt.Errorf("%s: %w", pkg, ErrPackageNotFound)
	}

	for _, dir := range s.targets() {
		if err := fsutil.Remove(dir); err != nil {
			return fmt.Errorf("remove previous install %s: %w", dir, err)
		}
		if err := fsutil.Unzip(pkg, dir); err != nil {
			return fmt.Errorf("install %s: %w", s.Name(), err)
		}
		if err := fsutil.Copy(filepath.Join(dir, filepath.Base(pkg)), pkg); err != nil {
			return fmt.Errorf("install %s: %w", s.Name(), err)
		}
	}
	return nil
}

// Clean removes the addin and tool directories for the package.
func Clean(s Settings) error {
	if s.ID == "" {
		return ErrMissingID
	}
	if s.Version == "" {
		return fmt.Errorf("%s: %w", s.ID, ErrMissingVersion)
	}
	if s.ToolsDirectory == "" {
		return fmt.Errorf("%s: %w", s.Name(), ErrMissingToolsDirectory)
	}
	for _, dir := range []string{s.AddinDirectory(), s.ToolDirectory()} {
		if !fsutil.Exists(dir) {
			continue
		}
		if err := fsutil.Remove(dir); err != nil {
			return fmt.Errorf("clean %s: %w", dir, err)
		}
	}
	return nil
}
