// Package nuget writes .nuspec manifests and drives the nuget CLI.
package nuget

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Command is the nuget executable.
const Command = "nuget"

// Runner runs an external command. It is satisfied by *proc.Shell.
type Runner interface {
	Run(cmd string, args ...string) error
}

// Content maps a file under the base path into the package.
type Content struct {
	Source string `yaml:"src" toml:"src"`
	Target string `yaml:"target" toml:"target"`
}

// Dependency is a package dependency.
type Dependency struct {
	ID              string `yaml:"id" toml:"id"`
	Version         string `yaml:"version" toml:"version"`
	TargetFramework string `yaml:"target_framework" toml:"target_framework"`
}

// PackSettings describes the package to create.
type PackSettings struct {
	ID                       string
	Title                    string
	Version                  string
	Authors                  []string
	Owners                   []string
	Description              string
	Summary                  string
	ReleaseNotes             []string
	ProjectURL               string
	IconURL                  string
	Copyright                string
	Tags                     []string
	Symbols                  bool
	RequireLicenseAcceptance bool
	Files                    []Content
	Dependencies             []Dependency
	BasePath                 string
	OutputDirectory          string
	Properties               map[string]string
	Verbosity                string
}

// PushSettings describes where a package is pushed.
type PushSettings struct {
	Source    string
	APIKey    string
	Verbosity string
}

// PackageFile returns the path of the package Pack produces.
func (s PackSettings) PackageFile() string {
	return PackagePath(s.OutputDirectory, s.ID, s.Version)
}

// PackagePath returns {dir}/{id}.{version}.nupkg.
func PackagePath(dir, id, version string) string {
	return filepath.Join(dir, fmt.Sprintf("%s.%s.nupkg", id, version))
}

// PackArgs returns the nuget arguments for packing the manifest at nuspec.
func PackArgs(nuspec string, s PackSettings) []string {
	args := []string{"pack", nuspec}
	args = appendOpt(args, "-BasePath", s.BasePath)
	args = appendOpt(args, "-OutputDirectory", s.OutputDirectory)
	args = appendOpt(args, "-Version", s.Version)
	if len(s.Properties) > 0 {
		args = append(args, "-Properties", joinProperties(s.Properties))
	}
	if s.Symbols {
		args = append(args, "-Symbols")
	}
	args = appendOpt(args, "-Verbosity", s.Verbosity)
	return append(args, "-NonInteractive")
}

// PushArgs returns the nuget arguments for pushing pkg.
func PushArgs(pkg string, s PushSettings) []string {
	args := []string{"push", pkg}
	args = appendOpt(args, "-Source", s.Source)
	args = appendOpt(args, "-ApiKey", s.APIKey)
	args = appendOpt(args, "-Verbosity", s.Verbosity)
	return append(args, "-NonInteractive")
}

// Pack writes the manifest next to the output directory and packs it.
// It returns the path of the created package.
func Pack(r Runner, s PackSettings) (string, error) {
	if s.ID == "" || s.Version == "" {
		return "", fmt.Errorf("nuget pack: id and version are required")
	}
	nuspec := filepath.Join(s.OutputDirectory, s.ID+".nuspec")
	if err := WriteManifest(nuspec, s); err != nil {
		return "", err
	}
	if err := r.Run(Command, PackArgs(nuspec, s)...); err != nil {
		return "", fmt.Errorf("nuget pack %s: %w", s.ID, err)
	}
	return s.PackageFile(), nil
}

// Push pushes pkg to the configured source.
func Push(r Runner, pkg string, s PushSettings) error {
	if err := r.Run(Command, PushArgs(pkg, s)...); err != nil {
		return fmt.Errorf("nuget push %s: %w", filepath.Base(pkg), err)
	}
	return nil
}

func appendOpt(args []string, name, value string) []string {
	if value == "" {
		return args
	}
	return append(args, name, value)
}

func joinProperties(props map[string]string) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + props[k]
	}
	return strings.Join(pairs, ";")
}
