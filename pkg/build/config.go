package build

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dkoosis/recipes/pkg/check"
)

// Defaults for the build-wide settings.
const (
	DefaultConfiguration   = "Release"
	DefaultTarget          = "RunAll"
	DefaultGitUserName     = "CakeBuild"
	DefaultGitEmail        = "cake@build.com"
	DefaultGitRemote       = "origin"
	DefaultNuGetSource     = "https://api.nuget.org/v3/index.json"
	DefaultSquirrelLocal   = "./releases"
	defaultNuGetPackageDir = ".nuget/packages"
)

// Config is the build-wide configuration.
type Config struct {
	Configuration string    `yaml:"configuration" toml:"configuration"`
	Target        string    `yaml:"target" toml:"target"`
	Verbosity     Verbosity `yaml:"verbosity" toml:"verbosity"`
	// Local builds never commit or push to a shared remote.
	Local   bool   `yaml:"local" toml:"local"`
	Company string `yaml:"company" toml:"company"`

	CheckStagedChanges      bool `yaml:"check_staged_changes" toml:"check_staged_changes"`
	CheckUncommittedChanges bool `yaml:"check_uncommitted_changes" toml:"check_uncommitted_changes"`
	CheckUntrackedFiles     bool `yaml:"check_untracked_files" toml:"check_untracked_files"`

	GitRoot       string `yaml:"git_root" toml:"git_root"`
	GitUserName   string `yaml:"git_user_name" toml:"git_user_name"`
	GitEmail      string `yaml:"git_email" toml:"git_email"`
	GitRemote     string `yaml:"git_remote" toml:"git_remote"`
	EnableCommits bool   `yaml:"enable_commits" toml:"enable_commits"`
	EnableTags    bool   `yaml:"enable_tags" toml:"enable_tags"`

	NuGetLocalSource string `yaml:"nuget_local_source" toml:"nuget_local_source"`
	NuGetSource      string `yaml:"nuget_source" toml:"nuget_source"`
	NuGetAPIKey      string `yaml:"nuget_api_key" toml:"nuget_api_key"`

	// SquirrelCentralRepository is a directory or an s3://bucket/prefix URL.
	SquirrelCentralRepository string `yaml:"squirrel_central_repository" toml:"squirrel_central_repository"`
	SquirrelLocalRepository   string `yaml:"squirrel_local_repository" toml:"squirrel_local_repository"`

	// ConfigFile is the file the build section was read from, if any.
	ConfigFile string `yaml:"-" toml:"-"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Configuration:           DefaultConfiguration,
		Target:                  DefaultTarget,
		Verbosity:               Quiet,
		Local:                   true,
		CheckStagedChanges:      true,
		CheckUncommittedChanges: true,
		CheckUntrackedFiles:     true,
		GitUserName:             DefaultGitUserName,
		GitEmail:                DefaultGitEmail,
		GitRemote:               DefaultGitRemote,
		EnableCommits:           true,
		EnableTags:              true,
		NuGetLocalSource:        defaultNuGetLocalSource(),
		NuGetSource:             DefaultNuGetSource,
		SquirrelLocalRepository: DefaultSquirrelLocal,
	}
}

func defaultNuGetLocalSource() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.FromSlash(defaultNuGetPackageDir)
	}
	return filepath.Join(home, filepath.FromSlash(defaultNuGetPackageDir))
}

// SquirrelRepository returns where the release packages of recipe id go:
// the local repository on local builds, else {central}/{id}.
func (c *Config) SquirrelRepository(id string) string {
	if c.Local {
		return c.SquirrelLocalRepository
	}
	return strings.TrimRight(c.SquirrelCentralRepository, `/\`) + "/" + id
}

// CheckSettings returns the build-level checks. Release notes are checked
// per recipe, so they are not required here.
func (c *Config) CheckSettings() check.Settings {
	s := check.DefaultSettings()
	s.GitRoot = c.GitRoot
	s.StagedChanges = c.CheckStagedChanges
	s.UncommittedChanges = c.CheckUncommittedChanges
	s.UntrackedFiles = c.CheckUntrackedFiles
	s.RequireReleaseNotes = false
	return s
}
