package recipe

import (
	"errors"
	"fmt"
	"time"

	"github.com/dkoosis/recipes/internal/assemblyinfo"
	"github.com/dkoosis/recipes/pkg/build"
	"github.com/dkoosis/recipes/pkg/check"
	"github.com/dkoosis/recipes/pkg/commit"
	"github.com/dkoosis/recipes/pkg/pipeline"
	"github.com/dkoosis/recipes/pkg/releasenotes"
	"github.com/dkoosis/recipes/pkg/version"
)

// Configuration errors.
var (
	ErrMissingID     = errors.New("recipe id is required")
	ErrMissingTarget = errors.New("recipe needs a solution file or a project file")

	// ErrVersionRequired is returned by stages that run before the version is known.
	ErrVersionRequired = errors.New("recipe version is not set")
)

// Kind names a recipe type.
type Kind string

const (
	KindApp Kind = "app"
	KindLib Kind = "lib"
)

// Hook is a user action run by the pre-build or post-build stage.
type Hook func(cfg *build.Config) error

// Recipe holds the settings common to every project kind.
type Recipe struct {
	ID          string `yaml:"id" toml:"id"`
	Name        string `yaml:"name" toml:"name"`
	Description string `yaml:"description" toml:"description"`
	Solution    string `yaml:"solution" toml:"solution"`
	Project     string `yaml:"project" toml:"project"`
	GUID        string `yaml:"guid" toml:"guid"`
	// Version is set by the version stage unless given up front.
	Version *version.Version `yaml:"version" toml:"version"`
	// SharedAssemblyInfoFile leaves the project title and GUID out of the
	// generated assembly info.
	SharedAssemblyInfoFile bool     `yaml:"shared_assembly_info_file" toml:"shared_assembly_info_file"`
	ReleaseNotes           []string `yaml:"release_notes" toml:"release_notes"`

	UsePreBuildTask     bool `yaml:"use_pre_build" toml:"use_pre_build"`
	UsePostBuildTask    bool `yaml:"use_post_build" toml:"use_post_build"`
	PrepareReleaseNotes bool `yaml:"prepare_release_notes" toml:"prepare_release_notes"`
	UpdateAssemblyInfo  bool `yaml:"update_assembly_info" toml:"update_assembly_info"`

	CommitChanges bool   `yaml:"commit_changes" toml:"commit_changes"`
	TagVersion    bool   `yaml:"tag_version" toml:"tag_version"`
	PushToRemote  bool   `yaml:"push_to_remote" toml:"push_to_remote"`
	RemoteName    string `yaml:"remote_name" toml:"remote_name"`

	SolutionDirectory     string `yaml:"solution_directory" toml:"solution_directory"`
	SolutionFile          string `yaml:"solution_file" toml:"solution_file"`
	ProjectFile           string `yaml:"project_file" toml:"project_file"`
	AssemblyInfoFile      string `yaml:"assembly_info_file" toml:"assembly_info_file"`
	ReleaseNotesFile      string `yaml:"release_notes_file" toml:"release_notes_file"`
	ReleaseNotesVNextFile string `yaml:"release_notes_vnext_file" toml:"release_notes_vnext_file"`

	// PreBuild and PostBuild run when the matching stage is enabled. A
	// command is used when no hook is set.
	PreBuild         Hook     `yaml:"-" toml:"-"`
	PostBuild        Hook     `yaml:"-" toml:"-"`
	PreBuildCommand  []string `yaml:"pre_build_command" toml:"pre_build_command"`
	PostBuildCommand []string `yaml:"post_build_command" toml:"post_build_command"`

	// SkipRemainingTasks is set by the check stage when there is nothing
	// new to release.
	SkipRemainingTasks bool `yaml:"-" toml:"-"`

	errored     bool
	erroredTask string
	err         error
}

// NewRecipe returns a recipe with the default toggles and file locations.
func NewRecipe() Recipe {
	return Recipe{
		PrepareReleaseNotes:   true,
		UpdateAssemblyInfo:    true,
		CommitChanges:         true,
		TagVersion:            true,
		RemoteName:            commit.DefaultRemote,
		SolutionDirectory:     ".",
		ReleaseNotesFile:      releasenotes.DefaultFile,
		ReleaseNotesVNextFile: releasenotes.DefaultVNextFile,
	}
}

// Common returns the shared recipe settings.
func (r *Recipe) Common() *Recipe { return r }

func (r *Recipe) String() string { return r.Name }

// Validate reports configuration errors that would fail every stage.
func (r *Recipe) Validate() error {
	if r.ID == "" {
		return ErrMissingID
	}
	if r.Target() == "" {
		return fmt.Errorf("%s: %w", r.ID, ErrMissingTarget)
	}
	return nil
}

// Target is the file dotnet restores and builds: the solution when set,
// otherwise the project.
func (r *Recipe) Target() string {
	if r.SolutionFile != "" {
		return r.SolutionFile
	}
	return r.ProjectFile
}

// TaskName returns the host task name of stage for this recipe.
func (r *Recipe) TaskName(stage pipeline.Stage) string {
	return pipeline.TaskName(r.ID, stage)
}

// UseCommitTask reports whether the commit stage runs. Local builds never commit.
func (r *Recipe) UseCommitTask(cfg *build.Config) bool {
	return !cfg.Local && cfg.EnableCommits && r.CommitChanges
}

// Toggles returns the stage toggles for this recipe.
func (r *Recipe) Toggles(cfg *build.Config) pipeline.Toggles {
	return pipeline.Toggles{
		UsePreBuild:         r.UsePreBuildTask,
		UsePostBuild:        r.UsePostBuildTask,
		UpdateAssemblyInfo:  r.UpdateAssemblyInfo,
		PrepareReleaseNotes: r.PrepareReleaseNotes,
		UseCommit:           r.UseCommitTask(cfg),
	}
}

// CheckSettings returns the recipe-level checks. Git state is checked once
// for the whole build, so only the release notes are checked here.
func (r *Recipe) CheckSettings(cfg *build.Config) check.Settings {
	return check.Settings{
		GitRoot:               cfg.GitRoot,
		RequireReleaseNotes:   r.PrepareReleaseNotes,
		ReleaseNotesFile:      r.ReleaseNotesFile,
		ReleaseNotesVNextFile: r.ReleaseNotesVNextFile,
	}
}

// ReleaseNotesSettings returns the release-notes files and version.
func (r *Recipe) ReleaseNotesSettings() releasenotes.Settings {
	return releasenotes.Settings{
		File:      r.ReleaseNotesFile,
		VNextFile: r.ReleaseNotesVNextFile,
		Version:   r.Version,
	}
}

// Copyright returns the copyright line for the company and year of now.
func Copyright(cfg *build.Config, now time.Time) string {
	return fmt.Sprintf("Copyright (c) %s %d", cfg.Company, now.Year())
}

// AssemblyInfoSettings returns the attributes written by the assembly-info
// stage. The version must be set.
func (r *Recipe) AssemblyInfoSettings(cfg *build.Config, now time.Time) (assemblyinfo.Settings, error) {
	if r.Version == nil {
		return assemblyinfo.Settings{}, fmt.Errorf("%s: assembly info: %w", r.ID, releasenotes.ErrVersionRequired)
	}
	v := r.Version.String()
	s := assemblyinfo.Settings{
		Description:          r.Description,
		Product:              r.Solution,
		Company:              cfg.Company,
		Copyright:            Copyright(cfg, now),
		Configuration:        cfg.Configuration,
		Version:              v,
		FileVersion:          v,
		InformationalVersion: v,
	}
	if !r.SharedAssemblyInfoFile {
		s.Title = r.Project
		s.GUID = r.GUID
	}
	return s, nil
}

// CommitSettings returns how the commit stage records the release.
func (r *Recipe) CommitSettings(cfg *build.Config) commit.Settings {
	remote := r.RemoteName
	if remote == "" {
		remote = cfg.GitRemote
	}
	return commit.Settings{
		CommitChanges:    cfg.EnableCommits && r.CommitChanges,
		CreateVersionTag: cfg.EnableTags && r.CommitChanges && r.TagVersion,
		PushToRemote:     r.PushToRemote,
		GitRoot:          cfg.GitRoot,
		GitRemote:        remote,
		GitUserName:      cfg.GitUserName,
		GitEmail:         cfg.GitEmail,
		Version:          r.Version,
		ProductName:      r.Name,
	}
}

// RevertSettings returns the files the clean-up stage restores.
func (r *Recipe) RevertSettings(cfg *build.Config) commit.RevertSettings {
	return commit.RevertSettings{
		GitRoot:               cfg.GitRoot,
		AssemblyInfoFile:      r.AssemblyInfoFile,
		ReleaseNotesFile:      r.ReleaseNotesFile,
		ReleaseNotesVNextFile: r.ReleaseNotesVNextFile,
	}
}

// SetError records the first failure of the recipe. Later failures, such
// as a clean-up that fails after a build error, leave the record alone.
func (r *Recipe) SetError(task string, err error) {
	if r.errored {
		return
	}
	r.errored = true
	r.erroredTask = task
	r.err = err
}

// Errored reports whether a task of the recipe failed.
func (r *Recipe) Errored() bool { return r.errored }

// ErroredTask names the task that failed.
func (r *Recipe) ErroredTask() string { return r.erroredTask }

// Err returns the recorded failure.
func (r *Recipe) Err() error { return r.err }

// Buildable is implemented by every recipe kind.
type Buildable interface {
	Common() *Recipe
	Kind() Kind
	// InfoRows lists the kind-specific settings shown by the info stage.
	InfoRows() [][2]string
}
