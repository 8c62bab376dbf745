package recipe

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/recipes/pkg/build"
	"github.com/dkoosis/recipes/pkg/pipeline"
	"github.com/dkoosis/recipes/pkg/releasenotes"
	"github.com/dkoosis/recipes/pkg/version"
)

func versionPtr(s string) *version.Version {
	v := version.MustParse(s)
	return &v
}

func TestNewRecipe_When_Defaults(t *testing.T) {
	t.Parallel()

	r := NewRecipe()

	assert.True(t, r.PrepareReleaseNotes)
	assert.True(t, r.UpdateAssemblyInfo)
	assert.True(t, r.CommitChanges)
	assert.True(t, r.TagVersion)
	assert.False(t, r.UsePreBuildTask)
	assert.Equal(t, "origin", r.RemoteName)
	assert.Equal(t, "./ReleaseNotes.md", r.ReleaseNotesFile)
	assert.Nil(t, r.Version)
}

func TestUseCommitTask_When_LocalOrDisabled(t *testing.T) {
	t.Parallel()

	r := NewRecipe()
	cfg := build.Default()

	assert.False(t, r.UseCommitTask(&cfg), "local builds never commit")

	cfg.Local = false
	assert.True(t, r.UseCommitTask(&cfg))

	cfg.EnableCommits = false
	assert.False(t, r.UseCommitTask(&cfg))

	cfg.EnableCommits = true
	r.CommitChanges = false
	assert.False(t, r.UseCommitTask(&cfg))
}

func TestTaskName_When_IDChanges(t *testing.T) {
	t.Parallel()

	r := NewRecipe()
	r.ID = "App"
	assert.Equal(t, "App-PreBuild", r.TaskName(pipeline.PreBuild))

	r.ID = "Lib"
	assert.Equal(t, "Lib-PreBuild", r.TaskName(pipeline.PreBuild))
}

func TestToggles_When_DerivedFromRecipe(t *testing.T) {
	t.Parallel()

	r := NewRecipe()
	r.UsePostBuildTask = true
	r.UpdateAssemblyInfo = false
	cfg := build.Default()
	cfg.Local = false

	tg := r.Toggles(&cfg)

	assert.Equal(t, pipeline.Toggles{
		UsePostBuild:        true,
		PrepareReleaseNotes: true,
		UseCommit:           true,
	}, tg)
}

func TestCheckSettings_When_RecipeLevel(t *testing.T) {
	t.Parallel()

	r := NewRecipe()
	r.PrepareReleaseNotes = false
	cfg := build.Default()
	cfg.GitRoot = "/repo"

	s := r.CheckSettings(&cfg)

	assert.Equal(t, "/repo", s.GitRoot)
	assert.False(t, s.StagedChanges)
	assert.False(t, s.UncommittedChanges)
	assert.False(t, s.UntrackedFiles)
	assert.False(t, s.RequireReleaseNotes)
	assert.Equal(t, releasenotes.DefaultVNextFile, s.ReleaseNotesVNextFile)
}

func TestAssemblyInfoSettings_When_SharedFile(t *testing.T) {
	t.Parallel()

	r := NewRecipe()
	r.Project = "Acme.App"
	r.GUID = "guid"
	r.Solution = "Acme"
	r.Version = versionPtr("1.4.0")
	cfg := build.Default()
	cfg.Company = "Acme"
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	s, err := r.AssemblyInfoSettings(&cfg, now)
	require.NoError(t, err)
	assert.Equal(t, "Acme.App", s.Title)
	assert.Equal(t, "guid", s.GUID)
	assert.Equal(t, "Copyright (c) Acme 2026", s.Copyright)
	assert.Equal(t, "1.4.0", s.InformationalVersion)
	assert.Equal(t, "Release", s.Configuration)

	r.SharedAssemblyInfoFile = true
	s, err = r.AssemblyInfoSettings(&cfg, now)
	require.NoError(t, err)
	assert.Empty(t, s.Title)
	assert.Empty(t, s.GUID)
}

func TestAssemblyInfoSettings_When_NoVersion(t *testing.T) {
	t.Parallel()

	r := NewRecipe()
	cfg := build.Default()

	_, err := r.AssemblyInfoSettings(&cfg, time.Now())

	assert.ErrorIs(t, err, releasenotes.ErrVersionRequired)
}

func TestCommitSettings_When_TagsDisabled(t *testing.T) {
	t.Parallel()

	r := NewRecipe()
	r.Name = "Widget"
	r.RemoteName = ""
	r.Version = versionPtr("2.0.0")
	cfg := build.Default()
	cfg.EnableTags = false
	cfg.GitRemote = "upstream"

	s := r.CommitSettings(&cfg)

	assert.True(t, s.CommitChanges)
	assert.False(t, s.CreateVersionTag)
	assert.Equal(t, "upstream", s.GitRemote)
	assert.Equal(t, "cake@build.com", s.GitEmail)
	assert.Equal(t, "Widget Version - 2.0.0", s.Message())
}

func TestRevertSettings_When_Derived(t *testing.T) {
	t.Parallel()

	r := NewRecipe()
	r.AssemblyInfoFile = "src/AssemblyInfo.cs"
	cfg := build.Default()

	s := r.RevertSettings(&cfg)

	assert.Equal(t, []string{"src/AssemblyInfo.cs", "./ReleaseNotes.md", "./ReleaseNotes.vnext.md"}, s.Paths())
}

func TestSetError_When_TaskFails(t *testing.T) {
	t.Parallel()

	r := NewRecipe()
	assert.False(t, r.Errored())

	cause := assert.AnError
	r.SetError("App-Build", cause)

	assert.True(t, r.Errored())
	assert.Equal(t, "App-Build", r.ErroredTask())
	assert.Equal(t, cause, r.Err())
}

func TestSetError_When_LaterTaskFails(t *testing.T) {
	t.Parallel()

	r := NewRecipe()
	cause := errors.New("build failed")
	r.SetError("App-Build", cause)
	r.SetError("App-CleanUp", errors.New("checkout failed"))

	assert.Equal(t, "App-Build", r.ErroredTask())
	assert.Equal(t, cause, r.Err())
}

func TestValidate_When_Incomplete(t *testing.T) {
	t.Parallel()

	r := NewRecipe()
	assert.ErrorIs(t, r.Validate(), ErrMissingID)

	r.ID = "App"
	assert.ErrorIs(t, r.Validate(), ErrMissingTarget)

	r.ProjectFile = "App.csproj"
	require.NoError(t, r.Validate())
	assert.Equal(t, "App.csproj", r.Target())

	r.SolutionFile = "App.sln"
	assert.Equal(t, "App.sln", r.Target())
}
