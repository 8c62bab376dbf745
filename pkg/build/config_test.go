package build

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_When_NothingConfigured(t *testing.T) {
	t.Parallel()

	c := Default()

	assert.Equal(t, "Release", c.Configuration)
	assert.Equal(t, "RunAll", c.Target)
	assert.Equal(t, Quiet, c.Verbosity)
	assert.True(t, c.Local)
	assert.True(t, c.CheckStagedChanges)
	assert.True(t, c.EnableCommits)
	assert.Equal(t, "cake@build.com", c.GitEmail)
	assert.Equal(t, "https://api.nuget.org/v3/index.json", c.NuGetSource)
	assert.Contains(t, c.NuGetLocalSource, "packages")
	assert.Equal(t, "./releases", c.SquirrelLocalRepository)
}

func TestSquirrelRepository_When_LocalOrCentral(t *testing.T) {
	t.Parallel()

	c := Default()
	c.SquirrelCentralRepository = "s3://releases/apps/"

	assert.Equal(t, "./releases", c.SquirrelRepository("Widget"))

	c.Local = false
	assert.Equal(t, "s3://releases/apps/Widget", c.SquirrelRepository("Widget"))
}

func TestCheckSettings_When_DerivedFromConfig(t *testing.T) {
	t.Parallel()

	c := Default()
	c.GitRoot = "/repo"
	c.CheckUntrackedFiles = false

	s := c.CheckSettings()

	assert.Equal(t, "/repo", s.GitRoot)
	assert.True(t, s.StagedChanges)
	assert.True(t, s.UncommittedChanges)
	assert.False(t, s.UntrackedFiles)
	assert.False(t, s.RequireReleaseNotes)
}

func TestWriteInfo_When_APIKeySet(t *testing.T) {
	t.Parallel()

	c := Default()
	c.NuGetAPIKey = "secret-key"
	var buf bytes.Buffer

	c.WriteInfo(&buf)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "RunAll")
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "secret-key")
}
