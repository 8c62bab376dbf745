package recipe

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/recipes/internal/nuget"
	"github.com/dkoosis/recipes/pkg/build"
)

func TestRuntimeFrameworks_When_MultipleOfEach(t *testing.T) {
	t.Parallel()

	app := NewDotNetApp()
	app.AddRuntimes("win-x64", "linux-x64")
	app.AddFrameworks("net6.0", "net8.0")

	assert.Equal(t, []RuntimeFramework{
		{"win-x64", "net6.0"},
		{"win-x64", "net8.0"},
		{"linux-x64", "net6.0"},
		{"linux-x64", "net8.0"},
	}, app.RuntimeFrameworks())
}

func TestAddFrameworks_When_CalledTwice(t *testing.T) {
	t.Parallel()

	app := NewDotNetApp()
	app.AddFrameworks("net6.0")
	app.AddFrameworks("net8.0", "net9.0")

	assert.Equal(t, []string{"net6.0", "net8.0", "net9.0"}, app.Frameworks)
}

func TestAppRestorePublishSettings_When_Paired(t *testing.T) {
	t.Parallel()

	app := NewDotNetApp()
	app.PublishDirectory = "out"
	app.AddRuntimes("win-x64")
	app.AddFrameworks("net8.0")
	cfg := build.Default()
	cfg.Verbosity = build.Verbose

	settings := app.RestorePublishSettings(&cfg)

	require.Len(t, settings, 1)
	assert.Equal(t, "win-x64", settings[0].Restore.Runtime)
	assert.Equal(t, "detailed", settings[0].Restore.Verbosity)
	assert.Equal(t, filepath.Join("out", "net8.0", "win-x64"), settings[0].Publish.OutputDirectory)
	assert.True(t, settings[0].Publish.NoRestore)

	builds := app.RestoreBuildSettings(&cfg)
	require.Len(t, builds, 1)
	assert.Equal(t, "Release", builds[0].Build.Configuration)
	assert.Equal(t, "net8.0", builds[0].Build.Framework)
}

func TestLibRestorePublishSettings_When_PerFramework(t *testing.T) {
	t.Parallel()

	lib := NewDotNetLib()
	lib.AddFrameworks("netstandard2.0", "net8.0")
	cfg := build.Default()

	settings := lib.RestorePublishSettings(&cfg)

	require.Len(t, settings, 2)
	assert.Equal(t, filepath.Join(DefaultPublishDirectory, "net8.0"), settings[1].Publish.OutputDirectory)
	assert.Empty(t, settings[1].Publish.Runtime)
	assert.Len(t, lib.RestoreBuildSettings(&cfg), 2)
}

func TestNuGetPackSettings_When_ExtraContent(t *testing.T) {
	t.Parallel()

	lib := NewDotNetLib()
	lib.ID = "Acme.Lib"
	lib.Name = "Acme Lib"
	lib.Version = versionPtr("1.0.1")
	lib.ReleaseNotes = []string{"fixed"}
	lib.AddAuthors("Ann")
	lib.AddNuGetFiles(nuget.Content{Source: "readme.md", Target: "docs"})
	cfg := build.Default()
	cfg.Company = "Acme"

	s := lib.NuGetPackSettings(&cfg, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		nuget.Content{Source: "net8.0/Acme.Lib.dll", Target: "lib/net8.0/Acme.Lib.dll"})

	assert.Equal(t, "Acme.Lib", s.ID)
	assert.Equal(t, "1.0.1", s.Version)
	assert.Equal(t, []string{"Acme"}, s.Owners)
	assert.Equal(t, []string{"fixed"}, s.ReleaseNotes)
	assert.Len(t, s.Files, 2)
	assert.Equal(t, "Release", s.Properties["Configuration"])
	assert.Equal(t, "quiet", s.Verbosity)
	assert.Equal(t, filepath.Join(DefaultNuGetDirectory, "Acme.Lib.1.0.1.nupkg"), lib.PackageFile())
}

func TestNuGetPushSettings_When_LocalOrRemote(t *testing.T) {
	t.Parallel()

	lib := NewDotNetLib()
	cfg := build.Default()
	cfg.NuGetLocalSource = "/feed"
	cfg.NuGetAPIKey = "key"

	assert.Equal(t, nuget.PushSettings{Source: "/feed"}, lib.NuGetPushSettings(&cfg))

	cfg.Local = false
	assert.Equal(t, nuget.PushSettings{
		Source:    build.DefaultNuGetSource,
		APIKey:    "key",
		Verbosity: "quiet",
	}, lib.NuGetPushSettings(&cfg))
}
