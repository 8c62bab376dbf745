package toolpkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/recipes/internal/fsutil"
)

func newPackage(t *testing.T, asAddin, asTool bool) Settings {
	t.Helper()
	root := t.TempDir()
	s := Settings{
		ID:             "Cake.Recipes",
		Version:        "1.2.3",
		NuGetDirectory: filepath.Join(root, "nuget"),
		ToolsDirectory: filepath.Join(root, "tools"),
		AsAddin:        asAddin,
		AsTool:         asTool,
	}
	content := filepath.Join(root, "content")
	require.NoError(t, os.MkdirAll(filepath.Join(content, "lib"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(content, "lib", "Cake.Recipes.dll"), []byte("dll"), 0o600))
	require.NoError(t, fsutil.ZipDir(content, s.PackageFile()))
	return s
}

func TestSettings_Validate_When_FieldsMissing(t *testing.T) {
	t.Parallel()

	full := Settings{ID: "a", Version: "1", NuGetDirectory: "n", ToolsDirectory: "t", AsTool: true}
	tests := []struct {
		name string
		edit func(*Settings)
		want error
	}{
		{name: "id", edit: func(s *Settings) { s.ID = "" }, want: ErrMissingID},
		{name: "version", edit: func(s *Settings) { s.Version = "" }, want: ErrMissingVersion},
		{name: "nuget dir", edit: func(s *Settings) { s.NuGetDirectory = "" }, want: ErrMissingNuGetDirectory},
		{name: "tools dir", edit: func(s *Settings) { s.ToolsDirectory = "" }, want: ErrMissingToolsDirectory},
		{name: "no target", edit: func(s *Settings) { s.AsTool = false }, want: ErrNoTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := full
			tt.edit(&s)
			require.ErrorIs(t, s.Validate(), tt.want)
		})
	}
	require.NoError(t, full.Validate())
}

func TestInstall_When_AddinAndTool(t *testing.T) {
	t.Parallel()

	s := newPackage(t, true, true)

	require.NoError(t, Install(s))

	for _, dir := range []string{s.AddinDirectory(), s.ToolDirectory()} {
		assert.FileExists(t, filepath.Join(dir, "lib", "Cake.Recipes.dll"))
		assert.FileExists(t, filepath.Join(dir, "Cake.Recipes.1.2.3.nupkg"))
	}
	assert.Equal(t, filepath.Join(s.ToolsDirectory, "Addins", "Cake.Recipes.1.2.3"), s.AddinDirectory())
}

func TestInstall_When_PreviousInstallExists(t *testing.T) {
	t.Parallel()

	s := newPackage(t, false, true)
	stale := filepath.Join(s.ToolDirectory(), "stale.txt")
	require.NoError(t, os.MkdirAll(s.ToolDirectory(), 0o750))
	require.NoError(t, os.WriteFile(stale, nil, 0o600))

	require.NoError(t, Install(s))

	assert.NoFileExists(t, stale)
	assert.NoDirExists(t, s.AddinDirectory())
}

func TestInstall_When_PackageMissing(t *testing.T) {
	t.Parallel()

	s := newPackage(t, true, false)
	s.Version = "9.9.9"

	require.ErrorIs(t, Install(s), ErrPackageNotFound)
}

func TestClean_When_Installed(t *testing.T) {
	t.Parallel()

	s := newPackage(t, true, true)
	require.NoError(t, Install(s))

	require.NoError(t, Clean(s))

	assert.NoDirExists(t, s.AddinDirectory())
	assert.NoDirExists(t, s.ToolDirectory())
	require.NoError(t, Clean(s))
}
