package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/recipes/internal/fsutil"
	"github.com/dkoosis/recipes/internal/version"
	"github.com/dkoosis/recipes/pkg/toolpkg"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_When_Version(t *testing.T) {
	t.Parallel()

	code, out, _ := runCLI(t, "version")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "recipes version "+version.Version)
	assert.Contains(t, out, "Commit: "+version.CommitHash)
}

func TestRun_When_Help(t *testing.T) {
	t.Parallel()

	code, out, _ := runCLI(t, "help")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "RunAll")
}

func TestRun_When_InfoOnlyTarget(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`build:
  company: Higgsoft
recipes:
  - kind: app
    id: App
    solution_file: App.sln
  - kind: lib
    id: Lib
    project_file: Lib.csproj
`), 0o600))

	code, out, errOut := runCLI(t, "run", "InfoOnly", "--config", path, "--verbosity", "quiet")

	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Higgsoft")
	assert.Contains(t, out, "DotNet App: App")
	assert.Contains(t, out, "DotNet Lib: Lib")
}

func TestRun_When_TargetFollowsFlags(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`recipes:
  - kind: app
    id: App
    solution_file: App.sln
`), 0o600))

	code, out, errOut := runCLI(t, "--config", path, "--local", "InfoOnly", "--verbosity", "quiet")

	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "DotNet App: App")
	assert.NotContains(t, out, "Build Status")
}

func TestRun_When_SeveralTargets(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recipes: []\n"), 0o600))

	code, _, errOut := runCLI(t, "run", "InfoOnly", "BuildAll", "--config", path)

	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "expected one target")
}

func TestRun_When_ConfigMissing(t *testing.T) {
	t.Parallel()

	code, _, errOut := runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "recipes:")
}

func TestRun_When_UnknownTarget(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recipes: []\n"), 0o600))

	code, _, errOut := runCLI(t, "Deploy", "--config", path, "--verbosity", "quiet")

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Deploy")
}

func TestBump_When_VersionGiven(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		want   string
	}{
		{"patch", "1.2.4"},
		{"minor", "1.3.0"},
		{"MAJOR", "2.0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()

			code, out, errOut := runCLI(t, "bump", "--method", tt.method, "1.2.3")

			require.Equal(t, 0, code, errOut)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestBump_When_ReadFromReleaseNotes(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ReleaseNotes.vnext.md")
	require.NoError(t, os.WriteFile(path, []byte("## 0.4.1\n\n- fix\n"), 0o600))

	code, out, errOut := runCLI(t, "bump", "-m", "minor", "--file", path)

	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "0.5.0\n", out)
}

func TestBump_When_MethodUnknown(t *testing.T) {
	t.Parallel()

	code, _, errOut := runCLI(t, "bump", "--method", "huge", "1.0.0")

	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "huge")
}

func TestBump_When_VersionInvalid(t *testing.T) {
	t.Parallel()

	code, _, _ := runCLI(t, "bump", "one.two")

	assert.Equal(t, 1, code)
}

func TestTools_When_InstallThenClean(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	content := filepath.Join(root, "content")
	require.NoError(t, os.MkdirAll(filepath.Join(content, "tools"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(content, "tools", "tool.exe"), []byte("exe"), 0o600))
	nugetDir := filepath.Join(root, "nuget")
	require.NoError(t, os.MkdirAll(nugetDir, 0o750))
	require.NoError(t, fsutil.ZipDir(content, filepath.Join(nugetDir, "Tool.1.0.0.nupkg")))
	toolsDir := filepath.Join(root, "tools")

	code, out, errOut := runCLI(t, "tools", "install",
		"--id", "Tool", "--version", "1.0.0",
		"--nuget-dir", nugetDir, "--tools-dir", toolsDir, "--tool", "--addin")

	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "Installed Tool.1.0.0\n", out)
	assert.FileExists(t, filepath.Join(toolsDir, "Tool.1.0.0", "tools", "tool.exe"))
	assert.FileExists(t, filepath.Join(toolsDir, toolpkg.AddinsDir, "Tool.1.0.0", "Tool.1.0.0.nupkg"))

	code, _, errOut = runCLI(t, "tools", "clean", "--id", "Tool", "--version", "1.0.0", "--tools-dir", toolsDir)

	require.Equal(t, 0, code, errOut)
	assert.NoDirExists(t, filepath.Join(toolsDir, "Tool.1.0.0"))
	assert.NoDirExists(t, filepath.Join(toolsDir, toolpkg.AddinsDir, "Tool.1.0.0"))
}

func TestTools_When_NoTargetSelected(t *testing.T) {
	t.Parallel()

	code, _, errOut := runCLI(t, "tools", "install", "--id", "Tool", "--version", "1.0.0", "--nuget-dir", t.TempDir())

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, toolpkg.ErrNoTarget.Error())
}

func TestTools_When_ActionUnknown(t *testing.T) {
	t.Parallel()

	code, _, _ := runCLI(t, "tools", "upgrade")

	assert.Equal(t, 2, code)
}

func TestNotes_When_FilesMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "ReleaseNotes.md")
	vnext := filepath.Join(dir, "ReleaseNotes.vnext.md")

	code, _, errOut := runCLI(t, "notes", "--file", file, "--vnext", vnext)

	require.Equal(t, 0, code, errOut)
	assert.FileExists(t, file)
	data, err := os.ReadFile(vnext)
	require.NoError(t, err)
	assert.Equal(t, "## 0.1.0", string(data))

	code, out, _ := runCLI(t, "bump", "--file", vnext)

	assert.Equal(t, 0, code)
	assert.Equal(t, "0.1.1\n", out)
}
