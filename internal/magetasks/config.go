package magetasks

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dkoosis/recipes/internal/fsutil"
	"github.com/dkoosis/recipes/internal/git"
	"github.com/dkoosis/recipes/pkg/build"
)

var (
	// ModulePath is the Go module path.
	ModulePath = "github.com/dkoosis/recipes"

	// BinPath is the output path for built binaries.
	BinPath = "./bin/recipes"

	// MainPackage is the package BuildAll compiles.
	MainPackage = "./cmd/recipes"

	// ProjectRoot is the git top-level directory, or the working directory
	// outside a repository.
	ProjectRoot string

	// RecipesFile is the recipes file in ProjectRoot, empty when there is none.
	RecipesFile string
)

// Initialize resolves the project root and its recipes file and creates the
// bin directory. Call it from the magefile's init.
func Initialize() error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}
	ProjectRoot = wd
	if top, err := git.New(runner).FindRoot(wd); err == nil && top != "" {
		ProjectRoot = top
	}
	RecipesFile = build.FindFile(ProjectRoot)

	return fsutil.EnsureDir(filepath.Join(ProjectRoot, "bin"))
}

func root() string {
	if ProjectRoot == "" {
		return "."
	}
	return ProjectRoot
}
