package magetasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipesSmoke_When_NoRecipesFile(t *testing.T) {
	withProjectState(t)
	RecipesFile = ""

	output := capture(t, func() { require.NoError(t, RecipesSmoke(context.Background())) })

	assert.Contains(t, output, "No recipes file")
}

func TestRecipesSmoke_When_RecipesFileLoads(t *testing.T) {
	withProjectState(t)
	RecipesFile = filepath.Join(t.TempDir(), "recipes.yaml")
	require.NoError(t, os.WriteFile(RecipesFile, []byte(`build:
  verbosity: quiet
recipes:
  - kind: lib
    id: Lib
    project_file: Lib.csproj
`), 0o600))

	output := capture(t, func() { require.NoError(t, RecipesSmoke(context.Background())) })

	assert.Contains(t, output, "Recipes: InfoOnly")
	assert.Contains(t, output, "InfoOnly complete")
}

func TestRecipesSmoke_When_RecipesFileInvalid(t *testing.T) {
	withProjectState(t)
	RecipesFile = filepath.Join(t.TempDir(), "recipes.yaml")
	require.NoError(t, os.WriteFile(RecipesFile, []byte("recipes:\n  - kind: lib\n"), 0o600))

	var err error
	capture(t, func() { err = RecipesSmoke(context.Background()) })

	require.Error(t, err)
}
