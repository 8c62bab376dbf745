package magetasks

import (
	"context"
	"errors"
	"os"

	"github.com/dkoosis/recipes/internal/stages"
	"github.com/dkoosis/recipes/pkg/build"
	"github.com/dkoosis/recipes/pkg/recipe"
)

// ErrNoRecipeFile is returned when no recipes file is configured or found.
var ErrNoRecipeFile = errors.New("no recipes file found (recipes.yaml, recipes.yml or recipes.toml)")

// LoadRecipes reads the build configuration from the environment and the
// recipes file, then loads the recipes the file lists. It returns the
// positional arguments left after flag parsing.
func LoadRecipes(args []string) (*build.Config, *recipe.Registry, []string, error) {
	cfg, rest, err := build.Load(args, os.LookupEnv)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.ConfigFile == "" {
		return nil, nil, nil, ErrNoRecipeFile
	}
	reg := recipe.NewRegistry()
	if err := reg.LoadFile(cfg.ConfigFile); err != nil {
		return nil, nil, nil, err
	}
	return cfg, reg, rest, nil
}

// RunRecipes runs target, or the configured target when empty, over
// RecipesFile, or the recipes file in the working directory when unset.
func RunRecipes(ctx context.Context, target string) error {
	var args []string
	if RecipesFile != "" {
		args = []string{"--config", RecipesFile}
	}
	cfg, reg, _, err := LoadRecipes(args)
	if err != nil {
		return err
	}
	if target != "" {
		cfg.Target = target
	}

	r, err := stages.NewRunner(ctx, stages.New(stages.DefaultOptions(cfg, os.Stdout)), reg)
	if err != nil {
		return err
	}
	r.Host().OnTask = PrintTaskEvent

	PrintH1Header("Recipes: " + cfg.Target)
	if err := r.Run(cfg.Target); err != nil {
		PrintError(err.Error())
		return err
	}
	PrintSuccess(cfg.Target + " complete")
	return nil
}
