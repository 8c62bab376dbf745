package magetasks

import (
	"context"
	"fmt"

	"github.com/dkoosis/recipes/internal/stages"
)

// QualityCheck lints, tests and builds the repository, then checks that its
// recipes file loads.
func QualityCheck() error {
	PrintH2Header("Quality Checks")

	if err := LintAll(); err != nil {
		PrintWarning("Linting issues found")
	}
	if err := TestAll(); err != nil {
		return fmt.Errorf("tests failed: %w", err)
	}
	if err := BuildAll(); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	if err := RecipesSmoke(context.Background()); err != nil {
		return fmt.Errorf("recipes check failed: %w", err)
	}

	PrintSuccess("Quality checks complete")
	return nil
}

// RecipesSmoke runs the InfoOnly target over RecipesFile. InfoOnly only
// renders settings, so no external tool runs. Without a recipes file it
// does nothing.
func RecipesSmoke(ctx context.Context) error {
	if RecipesFile == "" {
		PrintInfo("No recipes file, skipping recipes check")
		return nil
	}
	return RunRecipes(ctx, stages.TaskInfoOnly)
}
