package stages

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dkoosis/recipes/internal/dotnet"
	"github.com/dkoosis/recipes/internal/fsutil"
	"github.com/dkoosis/recipes/pkg/recipe"
)

// packageApp publishes every runtime and framework pair and zips each
// output into the package directory.
func (s *Stages) packageApp(app *recipe.DotNetApp) error {
	if app.Version == nil {
		return fmt.Errorf("%s: package: %w", app.ID, recipe.ErrVersionRequired)
	}
	target := app.Target()
	pairs := app.RuntimeFrameworks()
	for i, step := range app.RestorePublishSettings(s.cfg) {
		if err := dotnet.Restore(s.shell, target, step.Restore); err != nil {
			return err
		}
		if err := dotnet.Publish(s.shell, target, step.Publish); err != nil {
			return err
		}
		zip := app.PackageFile(pairs[i])
		if err := fsutil.ZipDir(app.PublishOutput(pairs[i]), zip); err != nil {
			return err
		}
		s.recipeLog(&app.Recipe).Info().Str("package", zip).Msg("packaged")
	}
	return nil
}

// pushApp uploads the zips to the release repository of the app.
func (s *Stages) pushApp(ctx context.Context, app *recipe.DotNetApp) error {
	if app.Version == nil {
		return fmt.Errorf("%s: push: %w", app.ID, recipe.ErrVersionRequired)
	}
	if !s.cfg.Local && s.cfg.SquirrelCentralRepository == "" {
		return fmt.Errorf("%s: %w", app.ID, ErrNoCentralRepository)
	}
	store, err := s.open(ctx, s.cfg.SquirrelRepository(app.ID))
	if err != nil {
		return err
	}
	log := s.recipeLog(&app.Recipe)
	for _, p := range app.RuntimeFrameworks() {
		zip := app.PackageFile(p)
		if err := store.Put(ctx, zip, filepath.Base(zip)); err != nil {
			return err
		}
		log.Info().Str("package", zip).Str("repository", store.Location()).Msg("pushed")
	}
	return nil
}
