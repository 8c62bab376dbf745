package stages

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dkoosis/recipes/internal/dotnet"
	"github.com/dkoosis/recipes/internal/fsutil"
	"github.com/dkoosis/recipes/internal/nuget"
	"github.com/dkoosis/recipes/pkg/recipe"
)

// packageLib publishes every framework, then packs the project's assemblies
// and symbols into a NuGet package.
func (s *Stages) packageLib(lib *recipe.DotNetLib) error {
	if lib.Version == nil {
		return fmt.Errorf("%s: package: %w", lib.ID, recipe.ErrVersionRequired)
	}
	target := lib.ProjectFile
	if target == "" {
		target = lib.Target()
	}
	for _, step := range lib.RestorePublishSettings(s.cfg) {
		s.recipeLog(&lib.Recipe).Info().Msgf("Publishing: %s", step.Publish.Framework)
		if err := dotnet.Restore(s.shell, target, step.Restore); err != nil {
			return err
		}
		if err := dotnet.Publish(s.shell, target, step.Publish); err != nil {
			return err
		}
	}

	content, err := publishedContent(lib)
	if err != nil {
		return err
	}
	log := s.recipeLog(&lib.Recipe)
	for _, c := range content {
		log.Debug().Str("source", c.Source).Str("target", c.Target).Msg("package content")
	}

	pkg, err := nuget.Pack(s.shell, lib.NuGetPackSettings(s.cfg, s.now(), content...))
	if err != nil {
		return err
	}
	log.Info().Str("package", pkg).Msg("packaged")
	return nil
}

// publishedContent maps the published assemblies and symbols of the
// project, outside runtimes/, to lib/{relative path}.
func publishedContent(lib *recipe.DotNetLib) ([]nuget.Content, error) {
	name := lib.Project
	if name == "" {
		name = lib.ID
	}
	var content []nuget.Content
	for _, ext := range []string{".dll", ".pdb"} {
		files, err := fsutil.Glob(lib.PublishDirectory, "**/"+name+ext)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			rel, err := filepath.Rel(lib.PublishDirectory, f)
			if err != nil {
				return nil, err
			}
			rel = filepath.ToSlash(rel)
			if strings.HasPrefix(rel, "runtimes/") || strings.Contains(rel, "/runtimes/") {
				continue
			}
			content = append(content, nuget.Content{Source: rel, Target: "lib/" + rel})
		}
	}
	return content, nil
}

// pushLib pushes the package to the configured feed. Local builds first
// delete the same version from the local feed so it can be replaced.
func (s *Stages) pushLib(lib *recipe.DotNetLib) error {
	if lib.Version == nil {
		return fmt.Errorf("%s: push: %w", lib.ID, recipe.ErrVersionRequired)
	}
	if s.cfg.Local {
		err := dotnet.Delete(s.shell, lib.ID, lib.Version.String(), dotnet.DeleteSettings{
			Source:         s.cfg.NuGetLocalSource,
			NonInteractive: true,
		})
		if err != nil {
			s.recipeLog(&lib.Recipe).Warn().Err(err).Msg("could not delete package from local feed")
		}
	}
	return nuget.Push(s.shell, lib.PackageFile(), lib.NuGetPushSettings(s.cfg))
}
