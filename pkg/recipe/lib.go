package recipe

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/dkoosis/recipes/internal/dotnet"
	"github.com/dkoosis/recipes/internal/nuget"
	"github.com/dkoosis/recipes/pkg/build"
)

// DefaultNuGetDirectory is where libraries are packed.
const DefaultNuGetDirectory = "./nuget"

// DotNetLib is a library published per framework and packed for NuGet.
type DotNetLib struct {
	Recipe `yaml:",inline"`

	Frameworks []string `yaml:"frameworks" toml:"frameworks"`

	PublishDirectory string `yaml:"publish_directory" toml:"publish_directory"`
	NuGetDirectory   string `yaml:"nuget_directory" toml:"nuget_directory"`

	Authors      []string           `yaml:"authors" toml:"authors"`
	ProjectURL   string             `yaml:"project_url" toml:"project_url"`
	IconURL      string             `yaml:"icon_url" toml:"icon_url"`
	Tags         []string           `yaml:"tags" toml:"tags"`
	Symbols      bool               `yaml:"symbols" toml:"symbols"`
	NuGetFiles   []nuget.Content    `yaml:"nuget_files" toml:"nuget_files"`
	Dependencies []nuget.Dependency `yaml:"dependencies" toml:"dependencies"`
}

// NewDotNetLib returns a library recipe with defaults.
func NewDotNetLib() *DotNetLib {
	return &DotNetLib{
		Recipe:           NewRecipe(),
		PublishDirectory: DefaultPublishDirectory,
		NuGetDirectory:   DefaultNuGetDirectory,
	}
}

// Kind implements Buildable.
func (l *DotNetLib) Kind() Kind { return KindLib }

// AddFrameworks appends target frameworks.
func (l *DotNetLib) AddFrameworks(frameworks ...string) {
	l.Frameworks = append(l.Frameworks, frameworks...)
}

// AddAuthors appends package authors.
func (l *DotNetLib) AddAuthors(authors ...string) { l.Authors = append(l.Authors, authors...) }

// AddTags appends package tags.
func (l *DotNetLib) AddTags(tags ...string) { l.Tags = append(l.Tags, tags...) }

// AddNuGetFiles appends explicit package content.
func (l *DotNetLib) AddNuGetFiles(files ...nuget.Content) {
	l.NuGetFiles = append(l.NuGetFiles, files...)
}

// AddDependencies appends package dependencies.
func (l *DotNetLib) AddDependencies(deps ...nuget.Dependency) {
	l.Dependencies = append(l.Dependencies, deps...)
}

// PublishOutput returns {publish}/{framework}.
func (l *DotNetLib) PublishOutput(framework string) string {
	return filepath.Join(l.PublishDirectory, framework)
}

// RestoreBuildSettings returns one restore and build per framework.
func (l *DotNetLib) RestoreBuildSettings(cfg *build.Config) []RestoreBuild {
	out := make([]RestoreBuild, len(l.Frameworks))
	for i, fw := range l.Frameworks {
		out[i] = RestoreBuild{
			Restore: dotnet.RestoreSettings{Verbosity: cfg.Verbosity.DotNet()},
			Build: dotnet.BuildSettings{
				Configuration: cfg.Configuration,
				Framework:     fw,
				NoRestore:     true,
				Verbosity:     cfg.Verbosity.DotNet(),
			},
		}
	}
	return out
}

// RestorePublishSettings returns one restore and publish per framework.
func (l *DotNetLib) RestorePublishSettings(cfg *build.Config) []RestorePublish {
	out := make([]RestorePublish, len(l.Frameworks))
	for i, fw := range l.Frameworks {
		out[i] = RestorePublish{
			Restore: dotnet.RestoreSettings{Verbosity: cfg.Verbosity.DotNet()},
			Publish: dotnet.PublishSettings{
				Configuration:   cfg.Configuration,
				Framework:       fw,
				OutputDirectory: l.PublishOutput(fw),
				NoRestore:       true,
				Verbosity:       cfg.Verbosity.DotNet(),
			},
		}
	}
	return out
}

// NuGetPackSettings describes the package built from the publish directory.
// extra is appended to the configured package content.
func (l *DotNetLib) NuGetPackSettings(cfg *build.Config, now time.Time, extra ...nuget.Content) nuget.PackSettings {
	var owners []string
	if cfg.Company != "" {
		owners = []string{cfg.Company}
	}
	v := ""
	if l.Version != nil {
		v = l.Version.String()
	}
	files := make([]nuget.Content, 0, len(l.NuGetFiles)+len(extra))
	files = append(append(files, l.NuGetFiles...), extra...)

	return nuget.PackSettings{
		ID:              l.ID,
		Title:           l.Name,
		Version:         v,
		Authors:         l.Authors,
		Owners:          owners,
		Description:     l.Description,
		Summary:         l.Description,
		ReleaseNotes:    l.ReleaseNotes,
		ProjectURL:      l.ProjectURL,
		IconURL:         l.IconURL,
		Copyright:       Copyright(cfg, now),
		Tags:            l.Tags,
		Symbols:         l.Symbols,
		Files:           files,
		Dependencies:    l.Dependencies,
		BasePath:        l.PublishDirectory,
		OutputDirectory: l.NuGetDirectory,
		Properties:      map[string]string{"Configuration": cfg.Configuration},
		Verbosity:       cfg.Verbosity.NuGet(),
	}
}

// NuGetPushSettings targets the local feed on local builds, otherwise the
// remote feed with the API key.
func (l *DotNetLib) NuGetPushSettings(cfg *build.Config) nuget.PushSettings {
	if cfg.Local {
		return nuget.PushSettings{Source: cfg.NuGetLocalSource}
	}
	return nuget.PushSettings{
		Source:    cfg.NuGetSource,
		APIKey:    cfg.NuGetAPIKey,
		Verbosity: cfg.Verbosity.NuGet(),
	}
}

// PackageFile returns {nuget}/{id}.{version}.nupkg.
func (l *DotNetLib) PackageFile() string {
	return nuget.PackagePath(l.NuGetDirectory, l.ID, l.Version.String())
}

// InfoRows implements Buildable.
func (l *DotNetLib) InfoRows() [][2]string {
	return [][2]string{
		{"Publish Directory", l.PublishDirectory},
		{"NuGet Directory", l.NuGetDirectory},
		{"Frameworks", strings.Join(l.Frameworks, ",")},
		{"Authors", strings.Join(l.Authors, ",")},
		{"Tags", strings.Join(l.Tags, ",")},
	}
}
