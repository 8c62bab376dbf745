package recipe

import (
	"path/filepath"
	"strings"

	"github.com/dkoosis/recipes/internal/dotnet"
	"github.com/dkoosis/recipes/pkg/build"
)

// Default output directories for applications.
const (
	DefaultPublishDirectory = "./publish"
	DefaultPackageDirectory = "./package"
)

// DotNetApp is an application published and zipped for every runtime and
// framework pair.
type DotNetApp struct {
	Recipe `yaml:",inline"`

	Frameworks []string `yaml:"frameworks" toml:"frameworks"`
	Runtimes   []string `yaml:"runtimes" toml:"runtimes"`

	PublishDirectory string `yaml:"publish_directory" toml:"publish_directory"`
	PackageDirectory string `yaml:"package_directory" toml:"package_directory"`
}

// NewDotNetApp returns an application recipe with defaults.
func NewDotNetApp() *DotNetApp {
	return &DotNetApp{
		Recipe:           NewRecipe(),
		PublishDirectory: DefaultPublishDirectory,
		PackageDirectory: DefaultPackageDirectory,
	}
}

// Kind implements Buildable.
func (a *DotNetApp) Kind() Kind { return KindApp }

// AddFrameworks appends target frameworks.
func (a *DotNetApp) AddFrameworks(frameworks ...string) {
	a.Frameworks = append(a.Frameworks, frameworks...)
}

// AddRuntimes appends runtime identifiers.
func (a *DotNetApp) AddRuntimes(runtimes ...string) {
	a.Runtimes = append(a.Runtimes, runtimes...)
}

// RuntimeFramework is one build target of an application.
type RuntimeFramework struct {
	Runtime   string
	Framework string
}

// RuntimeFrameworks returns every runtime and framework pair, runtimes outermost.
func (a *DotNetApp) RuntimeFrameworks() []RuntimeFramework {
	pairs := make([]RuntimeFramework, 0, len(a.Runtimes)*len(a.Frameworks))
	for _, rt := range a.Runtimes {
		for _, fw := range a.Frameworks {
			pairs = append(pairs, RuntimeFramework{Runtime: rt, Framework: fw})
		}
	}
	return pairs
}

// PublishOutput returns {publish}/{framework}/{runtime}.
func (a *DotNetApp) PublishOutput(p RuntimeFramework) string {
	return filepath.Join(a.PublishDirectory, p.Framework, p.Runtime)
}

// PackageFile returns the zip the package stage writes for p.
func (a *DotNetApp) PackageFile(p RuntimeFramework) string {
	name := strings.Join([]string{a.ID, a.Version.String(), p.Framework, p.Runtime}, "-") + ".zip"
	return filepath.Join(a.PackageDirectory, name)
}

// RestoreBuild pairs the restore and build of one target.
type RestoreBuild struct {
	Restore dotnet.RestoreSettings
	Build   dotnet.BuildSettings
}

// RestorePublish pairs the restore and publish of one target.
type RestorePublish struct {
	Restore dotnet.RestoreSettings
	Publish dotnet.PublishSettings
}

// RestoreBuildSettings returns one restore and build per runtime and framework pair.
func (a *DotNetApp) RestoreBuildSettings(cfg *build.Config) []RestoreBuild {
	pairs := a.RuntimeFrameworks()
	out := make([]RestoreBuild, len(pairs))
	for i, p := range pairs {
		out[i] = RestoreBuild{
			Restore: dotnet.RestoreSettings{Runtime: p.Runtime, Verbosity: cfg.Verbosity.DotNet()},
			Build: dotnet.BuildSettings{
				Configuration: cfg.Configuration,
				Framework:     p.Framework,
				Runtime:       p.Runtime,
				NoRestore:     true,
				Verbosity:     cfg.Verbosity.DotNet(),
			},
		}
	}
	return out
}

// RestorePublishSettings returns one restore and publish per runtime and
// framework pair, each into its own output directory.
func (a *DotNetApp) RestorePublishSettings(cfg *build.Config) []RestorePublish {
	pairs := a.RuntimeFrameworks()
	out := make([]RestorePublish, len(pairs))
	for i, p := range pairs {
		out[i] = RestorePublish{
			Restore: dotnet.RestoreSettings{Runtime: p.Runtime, Verbosity: cfg.Verbosity.DotNet()},
			Publish: dotnet.PublishSettings{
				Configuration:   cfg.Configuration,
				Framework:       p.Framework,
				Runtime:         p.Runtime,
				OutputDirectory: a.PublishOutput(p),
				NoRestore:       true,
				Verbosity:       cfg.Verbosity.DotNet(),
			},
		}
	}
	return out
}

// InfoRows implements Buildable.
func (a *DotNetApp) InfoRows() [][2]string {
	return [][2]string{
		{"Publish Directory", a.PublishDirectory},
		{"Package Directory", a.PackageDirectory},
		{"Runtimes", strings.Join(a.Runtimes, ",")},
		{"Frameworks", strings.Join(a.Frameworks, ",")},
	}
}
