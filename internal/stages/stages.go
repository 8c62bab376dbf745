// Package stages implements the pipeline stages of each recipe kind and
// wires them, with the build-level tasks, into a task host.
package stages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/dkoosis/recipes/internal/artifact"
	"github.com/dkoosis/recipes/internal/assemblyinfo"
	"github.com/dkoosis/recipes/internal/dotnet"
	"github.com/dkoosis/recipes/internal/fsutil"
	"github.com/dkoosis/recipes/internal/git"
	"github.com/dkoosis/recipes/internal/proc"
	"github.com/dkoosis/recipes/pkg/build"
	"github.com/dkoosis/recipes/pkg/check"
	"github.com/dkoosis/recipes/pkg/commit"
	"github.com/dkoosis/recipes/pkg/pipeline"
	"github.com/dkoosis/recipes/pkg/recipe"
	"github.com/dkoosis/recipes/pkg/releasenotes"
	"github.com/dkoosis/recipes/pkg/version"
)

var (
	// ErrUnsupportedKind is returned for a recipe kind with no stage implementation.
	ErrUnsupportedKind = errors.New("unsupported recipe kind")
	// ErrNoAssemblyInfoFile is returned by the assembly-info stage when the recipe names no file.
	ErrNoAssemblyInfoFile = errors.New("assembly info file is not set")
	// ErrNoCentralRepository is returned by a non-local app push without a central repository.
	ErrNoCentralRepository = errors.New("squirrel central repository is not set")
)

// Git is the repository client the stages query and commit through.
type Git interface {
	check.Repository
	commit.Git
}

// StoreOpener opens the artifact store at location.
type StoreOpener func(ctx context.Context, location string) (artifact.Store, error)

// Options configure New. Config, Shell and Git are required.
type Options struct {
	Config    *build.Config
	Shell     proc.Runner
	Git       Git
	OpenStore StoreOpener
	Out       io.Writer
	Log       zerolog.Logger
	Now       func() time.Time
}

// DefaultOptions wires the process shell, git client and logger for cfg.
// Commands run behind a spinner on terminals below normal verbosity.
func DefaultOptions(cfg *build.Config, out *os.File) Options {
	log := build.NewLogger(os.Stderr, cfg.Verbosity)
	spin := term.IsTerminal(int(out.Fd())) && cfg.Verbosity < build.Normal
	shell := proc.NewShell(log, spin)
	return Options{
		Config: cfg,
		Shell:  shell,
		Git:    git.New(shell),
		Out:    out,
		Log:    log,
	}
}

// Stages runs recipe stages against one build configuration.
type Stages struct {
	cfg   *build.Config
	shell proc.Runner
	git   Git
	open  StoreOpener
	out   io.Writer
	log   zerolog.Logger
	now   func() time.Time
}

// New returns Stages with defaults for the optional collaborators.
func New(o Options) *Stages {
	s := &Stages{
		cfg:   o.Config,
		shell: o.Shell,
		git:   o.Git,
		open:  o.OpenStore,
		out:   o.Out,
		log:   o.Log,
		now:   o.Now,
	}
	if s.open == nil {
		s.open = artifact.Open
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Action returns the work of stage for b.
func (s *Stages) Action(ctx context.Context, b recipe.Buildable, stage pipeline.Stage) func() error {
	return func() error {
		r := b.Common()
		switch stage {
		case pipeline.Info:
			recipe.WriteInfo(s.out, b)
			return nil
		case pipeline.Setup:
			return s.Setup(b)
		case pipeline.Check:
			return s.Check(r)
		case pipeline.Version:
			return s.Version(r)
		case pipeline.ReleaseNotes:
			return s.ReleaseNotes(r)
		case pipeline.AssemblyInfo:
			return s.AssemblyInfo(r)
		case pipeline.Clean:
			return s.Clean(b)
		case pipeline.PreBuild:
			return s.hook(r, r.PreBuild, r.PreBuildCommand)
		case pipeline.Build:
			return s.Build(b)
		case pipeline.PostBuild:
			return s.hook(r, r.PostBuild, r.PostBuildCommand)
		case pipeline.Test:
			return s.Test(r)
		case pipeline.Package:
			return s.Package(b)
		case pipeline.Commit:
			return commit.Commit(s.git, r.CommitSettings(s.cfg))
		case pipeline.Push:
			return s.Push(ctx, b)
		case pipeline.CleanUp:
			return commit.Revert(s.git, r.RevertSettings(s.cfg))
		}
		return fmt.Errorf("%s: no action for stage %s", r.ID, stage)
	}
}

func (s *Stages) recipeLog(r *recipe.Recipe) *zerolog.Logger {
	log := s.log.With().Str("recipe", r.ID).Logger()
	return &log
}

// Setup creates the output directories.
func (s *Stages) Setup(b recipe.Buildable) error {
	dirs, err := outputDirs(b)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		if err := fsutil.EnsureDir(d); err != nil {
			return err
		}
	}
	return nil
}

// Check runs the release-notes checks and marks the recipe to skip the
// remaining stages when release notes are required but nothing new was
// written. Unlike the build-level check, missing new release notes are not
// a failure here: the recipe is reported as skipped.
func (s *Stages) Check(r *recipe.Recipe) error {
	_, err := check.Run(s.git, r.CheckSettings(s.cfg), *s.recipeLog(r))
	var cerr *check.Error
	if err != nil && !errors.As(err, &cerr) {
		return err
	}
	if cerr != nil {
		var failures []check.Result
		for _, f := range cerr.Failures {
			if f.Source != check.SourceNewReleaseNotes {
				failures = append(failures, f)
			}
		}
		if len(failures) > 0 {
			return &check.Error{Failures: failures}
		}
	}
	if !r.PrepareReleaseNotes {
		return nil
	}
	updated, err := releasenotes.Updated(r.ReleaseNotesSettings())
	if err != nil {
		return err
	}
	r.SkipRemainingTasks = !updated
	if r.SkipRemainingTasks {
		s.recipeLog(r).Warn().Msg("no new release notes, skipping remaining tasks")
	}
	return nil
}

// Version reads the version from the v-next release-notes heading unless
// one was configured.
func (s *Stages) Version(r *recipe.Recipe) error {
	log := s.recipeLog(r)
	if r.Version == nil || r.PrepareReleaseNotes {
		v, err := version.FromFile(r.ReleaseNotesVNextFile, *log)
		if err != nil {
			return err
		}
		r.Version = &v
	}
	log.Info().Msgf("Building version: %s", r.Version)
	return nil
}

// ReleaseNotes moves the v-next notes into the release-notes file and keeps
// them for the package.
func (s *Stages) ReleaseNotes(r *recipe.Recipe) error {
	notes, err := releasenotes.Update(r.ReleaseNotesSettings())
	if err != nil {
		return err
	}
	r.ReleaseNotes = append(r.ReleaseNotes, notes...)
	return nil
}

// AssemblyInfo writes the assembly-info file.
func (s *Stages) AssemblyInfo(r *recipe.Recipe) error {
	if r.AssemblyInfoFile == "" {
		return fmt.Errorf("%s: %w", r.ID, ErrNoAssemblyInfoFile)
	}
	settings, err := r.AssemblyInfoSettings(s.cfg, s.now())
	if err != nil {
		return err
	}
	return assemblyinfo.Create(r.AssemblyInfoFile, settings)
}

// Clean empties the configuration's bin and obj directories and the
// recipe's output directories.
func (s *Stages) Clean(b recipe.Buildable) error {
	r := b.Common()
	for _, pattern := range []string{"**/bin/" + s.cfg.Configuration, "**/obj/" + s.cfg.Configuration} {
		if err := fsutil.CleanDirs(r.SolutionDirectory, pattern); err != nil {
			return err
		}
	}
	dirs, err := outputDirs(b)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		if err := fsutil.CleanDir(d); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stages) hook(r *recipe.Recipe, fn recipe.Hook, command []string) error {
	if fn != nil {
		return fn(s.cfg)
	}
	if len(command) == 0 {
		s.recipeLog(r).Debug().Msg("no hook configured")
		return nil
	}
	return s.shell.Run(command[0], command[1:]...)
}

// Build restores and builds every target of the recipe.
func (s *Stages) Build(b recipe.Buildable) error {
	var steps []recipe.RestoreBuild
	switch b := b.(type) {
	case *recipe.DotNetApp:
		steps = b.RestoreBuildSettings(s.cfg)
	case *recipe.DotNetLib:
		steps = b.RestoreBuildSettings(s.cfg)
	default:
		return unsupported(b)
	}

	target := b.Common().Target()
	for _, step := range steps {
		if err := dotnet.Restore(s.shell, target, step.Restore); err != nil {
			return err
		}
		if err := dotnet.Build(s.shell, target, step.Build); err != nil {
			return err
		}
	}
	return nil
}

// Test runs the unit-test assemblies built for the configuration.
func (s *Stages) Test(r *recipe.Recipe) error {
	assemblies, err := fsutil.Glob(r.SolutionDirectory, "**/bin/"+s.cfg.Configuration+"/*.UnitTests.dll")
	if err != nil {
		return err
	}
	if len(assemblies) == 0 {
		s.recipeLog(r).Info().Msg("no unit test assemblies found")
		return nil
	}
	return dotnet.Test(s.shell, assemblies, dotnet.TestSettings{})
}

// Package publishes the recipe and packs the output.
func (s *Stages) Package(b recipe.Buildable) error {
	switch b := b.(type) {
	case *recipe.DotNetApp:
		return s.packageApp(b)
	case *recipe.DotNetLib:
		return s.packageLib(b)
	}
	return unsupported(b)
}

// Push publishes the packed output of the recipe.
func (s *Stages) Push(ctx context.Context, b recipe.Buildable) error {
	switch b := b.(type) {
	case *recipe.DotNetApp:
		return s.pushApp(ctx, b)
	case *recipe.DotNetLib:
		return s.pushLib(b)
	}
	return unsupported(b)
}

func outputDirs(b recipe.Buildable) ([]string, error) {
	switch b := b.(type) {
	case *recipe.DotNetApp:
		return []string{b.PublishDirectory, b.PackageDirectory}, nil
	case *recipe.DotNetLib:
		return []string{b.PublishDirectory, b.NuGetDirectory}, nil
	}
	return nil, unsupported(b)
}

func unsupported(b recipe.Buildable) error {
	return fmt.Errorf("%s: %w %q", b.Common().ID, ErrUnsupportedKind, b.Kind())
}
