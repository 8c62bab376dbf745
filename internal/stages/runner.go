package stages

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"

	"github.com/dkoosis/recipes/internal/host"
	"github.com/dkoosis/recipes/pkg/build"
	"github.com/dkoosis/recipes/pkg/check"
	"github.com/dkoosis/recipes/pkg/pipeline"
	"github.com/dkoosis/recipes/pkg/recipe"
)

// Build-level task names.
const (
	TaskInfo       = "Info"
	TaskCheck      = "Check"
	TaskInfoOnly   = "InfoOnly"
	TaskBuildAll   = "BuildAll"
	TaskTestAll    = "TestAll"
	TaskPackageAll = "PackageAll"
	TaskRunAll     = "RunAll"
	TaskStatus     = "Status"
)

// Targets lists the tasks a build can be asked to run.
var Targets = []string{TaskInfoOnly, TaskBuildAll, TaskTestAll, TaskPackageAll, TaskRunAll}

// ErrRecipesFailed is returned by Run when at least one recipe errored.
var ErrRecipesFailed = errors.New("one or more recipes failed")

// Runner registers every recipe's stages with a host and runs build targets.
type Runner struct {
	stages   *Stages
	registry *recipe.Registry
	host     *host.Host
	cfg      *build.Config
	out      io.Writer
	log      zerolog.Logger
}

// NewRunner builds the task graph for the recipes in registry.
func NewRunner(ctx context.Context, s *Stages, registry *recipe.Registry) (*Runner, error) {
	r := &Runner{
		stages:   s,
		registry: registry,
		host:     host.New(s.log),
		cfg:      s.cfg,
		out:      s.out,
		log:      s.log,
	}
	if err := r.register(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Host exposes the task graph, e.g. to observe task events.
func (r *Runner) Host() *host.Host { return r.host }

// Run runs target, then prints the status of every recipe. Recipe failures
// do not stop the run; they are reported through ErrRecipesFailed.
func (r *Runner) Run(target string) error {
	if target == "" {
		target = r.cfg.Target
	}
	err := r.host.Run(target)
	if target != TaskStatus && target != TaskInfoOnly {
		if serr := r.host.Run(TaskStatus); serr != nil && err == nil {
			err = serr
		}
	}
	if err != nil {
		return err
	}
	if _, _, errored := r.registry.Status(); len(errored) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrRecipesFailed, len(errored), r.registry.Len())
	}
	return nil
}

func (r *Runner) register(ctx context.Context) error {
	tasks := []host.Task{
		{
			Name:        TaskInfo,
			Description: "Print the build settings",
			Does: func() error {
				r.cfg.WriteInfo(r.out)
				return nil
			},
		},
		{
			Name:        TaskCheck,
			Description: "Check the working tree before building",
			DependsOn:   []string{TaskInfo},
			Does: func() error {
				_, err := check.Run(r.stages.git, r.cfg.CheckSettings(), r.log)
				return err
			},
		},
		{
			Name:        TaskStatus,
			Description: "Print the outcome of every recipe",
			Does: func() error {
				r.WriteStatus(r.out)
				return nil
			},
		},
	}
	for _, t := range tasks {
		if err := r.host.Add(t); err != nil {
			return err
		}
	}

	targets := map[string][]string{}
	for _, b := range r.registry.All() {
		if err := r.registerRecipe(ctx, b); err != nil {
			return err
		}
		rec := b.Common()
		toggles := rec.Toggles(r.cfg)
		targets[TaskInfoOnly] = append(targets[TaskInfoOnly], rec.TaskName(pipeline.Info))
		for target, stage := range map[string]pipeline.Stage{
			TaskBuildAll:   pipeline.PostBuild,
			TaskTestAll:    pipeline.Test,
			TaskPackageAll: pipeline.Package,
			TaskRunAll:     pipeline.CleanUp,
		} {
			last, _ := pipeline.Last(stage, toggles)
			targets[target] = append(targets[target], rec.TaskName(last))
		}
	}

	descriptions := map[string]string{
		TaskInfoOnly:   "Print the build and recipe settings",
		TaskBuildAll:   "Build every recipe",
		TaskTestAll:    "Build and test every recipe",
		TaskPackageAll: "Build, test and package every recipe",
		TaskRunAll:     "Run every stage of every recipe",
	}
	for _, name := range Targets {
		deps := targets[name]
		if name == TaskInfoOnly {
			deps = append([]string{TaskInfo}, deps...)
		}
		if err := r.host.Add(host.Task{Name: name, Description: descriptions[name], DependsOn: deps}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) registerRecipe(ctx context.Context, b recipe.Buildable) error {
	rec := b.Common()
	toggles := rec.Toggles(r.cfg)
	for _, stage := range pipeline.Stages(toggles) {
		name := rec.TaskName(stage)
		var deps []string
		if prev, ok := pipeline.Previous(stage, toggles); ok {
			deps = append(deps, rec.TaskName(prev))
		} else {
			deps = append(deps, TaskInfo)
		}
		if stage == pipeline.Check {
			deps = append(deps, TaskCheck)
		}

		task := host.Task{
			Name:      name,
			DependsOn: deps,
			Criteria:  criteria(rec, stage),
			Does:      r.stages.Action(ctx, b, stage),
			OnError: func(err error) error {
				rec.SetError(name, err)
				r.log.Error().Err(err).Str("recipe", rec.ID).Str("task", name).Msg("task failed")
				return nil
			},
		}
		if err := r.host.Add(task); err != nil {
			return fmt.Errorf("register %s: %w", rec.ID, err)
		}
	}
	return nil
}

// criteria gates a stage on the recipe state. Clean-up always runs so
// modified files are restored after a failure.
func criteria(rec *recipe.Recipe, stage pipeline.Stage) func() bool {
	switch stage {
	case pipeline.CleanUp:
		return nil
	case pipeline.Info, pipeline.Setup, pipeline.Check:
		return func() bool { return !rec.Errored() }
	}
	return func() bool { return !rec.Errored() && !rec.SkipRemainingTasks }
}

// WriteStatus renders the successful, skipped and errored recipes to w.
func (r *Runner) WriteStatus(w io.Writer) {
	successful, skipped, errored := r.registry.Status()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Build Status")
	t.AppendHeader(table.Row{"Recipe", "Status", "Task", "Error"})
	for _, b := range successful {
		t.AppendRow(table.Row{b.Common().String(), "completed successfully", "", ""})
	}
	for _, b := range skipped {
		t.AppendRow(table.Row{b.Common().String(), "skipped", "", ""})
	}
	for _, b := range errored {
		rec := b.Common()
		t.AppendRow(table.Row{rec.String(), "errored", rec.ErroredTask(), errMessage(rec.Err())})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
