// recipes runs the .NET build recipes listed in a recipes file.
//
// Usage:
//
//	recipes [run] [TARGET] [flags]      run a target (default RunAll)
//	recipes bump [--method M] [VERSION] bump VERSION or the v-next version
//	recipes notes [flags]               create missing release-notes files
//	recipes tools install|clean [flags] manage tool packages
//	recipes version                     print build metadata
//
// Build flags may also be set through RECIPES_<FLAG> environment
// variables or the recipes file (recipes.yaml, recipes.yml, recipes.toml).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dkoosis/recipes/internal/magetasks"
	"github.com/dkoosis/recipes/internal/stages"
	"github.com/dkoosis/recipes/internal/version"
	"github.com/dkoosis/recipes/pkg/build"
	"github.com/dkoosis/recipes/pkg/releasenotes"
	"github.com/dkoosis/recipes/pkg/toolpkg"
	semver "github.com/dkoosis/recipes/pkg/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches to a subcommand and returns the exit code: 0 on success,
// 1 when the work failed and 2 on usage or configuration errors.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return runRecipes(ctx, args, stdout, stderr)
	}
	switch args[0] {
	case "run":
		return runRecipes(ctx, args[1:], stdout, stderr)
	case "bump":
		return runBump(args[1:], stdout, stderr)
	case "notes":
		return runNotes(args[1:], stdout, stderr)
	case "tools":
		return runTools(args[1:], stdout, stderr)
	case "version":
		fmt.Fprint(stdout, version.Summary())
		return 0
	case "help":
		usage(stdout)
		return 0
	}
	// A bare target name: recipes BuildAll --local
	return runRecipes(ctx, args, stdout, stderr)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: recipes [run] [TARGET] [flags]")
	fmt.Fprintln(w, "       recipes bump [--method major|minor|patch] [VERSION]")
	fmt.Fprintln(w, "       recipes notes [--file F] [--vnext F]")
	fmt.Fprintln(w, "       recipes tools install|clean [flags]")
	fmt.Fprintln(w, "       recipes version")
	fmt.Fprintf(w, "Targets: %s\n", strings.Join(stages.Targets, ", "))
}

func runRecipes(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, reg, rest, err := magetasks.LoadRecipes(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			usage(stdout)
			return 0
		}
		fmt.Fprintf(stderr, "recipes: %v\n", err)
		return 2
	}
	// The target may come before or after the flags.
	switch len(rest) {
	case 0:
	case 1:
		cfg.Target = rest[0]
	default:
		fmt.Fprintf(stderr, "recipes: expected one target, got %s\n", strings.Join(rest, " "))
		return 2
	}

	opts := stages.DefaultOptions(cfg, os.Stdout)
	opts.Out = stdout
	runner, err := stages.NewRunner(ctx, stages.New(opts), reg)
	if err != nil {
		fmt.Fprintf(stderr, "recipes: %v\n", err)
		return 2
	}
	if err := runner.Run(cfg.Target); err != nil {
		fmt.Fprintf(stderr, "recipes: %v\n", err)
		return 1
	}
	return 0
}

func runBump(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("bump", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	method := fs.StringP("method", "m", "patch", "Part to bump: major, minor or patch")
	file := fs.StringP("file", "f", releasenotes.DefaultVNextFile, "Release notes read when no version is given")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	m, err := semver.ParseBumpMethod(*method)
	if err != nil {
		fmt.Fprintf(stderr, "recipes: %v\n", err)
		return 2
	}

	var v semver.Version
	if fs.NArg() > 0 {
		v, err = semver.Parse(fs.Arg(0))
	} else {
		v, err = semver.FromFile(*file, build.NewLogger(stderr, build.Minimal))
	}
	if err != nil {
		fmt.Fprintf(stderr, "recipes: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, v.Bump(m))
	return 0
}

func runNotes(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("notes", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", releasenotes.DefaultFile, "Release notes file")
	vnext := fs.String("vnext", releasenotes.DefaultVNextFile, "V-next release notes file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := releasenotes.EnsureExist(*file, *vnext); err != nil {
		fmt.Fprintf(stderr, "recipes: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Release notes ready: %s, %s\n", *file, *vnext)
	return 0
}

func runTools(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "Usage: recipes tools install|clean [flags]")
		return 2
	}
	action := args[0]
	if action != "install" && action != "clean" {
		fmt.Fprintf(stderr, "recipes: unknown tools command %q\n", action)
		return 2
	}

	var s toolpkg.Settings
	fs := pflag.NewFlagSet("tools "+action, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&s.ID, "id", "", "Package id")
	fs.StringVar(&s.Version, "version", "", "Package version")
	fs.StringVar(&s.NuGetDirectory, "nuget-dir", "", "Directory holding the .nupkg")
	fs.StringVar(&s.ToolsDirectory, "tools-dir", "tools", "Tools directory")
	fs.BoolVar(&s.AsAddin, "addin", false, "Install under the addins directory")
	fs.BoolVar(&s.AsTool, "tool", false, "Install as a tool")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	if action == "clean" {
		if err := toolpkg.Clean(s); err != nil {
			fmt.Fprintf(stderr, "recipes: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Removed %s\n", s.Name())
		return 0
	}
	if err := toolpkg.Install(s); err != nil {
		fmt.Fprintf(stderr, "recipes: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Installed %s\n", s.Name())
	return 0
}
