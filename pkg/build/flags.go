package build

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// EnvPrefix prefixes the environment variable of every flag.
const EnvPrefix = "RECIPES_"

// envAliases lists extra variables honoured for a flag after its own.
var envAliases = map[string][]string{
	"nuget-api-key": {"NUGET_API_KEY"},
}

// BindFlags registers the build flags on fs, storing into c. The current
// values of c become the flag defaults.
func BindFlags(fs *pflag.FlagSet, c *Config) {
	fs.StringVarP(&c.Target, "target", "t", c.Target, "Task to run")
	fs.StringVarP(&c.Configuration, "configuration", "c", c.Configuration, "Build configuration")
	fs.VarP(&c.Verbosity, "verbosity", "v", "Output verbosity (quiet, minimal, normal, verbose, diagnostic)")
	fs.BoolVar(&c.Local, "local", c.Local, "Local build: no commits, pushes go to local repositories")
	fs.StringVar(&c.Company, "company", c.Company, "Company name written to assembly info")

	fs.BoolVar(&c.CheckStagedChanges, "check-staged", c.CheckStagedChanges, "Fail when git has staged changes")
	fs.BoolVar(&c.CheckUncommittedChanges, "check-uncommitted", c.CheckUncommittedChanges, "Fail when git has uncommitted changes")
	fs.BoolVar(&c.CheckUntrackedFiles, "check-untracked", c.CheckUntrackedFiles, "Fail when git has untracked files")

	fs.StringVar(&c.GitRoot, "git-root", c.GitRoot, "Git repository root (default: discovered)")
	fs.StringVar(&c.GitUserName, "git-user", c.GitUserName, "Git user name for build commits")
	fs.StringVar(&c.GitEmail, "git-email", c.GitEmail, "Git email for build commits")
	fs.StringVar(&c.GitRemote, "git-remote", c.GitRemote, "Git remote to push to")
	fs.BoolVar(&c.EnableCommits, "enable-commits", c.EnableCommits, "Commit build changes on non-local builds")
	fs.BoolVar(&c.EnableTags, "enable-tags", c.EnableTags, "Tag build commits with the version")

	fs.StringVar(&c.NuGetSource, "nuget-source", c.NuGetSource, "NuGet feed to push to")
	fs.StringVar(&c.NuGetLocalSource, "nuget-local-source", c.NuGetLocalSource, "Local NuGet feed for local builds")
	fs.StringVar(&c.NuGetAPIKey, "nuget-api-key", c.NuGetAPIKey, "NuGet API key")

	fs.StringVar(&c.SquirrelCentralRepository, "squirrel-repo", c.SquirrelCentralRepository, "Central release repository (directory or s3://bucket/prefix)")
	fs.StringVar(&c.SquirrelLocalRepository, "squirrel-local-repo", c.SquirrelLocalRepository, "Local release repository")

	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Config file (default: recipes.yaml, recipes.yml or recipes.toml)")
}

// EnvName returns the environment variable for a flag name.
func EnvName(flag string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// Load resolves the configuration from args, the environment (through
// lookup, os.LookupEnv when nil) and the config file. It returns the
// configuration and the positional arguments.
func Load(args []string, lookup func(string) (string, bool)) (*Config, []string, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	// First pass only finds the config file.
	probe := Default()
	probeFlags := newFlagSet(&probe)
	if err := probeFlags.Parse(args); err != nil {
		return nil, nil, err
	}
	path := probe.ConfigFile
	if !probeFlags.Changed("config") {
		if v, ok := lookup(EnvName("config")); ok && v != "" {
			path = v
		} else {
			path = FindFile(".")
		}
	}

	cfg := Default()
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return nil, nil, err
		}
	}
	cfg.ConfigFile = path

	fs := newFlagSet(&cfg)
	if err := applyEnv(fs, lookup); err != nil {
		return nil, nil, err
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &cfg, fs.Args(), nil
}

func newFlagSet(c *Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("recipes", pflag.ContinueOnError)
	fs.SortFlags = false
	BindFlags(fs, c)
	return fs
}

func applyEnv(fs *pflag.FlagSet, lookup func(string) (string, bool)) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Name == "config" {
			return
		}
		for _, name := range append([]string{EnvName(f.Name)}, envAliases[f.Name]...) {
			v, ok := lookup(name)
			if !ok || v == "" {
				continue
			}
			if setErr := f.Value.Set(v); setErr != nil {
				err = fmt.Errorf("%s: %w", name, setErr)
			}
			return
		}
	})
	return err
}
