// Package dotnet builds and runs dotnet CLI invocations.
package dotnet

import (
	"fmt"
	"sort"
)

// Runner runs an external command. It is satisfied by *proc.Shell.
type Runner interface {
	Run(cmd string, args ...string) error
}

// Command is the dotnet executable.
const Command = "dotnet"

// RestoreSettings configures dotnet restore.
type RestoreSettings struct {
	Runtime    string
	Verbosity  string
	Properties map[string]string
}

// BuildSettings configures dotnet build.
type BuildSettings struct {
	Configuration string
	Framework     string
	Runtime       string
	NoRestore     bool
	Verbosity     string
	Properties    map[string]string
}

// PublishSettings configures dotnet publish.
type PublishSettings struct {
	Configuration   string
	Framework       string
	Runtime         string
	OutputDirectory string
	NoRestore       bool
	Verbosity       string
	Properties      map[string]string
}

// TestSettings configures dotnet vstest.
type TestSettings struct {
	Framework string
	Logger    string
}

// DeleteSettings configures dotnet nuget delete.
type DeleteSettings struct {
	Source         string
	APIKey         string
	NonInteractive bool
}

// RestoreArgs returns the arguments for restoring target.
func RestoreArgs(target string, s RestoreSettings) []string {
	args := []string{"restore", target}
	args = appendOpt(args, "--runtime", s.Runtime)
	args = appendOpt(args, "--verbosity", s.Verbosity)
	return append(args, properties(s.Properties)...)
}

// BuildArgs returns the arguments for building target.
func BuildArgs(target string, s BuildSettings) []string {
	args := []string{"build", target}
	args = appendOpt(args, "--configuration", s.Configuration)
	args = appendOpt(args, "--framework", s.Framework)
	args = appendOpt(args, "--runtime", s.Runtime)
	if s.NoRestore {
		args = append(args, "--no-restore")
	}
	args = appendOpt(args, "--verbosity", s.Verbosity)
	return append(args, properties(s.Properties)...)
}

// PublishArgs returns the arguments for publishing target.
func PublishArgs(target string, s PublishSettings) []string {
	args := []string{"publish", target}
	args = appendOpt(args, "--configuration", s.Configuration)
	args = appendOpt(args, "--framework", s.Framework)
	args = appendOpt(args, "--runtime", s.Runtime)
	args = appendOpt(args, "--output", s.OutputDirectory)
	if s.NoRestore {
		args = append(args, "--no-restore")
	}
	args = appendOpt(args, "--verbosity", s.Verbosity)
	return append(args, properties(s.Properties)...)
}

// TestArgs returns the arguments for running the test assemblies.
func TestArgs(assemblies []string, s TestSettings) []string {
	args := append([]string{"vstest"}, assemblies...)
	if s.Framework != "" {
		args = append(args, "--Framework:"+s.Framework)
	}
	if s.Logger != "" {
		args = append(args, "--logger:"+s.Logger)
	}
	return args
}

// DeleteArgs returns the arguments for deleting a package version from a source.
func DeleteArgs(id, version string, s DeleteSettings) []string {
	args := []string{"nuget", "delete", id, version}
	args = appendOpt(args, "--source", s.Source)
	args = appendOpt(args, "--api-key", s.APIKey)
	if s.NonInteractive {
		args = append(args, "--non-interactive")
	}
	return args
}

// Restore runs dotnet restore.
func Restore(r Runner, target string, s RestoreSettings) error {
	return run(r, RestoreArgs(target, s))
}

// Build runs dotnet build.
func Build(r Runner, target string, s BuildSettings) error {
	return run(r, BuildArgs(target, s))
}

// Publish runs dotnet publish.
func Publish(r Runner, target string, s PublishSettings) error {
	return run(r, PublishArgs(target, s))
}

// Test runs dotnet vstest over the assemblies.
func Test(r Runner, assemblies []string, s TestSettings) error {
	return run(r, TestArgs(assemblies, s))
}

// Delete runs dotnet nuget delete.
func Delete(r Runner, id, version string, s DeleteSettings) error {
	return run(r, DeleteArgs(id, version, s))
}

func run(r Runner, args []string) error {
	if err := r.Run(Command, args...); err != nil {
		return fmt.Errorf("dotnet %s: %w", args[0], err)
	}
	return nil
}

func appendOpt(args []string, name, value string) []string {
	if value == "" {
		return args
	}
	return append(args, name, value)
}

// properties renders MSBuild properties in key order.
func properties(props map[string]string) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = fmt.Sprintf("-p:%s=%s", k, props[k])
	}
	return out
}
