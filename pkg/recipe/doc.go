// Package recipe describes the projects a build produces.
//
// A Recipe carries the settings shared by every project kind; DotNetApp and
// DotNetLib add what applications and libraries need. The per-stage
// settings (checks, release notes, assembly info, commit, dotnet and nuget
// invocations) are derived on demand from the recipe and the build-wide
// configuration, so changing an ID or a toggle never leaves stale state.
//
// Recipes are collected in a Registry, either from code through
// ConfigDotNetApp and ConfigDotNetLib or from the recipes section of a
// config file.
package recipe
