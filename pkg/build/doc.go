// Package build holds the settings shared by every recipe in a run.
//
// A Config is assembled once per run from four layers, highest priority
// first:
//
//  1. Command-line flags (--local, --verbosity, ...)
//  2. Environment variables (RECIPES_LOCAL, RECIPES_VERBOSITY, ..., NUGET_API_KEY)
//  3. The build section of recipes.yaml, recipes.yml or recipes.toml
//  4. Defaults
//
// The result is passed by pointer to every stage; nothing reads it through
// package state.
package build
