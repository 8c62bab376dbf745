// Package pipeline describes the fixed, linear sequence of stages every
// recipe runs through and resolves which stage a task depends on once
// optional stages have been switched off.
package pipeline

import (
	"fmt"
	"strings"
)

// Stage is one named step of a recipe pipeline.
type Stage int

// Stages in pipeline order.
const (
	Info Stage = iota
	Setup
	Check
	Version
	ReleaseNotes
	AssemblyInfo
	Clean
	PreBuild
	Build
	PostBuild
	Test
	Package
	Commit
	Push
	CleanUp
)

var stageNames = [...]string{
	Info:         "Info",
	Setup:        "Setup",
	Check:        "Check",
	Version:      "Version",
	ReleaseNotes: "ReleaseNotes",
	AssemblyInfo: "AssemblyInfo",
	Clean:        "Clean",
	PreBuild:     "PreBuild",
	Build:        "Build",
	PostBuild:    "PostBuild",
	Test:         "Test",
	Package:      "Package",
	Commit:       "Commit",
	Push:         "Push",
	CleanUp:      "CleanUp",
}

func (s Stage) String() string {
	if s < Info || s > CleanUp {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// ParseStage returns the stage with the given name (case-insensitive).
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if strings.EqualFold(n, name) {
			return Stage(i), nil
		}
	}
	return Info, fmt.Errorf("unknown stage %q", name)
}

// Toggles switches the optional stages on or off.
type Toggles struct {
	UsePreBuild         bool
	UsePostBuild        bool
	UpdateAssemblyInfo  bool
	PrepareReleaseNotes bool
	UseCommit           bool
}

type step struct {
	stage   Stage
	enabled func(Toggles) bool
}

func always(Toggles) bool { return true }

// order is the pipeline. Stages not listed with a predicate always run.
var order = []step{
	{Info, always},
	{Setup, always},
	{Check, always},
	{Version, always},
	{ReleaseNotes, func(t Toggles) bool { return t.PrepareReleaseNotes }},
	{AssemblyInfo, func(t Toggles) bool { return t.UpdateAssemblyInfo }},
	{Clean, always},
	{PreBuild, func(t Toggles) bool { return t.UsePreBuild }},
	{Build, always},
	{PostBuild, func(t Toggles) bool { return t.UsePostBuild }},
	{Test, always},
	{Package, always},
	{Commit, func(t Toggles) bool { return t.UseCommit }},
	{Push, always},
	{CleanUp, always},
}

// Enabled reports whether stage runs under the given toggles.
func Enabled(stage Stage, t Toggles) bool {
	if stage < Info || stage > CleanUp {
		return false
	}
	return order[stage].enabled(t)
}

// All returns every stage in pipeline order, enabled or not.
func All() []Stage {
	stages := make([]Stage, len(order))
	for i, s := range order {
		stages[i] = s.stage
	}
	return stages
}

// Stages returns the enabled stages in pipeline order.
func Stages(t Toggles) []Stage {
	var stages []Stage
	for _, s := range order {
		if s.enabled(t) {
			stages = append(stages, s.stage)
		}
	}
	return stages
}

// Previous returns the nearest enabled stage before stage.
// It reports false when stage is the first enabled stage.
func Previous(stage Stage, t Toggles) (Stage, bool) {
	return advance(stage, -1, t)
}

// Next returns the nearest enabled stage after stage.
// It reports false when stage is the last enabled stage.
func Next(stage Stage, t Toggles) (Stage, bool) {
	return advance(stage, 1, t)
}

// Last returns the nearest enabled stage at or before stage. Targets that
// stop at a stage depend on Last so a disabled stop point still resolves.
func Last(stage Stage, t Toggles) (Stage, bool) {
	if Enabled(stage, t) {
		return stage, true
	}
	return Previous(stage, t)
}

func advance(from Stage, dir int, t Toggles) (Stage, bool) {
	for i := int(from) + dir; i >= 0 && i < len(order); i += dir {
		if order[i].enabled(t) {
			return order[i].stage, true
		}
	}
	return from, false
}

// TaskName returns the host task name of a recipe stage, e.g. "MyApp-Build".
func TaskName(id string, stage Stage) string {
	return id + "-" + stage.String()
}
