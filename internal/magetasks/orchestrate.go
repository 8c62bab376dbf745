package magetasks

import (
	"github.com/rs/zerolog"

	"github.com/dkoosis/recipes/internal/host"
)

// Section is one headed step of a workflow.
type Section struct {
	Name        string
	Description string
	Run         func() error
}

// RunSections runs the sections in order under H1 headers, stopping at the
// first failure. It returns how many sections ran.
func RunSections(sections ...Section) (int, error) {
	h := host.New(zerolog.Nop())
	ran := 0
	previous := ""
	for _, s := range sections {
		task := host.Task{
			Name:        s.Name,
			Description: s.Description,
			Does: func() error {
				ran++
				PrintH1Header(s.Name)
				return s.Run()
			},
		}
		if previous != "" {
			task.DependsOn = []string{previous}
		}
		if err := h.Add(task); err != nil {
			return ran, err
		}
		previous = s.Name
	}
	if previous == "" {
		return 0, nil
	}
	return ran, h.Run(previous)
}

// RunAll executes the comprehensive build and test workflow.
func RunAll() error {
	_, err := RunSections(
		Section{Name: "Build", Description: "Build the recipes binary", Run: BuildAll},
		Section{Name: "Lint", Description: "Run the linters", Run: LintAll},
		Section{Name: "Tests", Description: "Run the test suite", Run: TestAll},
	)
	return err
}
