package magetasks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSections_When_AllPass(t *testing.T) {
	var order []string
	step := func(name string) func() error {
		return func() error {
			order = append(order, name)
			return nil
		}
	}

	var ran int
	var err error
	output := capture(t, func() {
		ran, err = RunSections(
			Section{Name: "build", Run: step("build")},
			Section{Name: "test", Run: step("test")},
		)
	})

	require.NoError(t, err)
	assert.Equal(t, 2, ran)
	assert.Equal(t, []string{"build", "test"}, order)
	assert.Contains(t, output, "Build")
	assert.Contains(t, output, "Test")
}

func TestRunSections_When_SectionFails(t *testing.T) {
	boom := errors.New("boom")
	var testRan bool

	var ran int
	var err error
	capture(t, func() {
		ran, err = RunSections(
			Section{Name: "build", Run: func() error { return boom }},
			Section{Name: "test", Run: func() error {
				testRan = true
				return nil
			}},
		)
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, ran)
	assert.False(t, testRan)
}

func TestRunSections_When_Empty(t *testing.T) {
	ran, err := RunSections()

	require.NoError(t, err)
	assert.Zero(t, ran)
}
