package host

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(calls *[]string, name string) func() error {
	return func() error {
		*calls = append(*calls, name)
		return nil
	}
}

func TestHost_Run_When_DiamondDependencies(t *testing.T) {
	t.Parallel()

	var calls []string
	h := New(zerolog.Nop())
	require.NoError(t, h.Add(Task{Name: "Info", Does: record(&calls, "Info")}))
	require.NoError(t, h.Add(Task{Name: "A", DependsOn: []string{"Info"}, Does: record(&calls, "A")}))
	require.NoError(t, h.Add(Task{Name: "B", DependsOn: []string{"Info"}, Does: record(&calls, "B")}))
	require.NoError(t, h.Add(Task{Name: "All", DependsOn: []string{"A", "B"}, Does: record(&calls, "All")}))

	require.NoError(t, h.Run("All"))

	assert.Equal(t, []string{"Info", "A", "B", "All"}, calls)
}

func TestHost_Run_When_CriteriaFalse(t *testing.T) {
	t.Parallel()

	var calls []string
	var events []Event
	h := New(zerolog.Nop())
	h.OnTask = func(e Event) { events = append(events, e) }
	require.NoError(t, h.Add(Task{Name: "Skip", Criteria: func() bool { return false }, Does: record(&calls, "Skip")}))
	require.NoError(t, h.Add(Task{Name: "Next", DependsOn: []string{"Skip"}, Does: record(&calls, "Next")}))

	require.NoError(t, h.Run("Next"))

	assert.Equal(t, []string{"Next"}, calls)
	require.Len(t, events, 2)
	assert.True(t, events[0].Skipped)
	assert.False(t, events[1].Skipped)
}

func TestHost_Run_When_ErrorHandled(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var handled error
	var calls []string
	h := New(zerolog.Nop())
	require.NoError(t, h.Add(Task{
		Name:    "Fail",
		Does:    func() error { return boom },
		OnError: func(err error) error { handled = err; return nil },
	}))
	require.NoError(t, h.Add(Task{Name: "Next", DependsOn: []string{"Fail"}, Does: record(&calls, "Next")}))

	require.NoError(t, h.Run("Next"))

	require.ErrorIs(t, handled, boom)
	assert.Equal(t, []string{"Next"}, calls)
}

func TestHost_Run_When_ErrorUnhandled(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var calls []string
	h := New(zerolog.Nop())
	require.NoError(t, h.Add(Task{Name: "Fail", Does: func() error { return boom }}))
	require.NoError(t, h.Add(Task{Name: "Next", DependsOn: []string{"Fail"}, Does: record(&calls, "Next")}))

	err := h.Run("Next")

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "task Fail")
	assert.Empty(t, calls)
}

func TestHost_Run_When_HandlerRethrows(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	h := New(zerolog.Nop())
	require.NoError(t, h.Add(Task{
		Name:    "Fail",
		Does:    func() error { return errors.New("inner") },
		OnError: func(error) error { return boom },
	}))

	require.ErrorIs(t, h.Run("Fail"), boom)
}

func TestHost_Run_When_UnknownOrCyclic(t *testing.T) {
	t.Parallel()

	h := New(zerolog.Nop())
	require.NoError(t, h.Add(Task{Name: "A", DependsOn: []string{"B"}}))
	require.NoError(t, h.Add(Task{Name: "B", DependsOn: []string{"A"}}))
	require.NoError(t, h.Add(Task{Name: "C", DependsOn: []string{"Missing"}}))

	require.ErrorIs(t, h.Run("A"), ErrCycle)
	require.ErrorIs(t, h.Run("C"), ErrUnknownTask)
	require.ErrorIs(t, h.Run("Nope"), ErrUnknownTask)
}

func TestHost_Add_When_Duplicate(t *testing.T) {
	t.Parallel()

	h := New(zerolog.Nop())
	require.NoError(t, h.Add(Task{Name: "A"}))

	require.ErrorIs(t, h.Add(Task{Name: "A"}), ErrDuplicateTask)
	assert.Equal(t, []string{"A"}, h.Names())
	_, ok := h.Task("A")
	assert.True(t, ok)
}

func TestHost_Add_When_NameEmpty(t *testing.T) {
	t.Parallel()

	h := New(zerolog.Nop())

	require.ErrorIs(t, h.Add(Task{}), ErrEmptyName)
	assert.Empty(t, h.Names())
}
