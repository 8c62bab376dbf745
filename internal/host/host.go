// Package host runs a graph of named tasks. Dependencies run first, each
// task runs at most once per Run, and tasks run one at a time.
package host

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	// ErrEmptyName is returned by Add for a task without a name.
	ErrEmptyName = errors.New("task name is empty")
	// ErrUnknownTask is returned by Run when a target or dependency is not registered.
	ErrUnknownTask = errors.New("unknown task")
	// ErrDuplicateTask is returned by Add when the name is already registered.
	ErrDuplicateTask = errors.New("duplicate task")
	// ErrCycle is returned by Run when dependencies loop back to a running task.
	ErrCycle = errors.New("task dependency cycle")
)

// Task is one node of the graph.
type Task struct {
	Name        string
	Description string
	DependsOn   []string
	// Criteria, when set, must return true for Does to run.
	Criteria func() bool
	Does     func() error
	// OnError receives the error returned by Does. Returning nil lets the
	// run continue.
	OnError func(err error) error
}

// Event is reported for every task the host visits.
type Event struct {
	Task    string
	Skipped bool
	Err     error
}

// Host holds the registered tasks.
type Host struct {
	tasks map[string]*Task
	order []string
	log   zerolog.Logger
	// OnTask, when set, is called after each task is visited.
	OnTask func(Event)
}

// New returns an empty host.
func New(log zerolog.Logger) *Host {
	return &Host{tasks: map[string]*Task{}, log: log}
}

// Add registers t. Names must be unique.
func (h *Host) Add(t Task) error {
	if t.Name == "" {
		return ErrEmptyName
	}
	if _, ok := h.tasks[t.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, t.Name)
	}
	h.tasks[t.Name] = &t
	h.order = append(h.order, t.Name)
	return nil
}

// Task returns the task registered under name.
func (h *Host) Task(name string) (Task, bool) {
	t, ok := h.tasks[name]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

// Names lists the registered tasks in registration order.
func (h *Host) Names() []string {
	return append([]string(nil), h.order...)
}

// Run executes target after its dependencies.
func (h *Host) Run(target string) error {
	r := &run{host: h, state: map[string]visit{}}
	return r.visit(target, nil)
}

type visit int

const (
	unvisited visit = iota
	visiting
	done
)

type run struct {
	host  *Host
	state map[string]visit
}

func (r *run) visit(name string, path []string) error {
	t, ok := r.host.tasks[name]
	if !ok {
		if len(path) > 0 {
			return fmt.Errorf("%w: %s (required by %s)", ErrUnknownTask, name, path[len(path)-1])
		}
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	switch r.state[name] {
	case done:
		return nil
	case visiting:
		return fmt.Errorf("%w: %v -> %s", ErrCycle, path, name)
	}

	r.state[name] = visiting
	for _, dep := range t.DependsOn {
		if err := r.visit(dep, append(path, name)); err != nil {
			return err
		}
	}
	r.state[name] = done

	return r.execute(t)
}

func (r *run) execute(t *Task) error {
	log := r.host.log.With().Str("task", t.Name).Logger()

	if t.Criteria != nil && !t.Criteria() {
		log.Debug().Msg("skipping task, criteria not met")
		r.report(Event{Task: t.Name, Skipped: true})
		return nil
	}

	log.Debug().Msg("running task")
	var err error
	if t.Does != nil {
		err = t.Does()
	}
	r.report(Event{Task: t.Name, Err: err})
	if err == nil {
		return nil
	}

	if t.OnError == nil {
		return fmt.Errorf("task %s: %w", t.Name, err)
	}
	log.Warn().Err(err).Msg("task failed, running error handler")
	if herr := t.OnError(err); herr != nil {
		return fmt.Errorf("task %s: %w", t.Name, herr)
	}
	return nil
}

func (r *run) report(e Event) {
	if r.host.OnTask != nil {
		r.host.OnTask(e)
	}
}
