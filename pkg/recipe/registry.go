package recipe

import "fmt"

// Registry is the ordered list of recipes in a build.
type Registry struct {
	recipes []Buildable
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Add appends b. IDs must be unique because they prefix task names.
func (r *Registry) Add(b Buildable) error {
	id := b.Common().ID
	for _, existing := range r.recipes {
		if existing.Common().ID == id {
			return fmt.Errorf("recipe %q is already registered", id)
		}
	}
	r.recipes = append(r.recipes, b)
	return nil
}

// All returns the recipes in registration order.
func (r *Registry) All() []Buildable {
	return append([]Buildable(nil), r.recipes...)
}

// Len returns the number of recipes.
func (r *Registry) Len() int { return len(r.recipes) }

// ConfigDotNetApp creates an application recipe, lets fn configure it and
// registers it.
func (r *Registry) ConfigDotNetApp(fn func(*DotNetApp)) (*DotNetApp, error) {
	app := NewDotNetApp()
	fn(app)
	if err := r.Add(app); err != nil {
		return nil, err
	}
	return app, nil
}

// ConfigDotNetLib creates a library recipe, lets fn configure it and
// registers it.
func (r *Registry) ConfigDotNetLib(fn func(*DotNetLib)) (*DotNetLib, error) {
	lib := NewDotNetLib()
	fn(lib)
	if err := r.Add(lib); err != nil {
		return nil, err
	}
	return lib, nil
}

// Status splits the recipes by outcome: completed, skipped for lack of
// new release notes, and errored.
func (r *Registry) Status() (successful, skipped, errored []Buildable) {
	for _, b := range r.recipes {
		c := b.Common()
		switch {
		case c.Errored():
			errored = append(errored, b)
		case c.SkipRemainingTasks:
			skipped = append(skipped, b)
		default:
			successful = append(successful, b)
		}
	}
	return successful, skipped, errored
}
